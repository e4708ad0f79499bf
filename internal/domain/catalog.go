package domain

import "time"

type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Icon        string `json:"icon,omitempty"`
	Description string `json:"description,omitempty"`
}

const (
	ProductStatusActive = "active"
	ProductStatusSold   = "sold"
	ProductStatusDraft  = "draft"
)

type Product struct {
	ID                string    `json:"id"`
	SellerID          string    `json:"sellerId"`
	CategoryID        *string   `json:"categoryId,omitempty"`
	Title             string    `json:"title"`
	Description       string    `json:"description,omitempty"`
	PriceCents        int64     `json:"priceCents"`
	Unit              string    `json:"unit"`
	QuantityAvailable int       `json:"quantityAvailable"`
	Images            []string  `json:"images"`
	Location          string    `json:"location,omitempty"`
	IsOrganic         bool      `json:"isOrganic"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
	Seller            *Profile  `json:"seller,omitempty"`
	Category          *Category `json:"category,omitempty"`
}
