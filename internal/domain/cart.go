package domain

import "time"

// LineSnapshot captures the display fields of a product at the moment it is
// added to a cart. Lines render from the snapshot, never from a catalog
// re-fetch, so a later price or title edit does not rewrite open carts.
type LineSnapshot struct {
	Title      string `json:"title"`
	Unit       string `json:"unit"`
	Seller     string `json:"seller"`
	Location   string `json:"location"`
	Image      string `json:"image"`
	PriceCents int64  `json:"priceCents"`
	IsOrganic  bool   `json:"isOrganic"`
}

// CartItem is one cart line. For guest carts the ID is client-generated;
// for signed-in carts it is the remote row id. ProductID is nil for ad hoc
// lines not backed by a catalog entry.
type CartItem struct {
	ID        string       `json:"id"`
	UserID    string       `json:"-"`
	ProductID *string      `json:"productId,omitempty"`
	Snapshot  LineSnapshot `json:"snapshot"`
	Quantity  int          `json:"quantity"`
	CreatedAt time.Time    `json:"createdAt"`
}

// TotalCents is the line total.
func (c CartItem) TotalCents() int64 {
	return c.Snapshot.PriceCents * int64(c.Quantity)
}
