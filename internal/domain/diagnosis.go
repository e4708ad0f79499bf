package domain

import "time"

// Diagnosis stores the outcome of a crop-image analysis. The inference call
// happens elsewhere; this record is what the dashboard lists.
type Diagnosis struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId"`
	ImageURL        string    `json:"imageUrl"`
	CropType        string    `json:"cropType,omitempty"`
	Diagnosis       string    `json:"diagnosis,omitempty"`
	Confidence      float64   `json:"confidence,omitempty"`
	Recommendations []string  `json:"recommendations"`
	CreatedAt       time.Time `json:"createdAt"`
}
