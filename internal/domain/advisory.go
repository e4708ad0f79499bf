package domain

import "time"

type Advisor struct {
	ID                 string    `json:"id"`
	UserID             string    `json:"userId"`
	Specialization     []string  `json:"specialization"`
	ExperienceYears    int       `json:"experienceYears,omitempty"`
	HourlyRateCents    int64     `json:"hourlyRateCents,omitempty"`
	Available          bool      `json:"available"`
	Rating             float64   `json:"rating"`
	TotalConsultations int       `json:"totalConsultations"`
	CreatedAt          time.Time `json:"createdAt"`
	Profile            *Profile  `json:"profile,omitempty"`
}

const (
	ConsultationStatusRequested = "requested"
	ConsultationStatusConfirmed = "confirmed"
	ConsultationStatusCompleted = "completed"
	ConsultationStatusCancelled = "cancelled"
)

type Consultation struct {
	ID              string     `json:"id"`
	AdvisorID       string     `json:"advisorId"`
	FarmerID        string     `json:"farmerId"`
	ScheduledAt     *time.Time `json:"scheduledAt,omitempty"`
	DurationMinutes int        `json:"durationMinutes"`
	Status          string     `json:"status"`
	Notes           string     `json:"notes,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}
