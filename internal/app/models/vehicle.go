package models

import "time"

// Category defines a licence category based on the 'categories' table
// (e.g. "B" - passenger car, "A" - motorcycle).
type Category struct {
	ID          int64  `json:"id" db:"id"`
	Code        string `json:"code" db:"code" example:"B"`
	Name        string `json:"name" db:"name" example:"Passenger car"`
	Description string `json:"description,omitempty" db:"description"`
}

// Vehicle defines the vehicle model based on the 'vehicles' table
type Vehicle struct {
	ID             int64            `json:"id" db:"id"`
	OrganizationID int64            `json:"organizationId" db:"organization_id"`
	Registration   string           `json:"registration" db:"registration" example:"B-RW 1234"` // Licence plate, unique per organization
	Make           string           `json:"make" db:"make" example:"Volkswagen"`
	Model          string           `json:"model" db:"model" example:"Golf"`
	Year           int              `json:"year" db:"year" example:"2022"`
	CategoryID     int64            `json:"categoryId" db:"category_id"`
	Transmission   TransmissionType `json:"transmission" db:"transmission" example:"MANUAL"`
	IsActive       bool             `json:"isActive" db:"is_active"`
	CreatedAt      time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time        `json:"updatedAt" db:"updated_at"`
	Category       *Category        `json:"category,omitempty"` // Relation, no db tag
}
