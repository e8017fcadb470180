package domain

import "time"

// Enterprise is the organization posting offers. Offers copy its name and
// slug at creation time and never follow later renames.
type Enterprise struct {
	ID          string    `json:"id" db:"id"`
	Slug        string    `json:"slug" db:"slug"`
	Name        string    `json:"name" db:"name"`
	Location    string    `json:"location,omitempty" db:"location"`
	Description string    `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
