package domain

import "time"

// Offer is a job posting. Company and CompanySlug are a snapshot of the
// enterprise taken when the offer was created or reassigned.
type Offer struct {
	ID           string    `json:"id" db:"id"`
	Slug         string    `json:"slug" db:"slug"`
	Title        string    `json:"title" db:"title"`
	Company      string    `json:"company" db:"company"`
	CompanySlug  string    `json:"company_slug" db:"company_slug"`
	Location     string    `json:"location" db:"location"`
	Description  string    `json:"description" db:"description"`
	Requirements string    `json:"requirements" db:"requirements"`
	Salary       int64     `json:"salary" db:"salary"`
	CategoryID   string    `json:"category" db:"category_id"`
	CategorySlug string    `json:"categorySlug" db:"category_slug"`
	Image        string    `json:"image" db:"image"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// OfferPatch carries the fields of a partial update. Nil fields are left
// untouched.
type OfferPatch struct {
	Title        *string `json:"title"`
	Company      *string `json:"company"`
	Location     *string `json:"location"`
	Description  *string `json:"description"`
	Requirements *string `json:"requirements"`
	Salary       *int64  `json:"salary"`
	Image        *string `json:"image"`
	CategorySlug *string `json:"categorySlug"`
}

// OfferFilter narrows the filter endpoint. Empty strings and nil bounds are
// ignored.
type OfferFilter struct {
	CategorySlug string
	CompanySlug  string
	SalaryMin    *int64
	SalaryMax    *int64
}
