package catalog

import "time"

// Status describes the sale state of a business listing.
type Status string

const (
	StatusAvailable Status = "available"
	StatusReserved  Status = "reserved"
	StatusSold      Status = "sold"
)

// Business is a sellable e-commerce business listing. Prices are integer
// amounts in the smallest currency unit (FCFA).
type Business struct {
	ID               string    `json:"id" yaml:"id"`
	Name             string    `json:"name" yaml:"name"`
	Slug             string    `json:"slug" yaml:"slug"`
	Category         string    `json:"category" yaml:"category"`
	Description      string    `json:"description" yaml:"description"`
	Price            int       `json:"price" yaml:"price"`
	MonthlyPotential int       `json:"monthly_potential" yaml:"monthly_potential"`
	ROIMonths        int       `json:"roi_months" yaml:"roi_months"`
	Status           Status    `json:"status" yaml:"status"`
	CreatedAt        time.Time `json:"created_at" yaml:"-"`
	UpdatedAt        time.Time `json:"updated_at" yaml:"-"`
}
