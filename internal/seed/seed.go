// Package seed loads demo persons and policies so a fresh checkout can
// exercise the pipeline end to end.
package seed

import (
	"context"
	"errors"

	"github.com/pasha-github/claimsaipocbuilder1/internal/models"
	"github.com/pasha-github/claimsaipocbuilder1/internal/store"
)

func demoCoverageLimit(v float64) *float64 { return &v }

var demoPersons = []models.Person{
	{
		ID:    "P-1001",
		Email: "john.doe@example.com",
		Phone: "+1 (555) 010-4477",
		SSN:   "123-45-6789",
		Name:  &models.Name{First: "John", Last: "Doe"},
		Address: &models.Address{
			Line1: "120 Maple Street", City: "Springfield", State: "IL", Zip: "62704", Country: "US",
		},
	},
	{
		ID:    "P-1002",
		Email: "maria.garcia@example.com",
		Phone: "+1 (555) 010-8831",
		SSN:   "987-65-4321",
		Name:  &models.Name{First: "Maria", Last: "Garcia"},
		Address: &models.Address{
			Line1: "88 Harbor Ave", City: "Portland", State: "OR", Zip: "97201", Country: "US",
		},
	},
}

var demoPolicies = []models.Policy{
	{
		ID: "POL-7788", PersonID: "P-1001", PolicyNumber: "7788", Product: "Auto",
		Deductible: 100, CoverageLimit: demoCoverageLimit(5000), Active: true,
		StartDate: "2020-01-01", EndDate: "2030-12-31",
	},
	{
		ID: "POL-9911", PersonID: "P-1002", PolicyNumber: "9911", Product: "Home",
		Deductible: 500, CoverageLimit: demoCoverageLimit(50000), Active: true,
		StartDate: "2021-06-01", EndDate: "2031-05-31",
	},
	{
		ID: "POL-2200", PersonID: "P-1002", PolicyNumber: "2200", Product: "Auto",
		Deductible: 250, Active: false,
		StartDate: "2015-01-01", EndDate: "2020-01-01",
	},
}

// Run appends the demo records, skipping any that already exist. Safe to run
// repeatedly.
func Run(ctx context.Context, st *store.Store) error {
	for _, person := range demoPersons {
		if err := st.Persons.Append(ctx, person); err != nil && !errors.Is(err, store.ErrDuplicateKey) {
			return err
		}
	}
	for _, policy := range demoPolicies {
		if err := st.Policies.Append(ctx, policy); err != nil && !errors.Is(err, store.ErrDuplicateKey) {
			return err
		}
	}
	return nil
}
