package models

// InsurancePolicy is a health insurance policy record.
type InsurancePolicy struct {
	ID           string `json:"id"`
	Name         string `json:"name" validate:"required"`
	Provider     string `json:"provider" validate:"required"`
	PolicyNumber string `json:"policyNumber" validate:"required"`
	StartDate    string `json:"startDate" validate:"required,datekey"`
	EndDate      string `json:"endDate" validate:"required,datekey"`
	Coverage     string `json:"coverage" validate:"required"`
	Premium      string `json:"premium" validate:"required"`
}

// SeedPolicies are present in every new workspace.
func SeedPolicies() []InsurancePolicy {
	return []InsurancePolicy{
		{
			ID:           NewID(),
			Name:         "Health Plus Premium",
			Provider:     "HealthCare Inc.",
			PolicyNumber: "HCP-2024-001",
			StartDate:    "2024-01-01",
			EndDate:      "2024-12-31",
			Coverage:     "$500,000",
			Premium:      "$250/month",
		},
	}
}
