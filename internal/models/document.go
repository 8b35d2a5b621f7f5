package models

import "fmt"

// DocumentCategory is the vault folder a document is filed under.
type DocumentCategory string

const (
	CategoryLabReports    DocumentCategory = "lab-reports"
	CategoryPrescriptions DocumentCategory = "prescriptions"
	CategoryInsurance     DocumentCategory = "insurance"
	CategoryBills         DocumentCategory = "bills"
)

// OwnerSelf identifies documents that belong to the logged-in user.
const OwnerSelf = "self"

// ContactOwner is the owner value for the emergency contact at index i.
func ContactOwner(i int) string {
	return fmt.Sprintf("contact-%d", i)
}

// Document is vault metadata. File contents are never stored.
type Document struct {
	ID          string           `json:"id"`
	Name        string           `json:"name" validate:"required"`
	Category    DocumentCategory `json:"category" validate:"required,oneof=lab-reports prescriptions insurance bills"`
	UploadDate  string           `json:"uploadDate" validate:"required,datekey"`
	Owner       string           `json:"owner" validate:"required"`
	RecentVisit string           `json:"recentVisit,omitempty"`
}

// SeedDocuments are present in every new vault.
func SeedDocuments() []Document {
	return []Document{
		{ID: NewID(), Name: "Blood Test Report", Category: CategoryLabReports, UploadDate: "2024-01-15", Owner: OwnerSelf},
		{ID: NewID(), Name: "Prescription - Blood Pressure", Category: CategoryPrescriptions, UploadDate: "2024-01-20", Owner: OwnerSelf},
		{ID: NewID(), Name: "Insurance Policy", Category: CategoryInsurance, UploadDate: "2024-01-10", Owner: OwnerSelf},
	}
}
