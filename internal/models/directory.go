package models

// ProviderKind names a directory listing.
type ProviderKind string

const (
	KindHospital ProviderKind = "hospitals"
	KindLab      ProviderKind = "labs"
	KindPharmacy ProviderKind = "pharmacies"
)

// Bookable reports whether appointments can be booked with providers of
// kind k. Pharmacies are listed for search only.
func (k ProviderKind) Bookable() bool {
	return k == KindHospital || k == KindLab
}

// BookingType is the appointment category a booking with k creates.
func (k ProviderKind) BookingType() AppointmentType {
	if k == KindLab {
		return TypeTestScan
	}
	return TypeConsultation
}

// Provider is a hospital, diagnostic lab or pharmacy. Services holds the
// facilities, tests or medicines it offers.
type Provider struct {
	ID       string       `json:"id"`
	Kind     ProviderKind `json:"kind"`
	Name     string       `json:"name"`
	Address  string       `json:"address"`
	Phone    string       `json:"phone"`
	Services []string     `json:"services"`
}

// SeedHospitals is the hospital directory.
func SeedHospitals() []Provider {
	return []Provider{
		{ID: "h1", Kind: KindHospital, Name: "City General Hospital", Address: "100 Hospital Drive, Downtown", Phone: "+1 (555) 100-1000",
			Services: []string{"MRI", "CT Scan", "Ultrasound", "X-Ray", "Emergency", "ICU"}},
		{ID: "h2", Kind: KindHospital, Name: "St. Mary's Medical Center", Address: "200 Care Street, Midtown", Phone: "+1 (555) 200-2000",
			Services: []string{"PET Scan", "MRI", "CT Scan", "Cardiology", "Neurology", "Oncology"}},
		{ID: "h3", Kind: KindHospital, Name: "Regional Healthcare Complex", Address: "300 Wellness Boulevard, Uptown", Phone: "+1 (555) 300-3000",
			Services: []string{"Ultrasound", "Mammography", "Endoscopy", "Dialysis", "Surgery"}},
		{ID: "h4", Kind: KindHospital, Name: "Community Health Hospital", Address: "400 Medical Plaza, Suburb", Phone: "+1 (555) 400-4000",
			Services: []string{"X-Ray", "ECG", "Blood Bank", "Pharmacy", "Lab Services"}},
	}
}

// SeedLabs is the diagnostic lab directory.
func SeedLabs() []Provider {
	return []Provider{
		{ID: "l1", Kind: KindLab, Name: "QuickTest Diagnostics", Address: "123 Medical Plaza, Downtown", Phone: "+1 (555) 111-2222",
			Services: []string{"CBC", "ELISA", "TFT", "Lipid Profile", "HbA1c", "Liver Function Test"}},
		{ID: "l2", Kind: KindLab, Name: "HealthCheck Labs", Address: "456 Wellness Center, Midtown", Phone: "+1 (555) 222-3333",
			Services: []string{"X-Ray", "ECG", "Ultrasound", "Blood Sugar", "Kidney Function Test"}},
		{ID: "l3", Kind: KindLab, Name: "MediScan Diagnostics", Address: "789 Care Avenue, Uptown", Phone: "+1 (555) 333-4444",
			Services: []string{"MRI", "CT Scan", "PET Scan", "Bone Density", "Mammography"}},
		{ID: "l4", Kind: KindLab, Name: "PrecisionPath Laboratory", Address: "321 Health Street, Central", Phone: "+1 (555) 444-5555",
			Services: []string{"COVID-19 Test", "Allergy Panel", "Hormone Panel", "Vitamin D", "Iron Studies"}},
	}
}

// SeedPharmacies is the pharmacy directory.
func SeedPharmacies() []Provider {
	return []Provider{
		{ID: "p1", Kind: KindPharmacy, Name: "HealthPlus Pharmacy", Address: "123 Main Street, Downtown", Phone: "+1 (555) 123-4567",
			Services: []string{"Aspirin", "Ibuprofen", "Paracetamol", "Amoxicillin", "Omeprazole", "Metformin"}},
		{ID: "p2", Kind: KindPharmacy, Name: "MediCare Drugstore", Address: "456 Oak Avenue, Uptown", Phone: "+1 (555) 234-5678",
			Services: []string{"Lisinopril", "Atorvastatin", "Levothyroxine", "Metoprolol", "Amlodipine"}},
		{ID: "p3", Kind: KindPharmacy, Name: "WellCare Pharmacy", Address: "789 Pine Road, Suburb", Phone: "+1 (555) 345-6789",
			Services: []string{"Gabapentin", "Hydrochlorothiazide", "Losartan", "Sertraline", "Pantoprazole"}},
		{ID: "p4", Kind: KindPharmacy, Name: "CityMed Pharmacy", Address: "321 Elm Street, Central", Phone: "+1 (555) 456-7890",
			Services: []string{"Clopidogrel", "Escitalopram", "Rosuvastatin", "Albuterol", "Furosemide"}},
	}
}
