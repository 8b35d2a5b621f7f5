package models

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned when a password does not match.
var ErrInvalidCredentials = errors.New("invalid username or password")

// MaxEmergencyContacts caps the emergency contact list.
const MaxEmergencyContacts = 5

// Account is a locally registered user together with the profile captured
// at signup.
type Account struct {
	Username  string      `gorm:"primaryKey;size:191" json:"username"`
	Email     string      `gorm:"size:255" json:"email"`
	Password  string      `gorm:"not null" json:"-"` // Never send password in JSON
	Profile   UserProfile `gorm:"type:text;serializer:json" json:"-"`
	CreatedAt time.Time   `json:"createdAt"`
}

// SetPassword hashes a password and sets it on the account
func (a *Account) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.Password = string(hashedPassword)
	return nil
}

// CheckPassword compares a password with the account's hashed password
func (a *Account) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(a.Password), []byte(password))
	return err == nil
}

// EmergencyContact is a person to notify in an emergency. A blank phone is
// allowed on the intake form but a filled one must be valid.
type EmergencyContact struct {
	Name     string `json:"name"`
	Phone    string `json:"phone" validate:"omitempty,phone"`
	Relation string `json:"relation,omitempty"`
}

// Complete reports whether both name and phone are filled in.
func (c EmergencyContact) Complete() bool {
	return strings.TrimSpace(c.Name) != "" && strings.TrimSpace(c.Phone) != ""
}

// PersonalInfo is section 1 of the medical intake form.
type PersonalInfo struct {
	FullName          string             `json:"fullName" validate:"required"`
	DateOfBirth       string             `json:"dateOfBirth" validate:"required,datekey"`
	Gender            string             `json:"gender" validate:"required"`
	BloodGroup        string             `json:"bloodGroup" validate:"required"`
	Height            string             `json:"height,omitempty"`
	Weight            string             `json:"weight,omitempty"`
	ContactNumber     string             `json:"contactNumber" validate:"required,phone"`
	EmergencyContacts []EmergencyContact `json:"emergencyContacts" validate:"max=5,dive"`
}

// Medication is a current prescription.
type Medication struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage,omitempty"`
	Frequency string `json:"frequency,omitempty"`
	Course    string `json:"course,omitempty"`
	Purpose   string `json:"purpose,omitempty"`
}

// Doctor is a member of the user's medical team.
type Doctor struct {
	Name       string `json:"name"`
	Phone      string `json:"phone" validate:"omitempty,phone"`
	Speciality string `json:"speciality,omitempty"`
}

// CurrentMedical is section 2 of the medical intake form.
type CurrentMedical struct {
	Conditions  []string     `json:"conditions"`
	Medications []Medication `json:"medications"`
	Allergies   []string     `json:"allergies"`
	Treatments  []string     `json:"treatments"`
	Doctors     []Doctor     `json:"doctors" validate:"dive"`
}

// DatedEntry is a past event with an optional date key.
type DatedEntry struct {
	Name   string `json:"name,omitempty"`
	Reason string `json:"reason,omitempty"`
	Date   string `json:"date,omitempty" validate:"omitempty,datekey"`
}

// PastMedical is section 3 of the medical intake form.
type PastMedical struct {
	Diseases           []string     `json:"diseases"`
	Surgeries          []DatedEntry `json:"surgeries" validate:"dive"`
	Hospitalizations   []DatedEntry `json:"hospitalizations" validate:"dive"`
	Injuries           []string     `json:"injuries"`
	ChildhoodIllnesses []string     `json:"childhoodIllnesses"`
	PastMedications    []string     `json:"pastMedications"`
	LongTermTreatments []string     `json:"longTermTreatments"`
}

// FamilyHistoryEntry is one row of section 4.
type FamilyHistoryEntry struct {
	Disease  string `json:"disease"`
	Relation string `json:"relation"`
}

// UserProfile is everything the intake form collects.
type UserProfile struct {
	PersonalInfo   PersonalInfo         `json:"personalInfo"`
	CurrentMedical CurrentMedical       `json:"currentMedical"`
	PastMedical    PastMedical          `json:"pastMedical"`
	FamilyHistory  []FamilyHistoryEntry `json:"familyHistory"`
}

// DemoProfile is the profile handed to users who log in without having
// signed up.
func DemoProfile() UserProfile {
	return UserProfile{
		PersonalInfo: PersonalInfo{
			FullName:      "John Doe",
			DateOfBirth:   "1990-01-01",
			Gender:        "Male",
			BloodGroup:    "O+",
			Height:        `5'10"`,
			Weight:        "70 kg",
			ContactNumber: "9876543210",
			EmergencyContacts: []EmergencyContact{
				{Name: "Jane Doe", Phone: "9876543211"},
			},
		},
		CurrentMedical: CurrentMedical{
			Conditions:  []string{},
			Medications: []Medication{},
			Allergies:   []string{},
			Treatments:  []string{},
			Doctors:     []Doctor{},
		},
		PastMedical: PastMedical{
			Diseases:           []string{},
			Surgeries:          []DatedEntry{},
			Hospitalizations:   []DatedEntry{},
			Injuries:           []string{},
			ChildhoodIllnesses: []string{},
			PastMedications:    []string{},
			LongTermTreatments: []string{},
		},
		FamilyHistory: []FamilyHistoryEntry{},
	}
}
