package models

// Advocate is the searchable professional profile. Records are read-only to
// the search path; ID is assigned by the store.
type Advocate struct {
	ID                int64    `json:"id"`
	FirstName         string   `json:"firstName"`
	LastName          string   `json:"lastName"`
	City              string   `json:"city"`
	Degree            string   `json:"degree"`
	Specialties       []string `json:"specialties"`
	YearsOfExperience int      `json:"yearsOfExperience"`
	// PhoneNumber is display-only and never matched by filters.
	PhoneNumber int64 `json:"phoneNumber"`
}

// FullName joins first and last name for display.
func (a Advocate) FullName() string {
	return a.FirstName + " " + a.LastName
}
