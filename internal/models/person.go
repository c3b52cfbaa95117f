package models

// PersonInfo holds the identity fields shared by students and instructors.
// It is embedded, not subclassed; role-specific data lives on the
// embedding type.
type PersonInfo struct {
	// Name is the person's full name.
	Name string `json:"name" validate:"required"`

	// Age in years. The strict validator bounds it to [5,120], matching
	// the relational schema CHECK; the permissive validator only rejects
	// negative values.
	Age int `json:"age"`

	// Email must have local@domain.tld shape with a TLD of at least
	// two characters.
	Email string `json:"email" validate:"required"`
}
