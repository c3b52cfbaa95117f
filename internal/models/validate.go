package models

import (
	"regexp"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// Mode selects which validation rule set applies.
type Mode string

const (
	// ModeStrict is the canonical rule set, mirrored by the relational
	// schema: name is letters and spaces only, age in [5,120], IDs
	// alphanumeric.
	ModeStrict Mode = "strict"

	// ModePermissive only rejects clearly broken input: empty name,
	// negative age, malformed email, empty ID.
	ModePermissive Mode = "permissive"
)

// emailRe is the local@domain.tld shape with a TLD of at least two
// characters.
var emailRe = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// Validator checks entities before they enter the registry or a store.
type Validator struct {
	mode Mode
	v    *validator.Validate
}

// NewValidator returns a Validator for the given mode. Unknown modes fall
// back to strict.
func NewValidator(mode Mode) *Validator {
	if mode != ModePermissive {
		mode = ModeStrict
	}
	v := validator.New()
	// Letters and spaces only, at least one letter.
	v.RegisterValidation("person_name", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		seen := false
		for _, r := range s {
			switch {
			case r == ' ':
			case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
				seen = true
			default:
				return false
			}
		}
		return seen
	})
	v.RegisterValidation("school_email", func(fl validator.FieldLevel) bool {
		return emailRe.MatchString(fl.Field().String())
	})
	return &Validator{mode: mode, v: v}
}

// Mode returns the active validation mode.
func (val *Validator) Mode() Mode { return val.mode }

// ValidatePerson checks the shared identity fields.
func (val *Validator) ValidatePerson(p PersonInfo) error {
	nameTag, nameReason := "required", "name must not be empty"
	ageTag, ageReason := "gte=0", "age must not be negative"
	if val.mode == ModeStrict {
		nameTag, nameReason = "required,person_name", "name must contain only letters and spaces"
		ageTag, ageReason = "gte=5,lte=120", "age must be between 5 and 120"
	}
	if err := val.v.Var(p.Name, nameTag); err != nil {
		return &ValidationError{Field: "name", Value: p.Name, Reason: nameReason}
	}
	if err := val.v.Var(p.Age, ageTag); err != nil {
		return &ValidationError{Field: "age", Value: strconv.Itoa(p.Age), Reason: ageReason}
	}
	if err := val.v.Var(p.Email, "required,school_email"); err != nil {
		return &ValidationError{Field: "email", Value: p.Email, Reason: "email must look like local@domain.tld"}
	}
	return nil
}

// ValidateStudent checks the student's identity fields and ID.
func (val *Validator) ValidateStudent(s *Student) error {
	if err := val.ValidatePerson(s.PersonInfo); err != nil {
		return err
	}
	return val.validateID("student_id", s.StudentID)
}

// ValidateInstructor checks the instructor's identity fields and ID.
func (val *Validator) ValidateInstructor(i *Instructor) error {
	if err := val.ValidatePerson(i.PersonInfo); err != nil {
		return err
	}
	return val.validateID("instructor_id", i.InstructorID)
}

// ValidateCourse checks the course's ID and name.
func (val *Validator) ValidateCourse(c *Course) error {
	if err := val.validateID("course_id", c.CourseID); err != nil {
		return err
	}
	if c.CourseName == "" {
		return &ValidationError{Field: "course_name", Value: c.CourseName, Reason: "course name must not be empty"}
	}
	return nil
}

func (val *Validator) validateID(field, id string) error {
	tag, reason := "required", "id must not be empty"
	if val.mode == ModeStrict {
		tag, reason = "required,alphanum", "id must be alphanumeric"
	}
	if err := val.v.Var(id, tag); err != nil {
		return &ValidationError{Field: field, Value: id, Reason: reason}
	}
	return nil
}
