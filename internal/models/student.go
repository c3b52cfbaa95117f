package models

// Student represents an enrolled student.
type Student struct {
	PersonInfo

	// StudentID is the unique business identifier (e.g. "S1").
	StudentID string `json:"student_id" validate:"required"`

	// RegisteredCourses lists the IDs of courses the student is
	// registered in, in registration order, without duplicates.
	// The registry keeps this mutually consistent with
	// Course.EnrolledStudents.
	RegisteredCourses []string `json:"registered_courses"`
}

// Registered reports whether the student is registered in the course.
func (s *Student) Registered(courseID string) bool {
	for _, id := range s.RegisteredCourses {
		if id == courseID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers cannot mutate registry state.
func (s *Student) Clone() *Student {
	c := *s
	c.RegisteredCourses = append([]string(nil), s.RegisteredCourses...)
	return &c
}
