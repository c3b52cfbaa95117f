package models

// Course represents a course offering.
type Course struct {
	// CourseID is the unique business identifier (e.g. "C1").
	CourseID string `json:"course_id" validate:"required"`

	// CourseName is the display name (e.g. "Math 101").
	CourseName string `json:"course_name" validate:"required"`

	// InstructorID references the assigned instructor's business ID.
	// Empty means the course is unassigned. At most one instructor at
	// a time.
	InstructorID string `json:"instructor_id,omitempty"`

	// EnrolledStudents lists enrolled student IDs in enrollment order,
	// without duplicates.
	EnrolledStudents []string `json:"enrolled_students"`
}

// Enrolled reports whether the student is enrolled in the course.
func (c *Course) Enrolled(studentID string) bool {
	for _, id := range c.EnrolledStudents {
		if id == studentID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers cannot mutate registry state.
func (c *Course) Clone() *Course {
	cp := *c
	cp.EnrolledStudents = append([]string(nil), c.EnrolledStudents...)
	return &cp
}
