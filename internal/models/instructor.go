package models

// Instructor represents a course instructor.
type Instructor struct {
	PersonInfo

	// InstructorID is the unique business identifier (e.g. "I1").
	InstructorID string `json:"instructor_id" validate:"required"`

	// AssignedCourses lists the IDs of courses this instructor teaches,
	// in assignment order, without duplicates. Kept mutually consistent
	// with Course.InstructorID by the registry.
	AssignedCourses []string `json:"assigned_courses"`
}

// Assigned reports whether the instructor teaches the course.
func (i *Instructor) Assigned(courseID string) bool {
	for _, id := range i.AssignedCourses {
		if id == courseID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers cannot mutate registry state.
func (i *Instructor) Clone() *Instructor {
	c := *i
	c.AssignedCourses = append([]string(nil), i.AssignedCourses...)
	return &c
}
