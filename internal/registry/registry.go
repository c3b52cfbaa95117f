// Package registry owns the canonical in-memory entity collections.
//
// The registry is the sole owner of entity lifetime: entities enter
// through Add*, change through Update* or the relationship operations,
// and leave through Remove*. Collections preserve insertion order, and
// business IDs (plus person emails) are unique within their collection.
package registry

import (
	"strings"

	"github.com/nadimk/schoolhub/internal/models"
)

// Registry holds students, instructors and courses in insertion order
// and keeps both sides of every relationship consistent.
//
// It is not safe for concurrent use; the system is single-actor by
// design and callers serialize access.
type Registry struct {
	validator *models.Validator

	students    []*models.Student
	instructors []*models.Instructor
	courses     []*models.Course

	studentIdx    map[string]int
	instructorIdx map[string]int
	courseIdx     map[string]int
}

// New returns an empty registry using the given validator.
func New(v *models.Validator) *Registry {
	return &Registry{
		validator:     v,
		studentIdx:    make(map[string]int),
		instructorIdx: make(map[string]int),
		courseIdx:     make(map[string]int),
	}
}

// AddStudent validates and inserts a student. Fails with DuplicateError
// on a repeated student ID or email.
func (r *Registry) AddStudent(s *models.Student) error {
	if err := r.validator.ValidateStudent(s); err != nil {
		return err
	}
	if _, ok := r.studentIdx[s.StudentID]; ok {
		return &models.DuplicateError{Kind: models.KindStudent, Field: "student_id", Value: s.StudentID}
	}
	if err := r.checkEmailFree(s.Email); err != nil {
		return err
	}
	cp := s.Clone()
	r.studentIdx[cp.StudentID] = len(r.students)
	r.students = append(r.students, cp)
	return nil
}

// AddInstructor validates and inserts an instructor. Fails with
// DuplicateError on a repeated instructor ID or email.
func (r *Registry) AddInstructor(i *models.Instructor) error {
	if err := r.validator.ValidateInstructor(i); err != nil {
		return err
	}
	if _, ok := r.instructorIdx[i.InstructorID]; ok {
		return &models.DuplicateError{Kind: models.KindInstructor, Field: "instructor_id", Value: i.InstructorID}
	}
	if err := r.checkEmailFree(i.Email); err != nil {
		return err
	}
	cp := i.Clone()
	r.instructorIdx[cp.InstructorID] = len(r.instructors)
	r.instructors = append(r.instructors, cp)
	return nil
}

// AddCourse validates and inserts a course. An InstructorID set on the
// course is resolved and linked; an unknown one fails with NotFoundError.
func (r *Registry) AddCourse(c *models.Course) error {
	if err := r.validator.ValidateCourse(c); err != nil {
		return err
	}
	if _, ok := r.courseIdx[c.CourseID]; ok {
		return &models.DuplicateError{Kind: models.KindCourse, Field: "course_id", Value: c.CourseID}
	}
	if c.InstructorID != "" {
		if _, ok := r.instructorIdx[c.InstructorID]; !ok {
			return &models.NotFoundError{Kind: models.KindInstructor, ID: c.InstructorID}
		}
	}
	for _, studentID := range c.EnrolledStudents {
		if _, ok := r.studentIdx[studentID]; !ok {
			return &models.NotFoundError{Kind: models.KindStudent, ID: studentID}
		}
	}
	cp := c.Clone()
	instructorID := cp.InstructorID
	enrolled := cp.EnrolledStudents
	cp.InstructorID = ""
	cp.EnrolledStudents = nil
	r.courseIdx[cp.CourseID] = len(r.courses)
	r.courses = append(r.courses, cp)

	// Establish links through the relationship operations so both sides
	// stay consistent.
	if instructorID != "" {
		if _, err := r.AssignCourse(instructorID, cp.CourseID); err != nil {
			return err
		}
	}
	for _, studentID := range enrolled {
		if _, err := r.EnrollStudent(cp.CourseID, studentID); err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) checkEmailFree(email string) error {
	lower := strings.ToLower(email)
	for _, s := range r.students {
		if strings.ToLower(s.Email) == lower {
			return &models.DuplicateError{Kind: models.KindStudent, Field: "email", Value: email}
		}
	}
	for _, i := range r.instructors {
		if strings.ToLower(i.Email) == lower {
			return &models.DuplicateError{Kind: models.KindInstructor, Field: "email", Value: email}
		}
	}
	return nil
}

// FindStudent returns a copy of the student, or NotFoundError.
func (r *Registry) FindStudent(id string) (*models.Student, error) {
	idx, ok := r.studentIdx[id]
	if !ok {
		return nil, &models.NotFoundError{Kind: models.KindStudent, ID: id}
	}
	return r.students[idx].Clone(), nil
}

// FindInstructor returns a copy of the instructor, or NotFoundError.
func (r *Registry) FindInstructor(id string) (*models.Instructor, error) {
	idx, ok := r.instructorIdx[id]
	if !ok {
		return nil, &models.NotFoundError{Kind: models.KindInstructor, ID: id}
	}
	return r.instructors[idx].Clone(), nil
}

// FindCourse returns a copy of the course, or NotFoundError.
func (r *Registry) FindCourse(id string) (*models.Course, error) {
	idx, ok := r.courseIdx[id]
	if !ok {
		return nil, &models.NotFoundError{Kind: models.KindCourse, ID: id}
	}
	return r.courses[idx].Clone(), nil
}

// Students returns copies of all students in insertion order.
func (r *Registry) Students() []models.Student {
	out := make([]models.Student, 0, len(r.students))
	for _, s := range r.students {
		out = append(out, *s.Clone())
	}
	return out
}

// Instructors returns copies of all instructors in insertion order.
func (r *Registry) Instructors() []models.Instructor {
	out := make([]models.Instructor, 0, len(r.instructors))
	for _, i := range r.instructors {
		out = append(out, *i.Clone())
	}
	return out
}

// Courses returns copies of all courses in insertion order.
func (r *Registry) Courses() []models.Course {
	out := make([]models.Course, 0, len(r.courses))
	for _, c := range r.courses {
		out = append(out, *c.Clone())
	}
	return out
}

// CourseName resolves a course ID to its display name. Unknown IDs
// resolve to the ID itself so callers always have something to render.
func (r *Registry) CourseName(id string) string {
	if idx, ok := r.courseIdx[id]; ok {
		return r.courses[idx].CourseName
	}
	return id
}

// Snapshot exports the full registry state.
func (r *Registry) Snapshot() *models.Snapshot {
	return &models.Snapshot{
		Students:    r.Students(),
		Instructors: r.Instructors(),
		Courses:     r.Courses(),
	}
}
