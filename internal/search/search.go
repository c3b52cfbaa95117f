// Package search implements case-insensitive substring search across the
// registry's records.
package search

import (
	"strings"

	"github.com/nadimk/schoolhub/internal/models"
	"github.com/nadimk/schoolhub/internal/registry"
)

// Results groups matches by entity kind. Students come first, then
// instructors, then courses, each group in the registry's insertion
// order.
type Results struct {
	Students    []models.Student    `json:"students"`
	Instructors []models.Instructor `json:"instructors"`
	Courses     []models.Course     `json:"courses"`
}

// Total returns the number of matched records across all groups.
func (r *Results) Total() int {
	return len(r.Students) + len(r.Instructors) + len(r.Courses)
}

// Search matches the query as a case-insensitive substring against each
// record's name, business ID, email, and any associated course name. An
// empty query matches everything.
func Search(reg *registry.Registry, query string) *Results {
	q := strings.ToLower(strings.TrimSpace(query))
	res := &Results{
		Students:    make([]models.Student, 0),
		Instructors: make([]models.Instructor, 0),
		Courses:     make([]models.Course, 0),
	}

	for _, s := range reg.Students() {
		if q == "" || matchPerson(q, s.Name, s.StudentID, s.Email) ||
			matchCourseNames(q, reg, s.RegisteredCourses) {
			res.Students = append(res.Students, s)
		}
	}
	for _, i := range reg.Instructors() {
		if q == "" || matchPerson(q, i.Name, i.InstructorID, i.Email) ||
			matchCourseNames(q, reg, i.AssignedCourses) {
			res.Instructors = append(res.Instructors, i)
		}
	}
	for _, c := range reg.Courses() {
		if q == "" ||
			strings.Contains(strings.ToLower(c.CourseName), q) ||
			strings.Contains(strings.ToLower(c.CourseID), q) {
			res.Courses = append(res.Courses, c)
		}
	}
	return res
}

func matchPerson(q, name, id, email string) bool {
	return strings.Contains(strings.ToLower(name), q) ||
		strings.Contains(strings.ToLower(id), q) ||
		strings.Contains(strings.ToLower(email), q)
}

func matchCourseNames(q string, reg *registry.Registry, courseIDs []string) bool {
	for _, id := range courseIDs {
		if strings.Contains(strings.ToLower(reg.CourseName(id)), q) {
			return true
		}
	}
	return false
}
