// Package export renders the registry state to interchange formats.
package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/nadimk/schoolhub/internal/models"
	"github.com/nadimk/schoolhub/internal/registry"
)

// WriteCSV writes the full state as three sections — Students,
// Instructors, Courses — separated by a blank line, each with its own
// header row. Multi-valued fields (course lists, enrolled students) are
// joined with ", "; relationship IDs are resolved to display names.
func WriteCSV(w io.Writer, reg *registry.Registry) error {
	cw := csv.NewWriter(w)

	studentName := make(map[string]string)
	for _, s := range reg.Students() {
		studentName[s.StudentID] = s.Name
	}
	instructorName := make(map[string]string)
	for _, i := range reg.Instructors() {
		instructorName[i.InstructorID] = i.Name
	}

	writeRow := func(fields ...string) {
		// Writer errors surface from Flush below.
		_ = cw.Write(fields)
	}
	blank := func() { _ = cw.Write(nil) }

	writeRow("Students")
	writeRow("Name", "Age", "Email", "Student ID", "Registered Courses")
	for _, s := range reg.Students() {
		writeRow(s.Name, strconv.Itoa(s.Age), s.Email, s.StudentID,
			joinCourseNames(reg, s.RegisteredCourses))
	}
	blank()

	writeRow("Instructors")
	writeRow("Name", "Age", "Email", "Instructor ID", "Assigned Courses")
	for _, i := range reg.Instructors() {
		writeRow(i.Name, strconv.Itoa(i.Age), i.Email, i.InstructorID,
			joinCourseNames(reg, i.AssignedCourses))
	}
	blank()

	writeRow("Courses")
	writeRow("Course ID", "Course Name", "Instructor", "Enrolled Students")
	for _, c := range reg.Courses() {
		names := make([]string, 0, len(c.EnrolledStudents))
		for _, id := range c.EnrolledStudents {
			if n, ok := studentName[id]; ok {
				names = append(names, n)
			} else {
				names = append(names, id)
			}
		}
		writeRow(c.CourseID, c.CourseName, instructorName[c.InstructorID],
			strings.Join(names, ", "))
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return &models.IOError{Op: "write", Path: "csv", Err: err}
	}
	return nil
}

func joinCourseNames(reg *registry.Registry, courseIDs []string) string {
	names := make([]string, 0, len(courseIDs))
	for _, id := range courseIDs {
		names = append(names, reg.CourseName(id))
	}
	return strings.Join(names, ", ")
}
