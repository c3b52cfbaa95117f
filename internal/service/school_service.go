// Package service wires the registry, the persistence store and the
// metrics behind the plain operations a presentation layer calls.
package service

import (
	"context"
	"io"
	"log/slog"

	"github.com/nadimk/schoolhub/internal/export"
	"github.com/nadimk/schoolhub/internal/metrics"
	"github.com/nadimk/schoolhub/internal/models"
	"github.com/nadimk/schoolhub/internal/registry"
	"github.com/nadimk/schoolhub/internal/search"
	"github.com/nadimk/schoolhub/internal/storage"
)

// SchoolService exposes the domain operations. It owns the registry;
// callers never touch the collections directly.
type SchoolService struct {
	validator *models.Validator
	reg       *registry.Registry
	store     storage.Store
	metrics   *metrics.Metrics
}

// New creates a SchoolService over the given store. metrics may be nil.
func New(v *models.Validator, store storage.Store, m *metrics.Metrics) *SchoolService {
	return &SchoolService{
		validator: v,
		reg:       registry.New(v),
		store:     store,
		metrics:   m,
	}
}

// AddStudent validates and adds a student.
func (s *SchoolService) AddStudent(st *models.Student) error {
	if err := s.reg.AddStudent(st); err != nil {
		return err
	}
	s.metrics.IncRecordsCreated(models.KindStudent)
	slog.Info("student added", "student_id", st.StudentID)
	return nil
}

// AddInstructor validates and adds an instructor.
func (s *SchoolService) AddInstructor(in *models.Instructor) error {
	if err := s.reg.AddInstructor(in); err != nil {
		return err
	}
	s.metrics.IncRecordsCreated(models.KindInstructor)
	slog.Info("instructor added", "instructor_id", in.InstructorID)
	return nil
}

// AddCourse validates and adds a course.
func (s *SchoolService) AddCourse(c *models.Course) error {
	if err := s.reg.AddCourse(c); err != nil {
		return err
	}
	s.metrics.IncRecordsCreated(models.KindCourse)
	slog.Info("course added", "course_id", c.CourseID)
	return nil
}

// UpdateStudent patches a student's scalar fields.
func (s *SchoolService) UpdateStudent(id string, patch registry.PersonPatch) (*models.Student, error) {
	return s.reg.UpdateStudent(id, patch)
}

// UpdateInstructor patches an instructor's scalar fields.
func (s *SchoolService) UpdateInstructor(id string, patch registry.PersonPatch) (*models.Instructor, error) {
	return s.reg.UpdateInstructor(id, patch)
}

// UpdateCourse patches a course.
func (s *SchoolService) UpdateCourse(id string, patch registry.CoursePatch) (*models.Course, error) {
	return s.reg.UpdateCourse(id, patch)
}

// RemoveStudent deletes a student and detaches it from its courses.
func (s *SchoolService) RemoveStudent(id string) error {
	if err := s.reg.RemoveStudent(id); err != nil {
		return err
	}
	s.metrics.IncRecordsDeleted(models.KindStudent)
	slog.Info("student removed", "student_id", id)
	return nil
}

// RemoveInstructor deletes an instructor and unassigns its courses.
func (s *SchoolService) RemoveInstructor(id string) error {
	if err := s.reg.RemoveInstructor(id); err != nil {
		return err
	}
	s.metrics.IncRecordsDeleted(models.KindInstructor)
	slog.Info("instructor removed", "instructor_id", id)
	return nil
}

// RemoveCourse deletes a course and detaches it everywhere.
func (s *SchoolService) RemoveCourse(id string) error {
	if err := s.reg.RemoveCourse(id); err != nil {
		return err
	}
	s.metrics.IncRecordsDeleted(models.KindCourse)
	slog.Info("course removed", "course_id", id)
	return nil
}

// RegisterCourse registers a student into a course. changed is false
// when the pair was already registered.
func (s *SchoolService) RegisterCourse(studentID, courseID string) (bool, error) {
	changed, err := s.reg.RegisterCourse(studentID, courseID)
	if err != nil {
		return false, err
	}
	if changed {
		s.metrics.IncRegistrations()
		slog.Info("student registered", "student_id", studentID, "course_id", courseID)
	} else {
		slog.Info("student already registered", "student_id", studentID, "course_id", courseID)
	}
	return changed, nil
}

// AssignCourse assigns a course to an instructor.
func (s *SchoolService) AssignCourse(instructorID, courseID string) (bool, error) {
	changed, err := s.reg.AssignCourse(instructorID, courseID)
	if err != nil {
		return false, err
	}
	if changed {
		s.metrics.IncAssignments()
		slog.Info("course assigned", "instructor_id", instructorID, "course_id", courseID)
	}
	return changed, nil
}

// Student returns a student by ID.
func (s *SchoolService) Student(id string) (*models.Student, error) {
	return s.reg.FindStudent(id)
}

// Instructor returns an instructor by ID.
func (s *SchoolService) Instructor(id string) (*models.Instructor, error) {
	return s.reg.FindInstructor(id)
}

// Course returns a course by ID.
func (s *SchoolService) Course(id string) (*models.Course, error) {
	return s.reg.FindCourse(id)
}

// Students lists all students in insertion order.
func (s *SchoolService) Students() []models.Student { return s.reg.Students() }

// Instructors lists all instructors in insertion order.
func (s *SchoolService) Instructors() []models.Instructor { return s.reg.Instructors() }

// Courses lists all courses in insertion order.
func (s *SchoolService) Courses() []models.Course { return s.reg.Courses() }

// Search runs a substring search across all records.
func (s *SchoolService) Search(query string) *search.Results {
	s.metrics.IncSearches()
	return search.Search(s.reg, query)
}

// ExportCSV writes the three-section CSV export.
func (s *SchoolService) ExportCSV(w io.Writer) error {
	return export.WriteCSV(w, s.reg)
}

// SaveAll persists the full registry state through the store.
func (s *SchoolService) SaveAll(ctx context.Context) error {
	if err := s.store.Save(ctx, s.reg.Snapshot()); err != nil {
		slog.Error("snapshot save failed", "error", err)
		return err
	}
	s.metrics.IncSnapshotSaves()
	slog.Info("snapshot saved")
	return nil
}
