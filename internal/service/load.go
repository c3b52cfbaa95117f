package service

import (
	"context"
	"log/slog"

	"github.com/nadimk/schoolhub/internal/models"
	"github.com/nadimk/schoolhub/internal/registry"
)

// SkippedRecord describes one record dropped while applying a loaded
// snapshot, with enough context to correct the source data.
type SkippedRecord struct {
	Kind   string `json:"kind"`
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// LoadReport summarizes a LoadAll: how many records were applied and
// which were skipped, with the error for each.
type LoadReport struct {
	Applied int             `json:"applied"`
	Skipped []SkippedRecord `json:"skipped"`
}

// LoadAll reads the persisted snapshot and replaces the registry with
// its contents. Load itself fails only on malformed documents or read
// failure; individually bad records (invalid fields, duplicates,
// dangling references) are skipped and reported rather than aborting
// the whole load.
func (s *SchoolService) LoadAll(ctx context.Context) (*LoadReport, error) {
	snap, err := s.store.Load(ctx)
	if err != nil {
		slog.Error("snapshot load failed", "error", err)
		return nil, err
	}
	if snap.Empty() {
		slog.Debug("persisted snapshot is empty")
	}

	reg := registry.New(s.validator)
	report := &LoadReport{Skipped: make([]SkippedRecord, 0)}

	for i := range snap.Students {
		st := snap.Students[i]
		// Registrations are re-established below, once the courses
		// exist.
		courses := st.RegisteredCourses
		st.RegisteredCourses = nil
		if err := reg.AddStudent(&st); err != nil {
			report.skip(models.KindStudent, st.StudentID, err)
			continue
		}
		snap.Students[i].RegisteredCourses = courses
		report.Applied++
	}
	for i := range snap.Instructors {
		in := snap.Instructors[i]
		in.AssignedCourses = nil
		if err := reg.AddInstructor(&in); err != nil {
			report.skip(models.KindInstructor, in.InstructorID, err)
			continue
		}
		report.Applied++
	}
	for i := range snap.Courses {
		c := snap.Courses[i]
		if err := reg.AddCourse(&c); err != nil {
			report.skip(models.KindCourse, c.CourseID, err)
			continue
		}
		report.Applied++
	}

	// Catch pairs recorded only on the student side. RegisterCourse is
	// idempotent, so pairs already linked through a course's enrolled
	// list are no-ops.
	for _, st := range snap.Students {
		for _, courseID := range st.RegisteredCourses {
			if _, err := reg.RegisterCourse(st.StudentID, courseID); err != nil {
				report.skip(models.KindStudent, st.StudentID, err)
			}
		}
	}
	// Same for assignments recorded only on the instructor side; a
	// course already assigned elsewhere keeps its instructor.
	for _, in := range snap.Instructors {
		for _, courseID := range in.AssignedCourses {
			c, err := reg.FindCourse(courseID)
			if err != nil {
				report.skip(models.KindInstructor, in.InstructorID, err)
				continue
			}
			if c.InstructorID == "" {
				if _, err := reg.AssignCourse(in.InstructorID, courseID); err != nil {
					report.skip(models.KindInstructor, in.InstructorID, err)
				}
			}
		}
	}

	s.reg = reg
	s.metrics.IncSnapshotLoads()
	s.metrics.AddLoadSkipped(len(report.Skipped))
	slog.Info("snapshot loaded", "applied", report.Applied, "skipped", len(report.Skipped))
	return report, nil
}

func (r *LoadReport) skip(kind, id string, err error) {
	r.Skipped = append(r.Skipped, SkippedRecord{Kind: kind, ID: id, Reason: err.Error()})
}
