package service

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nadimk/schoolhub/internal/models"
	"github.com/nadimk/schoolhub/internal/storage/jsonfile"
)

// memStore keeps the snapshot in memory; Load on a fresh store yields an
// empty snapshot like the file-backed stores do.
type memStore struct {
	snap *models.Snapshot
}

func (m *memStore) Save(ctx context.Context, snap *models.Snapshot) error {
	m.snap = snap
	return nil
}

func (m *memStore) Load(ctx context.Context) (*models.Snapshot, error) {
	if m.snap == nil {
		return &models.Snapshot{}, nil
	}
	return m.snap, nil
}

func (m *memStore) Close() error { return nil }

func newTestService(t *testing.T) *SchoolService {
	t.Helper()
	return New(models.NewValidator(models.ModeStrict), &memStore{}, nil)
}

func seed(t *testing.T, svc *SchoolService) {
	t.Helper()
	add := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	add(svc.AddStudent(&models.Student{
		PersonInfo: models.PersonInfo{Name: "Ann Lee", Age: 20, Email: "ann@example.com"},
		StudentID:  "S1",
	}))
	add(svc.AddInstructor(&models.Instructor{
		PersonInfo:   models.PersonInfo{Name: "Carol Diaz", Age: 45, Email: "carol@example.com"},
		InstructorID: "I1",
	}))
	add(svc.AddCourse(&models.Course{CourseID: "C1", CourseName: "Math 101"}))
}

func TestLifecycle(t *testing.T) {
	svc := newTestService(t)
	seed(t, svc)

	if _, err := svc.RegisterCourse("S1", "C1"); err != nil {
		t.Fatalf("RegisterCourse() = %v", err)
	}
	if _, err := svc.AssignCourse("I1", "C1"); err != nil {
		t.Fatalf("AssignCourse() = %v", err)
	}

	t.Run("search finds linked people through the course", func(t *testing.T) {
		res := svc.Search("math")
		if len(res.Students) != 1 || len(res.Instructors) != 1 || len(res.Courses) != 1 {
			t.Errorf("Search(math) = %d/%d/%d, want 1/1/1",
				len(res.Students), len(res.Instructors), len(res.Courses))
		}
	})

	t.Run("removing the course detaches everyone", func(t *testing.T) {
		if err := svc.RemoveCourse("C1"); err != nil {
			t.Fatalf("RemoveCourse() = %v", err)
		}
		s, err := svc.Student("S1")
		if err != nil {
			t.Fatalf("Student() = %v", err)
		}
		if len(s.RegisteredCourses) != 0 {
			t.Errorf("RegisteredCourses = %v, want empty", s.RegisteredCourses)
		}
		in, err := svc.Instructor("I1")
		if err != nil {
			t.Fatalf("Instructor() = %v", err)
		}
		if len(in.AssignedCourses) != 0 {
			t.Errorf("AssignedCourses = %v, want empty", in.AssignedCourses)
		}
	})
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store, err := jsonfile.New(filepath.Join(t.TempDir(), "school.json"))
	if err != nil {
		t.Fatalf("jsonfile.New() = %v", err)
	}
	v := models.NewValidator(models.ModeStrict)

	svc := New(v, store, nil)
	seed(t, svc)
	if _, err := svc.RegisterCourse("S1", "C1"); err != nil {
		t.Fatalf("RegisterCourse() = %v", err)
	}
	if _, err := svc.AssignCourse("I1", "C1"); err != nil {
		t.Fatalf("AssignCourse() = %v", err)
	}
	if err := svc.SaveAll(context.Background()); err != nil {
		t.Fatalf("SaveAll() = %v", err)
	}

	// A second service over the same file sees the full state.
	restored := New(v, store, nil)
	report, err := restored.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("LoadAll() = %v", err)
	}
	if len(report.Skipped) != 0 {
		t.Fatalf("LoadAll skipped %v", report.Skipped)
	}
	if report.Applied != 3 {
		t.Errorf("Applied = %d, want 3", report.Applied)
	}

	s, err := restored.Student("S1")
	if err != nil {
		t.Fatalf("Student() = %v", err)
	}
	if !s.Registered("C1") {
		t.Errorf("registration lost across the round trip: %v", s.RegisteredCourses)
	}
	c, err := restored.Course("C1")
	if err != nil {
		t.Fatalf("Course() = %v", err)
	}
	if c.InstructorID != "I1" || !c.Enrolled("S1") {
		t.Errorf("course links lost across the round trip: %+v", c)
	}
}

func TestLoadAllSkipsBadRecords(t *testing.T) {
	store := &memStore{snap: &models.Snapshot{
		Students: []models.Student{
			{
				PersonInfo: models.PersonInfo{Name: "Ann Lee", Age: 20, Email: "ann@example.com"},
				StudentID:  "S1",
			},
			{
				// Invalid age; must be skipped, not abort the load.
				PersonInfo: models.PersonInfo{Name: "Bob Ray", Age: 2, Email: "bob@example.com"},
				StudentID:  "S2",
			},
			{
				// Dangling registration; the student is applied but the
				// pair is reported.
				PersonInfo:        models.PersonInfo{Name: "Eve Kim", Age: 19, Email: "eve@example.com"},
				StudentID:         "S3",
				RegisteredCourses: []string{"C9"},
			},
		},
		Courses: []models.Course{
			{CourseID: "C1", CourseName: "Math 101"},
		},
	}}
	svc := New(models.NewValidator(models.ModeStrict), store, nil)

	report, err := svc.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("LoadAll() = %v", err)
	}
	if report.Applied != 3 {
		t.Errorf("Applied = %d, want 3 (two students and one course)", report.Applied)
	}
	if len(report.Skipped) != 2 {
		t.Fatalf("Skipped = %+v, want 2 entries", report.Skipped)
	}
	if report.Skipped[0].ID != "S2" || !strings.Contains(report.Skipped[0].Reason, "age") {
		t.Errorf("first skip = %+v, want S2 with an age reason", report.Skipped[0])
	}
	if report.Skipped[1].ID != "S3" {
		t.Errorf("second skip = %+v, want the dangling registration on S3", report.Skipped[1])
	}

	// The good records are live.
	if _, err := svc.Student("S1"); err != nil {
		t.Errorf("Student(S1) = %v", err)
	}
	if _, err := svc.Student("S2"); !models.IsNotFound(err) {
		t.Errorf("Student(S2) = %v, want NotFoundError", err)
	}
}

func TestLoadAllReplacesState(t *testing.T) {
	svc := newTestService(t)
	seed(t, svc)

	// The store is empty, so the load swaps in an empty registry.
	report, err := svc.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("LoadAll() = %v", err)
	}
	if report.Applied != 0 {
		t.Errorf("Applied = %d, want 0", report.Applied)
	}
	if got := len(svc.Students()); got != 0 {
		t.Errorf("Students() = %d records after empty load, want 0", got)
	}
}

func TestExportCSV(t *testing.T) {
	svc := newTestService(t)
	seed(t, svc)

	var buf strings.Builder
	if err := svc.ExportCSV(&buf); err != nil {
		t.Fatalf("ExportCSV() = %v", err)
	}
	if !strings.Contains(buf.String(), "Ann Lee,20,ann@example.com,S1,") {
		t.Errorf("export missing student row:\n%s", buf.String())
	}
}
