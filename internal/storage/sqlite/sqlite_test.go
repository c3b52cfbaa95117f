package sqlite

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/nadimk/schoolhub/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "school.db"))
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testSnapshot() *models.Snapshot {
	return &models.Snapshot{
		Students: []models.Student{
			{
				PersonInfo:        models.PersonInfo{Name: "Ann Lee", Age: 20, Email: "ann@example.com"},
				StudentID:         "S1",
				RegisteredCourses: []string{"C1", "C2"},
			},
			{
				PersonInfo:        models.PersonInfo{Name: "Bob Ray", Age: 22, Email: "bob@example.com"},
				StudentID:         "S2",
				RegisteredCourses: []string{"C1"},
			},
		},
		Instructors: []models.Instructor{
			{
				PersonInfo:      models.PersonInfo{Name: "Carol Diaz", Age: 45, Email: "carol@example.com"},
				InstructorID:    "I1",
				AssignedCourses: []string{"C1"},
			},
		},
		Courses: []models.Course{
			{
				CourseID:         "C1",
				CourseName:       "Math 101",
				InstructorID:     "I1",
				EnrolledStudents: []string{"S1", "S2"},
			},
			{
				CourseID:         "C2",
				CourseName:       "Physics 201",
				EnrolledStudents: []string{"S1"},
			},
		},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	want := testSnapshot()
	if err := store.Save(ctx, want); err != nil {
		t.Fatalf("Save() = %v", err)
	}
	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch\ngot:  %+v\nwant: %+v", got, want)
	}
}

func TestLoadEmptyDatabase(t *testing.T) {
	store := newTestStore(t)
	snap, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if len(snap.Students) != 0 || len(snap.Instructors) != 0 || len(snap.Courses) != 0 {
		t.Errorf("fresh database yielded a non-empty snapshot: %+v", snap)
	}
}

func TestSaveReplacesState(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, testSnapshot()); err != nil {
		t.Fatalf("first Save() = %v", err)
	}
	second := &models.Snapshot{
		Students: []models.Student{
			{
				PersonInfo:        models.PersonInfo{Name: "Eve Kim", Age: 19, Email: "eve@example.com"},
				StudentID:         "S3",
				RegisteredCourses: []string{},
			},
		},
		Instructors: []models.Instructor{},
		Courses:     []models.Course{},
	}
	if err := store.Save(ctx, second); err != nil {
		t.Fatalf("second Save() = %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if len(got.Students) != 1 || got.Students[0].StudentID != "S3" {
		t.Errorf("second save did not replace the first: %+v", got.Students)
	}
	if len(got.Courses) != 0 {
		t.Errorf("courses survived the replace: %+v", got.Courses)
	}
}

func TestSaveDuplicateEmail(t *testing.T) {
	store := newTestStore(t)

	snap := &models.Snapshot{
		Students: []models.Student{
			{
				PersonInfo: models.PersonInfo{Name: "Ann Lee", Age: 20, Email: "ann@example.com"},
				StudentID:  "S1",
			},
			{
				PersonInfo: models.PersonInfo{Name: "Bob Ray", Age: 22, Email: "ann@example.com"},
				StudentID:  "S2",
			},
		},
	}
	err := store.Save(context.Background(), snap)
	if !models.IsDuplicate(err) {
		t.Fatalf("Save() = %v, want DuplicateError", err)
	}

	// The failed transaction must leave nothing behind.
	got, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if len(got.Students) != 0 {
		t.Errorf("failed save left %d students behind", len(got.Students))
	}
}

func TestSaveDanglingInstructor(t *testing.T) {
	store := newTestStore(t)

	snap := &models.Snapshot{
		Courses: []models.Course{
			{CourseID: "C1", CourseName: "Math 101", InstructorID: "I9"},
		},
	}
	err := store.Save(context.Background(), snap)
	if !models.IsNotFound(err) {
		t.Fatalf("Save() = %v, want NotFoundError", err)
	}
}
