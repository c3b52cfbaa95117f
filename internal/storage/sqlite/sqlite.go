// Package sqlite provides a SQLite-backed implementation of the
// storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/nadimk/schoolhub/internal/models"
	"github.com/nadimk/schoolhub/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite. Uniqueness of
// business IDs and emails is enforced by the schema's UNIQUE constraints,
// not by application-level locking.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, &models.IOError{Op: "open", Path: dbPath, Err: err}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, &models.IOError{Op: "open", Path: dbPath, Err: err}
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db, path: dbPath}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Save replaces the persisted state with the snapshot in one
// transaction, so a failure on any row leaves the previous state intact
// and the deferred rollback releases the transaction on every exit path.
func (s *SQLiteStore) Save(ctx context.Context, snap *models.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"registrations", "courses", "students", "instructors"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	// Business ID -> surrogate row ID, for the foreign keys below.
	studentRow := make(map[string]string, len(snap.Students))
	instructorRow := make(map[string]string, len(snap.Instructors))
	courseRow := make(map[string]string, len(snap.Courses))

	for pos, st := range snap.Students {
		rowID := uuid.New().String()
		_, err := tx.ExecContext(ctx,
			"INSERT INTO students (id, name, age, email, student_id, position) VALUES (?, ?, ?, ?, ?, ?)",
			rowID, st.Name, st.Age, st.Email, st.StudentID, pos,
		)
		if err != nil {
			return wrapConstraint(err, models.KindStudent, st.StudentID)
		}
		studentRow[st.StudentID] = rowID
	}

	for pos, in := range snap.Instructors {
		rowID := uuid.New().String()
		_, err := tx.ExecContext(ctx,
			"INSERT INTO instructors (id, name, age, email, instructor_id, position) VALUES (?, ?, ?, ?, ?, ?)",
			rowID, in.Name, in.Age, in.Email, in.InstructorID, pos,
		)
		if err != nil {
			return wrapConstraint(err, models.KindInstructor, in.InstructorID)
		}
		instructorRow[in.InstructorID] = rowID
	}

	for pos, c := range snap.Courses {
		rowID := uuid.New().String()
		var instructorID any
		if c.InstructorID != "" {
			row, ok := instructorRow[c.InstructorID]
			if !ok {
				return &models.NotFoundError{Kind: models.KindInstructor, ID: c.InstructorID}
			}
			instructorID = row
		}
		_, err := tx.ExecContext(ctx,
			"INSERT INTO courses (id, course_id, course_name, instructor_id, position) VALUES (?, ?, ?, ?, ?)",
			rowID, c.CourseID, c.CourseName, instructorID, pos,
		)
		if err != nil {
			return wrapConstraint(err, models.KindCourse, c.CourseID)
		}
		courseRow[c.CourseID] = rowID
	}

	pos := 0
	for _, st := range snap.Students {
		for _, courseID := range st.RegisteredCourses {
			row, ok := courseRow[courseID]
			if !ok {
				return &models.NotFoundError{Kind: models.KindCourse, ID: courseID}
			}
			_, err := tx.ExecContext(ctx,
				"INSERT INTO registrations (id, student_id, course_id, position) VALUES (?, ?, ?, ?)",
				uuid.New().String(), studentRow[st.StudentID], row, pos,
			)
			if err != nil {
				return fmt.Errorf("failed to insert registration: %w", err)
			}
			pos++
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Load reconstructs the snapshot from the four tables. Relationship
// lists are rebuilt through the registrations join and the courses'
// instructor foreign key, ordered by their saved positions.
func (s *SQLiteStore) Load(ctx context.Context) (*models.Snapshot, error) {
	snap := &models.Snapshot{
		Students:    make([]models.Student, 0),
		Instructors: make([]models.Instructor, 0),
		Courses:     make([]models.Course, 0),
	}

	// Surrogate row ID -> business ID, resolved as each table is read.
	studentID := make(map[string]string)
	instructorID := make(map[string]string)
	courseID := make(map[string]string)
	studentIdx := make(map[string]int)
	courseIdx := make(map[string]int)

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, age, email, student_id FROM students ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("failed to query students: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var rowID string
		var st models.Student
		if err := rows.Scan(&rowID, &st.Name, &st.Age, &st.Email, &st.StudentID); err != nil {
			return nil, fmt.Errorf("failed to scan student: %w", err)
		}
		st.RegisteredCourses = make([]string, 0)
		studentID[rowID] = st.StudentID
		studentIdx[st.StudentID] = len(snap.Students)
		snap.Students = append(snap.Students, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate students: %w", err)
	}

	irows, err := s.db.QueryContext(ctx,
		"SELECT id, name, age, email, instructor_id FROM instructors ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("failed to query instructors: %w", err)
	}
	defer irows.Close()
	for irows.Next() {
		var rowID string
		var in models.Instructor
		if err := irows.Scan(&rowID, &in.Name, &in.Age, &in.Email, &in.InstructorID); err != nil {
			return nil, fmt.Errorf("failed to scan instructor: %w", err)
		}
		in.AssignedCourses = make([]string, 0)
		instructorID[rowID] = in.InstructorID
		snap.Instructors = append(snap.Instructors, in)
	}
	if err := irows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate instructors: %w", err)
	}

	crows, err := s.db.QueryContext(ctx,
		"SELECT id, course_id, course_name, instructor_id FROM courses ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	defer crows.Close()
	for crows.Next() {
		var rowID string
		var instructorRow sql.NullString
		var c models.Course
		if err := crows.Scan(&rowID, &c.CourseID, &c.CourseName, &instructorRow); err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		c.EnrolledStudents = make([]string, 0)
		if instructorRow.Valid {
			c.InstructorID = instructorID[instructorRow.String]
		}
		courseID[rowID] = c.CourseID
		courseIdx[c.CourseID] = len(snap.Courses)
		snap.Courses = append(snap.Courses, c)
	}
	if err := crows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate courses: %w", err)
	}

	// Rebuild the instructors' assigned course lists from the courses'
	// instructor references.
	assigned := make(map[string][]string)
	for _, c := range snap.Courses {
		if c.InstructorID != "" {
			assigned[c.InstructorID] = append(assigned[c.InstructorID], c.CourseID)
		}
	}
	for i := range snap.Instructors {
		if ids, ok := assigned[snap.Instructors[i].InstructorID]; ok {
			snap.Instructors[i].AssignedCourses = ids
		}
	}

	rrows, err := s.db.QueryContext(ctx,
		"SELECT student_id, course_id FROM registrations ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("failed to query registrations: %w", err)
	}
	defer rrows.Close()
	for rrows.Next() {
		var studentRow, courseRow string
		if err := rrows.Scan(&studentRow, &courseRow); err != nil {
			return nil, fmt.Errorf("failed to scan registration: %w", err)
		}
		sid, cid := studentID[studentRow], courseID[courseRow]
		if si, ok := studentIdx[sid]; ok {
			snap.Students[si].RegisteredCourses = append(snap.Students[si].RegisteredCourses, cid)
		}
		if ci, ok := courseIdx[cid]; ok {
			snap.Courses[ci].EnrolledStudents = append(snap.Courses[ci].EnrolledStudents, sid)
		}
	}
	if err := rrows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate registrations: %w", err)
	}

	return snap, nil
}

// wrapConstraint maps SQLite unique-constraint violations to the domain
// DuplicateError; everything else is wrapped as-is.
func wrapConstraint(err error, kind, id string) error {
	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint failed") {
		field := "id"
		if strings.Contains(msg, ".email") {
			field = "email"
		}
		return &models.DuplicateError{Kind: kind, Field: field, Value: id}
	}
	return fmt.Errorf("failed to insert %s %s: %w", kind, id, err)
}
