package sqlite

import "database/sql"

// schema sets up the four tables. Business IDs (student_id,
// instructor_id, course_id) are the UNIQUE external keys; rows carry TEXT
// UUID surrogate primary keys, and registrations are join rows so the
// student/course relation is many-to-many without duplicate pairs.
// Ages are constrained at the schema level regardless of the validation
// mode in use. The position columns preserve insertion order across a
// save/load round trip.
const schema = `
CREATE TABLE IF NOT EXISTS students (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    age INTEGER NOT NULL CHECK(age >= 5 AND age <= 120),
    email TEXT NOT NULL UNIQUE,
    student_id TEXT NOT NULL UNIQUE,
    position INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS instructors (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    age INTEGER NOT NULL CHECK(age >= 5 AND age <= 120),
    email TEXT NOT NULL UNIQUE,
    instructor_id TEXT NOT NULL UNIQUE,
    position INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS courses (
    id TEXT PRIMARY KEY,
    course_id TEXT NOT NULL UNIQUE,
    course_name TEXT NOT NULL,
    instructor_id TEXT,
    position INTEGER NOT NULL,
    FOREIGN KEY (instructor_id) REFERENCES instructors(id) ON DELETE SET NULL
);

CREATE TABLE IF NOT EXISTS registrations (
    id TEXT PRIMARY KEY,
    student_id TEXT NOT NULL,
    course_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    FOREIGN KEY (student_id) REFERENCES students(id) ON DELETE CASCADE,
    FOREIGN KEY (course_id) REFERENCES courses(id) ON DELETE CASCADE,
    UNIQUE (student_id, course_id)
);

CREATE INDEX IF NOT EXISTS idx_registrations_student_id ON registrations(student_id);
CREATE INDEX IF NOT EXISTS idx_registrations_course_id ON registrations(course_id);
CREATE INDEX IF NOT EXISTS idx_courses_instructor_id ON courses(instructor_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
