// Package models defines the core domain models for schoolhub.
//
// # Models
//
//   - PersonInfo: validated identity fields shared by people
//   - Student: a person with a student ID and registered courses
//   - Instructor: a person with an instructor ID and assigned courses
//   - Course: a course with an optional instructor and enrolled students
//   - Snapshot: the full-state interchange document (JSON/CSV export,
//     persistence backends)
//
// # Design Principles
//
// 1. **Composition over inheritance**: PersonInfo is embedded in Student
// and Instructor rather than forming a class hierarchy.
//
// 2. **Avoid circular references**: relationships are carried as business
// ID strings (course IDs on a student, student IDs on a course), never as
// pointers. The registry keeps both sides consistent.
//
// 3. **Validate at the edge**: entities are checked by a Validator before
// they enter the registry; invalid input fails with a ValidationError.
package models
