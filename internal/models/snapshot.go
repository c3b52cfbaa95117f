package models

// Snapshot is the full-state export of all entities. It is the canonical
// interchange document: both persistence backends save and load it, and
// the CSV exporter renders it.
//
// All relationships are carried as business IDs, never names, so renaming
// an entity cannot orphan a reference.
type Snapshot struct {
	Students    []Student    `json:"students"`
	Instructors []Instructor `json:"instructors"`
	Courses     []Course     `json:"courses"`
}

// Empty reports whether the snapshot holds no entities at all.
func (s *Snapshot) Empty() bool {
	return len(s.Students) == 0 && len(s.Instructors) == 0 && len(s.Courses) == 0
}
