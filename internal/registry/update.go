package registry

import (
	"strings"

	"github.com/nadimk/schoolhub/internal/models"
)

// PersonPatch carries optional replacement values for a person's scalar
// fields. Nil fields are left unchanged. Relationship lists are managed
// only through the register/assign operations.
type PersonPatch struct {
	Name  *string
	Age   *int
	Email *string
}

// CoursePatch carries an optional replacement course name.
type CoursePatch struct {
	CourseName *string
}

// UpdateStudent applies the patch and re-validates. The patched entity is
// only committed when every check passes.
func (r *Registry) UpdateStudent(id string, patch PersonPatch) (*models.Student, error) {
	idx, ok := r.studentIdx[id]
	if !ok {
		return nil, &models.NotFoundError{Kind: models.KindStudent, ID: id}
	}
	cp := r.students[idx].Clone()
	applyPersonPatch(&cp.PersonInfo, patch)
	if err := r.validator.ValidateStudent(cp); err != nil {
		return nil, err
	}
	if err := r.checkEmailFreeExcept(cp.Email, r.students[idx].Email); err != nil {
		return nil, err
	}
	r.students[idx] = cp
	return cp.Clone(), nil
}

// UpdateInstructor applies the patch and re-validates.
func (r *Registry) UpdateInstructor(id string, patch PersonPatch) (*models.Instructor, error) {
	idx, ok := r.instructorIdx[id]
	if !ok {
		return nil, &models.NotFoundError{Kind: models.KindInstructor, ID: id}
	}
	cp := r.instructors[idx].Clone()
	applyPersonPatch(&cp.PersonInfo, patch)
	if err := r.validator.ValidateInstructor(cp); err != nil {
		return nil, err
	}
	if err := r.checkEmailFreeExcept(cp.Email, r.instructors[idx].Email); err != nil {
		return nil, err
	}
	r.instructors[idx] = cp
	return cp.Clone(), nil
}

// UpdateCourse applies the patch and re-validates.
func (r *Registry) UpdateCourse(id string, patch CoursePatch) (*models.Course, error) {
	idx, ok := r.courseIdx[id]
	if !ok {
		return nil, &models.NotFoundError{Kind: models.KindCourse, ID: id}
	}
	cp := r.courses[idx].Clone()
	if patch.CourseName != nil {
		cp.CourseName = *patch.CourseName
	}
	if err := r.validator.ValidateCourse(cp); err != nil {
		return nil, err
	}
	r.courses[idx] = cp
	return cp.Clone(), nil
}

func applyPersonPatch(p *models.PersonInfo, patch PersonPatch) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Age != nil {
		p.Age = *patch.Age
	}
	if patch.Email != nil {
		p.Email = *patch.Email
	}
}

// checkEmailFreeExcept is checkEmailFree that tolerates the entity's own
// current email, so a patch that leaves the email alone still validates.
func (r *Registry) checkEmailFreeExcept(email, current string) error {
	if strings.EqualFold(email, current) {
		return nil
	}
	return r.checkEmailFree(email)
}

// RemoveStudent deletes the student and detaches it from every course it
// was enrolled in. The courses themselves are untouched.
func (r *Registry) RemoveStudent(id string) error {
	idx, ok := r.studentIdx[id]
	if !ok {
		return &models.NotFoundError{Kind: models.KindStudent, ID: id}
	}
	for _, c := range r.courses {
		removeID(&c.EnrolledStudents, id)
	}
	r.students = append(r.students[:idx], r.students[idx+1:]...)
	delete(r.studentIdx, id)
	r.reindexStudents(idx)
	return nil
}

// RemoveInstructor deletes the instructor and clears the instructor
// reference on every course it taught.
func (r *Registry) RemoveInstructor(id string) error {
	idx, ok := r.instructorIdx[id]
	if !ok {
		return &models.NotFoundError{Kind: models.KindInstructor, ID: id}
	}
	for _, c := range r.courses {
		if c.InstructorID == id {
			c.InstructorID = ""
		}
	}
	r.instructors = append(r.instructors[:idx], r.instructors[idx+1:]...)
	delete(r.instructorIdx, id)
	r.reindexInstructors(idx)
	return nil
}

// RemoveCourse deletes the course and detaches it from every enrolled
// student's and the assigned instructor's course lists. Enrolled students
// are never cascade-deleted.
func (r *Registry) RemoveCourse(id string) error {
	idx, ok := r.courseIdx[id]
	if !ok {
		return &models.NotFoundError{Kind: models.KindCourse, ID: id}
	}
	for _, s := range r.students {
		removeID(&s.RegisteredCourses, id)
	}
	for _, i := range r.instructors {
		removeID(&i.AssignedCourses, id)
	}
	r.courses = append(r.courses[:idx], r.courses[idx+1:]...)
	delete(r.courseIdx, id)
	r.reindexCourses(idx)
	return nil
}

func (r *Registry) reindexStudents(from int) {
	for i := from; i < len(r.students); i++ {
		r.studentIdx[r.students[i].StudentID] = i
	}
}

func (r *Registry) reindexInstructors(from int) {
	for i := from; i < len(r.instructors); i++ {
		r.instructorIdx[r.instructors[i].InstructorID] = i
	}
}

func (r *Registry) reindexCourses(from int) {
	for i := from; i < len(r.courses); i++ {
		r.courseIdx[r.courses[i].CourseID] = i
	}
}
