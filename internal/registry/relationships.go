package registry

import "github.com/nadimk/schoolhub/internal/models"

// RegisterCourse registers the student in the course, appending to both
// sides of the relationship. Registering an already-registered pair is an
// idempotent no-op: changed is false and both sides are left with exactly
// one mutual reference.
func (r *Registry) RegisterCourse(studentID, courseID string) (changed bool, err error) {
	sIdx, ok := r.studentIdx[studentID]
	if !ok {
		return false, &models.NotFoundError{Kind: models.KindStudent, ID: studentID}
	}
	cIdx, ok := r.courseIdx[courseID]
	if !ok {
		return false, &models.NotFoundError{Kind: models.KindCourse, ID: courseID}
	}
	student, course := r.students[sIdx], r.courses[cIdx]
	if student.Registered(courseID) && course.Enrolled(studentID) {
		return false, nil
	}
	if !student.Registered(courseID) {
		student.RegisteredCourses = append(student.RegisteredCourses, courseID)
	}
	if !course.Enrolled(studentID) {
		course.EnrolledStudents = append(course.EnrolledStudents, studentID)
	}
	return true, nil
}

// EnrollStudent is the course-side entry point for registration; it is
// equivalent to RegisterCourse with the arguments swapped.
func (r *Registry) EnrollStudent(courseID, studentID string) (bool, error) {
	return r.RegisterCourse(studentID, courseID)
}

// AssignCourse assigns the course to the instructor. A course has at most
// one instructor at a time: reassignment detaches the previous
// instructor's link first. Assigning an already-assigned pair is an
// idempotent no-op.
func (r *Registry) AssignCourse(instructorID, courseID string) (changed bool, err error) {
	iIdx, ok := r.instructorIdx[instructorID]
	if !ok {
		return false, &models.NotFoundError{Kind: models.KindInstructor, ID: instructorID}
	}
	cIdx, ok := r.courseIdx[courseID]
	if !ok {
		return false, &models.NotFoundError{Kind: models.KindCourse, ID: courseID}
	}
	instructor, course := r.instructors[iIdx], r.courses[cIdx]
	if course.InstructorID == instructorID && instructor.Assigned(courseID) {
		return false, nil
	}
	if course.InstructorID != "" && course.InstructorID != instructorID {
		if prevIdx, ok := r.instructorIdx[course.InstructorID]; ok {
			removeID(&r.instructors[prevIdx].AssignedCourses, courseID)
		}
	}
	course.InstructorID = instructorID
	if !instructor.Assigned(courseID) {
		instructor.AssignedCourses = append(instructor.AssignedCourses, courseID)
	}
	return true, nil
}

// removeID drops the first occurrence of id from the slice, preserving
// order.
func removeID(ids *[]string, id string) {
	for i, v := range *ids {
		if v == id {
			*ids = append((*ids)[:i], (*ids)[i+1:]...)
			return
		}
	}
}
