package server

import (
	"net/http"

	"github.com/nadimk/schoolhub/internal/models"
	"github.com/nadimk/schoolhub/internal/registry"
)

// personPatchRequest carries optional field replacements; absent fields
// stay unchanged.
type personPatchRequest struct {
	Name  *string `json:"name"`
	Age   *int    `json:"age"`
	Email *string `json:"email"`
}

func (p personPatchRequest) patch() registry.PersonPatch {
	return registry.PersonPatch{Name: p.Name, Age: p.Age, Email: p.Email}
}

type coursePatchRequest struct {
	CourseName *string `json:"course_name"`
}

func (s *Server) createStudent(w http.ResponseWriter, r *http.Request) {
	var st models.Student
	if err := decode(r, &st); err != nil {
		writeError(w, err)
		return
	}
	if err := s.svc.AddStudent(&st); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, st)
}

func (s *Server) listStudents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Students())
}

func (s *Server) getStudent(w http.ResponseWriter, r *http.Request) {
	st, err := s.svc.Student(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) updateStudent(w http.ResponseWriter, r *http.Request) {
	var req personPatchRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	st, err := s.svc.UpdateStudent(r.PathValue("id"), req.patch())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) deleteStudent(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.RemoveStudent(r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) createInstructor(w http.ResponseWriter, r *http.Request) {
	var in models.Instructor
	if err := decode(r, &in); err != nil {
		writeError(w, err)
		return
	}
	if err := s.svc.AddInstructor(&in); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, in)
}

func (s *Server) listInstructors(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Instructors())
}

func (s *Server) getInstructor(w http.ResponseWriter, r *http.Request) {
	in, err := s.svc.Instructor(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, in)
}

func (s *Server) updateInstructor(w http.ResponseWriter, r *http.Request) {
	var req personPatchRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	in, err := s.svc.UpdateInstructor(r.PathValue("id"), req.patch())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, in)
}

func (s *Server) deleteInstructor(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.RemoveInstructor(r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) createCourse(w http.ResponseWriter, r *http.Request) {
	var c models.Course
	if err := decode(r, &c); err != nil {
		writeError(w, err)
		return
	}
	if err := s.svc.AddCourse(&c); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) listCourses(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Courses())
}

func (s *Server) getCourse(w http.ResponseWriter, r *http.Request) {
	c, err := s.svc.Course(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) updateCourse(w http.ResponseWriter, r *http.Request) {
	var req coursePatchRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	c, err := s.svc.UpdateCourse(r.PathValue("id"), registry.CoursePatch{CourseName: req.CourseName})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) deleteCourse(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.RemoveCourse(r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
