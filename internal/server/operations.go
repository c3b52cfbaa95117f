package server

import (
	"log/slog"
	"net/http"

	"github.com/nadimk/schoolhub/internal/models"
)

type registrationRequest struct {
	StudentID string `json:"student_id"`
	CourseID  string `json:"course_id"`
}

type assignmentRequest struct {
	InstructorID string `json:"instructor_id"`
	CourseID     string `json:"course_id"`
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req registrationRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.StudentID == "" || req.CourseID == "" {
		writeError(w, &models.ValidationError{Field: "student_id/course_id", Value: "", Reason: "both ids are required"})
		return
	}
	changed, err := s.svc.RegisterCourse(req.StudentID, req.CourseID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"registered": changed})
}

func (s *Server) assign(w http.ResponseWriter, r *http.Request) {
	var req assignmentRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.InstructorID == "" || req.CourseID == "" {
		writeError(w, &models.ValidationError{Field: "instructor_id/course_id", Value: "", Reason: "both ids are required"})
		return
	}
	changed, err := s.svc.AssignCourse(req.InstructorID, req.CourseID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"assigned": changed})
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	results := s.svc.Search(r.URL.Query().Get("q"))
	writeJSON(w, http.StatusOK, results)
}

func (s *Server) saveSnapshot(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.SaveAll(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

func (s *Server) loadSnapshot(w http.ResponseWriter, r *http.Request) {
	report, err := s.svc.LoadAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) exportCSV(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="schoolhub.csv"`)
	if err := s.svc.ExportCSV(w); err != nil {
		// The header is already written; the best we can do is log.
		slog.Error("csv export failed", "error", err)
	}
}
