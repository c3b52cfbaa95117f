// Package server is the HTTP presentation adapter. It is deliberately
// thin: handlers decode the request, call one service operation, and
// write the result — the core never renders anything itself.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nadimk/schoolhub/internal/service"
)

// Server holds the handler dependencies.
type Server struct {
	svc *service.SchoolService
}

// NewMux builds the route table over the service.
func NewMux(svc *service.SchoolService) http.Handler {
	s := &Server{svc: svc}
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/students", s.createStudent)
	mux.HandleFunc("GET /api/students", s.listStudents)
	mux.HandleFunc("GET /api/students/{id}", s.getStudent)
	mux.HandleFunc("PUT /api/students/{id}", s.updateStudent)
	mux.HandleFunc("DELETE /api/students/{id}", s.deleteStudent)

	mux.HandleFunc("POST /api/instructors", s.createInstructor)
	mux.HandleFunc("GET /api/instructors", s.listInstructors)
	mux.HandleFunc("GET /api/instructors/{id}", s.getInstructor)
	mux.HandleFunc("PUT /api/instructors/{id}", s.updateInstructor)
	mux.HandleFunc("DELETE /api/instructors/{id}", s.deleteInstructor)

	mux.HandleFunc("POST /api/courses", s.createCourse)
	mux.HandleFunc("GET /api/courses", s.listCourses)
	mux.HandleFunc("GET /api/courses/{id}", s.getCourse)
	mux.HandleFunc("PUT /api/courses/{id}", s.updateCourse)
	mux.HandleFunc("DELETE /api/courses/{id}", s.deleteCourse)

	mux.HandleFunc("POST /api/registrations", s.register)
	mux.HandleFunc("POST /api/assignments", s.assign)

	mux.HandleFunc("GET /api/search", s.search)
	mux.HandleFunc("POST /api/snapshot/save", s.saveSnapshot)
	mux.HandleFunc("POST /api/snapshot/load", s.loadSnapshot)
	mux.HandleFunc("GET /api/export/csv", s.exportCSV)

	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return loggingMiddleware(mux)
}

// loggingMiddleware logs every request with its duration.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Info("request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
