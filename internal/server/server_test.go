package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nadimk/schoolhub/internal/models"
	"github.com/nadimk/schoolhub/internal/service"
)

type memStore struct {
	snap *models.Snapshot
}

func (m *memStore) Save(ctx context.Context, snap *models.Snapshot) error {
	m.snap = snap
	return nil
}

func (m *memStore) Load(ctx context.Context) (*models.Snapshot, error) {
	if m.snap == nil {
		return &models.Snapshot{}, nil
	}
	return m.snap, nil
}

func (m *memStore) Close() error { return nil }

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	svc := service.New(models.NewValidator(models.ModeStrict), &memStore{}, nil)
	ts := httptest.NewServer(NewMux(svc))
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestStudentEndpoints(t *testing.T) {
	ts := newTestServer(t)

	t.Run("create", func(t *testing.T) {
		resp := do(t, http.MethodPost, ts.URL+"/api/students",
			`{"name":"Ann Lee","age":20,"email":"ann@example.com","student_id":"S1"}`)
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("status = %d, want 201", resp.StatusCode)
		}
	})

	t.Run("duplicate conflicts", func(t *testing.T) {
		resp := do(t, http.MethodPost, ts.URL+"/api/students",
			`{"name":"Ann Lee","age":20,"email":"ann@example.com","student_id":"S1"}`)
		if resp.StatusCode != http.StatusConflict {
			t.Errorf("status = %d, want 409", resp.StatusCode)
		}
	})

	t.Run("invalid body rejected", func(t *testing.T) {
		resp := do(t, http.MethodPost, ts.URL+"/api/students",
			`{"name":"Ann Lee","age":2,"email":"ann2@example.com","student_id":"S2"}`)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", resp.StatusCode)
		}
	})

	t.Run("get", func(t *testing.T) {
		resp := do(t, http.MethodGet, ts.URL+"/api/students/S1", "")
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		var got models.Student
		if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got.Name != "Ann Lee" || got.StudentID != "S1" {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("get unknown", func(t *testing.T) {
		resp := do(t, http.MethodGet, ts.URL+"/api/students/S9", "")
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("status = %d, want 404", resp.StatusCode)
		}
	})

	t.Run("update", func(t *testing.T) {
		resp := do(t, http.MethodPut, ts.URL+"/api/students/S1", `{"age":21}`)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		var got models.Student
		if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got.Age != 21 || got.Name != "Ann Lee" {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("delete", func(t *testing.T) {
		resp := do(t, http.MethodDelete, ts.URL+"/api/students/S1", "")
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		resp = do(t, http.MethodGet, ts.URL+"/api/students/S1", "")
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("status after delete = %d, want 404", resp.StatusCode)
		}
	})
}

func TestRegistrationAndSearch(t *testing.T) {
	ts := newTestServer(t)

	for _, body := range []struct{ url, body string }{
		{"/api/students", `{"name":"Ann Lee","age":20,"email":"ann@example.com","student_id":"S1"}`},
		{"/api/instructors", `{"name":"Carol Diaz","age":45,"email":"carol@example.com","instructor_id":"I1"}`},
		{"/api/courses", `{"course_id":"C1","course_name":"Math 101"}`},
	} {
		resp := do(t, http.MethodPost, ts.URL+body.url, body.body)
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("POST %s = %d, want 201", body.url, resp.StatusCode)
		}
	}

	t.Run("register", func(t *testing.T) {
		resp := do(t, http.MethodPost, ts.URL+"/api/registrations",
			`{"student_id":"S1","course_id":"C1"}`)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		var got map[string]bool
		if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !got["registered"] {
			t.Errorf("registered = false, want true")
		}
	})

	t.Run("register unknown course", func(t *testing.T) {
		resp := do(t, http.MethodPost, ts.URL+"/api/registrations",
			`{"student_id":"S1","course_id":"C9"}`)
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("status = %d, want 404", resp.StatusCode)
		}
	})

	t.Run("register missing ids", func(t *testing.T) {
		resp := do(t, http.MethodPost, ts.URL+"/api/registrations", `{}`)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", resp.StatusCode)
		}
	})

	t.Run("assign", func(t *testing.T) {
		resp := do(t, http.MethodPost, ts.URL+"/api/assignments",
			`{"instructor_id":"I1","course_id":"C1"}`)
		if resp.StatusCode != http.StatusOK {
			t.Errorf("status = %d, want 200", resp.StatusCode)
		}
	})

	t.Run("search", func(t *testing.T) {
		resp := do(t, http.MethodGet, ts.URL+"/api/search?q=math", "")
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		var got struct {
			Students    []models.Student    `json:"students"`
			Instructors []models.Instructor `json:"instructors"`
			Courses     []models.Course     `json:"courses"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(got.Students) != 1 || len(got.Instructors) != 1 || len(got.Courses) != 1 {
			t.Errorf("search groups = %d/%d/%d, want 1/1/1",
				len(got.Students), len(got.Instructors), len(got.Courses))
		}
	})

	t.Run("export csv", func(t *testing.T) {
		resp := do(t, http.MethodGet, ts.URL+"/api/export/csv", "")
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
			t.Errorf("Content-Type = %q, want text/csv", ct)
		}
	})

	t.Run("snapshot save and load", func(t *testing.T) {
		resp := do(t, http.MethodPost, ts.URL+"/api/snapshot/save", "")
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("save status = %d, want 200", resp.StatusCode)
		}
		resp = do(t, http.MethodPost, ts.URL+"/api/snapshot/load", "")
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("load status = %d, want 200", resp.StatusCode)
		}
		var report struct {
			Applied int `json:"applied"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if report.Applied != 3 {
			t.Errorf("applied = %d, want 3", report.Applied)
		}
	})
}
