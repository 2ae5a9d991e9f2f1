package facility

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type mockRepo struct {
	facilities map[int64]*Facility
	err        error
}

func newMockRepo() *mockRepo {
	return &mockRepo{facilities: make(map[int64]*Facility)}
}

func (m *mockRepo) add(id int64, name string) *Facility {
	f := &Facility{ID: id, UUID: uuid.New(), Name: name}
	m.facilities[id] = f
	return f
}

func (m *mockRepo) GetByID(_ context.Context, id int64) (*Facility, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.facilities[id], nil
}

func (m *mockRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := m.facilities[id]
	return ok, nil
}

func (m *mockRepo) List(_ context.Context, limit, offset int) ([]*Facility, int, error) {
	var out []*Facility
	for _, f := range m.facilities {
		out = append(out, f)
	}
	return out, len(out), nil
}

func TestHandler_GetFacility(t *testing.T) {
	repo := newMockRepo()
	f := repo.add(3, "Main Street Clinic")
	h := NewHandler(repo)
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("3")

	if err := h.GetFacility(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got Facility
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if got.Name != f.Name {
		t.Errorf("expected %q, got %q", f.Name, got.Name)
	}
}

func TestHandler_GetFacility_NotFound(t *testing.T) {
	h := NewHandler(newMockRepo())
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("404")

	err := h.GetFacility(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}

func TestHandler_GetFacility_RepoErrorIsServerError(t *testing.T) {
	repo := newMockRepo()
	repo.err = fmt.Errorf("connection reset")
	h := NewHandler(repo)
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("3")

	err := h.GetFacility(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusInternalServerError {
		t.Errorf("expected 500 for a failing lookup, got %v", err)
	}
}
