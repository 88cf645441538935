package http

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"obras/internal/auth"
	"obras/internal/log"
	"obras/internal/service"
	"obras/internal/sheets/memory"
)

const (
	projectsTab = "Obras_Info"
	expensesTab = "Despesas_Semanas"
	usersTab    = "Usuarios"
)

func newTestServer(t *testing.T) (*Server, *memory.Store) {
	t.Helper()
	store := memory.New(map[string][]string{
		projectsTab: {"id", "name", "initial_budget", "start_date"},
		expensesTab: {"project_id", "week_number", "reference_date", "amount"},
		usersTab:    {"username", "name", "password"},
	})
	hash, err := bcrypt.GenerateFromPassword([]byte("segredo"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	store.Seed(usersTab, []string{"maria", "Maria Silva", string(hash)})

	logger := log.New(slog.LevelError)
	tracker := service.New(store, projectsTab, expensesTab, time.Minute, logger)
	users := auth.NewDirectory(store, usersTab, time.Minute)
	sessions := auth.NewSessions(time.Hour)

	srv := NewServer(":0", tracker, users, sessions, "obras_session", time.Hour, logger)
	t.Cleanup(func() { srv.rateLimiter.stop() })
	return srv, store
}

// login performs the form login and returns the session cookie.
func login(t *testing.T, srv *Server) *http.Cookie {
	t.Helper()
	form := url.Values{"username": {"maria"}, "password": {"segredo"}}
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("login status=%d body=%s", rr.Code, rr.Body.String())
	}
	for _, c := range rr.Result().Cookies() {
		if c.Name == "obras_session" && c.Value != "" {
			return c
		}
	}
	t.Fatalf("no session cookie set")
	return nil
}

func TestHealthEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)
	for _, path := range []string{"/healthz", "/readyz"} {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		srv.Handler.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("%s status=%d", path, rr.Code)
		}
	}
}

func TestUnauthenticatedRedirectsToLogin(t *testing.T) {
	srv, _ := newTestServer(t)
	for _, path := range []string{"/", "/projects", "/expenses", "/report"} {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		srv.Handler.ServeHTTP(rr, req)
		if rr.Code != http.StatusSeeOther {
			t.Fatalf("%s status=%d, want redirect", path, rr.Code)
		}
		if loc := rr.Header().Get("Location"); loc != "/login" {
			t.Fatalf("%s redirects to %q", path, loc)
		}
	}
}

func TestLoginRejectsBadPassword(t *testing.T) {
	srv, _ := newTestServer(t)
	form := url.Values{"username": {"maria"}, "password": {"errada"}}
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status=%d, want 401", rr.Code)
	}
}

func TestLoginAndOverview(t *testing.T) {
	srv, store := newTestServer(t)
	store.Seed(projectsTab, []string{"001", "Casa Alpha", "50000.00", "2024-01-10"})
	cookie := login(t, srv)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("overview status=%d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Casa Alpha") {
		t.Fatalf("overview missing project name")
	}
	if !strings.Contains(body, "R$ 50.000,00") {
		t.Fatalf("overview missing formatted budget: %s", body)
	}
}

func TestRegisterProjectThroughForm(t *testing.T) {
	srv, store := newTestServer(t)
	cookie := login(t, srv)

	form := url.Values{
		"name":           {"Casa Beta"},
		"initial_budget": {"10000,00"},
		"start_date":     {"2024-02-01"},
	}
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/projects", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(cookie)
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}

	values, _ := store.ReadValues(req.Context(), projectsTab)
	if len(values) != 2 {
		t.Fatalf("project not stored: %v", values)
	}
	want := []string{"001", "Casa Beta", "10000.00", "2024-02-01"}
	for i, cell := range want {
		if values[1][i] != cell {
			t.Fatalf("stored row %v, want %v", values[1], want)
		}
	}
}

func TestRegisterExpenseThroughForm(t *testing.T) {
	srv, store := newTestServer(t)
	store.Seed(projectsTab, []string{"001", "Casa Alpha", "50000.00", "2024-01-10"})
	cookie := login(t, srv)

	form := url.Values{
		"project_id":     {"001"},
		"amount":         {"R$ 1.250,75"},
		"reference_date": {"2024-01-15"},
	}
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/expenses", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(cookie)
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}

	values, _ := store.ReadValues(req.Context(), expensesTab)
	if len(values) != 2 {
		t.Fatalf("expense not stored: %v", values)
	}
	want := []string{"001", "1", "2024-01-15", "1250.75"}
	for i, cell := range want {
		if values[1][i] != cell {
			t.Fatalf("stored row %v, want %v", values[1], want)
		}
	}
}

func TestReportRendersHistory(t *testing.T) {
	srv, store := newTestServer(t)
	store.Seed(projectsTab, []string{"001", "Casa Alpha", "50000.00", "2024-01-10"})
	store.Seed(expensesTab,
		[]string{"001", "1", "2024-01-15", "100.00"},
		[]string{"001", "2", "2024-01-22", "250.00"},
	)
	cookie := login(t, srv)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/report?project_id=001", nil)
	req.AddCookie(cookie)
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("report status=%d", rr.Code)
	}
	body := rr.Body.String()
	for _, want := range []string{"Casa Alpha", "R$ 350,00", "R$ 49.650,00", "15/01/2024"} {
		if !strings.Contains(body, want) {
			t.Fatalf("report missing %q", want)
		}
	}
}

func TestLogoutEndsSession(t *testing.T) {
	srv, _ := newTestServer(t)
	cookie := login(t, srv)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(cookie)
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("logout status=%d", rr.Code)
	}

	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect after logout, got %d", rr.Code)
	}
}
