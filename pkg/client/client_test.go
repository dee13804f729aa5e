package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nishantpatil/placenet/pkg/domain"
)

func TestLoginAdoptsCookieAndIdentity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/users/auth":
			var req LoginRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Fatalf("decode login request: %v", err)
			}
			if req.Email != "asha@campus.edu" {
				t.Errorf("email = %q, want asha@campus.edu", req.Email)
			}
			http.SetCookie(w, &http.Cookie{Name: "jwt", Value: "session-1", Path: "/"})
			json.NewEncoder(w).Encode(domain.Identity{ //nolint:errcheck
				ID: "u1", Name: "Asha", Email: req.Email, Role: domain.RoleStudent,
			})
		case "/api/users/profile":
			if ck, err := r.Cookie("jwt"); err != nil || ck.Value != "session-1" {
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"error": "not authenticated"}) //nolint:errcheck
				return
			}
			json.NewEncoder(w).Encode(domain.Identity{ //nolint:errcheck
				ID: "u1", Name: "Asha", Email: "asha@campus.edu", Role: domain.RoleStudent,
			})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	id, err := c.Login(context.Background(), "asha@campus.edu", "secret")
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	if id.Role != domain.RoleStudent {
		t.Errorf("Role = %q, want student", id.Role)
	}

	// The session cookie from login must ride along on the next request.
	if _, err := c.GetProfile(context.Background()); err != nil {
		t.Fatalf("GetProfile() after login: %v", err)
	}
}

func TestLoginSurfacesServerErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Invalid email or password"}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Login(context.Background(), "a@b.c", "wrong")
	if err == nil {
		t.Fatal("expected error for bad credentials")
	}
	if !IsStatus(err, 401) {
		t.Errorf("IsStatus(err, 401) = false, err = %v", err)
	}
	if got := Message(err); got != "Invalid email or password" {
		t.Errorf("Message(err) = %q, want server message", got)
	}
}

func TestUnauthorizedHookFiresOn401(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := New(srv.URL)
	fired := 0
	c.OnUnauthorized(func() { fired++ })

	_, _ = c.ListJobs(context.Background())      //nolint:errcheck
	_, _ = c.GetProfile(context.Background())    //nolint:errcheck
	_ = c.ForgotPassword(context.Background(), "a@b.c") //nolint:errcheck

	if fired != 3 {
		t.Errorf("hook fired %d times, want 3", fired)
	}
}

func TestUnauthorizedHookDoesNotFireOnOtherErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL)
	fired := 0
	c.OnUnauthorized(func() { fired++ })
	_, _ = c.ListJobs(context.Background()) //nolint:errcheck
	if fired != 0 {
		t.Errorf("hook fired %d times on 500, want 0", fired)
	}
}

func TestListJobs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/jobs" {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode([]domain.Job{ //nolint:errcheck
			{ID: "j1", Title: "Backend Engineer", Company: "Acme"},
			{ID: "j2", Title: "Data Analyst", Company: "Globex"},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	jobs, err := c.ListJobs(context.Background())
	if err != nil {
		t.Fatalf("ListJobs() error: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("got %d jobs, want 2", len(jobs))
	}
	if jobs[0].Company != "Acme" {
		t.Errorf("jobs[0].Company = %q, want Acme", jobs[0].Company)
	}
}

func TestUpdateApplicationStatus(t *testing.T) {
	var gotMethod, gotPath, gotStatus string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body) //nolint:errcheck
		gotStatus = body["status"]
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL)
	if err := c.UpdateApplicationStatus(context.Background(), "app1", domain.StatusShortlisted); err != nil {
		t.Fatalf("UpdateApplicationStatus() error: %v", err)
	}
	if gotMethod != http.MethodPut {
		t.Errorf("method = %s, want PUT", gotMethod)
	}
	if gotPath != "/api/applications/app1" {
		t.Errorf("path = %s, want /api/applications/app1", gotPath)
	}
	if gotStatus != "Shortlisted" {
		t.Errorf("status = %q, want Shortlisted", gotStatus)
	}
}

func TestUploadResumeMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
			t.Errorf("Content-Type = %q, want multipart", r.Header.Get("Content-Type"))
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("FormFile: %v", err)
		}
		defer f.Close() //nolint:errcheck
		if hdr.Filename != "resume.pdf" {
			t.Errorf("filename = %q, want resume.pdf", hdr.Filename)
		}
		data, _ := io.ReadAll(f) //nolint:errcheck
		if string(data) != "pdf-bytes" {
			t.Errorf("file body = %q, want pdf-bytes", data)
		}
		json.NewEncoder(w).Encode(map[string]string{"url": "/uploads/resume.pdf"}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL)
	url, err := c.UploadResume(context.Background(), "/tmp/resume.pdf", strings.NewReader("pdf-bytes"))
	if err != nil {
		t.Fatalf("UploadResume() error: %v", err)
	}
	if url != "/uploads/resume.pdf" {
		t.Errorf("url = %q, want /uploads/resume.pdf", url)
	}
}

func TestCookiePersistenceRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/users/auth":
			http.SetCookie(w, &http.Cookie{Name: "jwt", Value: "persist-me", Path: "/"})
			json.NewEncoder(w).Encode(domain.Identity{ID: "u1", Email: "a@b.c", Role: domain.RoleStudent}) //nolint:errcheck
		case "/api/users/profile":
			if ck, err := r.Cookie("jwt"); err != nil || ck.Value != "persist-me" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			json.NewEncoder(w).Encode(domain.Identity{ID: "u1", Email: "a@b.c", Role: domain.RoleStudent}) //nolint:errcheck
		}
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "cookies.json")

	first := New(srv.URL)
	if _, err := first.Login(context.Background(), "a@b.c", "pw"); err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	if err := first.SaveCookies(path); err != nil {
		t.Fatalf("SaveCookies() error: %v", err)
	}

	// A fresh client with the restored jar is still authenticated.
	second := New(srv.URL)
	if err := second.LoadCookies(path); err != nil {
		t.Fatalf("LoadCookies() error: %v", err)
	}
	if _, err := second.GetProfile(context.Background()); err != nil {
		t.Fatalf("GetProfile() with restored cookies: %v", err)
	}

	// After clearing, the session is gone.
	if err := second.ClearCookies(path); err != nil {
		t.Fatalf("ClearCookies() error: %v", err)
	}
	if _, err := second.GetProfile(context.Background()); !IsStatus(err, 401) {
		t.Errorf("GetProfile() after clear = %v, want 401", err)
	}
}

func TestMessageFallbacks(t *testing.T) {
	if got := Message(nil); got != "" {
		t.Errorf("Message(nil) = %q, want empty", got)
	}
	httpErr := &HTTPError{StatusCode: 500, Message: ""}
	if got := Message(httpErr); got != "something went wrong, please try again" {
		t.Errorf("Message(empty HTTPError) = %q", got)
	}
}
