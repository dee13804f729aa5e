package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"path/filepath"
	"time"

	"github.com/nishantpatil/placenet/pkg/domain"
)

// basePath is the fixed API prefix shared by every endpoint.
const basePath = "/api"

// Client is the PlaceNet API client. Requests are credentialed through a
// cookie jar; the server sets an HTTP-only session cookie on login.
type Client struct {
	baseURL    string
	httpClient *http.Client
	jar        *cookiejar.Jar

	// onUnauthorized is invoked for every 401 response. It logs centrally
	// and must not force a logout; that stays the session store's call on
	// its next identity check, which avoids redirect loops from background
	// requests.
	onUnauthorized func()
}

// New creates a new API client for the given server URL (no /api suffix).
func New(baseURL string) *Client {
	jar, _ := cookiejar.New(nil) //nolint:errcheck // only errors on bad PublicSuffixList
	return &Client{
		baseURL: baseURL,
		jar:     jar,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Jar:     jar,
		},
	}
}

// OnUnauthorized registers the central 401 handler.
func (c *Client) OnUnauthorized(fn func()) {
	c.onUnauthorized = fn
}

// --- Auth ---

// LoginRequest is the payload for password authentication.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates with email and password. The session cookie is
// captured by the jar; the returned identity is what the caller adopts.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.Identity, error) {
	var id domain.Identity
	if err := c.post(ctx, "/users/auth", LoginRequest{Email: email, Password: password}, &id); err != nil {
		return nil, fmt.Errorf("client.Login: %w", err)
	}
	return &id, nil
}

// RegisterRequest is the payload for account creation.
type RegisterRequest struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

// Register creates a new account and returns the signed-in identity.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*domain.Identity, error) {
	var id domain.Identity
	if err := c.post(ctx, "/users", req, &id); err != nil {
		return nil, fmt.Errorf("client.Register: %w", err)
	}
	return &id, nil
}

// Logout invalidates the server-side session.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.post(ctx, "/users/logout", nil, nil); err != nil {
		return fmt.Errorf("client.Logout: %w", err)
	}
	return nil
}

// ForgotPassword requests a password-reset email.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	if err := c.post(ctx, "/users/forgot-password", map[string]string{"email": email}, nil); err != nil {
		return fmt.Errorf("client.ForgotPassword: %w", err)
	}
	return nil
}

// GoogleAuth forwards a federated credential token verbatim for server-side
// verification. The client never inspects the token itself.
func (c *Client) GoogleAuth(ctx context.Context, token string) (*domain.Identity, error) {
	var id domain.Identity
	if err := c.post(ctx, "/users/google", map[string]string{"token": token}, &id); err != nil {
		return nil, fmt.Errorf("client.GoogleAuth: %w", err)
	}
	return &id, nil
}

// FaceAuth posts a face descriptor captured by the on-device model. The
// descriptor is an opaque fixed-length vector; matching happens server side.
func (c *Client) FaceAuth(ctx context.Context, email string, descriptor []float64) (*domain.Identity, error) {
	body := map[string]any{"email": email, "descriptor": descriptor}
	var id domain.Identity
	if err := c.post(ctx, "/users/face-auth", body, &id); err != nil {
		return nil, fmt.Errorf("client.FaceAuth: %w", err)
	}
	return &id, nil
}

// GetProfile returns the identity bound to the ambient session cookie.
// This is the server trust check used on startup.
func (c *Client) GetProfile(ctx context.Context) (*domain.Identity, error) {
	var id domain.Identity
	if err := c.get(ctx, "/users/profile", &id); err != nil {
		return nil, fmt.Errorf("client.GetProfile: %w", err)
	}
	return &id, nil
}

// --- Student profile ---

// GetStudentProfile fetches the caller's placement profile.
func (c *Client) GetStudentProfile(ctx context.Context) (*domain.StudentProfile, error) {
	var p domain.StudentProfile
	if err := c.get(ctx, "/student/profile", &p); err != nil {
		return nil, fmt.Errorf("client.GetStudentProfile: %w", err)
	}
	return &p, nil
}

// SaveStudentProfile creates or updates the caller's placement profile.
func (c *Client) SaveStudentProfile(ctx context.Context, p domain.StudentProfile) (*domain.StudentProfile, error) {
	var saved domain.StudentProfile
	if err := c.post(ctx, "/student/profile", p, &saved); err != nil {
		return nil, fmt.Errorf("client.SaveStudentProfile: %w", err)
	}
	return &saved, nil
}

// UploadResume uploads a resume file via the multipart endpoint and returns
// the stored file URL.
func (c *Client) UploadResume(ctx context.Context, filename string, r io.Reader) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return "", fmt.Errorf("client.UploadResume: create form file: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", fmt.Errorf("client.UploadResume: copy file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("client.UploadResume: close writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+basePath+"/upload", &buf)
	if err != nil {
		return "", fmt.Errorf("client.UploadResume: create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var out struct {
		URL string `json:"url"`
	}
	if err := c.send(req, &out); err != nil {
		return "", fmt.Errorf("client.UploadResume: %w", err)
	}
	return out.URL, nil
}

// --- Jobs ---

// ListJobs fetches the open job board.
func (c *Client) ListJobs(ctx context.Context) ([]domain.Job, error) {
	var jobs []domain.Job
	if err := c.get(ctx, "/jobs", &jobs); err != nil {
		return nil, fmt.Errorf("client.ListJobs: %w", err)
	}
	return jobs, nil
}

// GetJob fetches a single job by ID.
func (c *Client) GetJob(ctx context.Context, id string) (*domain.Job, error) {
	var job domain.Job
	if err := c.get(ctx, "/jobs/"+url.PathEscape(id), &job); err != nil {
		return nil, fmt.Errorf("client.GetJob: %w", err)
	}
	return &job, nil
}

// ListMyJobs fetches the jobs posted by the calling recruiter.
func (c *Client) ListMyJobs(ctx context.Context) ([]domain.Job, error) {
	var jobs []domain.Job
	if err := c.get(ctx, "/jobs/my", &jobs); err != nil {
		return nil, fmt.Errorf("client.ListMyJobs: %w", err)
	}
	return jobs, nil
}

// CreateJobRequest is the payload for posting a new job.
type CreateJobRequest struct {
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Description string   `json:"description"`
	Location    string   `json:"location,omitempty"`
	Package     string   `json:"package,omitempty"`
	Skills      []string `json:"skills,omitempty"`
}

// CreateJob posts a new job.
func (c *Client) CreateJob(ctx context.Context, req CreateJobRequest) (*domain.Job, error) {
	var job domain.Job
	if err := c.post(ctx, "/jobs", req, &job); err != nil {
		return nil, fmt.Errorf("client.CreateJob: %w", err)
	}
	return &job, nil
}

// --- Applications ---

// Apply submits an application to a job.
func (c *Client) Apply(ctx context.Context, jobID string) (*domain.Application, error) {
	var app domain.Application
	if err := c.post(ctx, "/applications", map[string]string{"jobId": jobID}, &app); err != nil {
		return nil, fmt.Errorf("client.Apply: %w", err)
	}
	return &app, nil
}

// ListMyApplications fetches the calling student's applications.
func (c *Client) ListMyApplications(ctx context.Context) ([]domain.Application, error) {
	var apps []domain.Application
	if err := c.get(ctx, "/applications/my", &apps); err != nil {
		return nil, fmt.Errorf("client.ListMyApplications: %w", err)
	}
	return apps, nil
}

// ListJobApplications fetches all applications for a job the caller posted.
func (c *Client) ListJobApplications(ctx context.Context, jobID string) ([]domain.Application, error) {
	var apps []domain.Application
	if err := c.get(ctx, "/applications/job/"+url.PathEscape(jobID), &apps); err != nil {
		return nil, fmt.Errorf("client.ListJobApplications: %w", err)
	}
	return apps, nil
}

// UpdateApplicationStatus moves an application along the triage ladder.
func (c *Client) UpdateApplicationStatus(ctx context.Context, appID string, status domain.ApplicationStatus) error {
	body := map[string]string{"status": string(status)}
	if err := c.doRequest(ctx, http.MethodPut, "/applications/"+url.PathEscape(appID), body, nil); err != nil {
		return fmt.Errorf("client.UpdateApplicationStatus: %w", err)
	}
	return nil
}

// --- Mock interviews ---

// ListMockInterviews fetches all mock interviews (admin view).
func (c *Client) ListMockInterviews(ctx context.Context) ([]domain.MockInterview, error) {
	var ivs []domain.MockInterview
	if err := c.get(ctx, "/mock-interviews", &ivs); err != nil {
		return nil, fmt.Errorf("client.ListMockInterviews: %w", err)
	}
	return ivs, nil
}

// ListMyMockInterviews fetches the calling student's mock interviews.
func (c *Client) ListMyMockInterviews(ctx context.Context) ([]domain.MockInterview, error) {
	var ivs []domain.MockInterview
	if err := c.get(ctx, "/mock-interviews/my", &ivs); err != nil {
		return nil, fmt.Errorf("client.ListMyMockInterviews: %w", err)
	}
	return ivs, nil
}

// RequestMockInterview books a practice interview on a topic.
func (c *Client) RequestMockInterview(ctx context.Context, topic string) (*domain.MockInterview, error) {
	var iv domain.MockInterview
	if err := c.post(ctx, "/mock-interviews", map[string]string{"topic": topic}, &iv); err != nil {
		return nil, fmt.Errorf("client.RequestMockInterview: %w", err)
	}
	return &iv, nil
}

// SubmitInterviewFeedback records admin feedback and a score for an interview.
func (c *Client) SubmitInterviewFeedback(ctx context.Context, id, feedback string, score int) error {
	body := map[string]any{"feedback": feedback, "score": score}
	if err := c.doRequest(ctx, http.MethodPut, "/mock-interviews/"+url.PathEscape(id)+"/feedback", body, nil); err != nil {
		return fmt.Errorf("client.SubmitInterviewFeedback: %w", err)
	}
	return nil
}

// --- Notifications ---

// ListNotifications fetches the caller's durable notification list.
func (c *Client) ListNotifications(ctx context.Context) ([]domain.Notification, error) {
	var ns []domain.Notification
	if err := c.get(ctx, "/notifications", &ns); err != nil {
		return nil, fmt.Errorf("client.ListNotifications: %w", err)
	}
	return ns, nil
}

// MarkNotificationRead flags a single notification as read.
func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	if err := c.doRequest(ctx, http.MethodPut, "/notifications/"+url.PathEscape(id)+"/read", nil, nil); err != nil {
		return fmt.Errorf("client.MarkNotificationRead: %w", err)
	}
	return nil
}

// MarkAllNotificationsRead flags every notification as read.
func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	if err := c.doRequest(ctx, http.MethodPut, "/notifications/read-all", nil, nil); err != nil {
		return fmt.Errorf("client.MarkAllNotificationsRead: %w", err)
	}
	return nil
}

// --- Admin ---

// ListUnverifiedUsers fetches accounts awaiting TPO verification.
func (c *Client) ListUnverifiedUsers(ctx context.Context) ([]domain.Identity, error) {
	var users []domain.Identity
	if err := c.get(ctx, "/users/unverified", &users); err != nil {
		return nil, fmt.Errorf("client.ListUnverifiedUsers: %w", err)
	}
	return users, nil
}

// VerifyUser approves a pending account.
func (c *Client) VerifyUser(ctx context.Context, userID string) error {
	if err := c.doRequest(ctx, http.MethodPut, "/users/"+url.PathEscape(userID)+"/verify", nil, nil); err != nil {
		return fmt.Errorf("client.VerifyUser: %w", err)
	}
	return nil
}

// GetAnalytics fetches the placement analytics summary.
func (c *Client) GetAnalytics(ctx context.Context) (*domain.Analytics, error) {
	var a domain.Analytics
	if err := c.get(ctx, "/analytics", &a); err != nil {
		return nil, fmt.Errorf("client.GetAnalytics: %w", err)
	}
	return &a, nil
}

// --- transport ---

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.doRequest(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	return c.doRequest(ctx, http.MethodPost, path, body, out)
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+basePath+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
		c.onUnauthorized()
	}

	if resp.StatusCode >= 400 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max error body
		if readErr != nil {
			return &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
		}
		var apiErr struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil {
			if apiErr.Error != "" {
				return &HTTPError{StatusCode: resp.StatusCode, Message: apiErr.Error}
			}
			if apiErr.Message != "" {
				return &HTTPError{StatusCode: resp.StatusCode, Message: apiErr.Message}
			}
		}
		return &HTTPError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
