package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/config"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/mail"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/models"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/session"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	testEmail    = "asha@example.edu"
	testPassword = "faculty2024"
)

type recordingMailer struct {
	mu   sync.Mutex
	sent []mail.Message
	err  error
}

func (m *recordingMailer) Send(_ context.Context, msg mail.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *recordingMailer) messages() []mail.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]mail.Message(nil), m.sent...)
}

type harness struct {
	srv    *Server
	app    *fiber.App
	db     *gorm.DB
	mailer *recordingMailer
	user   *models.User
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	db := testutil.NewTestDB(t)
	user := testutil.CreateApplicant(t, db, testEmail, testPassword)
	cfg := &config.Config{
		Env:                  "test",
		SessionSecret:        "test-secret-at-least-32-characters-long",
		SessionTTLHours:      1,
		ResetTokenTTLMinutes: 60,
		PublicBaseURL:        "http://jobs.test",
		UploadDir:            t.TempDir(),
		UploadMaxMB:          1,
	}
	mailer := &recordingMailer{}
	srv, err := NewServerWithDeps(cfg, db, nil, mailer)
	require.NoError(t, err)
	return &harness{srv: srv, app: srv.NewApp(), db: db, mailer: mailer, user: user}
}

// do sends req with the session cookie, if any.
func (h *harness) do(t *testing.T, req *http.Request, cookie string) *http.Response {
	t.Helper()
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: cookie})
	}
	resp, err := h.app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func (h *harness) get(t *testing.T, path, cookie string) *http.Response {
	t.Helper()
	return h.do(t, httptest.NewRequest(http.MethodGet, path, nil), cookie)
}

func (h *harness) postForm(t *testing.T, path string, form url.Values, cookie string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", fiber.MIMEApplicationForm)
	return h.do(t, req, cookie)
}

// login signs the fixture applicant in and returns the session cookie value.
func (h *harness) login(t *testing.T) string {
	t.Helper()
	return h.loginAs(t, testEmail, testPassword, "")
}

// loginAs signs email in on the session behind cookie, or a fresh one.
func (h *harness) loginAs(t *testing.T, email, password, cookie string) string {
	t.Helper()
	resp := h.postForm(t, "/login", url.Values{"email": {email}, "password": {password}}, cookie)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	require.Equal(t, "/formpages/1", resp.Header.Get("Location"))
	cookie := sessionCookie(resp)
	require.NotEmpty(t, cookie)
	return cookie
}

func sessionCookie(resp *http.Response) string {
	for _, c := range resp.Cookies() {
		if c.Name == session.CookieName {
			return c.Value
		}
	}
	return ""
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func countRows(t *testing.T, db *gorm.DB, model any, userID uint) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Where("user_id = ?", userID).Count(&n).Error)
	return n
}
