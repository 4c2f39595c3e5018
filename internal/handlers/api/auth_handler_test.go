package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hoanvu/atelier/internal/auth"
	"github.com/hoanvu/atelier/internal/middlewares"
	"github.com/hoanvu/atelier/internal/otp"
	"github.com/hoanvu/atelier/internal/ratelimit"
	"github.com/hoanvu/atelier/internal/render"
	"github.com/hoanvu/atelier/internal/store"
	"github.com/hoanvu/atelier/internal/token"
	"github.com/hoanvu/atelier/params"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotifier struct {
	subjects []string
}

func (n *fakeNotifier) Send(ctx context.Context, subject string, body string) error {
	n.subjects = append(n.subjects, subject)
	return nil
}

func (n *fakeNotifier) lastCode(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, n.subjects)
	return strings.Fields(n.subjects[len(n.subjects)-1])[0]
}

func newTestApp(t *testing.T) (*fiber.App, *fakeNotifier) {
	t.Helper()
	require.NoError(t, render.Initialize(map[string]interface{}{"siteName": "Atelier"}))

	storage := store.NewMemoryStorage()
	notifier := &fakeNotifier{}
	tokens, err := token.NewService("test-secret", params.AdminTokenExpiration)
	require.NoError(t, err)
	authService := auth.NewService(ratelimit.NewFactory(storage), otp.NewService(storage, notifier), tokens, "admin")
	handler := NewAuthHandler(authService, tokens, false)

	app := fiber.New(fiber.Config{ErrorHandler: middlewares.ErrorHandler})
	app.Post("/auth/send-otp", handler.PostSendOTP)
	app.Post("/auth/verify-otp", handler.PostVerifyOTP)
	app.Get("/auth/status", handler.GetStatus)
	app.Post("/auth/logout", handler.PostLogout)
	return app, notifier
}

func doJSON(t *testing.T, app *fiber.App, method, target string, body any, cookies ...*http.Cookie) (*http.Response, map[string]any) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	return resp, parsed
}

func adminCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == params.AdminTokenCookieName {
			return c
		}
	}
	t.Fatal("admin token cookie not set")
	return nil
}

func TestLoginHappyPath(t *testing.T) {
	app, notifier := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/auth/send-otp", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	sessionID, _ := body["sessionId"].(string)
	require.NotEmpty(t, sessionID)

	expires, err := time.Parse(time.RFC3339, body["expires"].(string))
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(params.OTPCodeExpiration), expires, 10*time.Second)

	resp, body = doJSON(t, app, http.MethodPost, "/auth/verify-otp", map[string]string{
		"sessionId": sessionID,
		"code":      notifier.lastCode(t),
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "admin", user["username"])
	assert.Equal(t, "admin", user["role"])

	cookie := adminCookie(t, resp)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, int(params.AdminTokenExpiration.Seconds()), cookie.MaxAge)

	resp, body = doJSON(t, app, http.MethodGet, "/auth/status", nil, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["authenticated"])
}

func TestSendOTPThrottled(t *testing.T) {
	app, _ := newTestApp(t)

	for i := 0; i < params.SendOTPIPLimit; i++ {
		resp, _ := doJSON(t, app, http.MethodPost, "/auth/send-otp", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp, body := doJSON(t, app, http.MethodPost, "/auth/send-otp", nil)
	require.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, false, body["success"])

	retryAfter := resp.Header.Get(fiber.HeaderRetryAfter)
	require.NotEmpty(t, retryAfter)
	seconds, err := strconv.Atoi(retryAfter)
	require.NoError(t, err)
	assert.Greater(t, seconds, 0)
}

func TestVerifyOTPValidation(t *testing.T) {
	app, _ := newTestApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/auth/verify-otp", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/auth/verify-otp", map[string]string{
		"sessionId": "abc",
		"code":      "12ab56",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestVerifyOTPReplayRejected(t *testing.T) {
	app, notifier := newTestApp(t)

	_, body := doJSON(t, app, http.MethodPost, "/auth/send-otp", nil)
	sessionID := body["sessionId"].(string)
	code := notifier.lastCode(t)

	verifyReq := map[string]string{"sessionId": sessionID, "code": code}
	resp, _ := doJSON(t, app, http.MethodPost, "/auth/verify-otp", verifyReq)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = doJSON(t, app, http.MethodPost, "/auth/verify-otp", verifyReq)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid or expired OTP code", body["message"])
}

func TestVerifyOTPUnknownSession(t *testing.T) {
	app, _ := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/auth/verify-otp", map[string]string{
		"sessionId": "no-such-session",
		"code":      "123456",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid or expired OTP code", body["message"])
}

func TestStatusWithoutCookie(t *testing.T) {
	app, _ := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodGet, "/auth/status", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, false, body["authenticated"])
}

func TestLogoutClearsCookie(t *testing.T) {
	app, _ := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/auth/logout", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	cookie := adminCookie(t, resp)
	assert.Empty(t, cookie.Value)
	assert.True(t, cookie.Expires.Before(time.Now()))
}
