package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"invitacion/internal/attendance"
	"invitacion/internal/auth"
	"invitacion/internal/identity"
	"invitacion/internal/models"

	gws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

type client struct {
	t       *testing.T
	handler http.Handler
	cookies []*http.Cookie
}

func newClient(t *testing.T, env *testEnv) *client {
	return &client{t: t, handler: env.server.Routes()}
}

func (c *client) do(method, target string, body []byte) *httptest.ResponseRecorder {
	c.t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.RemoteAddr = "198.51.100.10:40000"
	req.Header.Set("User-Agent", "Mozilla/5.0 test")
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	rr := httptest.NewRecorder()
	c.handler.ServeHTTP(rr, req)
	if set := rr.Result().Cookies(); len(set) > 0 {
		c.cookies = set
	}
	return rr
}

func decodeStatus(t *testing.T, rr *httptest.ResponseRecorder) attendance.Confirmation {
	t.Helper()
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var out attendance.Confirmation
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	return out
}

func TestOffline_ConfirmFlowAcrossReloads(t *testing.T) {
	env := newOfflineEnv(t)
	c := newClient(t, env)

	page := c.do("GET", "/", nil)
	require.Equal(t, http.StatusOK, page.Code)
	require.Contains(t, page.Body.String(), "Asistencias confirmadas: 0")
	require.Contains(t, page.Body.String(), ">Confirmar asistencia</button>")
	require.NotEmpty(t, c.cookies, "first visit sets the identity cookie")

	res := decodeStatus(t, c.do("POST", "/api/v1/attendance/confirm", nil))
	require.True(t, res.Confirmed)
	require.True(t, res.Offline)
	require.Equal(t, "Asistencias confirmadas: 1", res.CountLabel)
	require.Equal(t, "¡Asistencia confirmada!", res.ButtonLabel)
	require.Equal(t, attendance.MsgConfirmedOffline, res.Notification)

	again := decodeStatus(t, c.do("POST", "/api/v1/attendance/confirm", nil))
	require.True(t, again.Confirmed)
	require.Empty(t, again.Notification)
	require.Equal(t, int64(1), again.Count)

	page = c.do("GET", "/", nil)
	require.Contains(t, page.Body.String(), "Asistencias confirmadas: 1")
	require.Contains(t, page.Body.String(), "disabled>¡Asistencia confirmada!</button>")

	status := decodeStatus(t, c.do("GET", "/api/v1/attendance", nil))
	require.Equal(t, attendance.ModeOffline, status.Mode)
	require.True(t, status.Confirmed)
}

func TestOffline_SeparateDevicesCountUp(t *testing.T) {
	env := newOfflineEnv(t)
	require.NoError(t, env.local.Set(attendance.CountKey, "4"))

	for i := 0; i < 3; i++ {
		c := newClient(t, env)
		res := decodeStatus(t, c.do("POST", "/api/v1/attendance/confirm", nil))
		require.Equal(t, int64(5+i), res.Count)
	}
}

func TestOnline_PageShowsRemoteCount(t *testing.T) {
	env := newOnlineEnv(t)
	env.remote.seed("device-1", "device-2")

	c := newClient(t, env)
	page := c.do("GET", "/", nil)
	require.Equal(t, http.StatusOK, page.Code)
	require.Contains(t, page.Body.String(), "Asistencias confirmadas: 2")
	require.Contains(t, page.Body.String(), `data-mode="online"`)
}

func TestOnline_ConfirmRecordsMetadata(t *testing.T) {
	env := newOnlineEnv(t)
	c := newClient(t, env)

	res := decodeStatus(t, c.do("POST", "/api/v1/attendance/confirm", nil))
	require.True(t, res.Confirmed)
	require.False(t, res.Offline)
	require.Equal(t, attendance.MsgConfirmed, res.Notification)
	require.Equal(t, int64(1), res.Count)

	list, err := env.remote.ListAttendees(context.Background(), 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "198.51.100.10", list[0].IP)
	require.Equal(t, "Mozilla/5.0 test", list[0].UserAgent)

	again := decodeStatus(t, c.do("POST", "/api/v1/attendance/confirm", nil))
	require.Empty(t, again.Notification)
	require.Len(t, env.remote.records, 1)
}

func TestOnline_ForwardedAddressIsRecorded(t *testing.T) {
	env := newOnlineEnv(t)
	handler := env.server.Routes()

	req := httptest.NewRequest("POST", "/api/v1/attendance/confirm", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.5")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	list, err := env.remote.ListAttendees(context.Background(), 10, 0)
	require.NoError(t, err)
	require.Equal(t, "203.0.113.5", list[0].IP)
}

func TestOnline_WriteFailureFallsBackOffline(t *testing.T) {
	env := newOnlineEnv(t)
	env.remote.writeErr = errors.New("connection reset by peer")
	c := newClient(t, env)

	res := decodeStatus(t, c.do("POST", "/api/v1/attendance/confirm", nil))
	require.True(t, res.Confirmed)
	require.True(t, res.Offline)
	require.Equal(t, attendance.MsgConfirmedOffline, res.Notification)

	status := decodeStatus(t, c.do("GET", "/api/v1/attendance", nil))
	require.False(t, status.Confirmed)
	require.Equal(t, attendance.ModeOnline, status.Mode)

	env.remote.mu.Lock()
	env.remote.writeErr = nil
	env.remote.mu.Unlock()

	retry := decodeStatus(t, c.do("POST", "/api/v1/attendance/confirm", nil))
	require.True(t, retry.Confirmed)
	require.False(t, retry.Offline)
	require.Equal(t, int64(1), retry.Count)
	require.Len(t, env.remote.records, 1)
}

func TestCalendarRedirect(t *testing.T) {
	env := newOfflineEnv(t)
	rr := newClient(t, env).do("GET", "/calendar", nil)

	require.Equal(t, http.StatusFound, rr.Code)
	loc, err := url.Parse(rr.Header().Get("Location"))
	require.NoError(t, err)
	require.Equal(t, "www.google.com", loc.Host)
	require.Equal(t, "TEMPLATE", loc.Query().Get("action"))
	require.Equal(t, "20250830T170000/20250830T200000", loc.Query().Get("dates"))
}

func TestCalendarFallsBackToICSHandler(t *testing.T) {
	cfg := *testConfig
	cfg.Invitation.Start = "not-a-time"
	prev := testConfig
	testConfig = &cfg
	defer func() { testConfig = prev }()

	env := newOfflineEnv(t)
	rr := newClient(t, env).do("GET", "/calendar", nil)

	// The fallback download is attempted; it cannot be built either with a
	// broken start time.
	require.Equal(t, http.StatusInternalServerError, rr.Code)
	require.Contains(t, rr.Body.String(), "Failed to build calendar file")
}

func TestDownloadICS(t *testing.T) {
	env := newOfflineEnv(t)
	rr := newClient(t, env).do("GET", "/calendar.ics", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "text/calendar; charset=utf-8", rr.Header().Get("Content-Type"))
	require.Equal(t, `attachment; filename="toy-story-fiesta.ics"`, rr.Header().Get("Content-Disposition"))
	require.True(t, strings.HasPrefix(rr.Body.String(), "BEGIN:VCALENDAR"))
	require.Contains(t, rr.Body.String(), "RRULE:FREQ=DAILY;COUNT=3")
}

func TestShareRedirects(t *testing.T) {
	env := newOfflineEnv(t)
	c := newClient(t, env)

	rr := c.do("GET", "/share/maps", nil)
	require.Equal(t, http.StatusFound, rr.Code)
	require.Equal(t, "https://maps.app.goo.gl/PMh236nWYhjdWSTA8", rr.Header().Get("Location"))

	rr = c.do("GET", "/share/whatsapp", nil)
	require.Equal(t, http.StatusFound, rr.Code)
	loc, err := url.Parse(rr.Header().Get("Location"))
	require.NoError(t, err)
	require.Equal(t, "wa.me", loc.Host)
	require.Equal(t, "¡Estás invitado!", loc.Query().Get("text"))
}

func TestStaticAssets(t *testing.T) {
	env := newOfflineEnv(t)
	rr := newClient(t, env).do("GET", "/static/app.js", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), "/api/v1/attendance/confirm")
}

func TestHealth(t *testing.T) {
	env := newOfflineEnv(t)
	rr := newClient(t, env).do("GET", "/health", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, "ok", resp.Status)
	require.Equal(t, "offline", resp.Mode)
}

func login(t *testing.T, c *client, password string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(LoginRequest{Username: "admin", Password: password})
	return c.do("POST", "/api/v1/auth/login", body)
}

func TestAdmin_ListAttendees(t *testing.T) {
	env := newOnlineEnv(t)
	env.remote.seed("device-1", "device-2", "device-3")
	c := newClient(t, env)

	rr := login(t, c, testAdminPassword)
	require.Equal(t, http.StatusOK, rr.Code)
	var tokens TokenResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &tokens))
	require.NotEmpty(t, tokens.AccessToken)

	req := httptest.NewRequest("GET", "/api/v1/admin/attendees?limit=2&offset=1", nil)
	req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
	out := httptest.NewRecorder()
	env.server.Routes().ServeHTTP(out, req)

	require.Equal(t, http.StatusOK, out.Code)
	var list []models.Attendee
	require.NoError(t, json.Unmarshal(out.Body.Bytes(), &list))
	require.Len(t, list, 2)
	require.Equal(t, "device-2", list[0].DeviceID)
	require.Equal(t, "device-3", list[1].DeviceID)
}

func TestAdmin_Rejections(t *testing.T) {
	env := newOnlineEnv(t)
	c := newClient(t, env)

	require.Equal(t, http.StatusUnauthorized, login(t, c, "wrong").Code)
	require.Equal(t, http.StatusBadRequest, c.do("POST", "/api/v1/auth/login", []byte("{")).Code)
	require.Equal(t, http.StatusUnauthorized, c.do("GET", "/api/v1/admin/attendees", nil).Code)

	token, err := auth.GenerateJWT(&models.Admin{Username: "admin"}, testConfig.JWT.Secret)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/api/v1/admin/attendees?limit=0", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	env.server.Routes().ServeHTTP(rr, req)
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAdmin_OfflineIsUnavailable(t *testing.T) {
	env := newOfflineEnv(t)
	token, err := auth.GenerateJWT(&models.Admin{Username: "admin"}, testConfig.JWT.Secret)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/api/v1/admin/attendees", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	env.server.Routes().ServeHTTP(rr, req)
	require.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestWebsocket_ReceivesCurrentAndLiveCounts(t *testing.T) {
	env := newOnlineEnv(t)
	env.remote.seed("device-1")

	srv := httptest.NewServer(env.server.Routes())
	defer srv.Close()

	conn, _, err := gws.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()

	read := func() map[string]any {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)
		var msg map[string]any
		require.NoError(t, json.Unmarshal(data, &msg))
		return msg
	}

	first := read()
	require.Equal(t, "Asistencias confirmadas: 1", first["label"])

	require.Eventually(t, func() bool { return env.hub.Len() == 1 }, 5*time.Second, 10*time.Millisecond)
	replayed := read()
	require.Equal(t, float64(1), replayed["count"])

	env.remote.seed("device-2")

	second := read()
	require.Equal(t, float64(2), second["count"])
	require.Equal(t, "Asistencias confirmadas: 2", second["label"])
}

func TestGetAttendanceHandler_UsesContextIdentity(t *testing.T) {
	env := newOnlineEnv(t)
	env.remote.seed("device-1")

	req := httptest.NewRequest("GET", "/api/v1/attendance", nil)
	req = req.WithContext(identity.WithIdentity(req.Context(), "device-1"))
	rr := httptest.NewRecorder()
	env.server.GetAttendanceHandler(rr, req)

	status := decodeStatus(t, rr)
	require.True(t, status.Confirmed)
	require.Equal(t, int64(1), status.Count)

	req = httptest.NewRequest("GET", "/api/v1/attendance", nil)
	rr = httptest.NewRecorder()
	env.server.GetAttendanceHandler(rr, req)
	require.Equal(t, http.StatusInternalServerError, rr.Code, "handlers rely on the identity middleware")
}

func TestAuthMiddleware_StoresAdminClaims(t *testing.T) {
	env := newOfflineEnv(t)
	token, err := auth.GenerateJWT(&models.Admin{Username: "admin"}, testConfig.JWT.Secret)
	require.NoError(t, err)

	var claims *auth.AppClaims
	h := env.server.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims = GetAdminFromContext(r.Context())
	}))

	req := httptest.NewRequest("GET", "/api/v1/admin/attendees", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	h.ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, claims)
	require.Equal(t, "admin", claims.Username)
	require.Nil(t, GetAdminFromContext(context.Background()))
}
