package routes

import (
	"bytes"
	"encoding/json"
	"image"
	"image/jpeg"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-claims-templui/internal/app/domain/auth"
	"github.com/FACorreiaa/go-claims-templui/internal/pkg/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func token(t *testing.T, subject string, roles ...string) string {
	t.Helper()
	authorities := make([]auth.RoleAuthority, 0, len(roles))
	for _, r := range roles {
		authorities = append(authorities, auth.RoleAuthority{Authority: r})
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, auth.Claims{
		Roles:            authorities,
		RegisteredClaims: jwt.RegisteredClaims{Subject: subject},
	}).SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	return raw
}

// fakeBackend is a minimal claims API.
type fakeBackend struct {
	mu     sync.Mutex
	tokens map[string]string
	// revoked makes every authenticated call answer 401.
	revoked     bool
	lastAuth    string
	statusCalls []string
}

func (b *fakeBackend) authorization() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastAuth
}

func (b *fakeBackend) decisions() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.statusCalls...)
}

func (b *fakeBackend) revoke() {
	b.mu.Lock()
	b.revoked = true
	b.mu.Unlock()
}

func (b *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()
	writeJSON := func(w http.ResponseWriter, v any) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(v)
	}
	authed := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			b.mu.Lock()
			b.lastAuth = r.Header.Get("Authorization")
			revoked := b.revoked
			b.mu.Unlock()
			if revoked || !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			next(w, r)
		}
	}

	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req struct{ Email, Password string }
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Email == "broken@example.com" {
			w.WriteHeader(http.StatusInternalServerError)
			writeJSON(w, map[string]string{"message": "Authentication service unavailable"})
			return
		}
		raw, ok := b.tokens[req.Email]
		if !ok || req.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			writeJSON(w, map[string]string{"message": "Bad credentials"})
			return
		}
		writeJSON(w, map[string]string{"jwt": raw})
	})
	mux.HandleFunc("GET /api/v1/claims/history", authed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []map[string]any{{"id": 5, "vehicleMakeModel": "Maruti Swift", "status": "FIRST_CLAIM_ANALYZED", "estimatedTotal": 1080}})
	}))
	mux.HandleFunc("GET /api/v1/claims/user/details", authed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"id": 1, "name": "Asha", "email": "asha@example.com", "claimIds": []int{5}})
	}))
	mux.HandleFunc("GET /api/v1/claims/5", authed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{
			"id": 5, "status": "FIRST_CLAIM_ANALYZED", "estimatedTotal": 1080,
			"lineItems":        []map[string]any{{"part": "Front Bumper", "damageType": "Dent", "action": "Repair", "amount": 1000}},
			"analysisResponse": map[string]any{"isDamaged": true, "damageConfidence": 0.9},
		})
	}))
	mux.HandleFunc("POST /api/v1/claims", authed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"id": 7, "status": "PENDING"})
	}))
	mux.HandleFunc("POST /api/v1/claims/{id}/estimate", authed(func(w http.ResponseWriter, r *http.Request) {
		if _, _, err := r.FormFile("image"); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		writeJSON(w, map[string]any{
			"analysis": map[string]any{"isDamaged": true, "damageConfidence": 0.8, "damageSeverity": map[string]any{"severityLabel": "moderate"}},
			"estimate": map[string]any{
				"lineItems": []map[string]any{{"part": "Left door", "damageType": "Scratch", "action": "Paint", "amount": 500}},
				"total":     540,
			},
		})
	}))
	mux.HandleFunc("GET /api/v1/admin/claims/all", authed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []map[string]any{
			{"id": 5, "status": "FIRST_CLAIM_ANALYZED", "userName": "Asha", "userEmail": "asha@example.com"},
			{"id": 6, "status": "CLAIM_APPROVED", "userName": "Ravi", "userEmail": "ravi@example.com"},
		})
	}))
	mux.HandleFunc("PUT /api/v1/admin/claims/{id}/status", authed(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.statusCalls = append(b.statusCalls, r.PathValue("id")+"="+r.URL.Query().Get("status"))
		b.mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	return mux
}

type harness struct {
	t       *testing.T
	backend *fakeBackend
	app     *httptest.Server
	client  *http.Client
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	fb := &fakeBackend{tokens: map[string]string{
		"asha@example.com":  token(t, "asha@example.com", "ROLE_USER"),
		"admin@example.com": token(t, "admin@example.com", "ROLE_ADMIN", "ROLE_USER"),
	}}
	backend := httptest.NewServer(fb.handler())
	t.Cleanup(backend.Close)

	cfg := &config.Config{
		Backend: config.BackendConfig{BaseURL: backend.URL, Timeout: 5 * time.Second},
		Auth:    config.AuthConfig{AdminRole: auth.DefaultAdminRole, DecodeCacheTTL: time.Minute},
	}
	deps, err := NewDependencies(cfg, zap.NewNop())
	require.NoError(t, err)

	// Cookie defaults are Secure and SameSite=None; the jar would never send
	// them back to a plain http test server.
	store := cookie.NewStore([]byte("0123456789abcdef0123456789abcdef"))
	store.Options(sessions.Options{Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode})

	r := gin.New()
	r.Use(sessions.Sessions("claims_session", store))
	Setup(r, deps, zap.NewNop())
	app := httptest.NewServer(r)
	t.Cleanup(app.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return &harness{t: t, backend: fb, app: app, client: client}
}

func (h *harness) get(path string) (*http.Response, string) {
	h.t.Helper()
	resp, err := h.client.Get(h.app.URL + path)
	require.NoError(h.t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(h.t, err)
	return resp, string(body)
}

func (h *harness) post(path string, form url.Values) (*http.Response, string) {
	h.t.Helper()
	resp, err := h.client.PostForm(h.app.URL+path, form)
	require.NoError(h.t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(h.t, err)
	return resp, string(body)
}

func (h *harness) login(email string) *http.Response {
	h.t.Helper()
	resp, _ := h.post("/login", url.Values{"email": {email}, "password": {"secret"}})
	return resp
}

func assertRedirect(t *testing.T, resp *http.Response, location string) {
	t.Helper()
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, location, resp.Header.Get("Location"))
}

func TestRoutes_SignedOut(t *testing.T) {
	h := newHarness(t)

	resp, body := h.get("/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Vehicle damage claims")

	resp, _ = h.get("/login")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = h.get("/new-claim")
	assertRedirect(t, resp, "/login")

	resp, _ = h.get("/claim/5")
	assertRedirect(t, resp, "/login")

	resp, _ = h.get("/admin")
	assertRedirect(t, resp, "/new-claim")

	resp, _ = h.get("/does-not-exist")
	assertRedirect(t, resp, "/")
}

func TestRoutes_UserLogin(t *testing.T) {
	h := newHarness(t)

	assertRedirect(t, h.login("asha@example.com"), "/new-claim")

	appURL, err := url.Parse(h.app.URL)
	require.NoError(t, err)
	require.NotEmpty(t, h.client.Jar.Cookies(appURL), "session cookie must come back on plain http")

	resp, body := h.get("/claims")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Maruti Swift")
	assert.Equal(t, "Bearer "+h.backend.tokens["asha@example.com"], h.backend.authorization())

	resp, _ = h.get("/login")
	assertRedirect(t, resp, "/new-claim")

	resp, _ = h.get("/admin")
	assertRedirect(t, resp, "/new-claim")

	resp, body = h.get("/new-claim")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `id="claim-warning"`, "one previous claim shows the repeat-claim warning")
}

func TestRoutes_AdminLogin(t *testing.T) {
	h := newHarness(t)

	assertRedirect(t, h.login("admin@example.com"), "/admin")

	resp, body := h.get("/admin")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `data-metric="total"`)

	resp, _ = h.get("/")
	assertRedirect(t, resp, "/admin")

	resp, _ = h.get("/new-claim")
	assertRedirect(t, resp, "/login")

	resp, _ = h.post("/admin/claims/5/status", url.Values{"status": {"CLAIM_APPROVED"}})
	assertRedirect(t, resp, "/admin")
	assert.Equal(t, []string{"5=CLAIM_APPROVED"}, h.backend.decisions())

	resp, _ = h.post("/admin/claims/5/status", url.Values{"status": {"DELETED"}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Len(t, h.backend.decisions(), 1)
}

func TestRoutes_InvalidLogin(t *testing.T) {
	h := newHarness(t)

	resp, body := h.post("/login", url.Values{"email": {"asha@example.com"}, "password": {"wrong"}})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "Invalid email or password")

	resp, _ = h.get("/claims")
	assertRedirect(t, resp, "/login")
}

func TestRoutes_LoginBackendFailure(t *testing.T) {
	h := newHarness(t)

	resp, body := h.post("/login", url.Values{"email": {"broken@example.com"}, "password": {"secret"}})
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Contains(t, body, "Authentication service unavailable")
	assert.NotContains(t, body, "Invalid email or password")
}

func TestRoutes_Logout(t *testing.T) {
	h := newHarness(t)
	assertRedirect(t, h.login("asha@example.com"), "/new-claim")

	resp, _ := h.post("/logout", nil)
	assertRedirect(t, resp, "/")

	resp, _ = h.get("/claims")
	assertRedirect(t, resp, "/login")
}

func TestRoutes_RevokedCredentialSignsOut(t *testing.T) {
	h := newHarness(t)
	assertRedirect(t, h.login("asha@example.com"), "/new-claim")

	h.backend.revoke()

	resp, _ := h.get("/claims")
	assertRedirect(t, resp, "/login")

	// The session cookie was cleared, so the guard now turns the user away.
	resp, _ = h.get("/claims")
	assertRedirect(t, resp, "/login")
	resp, _ = h.get("/login")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRoutes_ReportDownload(t *testing.T) {
	h := newHarness(t)
	assertRedirect(t, h.login("asha@example.com"), "/new-claim")

	resp, body := h.get("/claim/5/report.pdf")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "Claim_Report_5.pdf")
	assert.True(t, bytes.HasPrefix([]byte(body), []byte("%PDF-")))

	resp, body = h.get("/claim/5")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Front Bumper")
}

func jpegBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func (h *harness) upload(path, field, filename string, data []byte) (*http.Response, string) {
	h.t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(h.t, err)
	_, err = fw.Write(data)
	require.NoError(h.t, err)
	require.NoError(h.t, mw.Close())

	resp, err := h.client.Post(h.app.URL+path, mw.FormDataContentType(), &body)
	require.NoError(h.t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(h.t, err)
	return resp, string(out)
}

func TestRoutes_IntakeReportDownload(t *testing.T) {
	h := newHarness(t)
	assertRedirect(t, h.login("asha@example.com"), "/new-claim")

	resp, _ := h.post("/new-claim", url.Values{
		"vehicleRegistrationNumber": {"KA01AB1234"},
		"vehicleMakeModel":          {"Honda City"},
		"firstName":                 {"Asha"},
		"lastName":                  {"Rao"},
		"policyNumber":              {"POL-1"},
	})
	assertRedirect(t, resp, "/new-claim/7/upload")

	resp, body := h.upload("/new-claim/7/estimate", "image", "car.jpg", jpegBytes(t))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `href="/new-claim/7/report.pdf"`)

	resp, body = h.get("/new-claim/7/report.pdf")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "Claim_Report_7.pdf")
	assert.True(t, bytes.HasPrefix([]byte(body), []byte("%PDF-")))

	// Without a fresh estimate the stored claim's report is served instead.
	resp, _ = h.get("/new-claim/5/report.pdf")
	assertRedirect(t, resp, "/claim/5/report.pdf")
}
