package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/budgetly/expense-tracker/config"
	"github.com/budgetly/expense-tracker/internal/constants"
	apperrors "github.com/budgetly/expense-tracker/internal/errors"
	"github.com/budgetly/expense-tracker/internal/middleware"
	"github.com/budgetly/expense-tracker/internal/model"
	"github.com/budgetly/expense-tracker/internal/service"
	"github.com/budgetly/expense-tracker/internal/session"
	"github.com/budgetly/expense-tracker/internal/token"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// memoryUserStore backs the auth service in handler tests; it follows the
// repository's gorm.ErrRecordNotFound contract.
type memoryUserStore struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]*model.User
}

func newMemoryUserStore() *memoryUserStore {
	return &memoryUserStore{users: make(map[uint]*model.User)}
}

func (s *memoryUserStore) Create(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	user.ID = s.nextID
	stored := *user
	s.users[user.ID] = &stored
	return nil
}

func (s *memoryUserStore) GetByID(_ context.Context, id uint) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *memoryUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *memoryUserStore) RecordRefreshToken(_ context.Context, id uint, refreshToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user.RefreshToken = refreshToken
	return nil
}

func (s *memoryUserStore) ClearRefreshToken(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user.RefreshToken = ""
	return nil
}

// newAuthTestEngine wires the full credential path: handler, service, gate and
// cookie transport, with only persistence faked.
func newAuthTestEngine(t *testing.T) *gin.Engine {
	t.Helper()

	authCfg := &config.AuthConfig{
		AccessSecret:     "handler-test-access-secret",
		RefreshSecret:    "handler-test-refresh-secret",
		SigningAlgorithm: "HS256",
		AccessTTL:        15 * time.Minute,
		RefreshTTL:       7 * 24 * time.Hour,
	}
	cfg := &config.Config{
		App:  config.AppConfig{Environment: "production"},
		Auth: *authCfg,
	}

	codec, err := token.NewCodec(authCfg.SigningAlgorithm)
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	issuer := token.NewIssuer(codec, authCfg)
	cookies := session.NewCookieManager(cfg)
	authService := service.NewAuthService(newMemoryUserStore(), issuer)
	authHandler := NewAuthHandler(authService, cookies, authCfg)

	engine := gin.New()
	engine.Use(middleware.NewAuthGate(issuer).Handler())

	auth := engine.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/logout", authHandler.Logout)
	}

	engine.GET("/api/v1/whoami", func(c *gin.Context) {
		claims, ok := middleware.ClaimsFromContext(c)
		if !ok {
			c.String(http.StatusInternalServerError, "no claims in context")
			return
		}
		c.String(http.StatusOK, claims.Subject)
	})

	return engine
}

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var body envelope
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response %q: %v", w.Body.String(), err)
	}
	return body
}

// cookieJar carries credential cookies between requests the way a browser
// would, honoring deletions.
type cookieJar map[string]*http.Cookie

func (j cookieJar) update(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()
	response := http.Response{Header: w.Header()}
	for _, cookie := range response.Cookies() {
		if cookie.MaxAge < 0 {
			delete(j, cookie.Name)
			continue
		}
		j[cookie.Name] = cookie
	}
}

func (j cookieJar) do(engine *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, cookie := range j {
		req.AddCookie(&http.Cookie{Name: cookie.Name, Value: cookie.Value})
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestAuthFlow(t *testing.T) {
	engine := newAuthTestEngine(t)
	jar := make(cookieJar)

	// Register
	w := jar.do(engine, http.MethodPost, constants.RegisterPath,
		`{"name":"Ada","email":"ada@example.com","password":"correct-horse"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("register status = %d, body %q", w.Code, w.Body.String())
	}
	if got := decodeEnvelope(t, w).Message; got != "Registered successfully" {
		t.Errorf("register message = %q", got)
	}

	// Login delivers both cookies
	w = jar.do(engine, http.MethodPost, constants.LoginPath,
		`{"email":"ada@example.com","password":"correct-horse"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %q", w.Code, w.Body.String())
	}
	jar.update(t, w)
	if _, ok := jar[constants.AccessTokenCookie]; !ok {
		t.Fatal("login did not set the access cookie")
	}
	refresh, ok := jar[constants.RefreshTokenCookie]
	if !ok {
		t.Fatal("login did not set the refresh cookie")
	}
	if refresh.Path != constants.RefreshTokenPath {
		t.Errorf("refresh cookie path = %q, want %q", refresh.Path, constants.RefreshTokenPath)
	}

	// Access cookie opens protected routes
	w = jar.do(engine, http.MethodGet, "/api/v1/whoami", "")
	if w.Code != http.StatusOK {
		t.Fatalf("whoami status = %d, body %q", w.Code, w.Body.String())
	}
	if w.Body.String() != "1" {
		t.Errorf("whoami subject = %q, want %q", w.Body.String(), "1")
	}

	// Refresh replaces the access cookie
	previousAccess := jar[constants.AccessTokenCookie].Value
	w = jar.do(engine, http.MethodPost, constants.RefreshPath, "")
	if w.Code != http.StatusOK {
		t.Fatalf("refresh status = %d, body %q", w.Code, w.Body.String())
	}
	jar.update(t, w)
	if jar[constants.AccessTokenCookie] == nil {
		t.Fatal("refresh did not set a new access cookie")
	}
	if jar[constants.AccessTokenCookie].Value == previousAccess {
		// Same-second issuance can produce an identical token; the cookie
		// must still be a valid access credential.
		t.Log("refresh returned an identical access token")
	}
	w = jar.do(engine, http.MethodGet, "/api/v1/whoami", "")
	if w.Code != http.StatusOK {
		t.Fatalf("whoami after refresh status = %d, body %q", w.Code, w.Body.String())
	}

	// Logout clears both cookies
	revokedRefresh := jar[constants.RefreshTokenCookie].Value
	w = jar.do(engine, http.MethodPost, constants.LogoutPath, "")
	if w.Code != http.StatusOK {
		t.Fatalf("logout status = %d, body %q", w.Code, w.Body.String())
	}
	jar.update(t, w)
	if _, ok := jar[constants.AccessTokenCookie]; ok {
		t.Error("logout left the access cookie in place")
	}
	if _, ok := jar[constants.RefreshTokenCookie]; ok {
		t.Error("logout left the refresh cookie in place")
	}

	// The revoked refresh token no longer mints access tokens
	jar[constants.RefreshTokenCookie] = &http.Cookie{
		Name:  constants.RefreshTokenCookie,
		Value: revokedRefresh,
	}
	w = jar.do(engine, http.MethodPost, constants.RefreshPath, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("refresh after logout status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
	if got := decodeEnvelope(t, w).Message; got != apperrors.ErrTokenRevoked.Message {
		t.Errorf("refresh after logout message = %q, want %q", got, apperrors.ErrTokenRevoked.Message)
	}
}

func TestAuthHandler_RegisterValidation(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantMessage string
	}{
		{
			"short password",
			`{"name":"Ada","email":"ada@example.com","password":"short"}`,
			"password must be at least 8 characters long",
		},
		{
			"bad email",
			`{"name":"Ada","email":"not-an-email","password":"correct-horse"}`,
			"email must be a valid email address",
		},
		{
			"missing name",
			`{"email":"ada@example.com","password":"correct-horse"}`,
			"name is required",
		},
		{
			"not json",
			`not json at all`,
			"invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := newAuthTestEngine(t)
			jar := make(cookieJar)

			w := jar.do(engine, http.MethodPost, constants.RegisterPath, tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d; body %q", w.Code, http.StatusBadRequest, w.Body.String())
			}
			if got := decodeEnvelope(t, w).Message; got != tt.wantMessage {
				t.Errorf("message = %q, want %q", got, tt.wantMessage)
			}
		})
	}
}

func TestAuthHandler_DuplicateRegistration(t *testing.T) {
	engine := newAuthTestEngine(t)
	jar := make(cookieJar)

	body := `{"name":"Ada","email":"ada@example.com","password":"correct-horse"}`
	if w := jar.do(engine, http.MethodPost, constants.RegisterPath, body); w.Code != http.StatusOK {
		t.Fatalf("first register status = %d", w.Code)
	}

	w := jar.do(engine, http.MethodPost, constants.RegisterPath, body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate register status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if got := decodeEnvelope(t, w).Message; got != apperrors.ErrEmailExists.Message {
		t.Errorf("message = %q, want %q", got, apperrors.ErrEmailExists.Message)
	}
}

func TestAuthHandler_LoginRejectsWrongPassword(t *testing.T) {
	engine := newAuthTestEngine(t)
	jar := make(cookieJar)

	if w := jar.do(engine, http.MethodPost, constants.RegisterPath,
		`{"name":"Ada","email":"ada@example.com","password":"correct-horse"}`); w.Code != http.StatusOK {
		t.Fatalf("register status = %d", w.Code)
	}

	w := jar.do(engine, http.MethodPost, constants.LoginPath,
		`{"email":"ada@example.com","password":"wrong-pass"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("login status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
	if got := decodeEnvelope(t, w).Message; got != apperrors.ErrInvalidCredentials.Message {
		t.Errorf("message = %q, want %q", got, apperrors.ErrInvalidCredentials.Message)
	}
	response := http.Response{Header: w.Header()}
	if len(response.Cookies()) != 0 {
		t.Error("failed login wrote credential cookies")
	}
}

func TestAuthHandler_RefreshWithoutCookie(t *testing.T) {
	engine := newAuthTestEngine(t)
	jar := make(cookieJar)

	w := jar.do(engine, http.MethodPost, constants.RefreshPath, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
	if got := decodeEnvelope(t, w).Message; got != apperrors.ErrTokenMissing.Message {
		t.Errorf("message = %q, want %q", got, apperrors.ErrTokenMissing.Message)
	}
}

func TestAuthHandler_RefreshWithGarbageClearsCookie(t *testing.T) {
	engine := newAuthTestEngine(t)
	jar := make(cookieJar)
	jar[constants.RefreshTokenCookie] = &http.Cookie{
		Name:  constants.RefreshTokenCookie,
		Value: "not.a.token",
	}

	w := jar.do(engine, http.MethodPost, constants.RefreshPath, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}

	jar.update(t, w)
	if _, ok := jar[constants.RefreshTokenCookie]; ok {
		t.Error("rejected refresh left the refresh cookie in place")
	}
}

func TestAuthHandler_LogoutWithoutSession(t *testing.T) {
	engine := newAuthTestEngine(t)
	jar := make(cookieJar)

	// Logout with no cookies at all still succeeds and clears.
	w := jar.do(engine, http.MethodPost, constants.LogoutPath, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if got := decodeEnvelope(t, w).Message; got != "Logout successfully" {
		t.Errorf("message = %q", got)
	}
}
