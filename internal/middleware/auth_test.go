package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/budgetly/expense-tracker/config"
	"github.com/budgetly/expense-tracker/internal/constants"
	apperrors "github.com/budgetly/expense-tracker/internal/errors"
	"github.com/budgetly/expense-tracker/internal/token"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const (
	testAccessSecret  = "gate-test-access-secret"
	testRefreshSecret = "gate-test-refresh-secret"
)

func gateTestEngine(t *testing.T) (*gin.Engine, *token.Issuer) {
	t.Helper()

	codec, err := token.NewCodec("HS256")
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	issuer := token.NewIssuer(codec, &config.AuthConfig{
		AccessSecret:     testAccessSecret,
		RefreshSecret:    testRefreshSecret,
		SigningAlgorithm: "HS256",
		AccessTTL:        15 * time.Minute,
		RefreshTTL:       7 * 24 * time.Hour,
	})

	engine := gin.New()
	engine.Use(NewAuthGate(issuer).Handler())
	engine.POST(constants.LoginPath, func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	engine.GET("/api/v1/expenses", func(c *gin.Context) {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			c.String(http.StatusInternalServerError, "no claims in context")
			return
		}
		c.String(http.StatusOK, claims.Subject)
	})
	engine.OPTIONS("/api/v1/expenses", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return engine, issuer
}

func responseMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response %q: %v", w.Body.String(), err)
	}
	return body.Message
}

func TestAuthGate_PublicPathPassesWithoutCookie(t *testing.T) {
	engine, _ := gateTestEngine(t)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, constants.LoginPath, nil))

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestAuthGate_PreflightPassesWithoutCookie(t *testing.T) {
	engine, _ := gateTestEngine(t)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/api/v1/expenses", nil))

	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNoContent)
	}
}

func TestAuthGate_MissingCookie(t *testing.T) {
	engine, _ := gateTestEngine(t)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/expenses", nil))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
	if got := responseMessage(t, w); got != apperrors.ErrTokenMissing.Message {
		t.Errorf("message = %q, want %q", got, apperrors.ErrTokenMissing.Message)
	}
}

func TestAuthGate_RejectsBadTokens(t *testing.T) {
	engine, issuer := gateTestEngine(t)

	codec, err := token.NewCodec("HS256")
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	expired, err := codec.Encode("42", -time.Minute, testAccessSecret)
	if err != nil {
		t.Fatalf("Encode expired: %v", err)
	}
	refresh, err := issuer.IssueRefresh("42")
	if err != nil {
		t.Fatalf("IssueRefresh: %v", err)
	}
	emptySubject, err := codec.Encode("", time.Minute, testAccessSecret)
	if err != nil {
		t.Fatalf("Encode empty subject: %v", err)
	}

	tests := []struct {
		name        string
		cookieValue string
		wantMessage string
	}{
		{"garbage", "not.a.token", apperrors.ErrTokenInvalid.Message},
		{"expired", expired, apperrors.ErrTokenInvalid.Message},
		{"wrong class", refresh, apperrors.ErrTokenInvalid.Message},
		{"empty subject", emptySubject, apperrors.ErrTokenEmpty.Message},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/expenses", nil)
			req.AddCookie(&http.Cookie{Name: constants.AccessTokenCookie, Value: tt.cookieValue})

			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want %d", w.Code, http.StatusUnauthorized)
			}
			if got := responseMessage(t, w); got != tt.wantMessage {
				t.Errorf("message = %q, want %q", got, tt.wantMessage)
			}
		})
	}
}

func TestAuthGate_ValidTokenReachesHandler(t *testing.T) {
	engine, issuer := gateTestEngine(t)

	access, err := issuer.IssueAccess("42")
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/expenses", nil)
	req.AddCookie(&http.Cookie{Name: constants.AccessTokenCookie, Value: access})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body %q", w.Code, http.StatusOK, w.Body.String())
	}
	if w.Body.String() != "42" {
		t.Errorf("handler saw subject %q, want %q", w.Body.String(), "42")
	}
}
