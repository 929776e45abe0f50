package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func identityEcho(c *gin.Context) {
	uid, err := UserID(c.Request.Context())
	if err != nil {
		c.Status(500)
		return
	}
	c.String(200, uid)
}

func TestRequireAccessToken_BearerHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := testManager(t)

	pair, err := m.IssuePair(time.Now(), "user-1", "practice-1", "nutritionist")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	r := gin.New()
	r.GET("/x", RequireAccessToken(m), identityEcho)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(authorizationHeader, bearerPrefix+pair.AccessToken)
	r.ServeHTTP(w, req)
	if w.Code != 200 || w.Body.String() != "user-1" {
		t.Fatalf("expected 200/user-1, got %d/%q", w.Code, w.Body.String())
	}
}

func TestRequireAccessToken_QueryParamForWebsocket(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := testManager(t)

	pair, err := m.IssuePair(time.Now(), "user-1", "practice-1", "client")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	r := gin.New()
	r.GET("/ws", RequireAccessToken(m), identityEcho)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ws?access_token="+pair.AccessToken, nil)
	r.ServeHTTP(w, req)
	if w.Code != 200 {
		t.Fatalf("expected 200 via query token, got %d", w.Code)
	}
}

func TestRequireAccessToken_MissingOrBadToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := testManager(t)

	r := gin.New()
	r.GET("/x", RequireAccessToken(m), identityEcho)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	if w.Code != 401 {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(authorizationHeader, bearerPrefix+"not-a-token")
	r.ServeHTTP(w, req)
	if w.Code != 401 {
		t.Fatalf("expected 401 for garbage token, got %d", w.Code)
	}
}
