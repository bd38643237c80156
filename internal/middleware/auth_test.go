package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"speakerbook/internal/token"
)

func newTestRouter(t *testing.T, mgr *token.Manager, role token.Role) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/protected", Auth(mgr), RequireRole(role), func(c *gin.Context) {
		identity, _ := IdentityFrom(c)
		c.JSON(http.StatusOK, gin.H{"id": identity.ID, "role": identity.Role})
	})
	return r
}

func request(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuth_NoHeader(t *testing.T) {
	mgr := token.NewManager([]byte("secret"), time.Hour)
	r := newTestRouter(t, mgr, token.RoleLearner)

	w := request(r, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuth_MalformedHeader(t *testing.T) {
	mgr := token.NewManager([]byte("secret"), time.Hour)
	tok, err := mgr.Issue(token.Identity{Role: token.RoleLearner, ID: 1})
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	r := newTestRouter(t, mgr, token.RoleLearner)

	cases := []struct {
		name   string
		header string
	}{
		{"no scheme", tok},
		{"wrong scheme", "Token " + tok},
		{"lowercase bearer", "bearer " + tok},
		{"empty token", "Bearer "},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := request(r, tc.header)
			if w.Code != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d", w.Code)
			}
		})
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	mgr := token.NewManager([]byte("secret"), time.Hour)
	other := token.NewManager([]byte("other-secret"), time.Hour)

	tok, err := other.Issue(token.Identity{Role: token.RoleLearner, ID: 1})
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	r := newTestRouter(t, mgr, token.RoleLearner)
	w := request(r, "Bearer "+tok)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	issuer := token.NewManager([]byte("secret"), -time.Minute)
	mgr := token.NewManager([]byte("secret"), time.Hour)

	tok, err := issuer.Issue(token.Identity{Role: token.RoleLearner, ID: 1})
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	r := newTestRouter(t, mgr, token.RoleLearner)
	w := request(r, "Bearer "+tok)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestRequireRole_CrossRoleRejected(t *testing.T) {
	mgr := token.NewManager([]byte("secret"), time.Hour)

	learnerTok, err := mgr.Issue(token.Identity{Role: token.RoleLearner, ID: 1})
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	speakerTok, err := mgr.Issue(token.Identity{Role: token.RoleSpeaker, ID: 2})
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	speakerOnly := newTestRouter(t, mgr, token.RoleSpeaker)
	learnerOnly := newTestRouter(t, mgr, token.RoleLearner)

	if w := request(speakerOnly, "Bearer "+learnerTok); w.Code != http.StatusForbidden {
		t.Errorf("learner token on speaker route: expected 403, got %d", w.Code)
	}
	if w := request(learnerOnly, "Bearer "+speakerTok); w.Code != http.StatusForbidden {
		t.Errorf("speaker token on learner route: expected 403, got %d", w.Code)
	}
}

func TestRequireRole_MatchingRoleAllowed(t *testing.T) {
	mgr := token.NewManager([]byte("secret"), time.Hour)

	tok, err := mgr.Issue(token.Identity{Role: token.RoleSpeaker, ID: 9})
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	r := newTestRouter(t, mgr, token.RoleSpeaker)
	w := request(r, "Bearer "+tok)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}
