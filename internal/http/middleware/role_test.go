package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func roleRouter(allowed ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/probe", func(c *gin.Context) {
		if role := c.GetHeader("X-Test-Role"); role != "" {
			c.Set(userRoleKey, role)
		}
		c.Next()
	}, RequireRoles(allowed...), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestRequireRolesAllows(t *testing.T) {
	r := roleRouter("Administrator")

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("X-Test-Role", "Administrator")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestRequireRolesDenies(t *testing.T) {
	r := roleRouter("Administrator")

	for _, role := range []string{"Passenger", "Driver", ""} {
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		if role != "" {
			req.Header.Set("X-Test-Role", role)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusForbidden {
			t.Fatalf("role %q: status = %d, want 403", role, w.Code)
		}
	}
}
