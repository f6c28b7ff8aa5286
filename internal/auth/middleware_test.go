package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestUserIDFromContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	assert.Equal(t, int64(0), UserIDFromContext(c))

	c.Set(contextKeyUserID, int64(7))
	assert.Equal(t, int64(7), UserIDFromContext(c))

	c.Set(contextKeyUserID, "not an id")
	assert.Equal(t, int64(0), UserIDFromContext(c))
}

func TestRequireSessionMissingCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	// Store is never touched when the cookie is absent.
	r.GET("/protected", RequireSession(nil), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
