package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"floreria/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "secreto-de-prueba"

func firmarToken(t *testing.T, rol string, secret string, exp time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": "9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d",
		"email":   "ana@example.com",
		"rol":     rol,
		"exp":     exp.Unix(),
		"iat":     time.Now().Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func protegido(roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	grupo := r.Group("/", middleware.JWTAuth(testSecret))
	if len(roles) > 0 {
		grupo.Use(middleware.RequireRole(roles...))
	}
	grupo.GET("/recurso", func(c *gin.Context) {
		claims := middleware.GetClaims(c)
		c.JSON(http.StatusOK, gin.H{"rol": claims.Rol})
	})
	return r
}

func hacerRequest(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/recurso", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuth_SinToken(t *testing.T) {
	w := hacerRequest(protegido(), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_TokenValido(t *testing.T) {
	token := firmarToken(t, "admin", testSecret, time.Now().Add(time.Hour))
	w := hacerRequest(protegido(), token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"rol":"admin"`)
}

func TestJWTAuth_TokenExpirado(t *testing.T) {
	token := firmarToken(t, "admin", testSecret, time.Now().Add(-time.Hour))
	w := hacerRequest(protegido(), token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_FirmaIncorrecta(t *testing.T) {
	token := firmarToken(t, "admin", "otro-secreto", time.Now().Add(time.Hour))
	w := hacerRequest(protegido(), token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole(t *testing.T) {
	r := protegido("admin", "supervisor")

	staff := firmarToken(t, "supervisor", testSecret, time.Now().Add(time.Hour))
	assert.Equal(t, http.StatusOK, hacerRequest(r, staff).Code)

	cliente := firmarToken(t, "cliente", testSecret, time.Now().Add(time.Hour))
	assert.Equal(t, http.StatusForbidden, hacerRequest(r, cliente).Code)
}
