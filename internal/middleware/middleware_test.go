package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DhavalSuthar-24/pitchside/internal/common"
	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"
)

type staticProvider map[string]common.Principal

func (s staticProvider) Authenticate(_ context.Context, credential string) (common.Principal, error) {
	p, ok := s[credential]
	if !ok {
		return common.Principal{}, errors.New("unknown credential")
	}
	return p, nil
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers = append(handlers, func(c *gin.Context) {
		p, _ := common.GetPrincipal(c)
		c.JSON(http.StatusOK, gin.H{"user_id": p.UserID, "request_id": common.GetRequestID(c)})
	})
	r.GET("/whoami", handlers...)
	return r
}

func serve(r *gin.Engine, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	idp := staticProvider{
		"good":  {UserID: "u-1"},
		"empty": {},
	}
	r := newRouter(AuthMiddleware(idp))

	tests := []struct {
		name   string
		header string
		status int
		user   string
	}{
		{name: "missing header", status: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic good", status: http.StatusUnauthorized},
		{name: "extra parts", header: "Bearer good extra", status: http.StatusUnauthorized},
		{name: "unknown credential", header: "Bearer nope", status: http.StatusUnauthorized},
		{name: "principal without user", header: "Bearer empty", status: http.StatusUnauthorized},
		{name: "valid", header: "Bearer good", status: http.StatusOK, user: "u-1"},
		{name: "scheme is case insensitive", header: "bearer good", status: http.StatusOK, user: "u-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := map[string]string{}
			if tt.header != "" {
				h["Authorization"] = tt.header
			}
			w := serve(r, h)
			assert.Equal(t, tt.status, w.Code)
			if tt.user != "" {
				assert.Equal(t, tt.user, gjson.Get(w.Body.String(), "user_id").String())
			}
		})
	}
}

func TestOptionalAuthMiddleware(t *testing.T) {
	r := newRouter(OptionalAuthMiddleware(staticProvider{"good": {UserID: "u-1"}}))

	w := serve(r, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, gjson.Get(w.Body.String(), "user_id").String())

	w = serve(r, map[string]string{"Authorization": "Bearer good"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u-1", gjson.Get(w.Body.String(), "user_id").String())

	w = serve(r, map[string]string{"Authorization": "Bearer stale"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequestID(t *testing.T) {
	r := newRouter(RequestID(), RequestLogger(hclog.NewNullLogger()))

	w := serve(r, map[string]string{RequestIDHeader: "req-42"})
	assert.Equal(t, "req-42", w.Header().Get(RequestIDHeader))
	assert.Equal(t, "req-42", gjson.Get(w.Body.String(), "request_id").String())

	w = serve(r, nil)
	generated := w.Header().Get(RequestIDHeader)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, gjson.Get(w.Body.String(), "request_id").String())
}
