package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/BitVault/BitVault-Backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResolver struct {
	accountID uuid.UUID
	err       error
}

func (f *fakeResolver) Resolve(token string) (uuid.UUID, error) {
	if f.err != nil {
		return uuid.Nil, f.err
	}
	return f.accountID, nil
}

func newAuthTestRouter(t *testing.T, resolver IdentityResolver) (*gin.Engine, *uuid.UUID) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	previous := IdentityController
	IdentityController = resolver
	t.Cleanup(func() { IdentityController = previous })

	var seen uuid.UUID
	router := gin.New()
	router.GET("/protected", AuthenticatedMiddleware(), func(ctx *gin.Context) {
		accountID, err := utils.GetActiveAccount(ctx)
		require.NoError(t, err)
		seen = accountID
		ctx.Status(http.StatusOK)
	})
	return router, &seen
}

func TestAuthenticatedMiddleware(t *testing.T) {
	accountID := uuid.New()

	tests := []struct {
		name       string
		header     string
		resolver   IdentityResolver
		wantStatus int
	}{
		{"missing header", "", &fakeResolver{accountID: accountID}, http.StatusUnauthorized},
		{"not a bearer token", "Basic abc123", &fakeResolver{accountID: accountID}, http.StatusUnauthorized},
		{"resolver rejects token", "Bearer bad-token", &fakeResolver{err: fmt.Errorf("token authentication failed")}, http.StatusUnauthorized},
		{"valid token", "Bearer good-token", &fakeResolver{accountID: accountID}, http.StatusOK},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			router, seen := newAuthTestRouter(t, tc.resolver)

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tc.wantStatus, w.Code)
			if tc.wantStatus == http.StatusOK {
				assert.Equal(t, accountID, *seen)
			}
		})
	}
}

func TestCORSMiddlewarePreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(CORSMiddleware())
	router.POST("/anything", func(ctx *gin.Context) { ctx.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/anything", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
