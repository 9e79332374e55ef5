package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitai/internal/models/db_models"
	"fitai/pkg/utils"
)

type stubChecker struct {
	err         error
	gotUser     uuid.UUID
	gotCategory db_models.UsageCategory
	timesCalled int
}

func (s *stubChecker) Check(_ context.Context, userID uuid.UUID, category db_models.UsageCategory) error {
	s.timesCalled++
	s.gotUser = userID
	s.gotCategory = category
	return s.err
}

func newGatedRouter(checker *stubChecker, tokens *utils.TokenManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/gated",
		JWTAuthMiddleware(tokens),
		CheckUsageLimit(checker, db_models.CategoryAIChat),
		func(c *gin.Context) {
			utils.RespondSuccess(c, nil, "ok")
		})
	return r
}

func TestGatedRouteRejectsMissingToken(t *testing.T) {
	tokens := utils.NewTokenManager("secret", "refresh", time.Minute, time.Hour)
	checker := &stubChecker{}
	r := newGatedRouter(checker, tokens)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/gated", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, checker.timesCalled)
}

func TestGatedRoutePassesWhenQuotaAvailable(t *testing.T) {
	tokens := utils.NewTokenManager("secret", "refresh", time.Minute, time.Hour)
	checker := &stubChecker{}
	r := newGatedRouter(checker, tokens)

	userID := uuid.New()
	token, err := tokens.CreateToken(userID, "")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/gated", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, checker.timesCalled)
	assert.Equal(t, userID, checker.gotUser)
	assert.Equal(t, db_models.CategoryAIChat, checker.gotCategory)
}

func TestGatedRouteReturnsQuotaDetailsOn403(t *testing.T) {
	tokens := utils.NewTokenManager("secret", "refresh", time.Minute, time.Hour)
	checker := &stubChecker{err: utils.NewAPIErrorWithDetails(http.StatusForbidden, "Usage limit exceeded", gin.H{
		"limitType":       "ai_chat_count",
		"currentUsage":    3,
		"maxLimit":        3,
		"plan":            "limited_free",
		"upgradeRequired": true,
	})}
	r := newGatedRouter(checker, tokens)

	token, err := tokens.CreateToken(uuid.New(), "")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/gated", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	details := body["details"].(map[string]interface{})
	assert.Equal(t, "limited_free", details["plan"])
	assert.Equal(t, float64(3), details["currentUsage"])
	assert.Equal(t, true, details["upgradeRequired"])
}

func TestGatedRouteRejectsBadToken(t *testing.T) {
	tokens := utils.NewTokenManager("secret", "refresh", time.Minute, time.Hour)
	other := utils.NewTokenManager("other-secret", "refresh", time.Minute, time.Hour)
	checker := &stubChecker{}
	r := newGatedRouter(checker, tokens)

	token, err := other.CreateToken(uuid.New(), "")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/gated", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, checker.timesCalled)
}
