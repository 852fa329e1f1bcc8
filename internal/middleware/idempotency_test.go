package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func TestIdempotency_ReplaysCachedResponse(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rdb, mock := redismock.NewClientMock()

	executed := false
	router := gin.New()
	router.POST("/pay",
		func(c *gin.Context) { c.Set("company_id", "c1") },
		Idempotency(rdb),
		func(c *gin.Context) {
			executed = true
			c.JSON(http.StatusCreated, gin.H{"ok": true, "data": "fresh"})
		},
	)

	cacheKey := "idemp:/pay:c1:key-1"
	mock.ExpectGet(cacheKey).SetVal(`{"batch_no":"SAL-202403-00001"}`)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/pay", nil)
	req.Header.Set("Idempotency-Key", "key-1")
	router.ServeHTTP(w, req)

	assert.False(t, executed)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "SAL-202403-00001")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_CorruptCacheEntryFallsThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rdb, mock := redismock.NewClientMock()

	executed := false
	router := gin.New()
	router.POST("/pay",
		func(c *gin.Context) { c.Set("company_id", "c1") },
		Idempotency(rdb),
		func(c *gin.Context) {
			executed = true
			c.JSON(http.StatusCreated, gin.H{"ok": true, "data": "fresh"})
		},
	)

	cacheKey := "idemp:/pay:c1:key-1"
	mock.ExpectGet(cacheKey).SetVal("{not json")
	mock.ExpectSetNX(cacheKey+":lock", "locked", 30*time.Second).SetVal(true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/pay", nil)
	req.Header.Set("Idempotency-Key", "key-1")
	router.ServeHTTP(w, req)

	assert.True(t, executed)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "fresh")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_ConcurrentDuplicateRejected(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rdb, mock := redismock.NewClientMock()

	executed := false
	router := gin.New()
	router.POST("/pay",
		func(c *gin.Context) { c.Set("company_id", "c1") },
		Idempotency(rdb),
		func(c *gin.Context) { executed = true },
	)

	cacheKey := "idemp:/pay:c1:key-1"
	mock.ExpectGet(cacheKey).RedisNil()
	mock.ExpectSetNX(cacheKey+":lock", "locked", 30*time.Second).SetVal(false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/pay", nil)
	req.Header.Set("Idempotency-Key", "key-1")
	router.ServeHTTP(w, req)

	assert.False(t, executed)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "PROCESSING")
	assert.NoError(t, mock.ExpectationsWereMet())
}
