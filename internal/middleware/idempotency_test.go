package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func TestIdempotency_NoKeyPassesThrough(t *testing.T) {
	db, _ := redismock.NewClientMock()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/pay", Idempotency(db), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"applied": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/pay", strings.NewReader(`{}`))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestIdempotency_CachedResponseReplayed(t *testing.T) {
	db, mock := redismock.NewClientMock()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/pay", Idempotency(db), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"applied": true})
	})

	mock.ExpectGet("idemp:/pay::abc").SetVal(`{"applied":true}`)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/pay", strings.NewReader(`{}`))
	req.Header.Set("Idempotency-Key", "abc")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"applied":true`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_ConcurrentDuplicateRejected(t *testing.T) {
	db, mock := redismock.NewClientMock()
	gin.SetMode(gin.TestMode)

	handlerRan := false
	r := gin.New()
	r.POST("/pay", Idempotency(db), func(c *gin.Context) {
		handlerRan = true
		c.JSON(http.StatusOK, gin.H{"applied": true})
	})

	mock.ExpectGet("idemp:/pay::abc").RedisNil()
	mock.ExpectSetNX("idemp:/pay::abc:lock", "locked", 30*time.Second).SetVal(false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/pay", strings.NewReader(`{}`))
	req.Header.Set("Idempotency-Key", "abc")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.False(t, handlerRan)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_FirstRequestAcquiresLock(t *testing.T) {
	db, mock := redismock.NewClientMock()
	gin.SetMode(gin.TestMode)

	var lockKey, cacheKey string
	r := gin.New()
	r.POST("/pay", Idempotency(db), func(c *gin.Context) {
		lockKey = c.GetString("idempotency_lock_key")
		cacheKey = c.GetString("idempotency_cache_key")
		c.JSON(http.StatusOK, gin.H{"applied": true})
	})

	mock.ExpectGet("idemp:/pay::abc").RedisNil()
	mock.ExpectSetNX("idemp:/pay::abc:lock", "locked", 30*time.Second).SetVal(true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/pay", strings.NewReader(`{}`))
	req.Header.Set("Idempotency-Key", "abc")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "idemp:/pay::abc", cacheKey)
	assert.Equal(t, "idemp:/pay::abc:lock", lockKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}
