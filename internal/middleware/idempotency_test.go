package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestIdempotency(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(calls *int) (*gin.Engine, redismock.ClientMock) {
		rdb, mock := redismock.NewClientMock()
		r := gin.New()
		r.POST("/items",
			func(c *gin.Context) { c.Set("user_id", "u-1"); c.Next() },
			Idempotency(rdb, zap.NewNop()),
			func(c *gin.Context) {
				*calls++
				c.JSON(http.StatusCreated, gin.H{"ok": true})
			},
		)
		return r, mock
	}

	t.Run("success first request caches response", func(t *testing.T) {
		var calls int
		r, mock := newRouter(&calls)

		key := IdempotencyKey("/items", "u-1", "k-1")
		mock.ExpectGet(key).RedisNil()
		mock.ExpectSetNX(key+":lock", "locked", idempotencyLockTTL).SetVal(true)
		payload, _ := json.Marshal(cachedResponse{Status: http.StatusCreated, Body: json.RawMessage(`{"ok":true}`)})
		mock.ExpectSet(key, payload, idempotencyCacheTTL).SetVal("OK")
		mock.ExpectDel(key + ":lock").SetVal(1)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/items", nil)
		req.Header.Set("Idempotency-Key", "k-1")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success replay skips handler", func(t *testing.T) {
		var calls int
		r, mock := newRouter(&calls)

		key := IdempotencyKey("/items", "u-1", "k-2")
		payload, _ := json.Marshal(cachedResponse{Status: http.StatusCreated, Body: json.RawMessage(`{"ok":true}`)})
		mock.ExpectGet(key).SetVal(string(payload))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/items", nil)
		req.Header.Set("Idempotency-Key", "k-2")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t, `{"ok":true}`, w.Body.String())
		assert.Equal(t, 0, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative concurrent duplicate", func(t *testing.T) {
		var calls int
		r, mock := newRouter(&calls)

		key := IdempotencyKey("/items", "u-1", "k-3")
		mock.ExpectGet(key).RedisNil()
		mock.ExpectSetNX(key+":lock", "locked", idempotencyLockTTL).SetVal(false)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/items", nil)
		req.Header.Set("Idempotency-Key", "k-3")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, 0, calls)
	})

	t.Run("no key passes through", func(t *testing.T) {
		var calls int
		r, mock := newRouter(&calls)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/items", nil))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
