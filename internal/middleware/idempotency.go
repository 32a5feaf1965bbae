package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	middlewareerrors "hris-payroll/internal/middleware/errors"
	"hris-payroll/internal/shared/contextutil"
	"hris-payroll/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const IdempotencyHeader = "Idempotency-Key"

// IdempotencyKeys returns the cache and lock keys for one caller's request.
func IdempotencyKeys(path, userID, key string) (cacheKey, lockKey string) {
	cacheKey = fmt.Sprintf("idemp:%s:%s:%s", path, userID, key)
	return cacheKey, cacheKey + ":lock"
}

const idempotencyTTL = 24 * time.Hour

// IdempotentResponse is what a handler stores so a repeated request gets the
// same status and body as the first one.
type IdempotentResponse struct {
	Status int             `json:"status"`
	Data   json.RawMessage `json:"data"`
}

// StoreIdempotentResponse caches data under cacheKey for later replay.
func StoreIdempotentResponse(ctx context.Context, rdb *redis.Client, cacheKey string, status int, data any) error {
	body, err := json.Marshal(data)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(IdempotentResponse{Status: status, Data: body})
	if err != nil {
		return err
	}
	return rdb.Set(ctx, cacheKey, string(payload), idempotencyTTL).Err()
}

// Idempotency replays a cached response for a repeated Idempotency-Key and
// rejects a duplicate while the first request is still running. The handler
// stores its response under idempotency_cache_key with StoreIdempotentResponse
// and releases idempotency_lock_key.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader(IdempotencyHeader)
		if idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		log := contextutil.GetLogger(ctx, zap.L())
		cacheKey, lockKey := IdempotencyKeys(c.FullPath(), c.GetString("user_id"), idempKey)

		val, err := rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			var cached IdempotentResponse
			if jsonErr := json.Unmarshal([]byte(val), &cached); jsonErr == nil && cached.Status != 0 {
				response.Success(c, cached.Status, cached.Data, nil)
				c.Abort()
				return
			}
			log.Warn("discarding unreadable idempotency cache entry", zap.String("key", cacheKey))
		} else if err != redis.Nil {
			log.Warn("idempotency cache unavailable", zap.Error(err))
			c.Next()
			return
		}

		isNew, err := rdb.SetNX(ctx, lockKey, "locked", 30*time.Second).Result()
		if err != nil {
			log.Warn("idempotency lock unavailable", zap.Error(err))
			c.Next()
			return
		}
		if !isNew {
			response.FromError(c, middlewareerrors.ErrRequestInProgress)
			c.Abort()
			return
		}

		c.Set("idempotency_cache_key", cacheKey)
		c.Set("idempotency_lock_key", lockKey)

		c.Next()
	}
}
