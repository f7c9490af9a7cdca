package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"glowbook/utils"
)

// CustomerIDKey is the gin context key holding the authenticated customer.
const CustomerIDKey = "customerID"

// JWTAuthMiddleware authenticates the caller as a customer. Token hashes
// are cached in Redis so repeated requests skip signature verification
// bookkeeping; a cache failure degrades to plain JWT validation rather than
// rejecting the request.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.JSONError(c, http.StatusUnauthorized, "UNAUTHENTICATED", "authentication required")
			c.Abort()
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			utils.JSONError(c, http.StatusUnauthorized, "UNAUTHENTICATED", "authentication required")
			c.Abort()
			return
		}

		customerID, role, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || customerID == "" {
			utils.JSONError(c, http.StatusUnauthorized, "UNAUTHENTICATED", "authentication required")
			c.Abort()
			return
		}
		if role != "" && role != "customer" {
			utils.JSONError(c, http.StatusUnauthorized, "UNAUTHENTICATED", "authentication required")
			c.Abort()
			return
		}

		computedHash := utils.HashToken(tokenString)
		cacheKey := utils.AuthCachePrefix + customerID

		authCache := utils.GetAuthCacheClient()
		if authCache != nil {
			cachedHash, err := authCache.Get(ctx, cacheKey).Result()
			switch {
			case err == nil:
				if cachedHash != computedHash {
					utils.JSONError(c, http.StatusUnauthorized, "UNAUTHENTICATED", "token no longer valid")
					c.Abort()
					return
				}
				_ = authCache.Expire(ctx, cacheKey, time.Hour).Err()
			case err == redis.Nil:
				_ = authCache.Set(ctx, cacheKey, computedHash, time.Hour).Err()
			default:
				zap.L().Warn("auth cache lookup failed, falling back to JWT only", zap.Error(err))
			}
		}

		c.Set(CustomerIDKey, customerID)
		c.Next()
	}
}
