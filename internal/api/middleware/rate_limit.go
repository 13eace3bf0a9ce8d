package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"

	"github.com/princeprakhar/gold-marketplace/internal/config"
)

// RateLimitMiddleware limits requests per client IP and path. With a redis
// client the counters are shared by every instance.
func RateLimitMiddleware(cfg *config.Config, rdb *redis.Client) (gin.HandlerFunc, error) {
	rate := limiter.Rate{
		Period: time.Second,
		Limit:  int64(cfg.RateLimitRPS),
	}

	store := memory.NewStore()
	if rdb != nil {
		var err error
		store, err = sredis.NewStoreWithOptions(rdb, limiter.StoreOptions{
			Prefix: "goldmarket:ratelimit",
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create redis rate limit store: %w", err)
		}
	}

	instance := limiter.New(store, rate, limiter.WithTrustForwardHeader(true))

	return mgin.NewMiddleware(instance, mgin.WithKeyGetter(func(c *gin.Context) string {
		return fmt.Sprintf("%s:%s", c.ClientIP(), c.FullPath())
	})), nil
}
