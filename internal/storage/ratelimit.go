package storage

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

//go:embed ratelimit.lua
var slidingWindowLua string

var slidingWindowScript = redis.NewScript(slidingWindowLua)

// slidingWindow admits limit requests per key in any window-long interval.
type slidingWindow struct {
	window time.Duration
	limit  int
}

func (s slidingWindow) allow(ctx context.Context, client redis.Scripter, key string) (RateLimitResult, error) {
	res, err := slidingWindowScript.Run(ctx, client,
		[]string{key},
		s.window.Milliseconds(),
		s.limit,
	).Int64Slice()
	if err != nil {
		return RateLimitResult{}, fmt.Errorf("failed to run rate limit script: %w", err)
	}
	if len(res) != 2 {
		return RateLimitResult{}, fmt.Errorf("unexpected rate limit script reply: %v", res)
	}
	if res[0] == 1 {
		return RateLimitResult{Allowed: true}, nil
	}
	return RateLimitResult{RetryAfter: time.Duration(res[1]) * time.Millisecond}, nil
}
