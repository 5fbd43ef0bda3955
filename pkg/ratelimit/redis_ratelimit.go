package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRateLimiter Redis 기반 Rate Limiter (Token Bucket 알고리즘)
// 프로세스가 재시작돼도 버킷 상태가 유지된다
type RedisRateLimiter struct {
	client       *redis.Client
	keyPrefix    string
	defaultLimit int
	defaultTTL   time.Duration
}

// RedisRateLimiterConfig Redis Rate Limiter 설정
type RedisRateLimiterConfig struct {
	URL          string        // Redis 접속 URL (예: "redis://localhost:6379")
	KeyPrefix    string        // 키 접두사 (예: "ratelimit:")
	DefaultLimit int           // 기본 요청 제한
	DefaultTTL   time.Duration // 기본 TTL (윈도우 크기)
}

// NewRedisRateLimiter Redis 기반 Rate Limiter 생성
func NewRedisRateLimiter(config RedisRateLimiterConfig) (*RedisRateLimiter, error) {
	opts, err := redis.ParseURL(config.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	if config.KeyPrefix == "" {
		config.KeyPrefix = "ratelimit:"
	}
	if config.DefaultLimit <= 0 {
		config.DefaultLimit = 60
	}
	if config.DefaultTTL <= 0 {
		config.DefaultTTL = time.Minute
	}

	return &RedisRateLimiter{
		client:       redis.NewClient(opts),
		keyPrefix:    config.KeyPrefix,
		defaultLimit: config.DefaultLimit,
		defaultTTL:   config.DefaultTTL,
	}, nil
}

// Lua 스크립트로 토큰 조회/리필/소비를 원자적으로 수행
var tokenBucketScript = redis.NewScript(`
	local tokens_key = KEYS[1] .. ":tokens"
	local timestamp_key = KEYS[1] .. ":timestamp"
	local limit = tonumber(ARGV[1])
	local window = tonumber(ARGV[2])
	local now = tonumber(ARGV[3])

	local tokens = tonumber(redis.call('GET', tokens_key))
	local last_update = tonumber(redis.call('GET', timestamp_key))

	if tokens == nil then
		tokens = limit
		last_update = now
	end

	local elapsed = now - last_update
	local refill_rate = limit / window
	local new_tokens = math.min(limit, tokens + (elapsed * refill_rate))

	local allowed = 0
	if new_tokens >= 1 then
		new_tokens = new_tokens - 1
		allowed = 1
	end

	redis.call('SET', tokens_key, new_tokens, 'EX', window * 2)
	redis.call('SET', timestamp_key, now, 'EX', window * 2)

	return allowed
`)

// Allow 요청 허용 여부 확인
// key: Rate Limit 대상 식별자 (예: userID, IP)
func (r *RedisRateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	if limit <= 0 {
		limit = r.defaultLimit
	}
	if window <= 0 {
		window = r.defaultTTL
	}

	redisKey := r.keyPrefix + key
	now := time.Now().Unix()

	result, err := tokenBucketScript.Run(
		ctx, r.client,
		[]string{redisKey},
		limit, int(window.Seconds()), now,
	).Int64()
	if err != nil {
		return false, fmt.Errorf("redis script execution failed: %w", err)
	}

	return result == 1, nil
}

// Close Redis 연결 종료
func (r *RedisRateLimiter) Close() error {
	return r.client.Close()
}
