package otp

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sevasetu/seva-backend/internal/models"
)

// RedisRegistry keeps challenges in a Redis hash per contact with a TTL, so
// pending challenges survive a service restart and can be shared between
// replicas. The hash mirrors the in-memory challenge fields.
type RedisRegistry struct {
	client *redis.Client
}

// NewRedisRegistry connects to Redis and verifies the connection.
func NewRedisRegistry(addr, password string, db int) (*RedisRegistry, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisRegistry{client: rdb}, nil
}

func challengeKey(contact string) string {
	return "otp:" + contact
}

func (r *RedisRegistry) Put(ctx context.Context, contact string, challenge models.OTPChallenge, ttl time.Duration) error {
	key := challengeKey(contact)

	data := map[string]string{
		"code":      challenge.Code,
		"issued_at": strconv.FormatInt(challenge.IssuedAt.UnixMilli(), 10),
		"attempts":  strconv.Itoa(challenge.Attempts),
	}

	if err := r.client.HSet(ctx, key, data).Err(); err != nil {
		return err
	}
	return r.client.Expire(ctx, key, ttl).Err()
}

func (r *RedisRegistry) Get(ctx context.Context, contact string) (*models.OTPChallenge, error) {
	vals, err := r.client.HGetAll(ctx, challengeKey(contact)).Result()
	if err != nil {
		return nil, err
	}
	if len(vals) == 0 {
		return nil, ErrChallengeNotFound
	}

	issuedMillis, err := strconv.ParseInt(vals["issued_at"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("corrupt issued_at for %s: %w", contact, err)
	}
	attempts, err := strconv.Atoi(vals["attempts"])
	if err != nil {
		return nil, fmt.Errorf("corrupt attempts for %s: %w", contact, err)
	}

	return &models.OTPChallenge{
		Contact:  contact,
		Code:     vals["code"],
		IssuedAt: time.UnixMilli(issuedMillis),
		Attempts: attempts,
	}, nil
}

func (r *RedisRegistry) Update(ctx context.Context, contact string, challenge models.OTPChallenge) error {
	key := challengeKey(contact)

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return ErrChallengeNotFound
	}

	// Updating a hash field does not touch the key TTL set at issuance.
	return r.client.HSet(ctx, key, "attempts", strconv.Itoa(challenge.Attempts)).Err()
}

func (r *RedisRegistry) Delete(ctx context.Context, contact string) error {
	return r.client.Del(ctx, challengeKey(contact)).Err()
}
