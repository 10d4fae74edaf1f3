package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"schoolhub/internal/authz"
	"schoolhub/internal/models"
)

// OTPKey identifies the single live code of one account for one purpose.
type OTPKey struct {
	Purpose models.OTPPurpose
	Role    authz.Role
	UserID  int64
}

func (k OTPKey) String() string {
	return "otp:" + string(k.Purpose) + ":" + strings.ToLower(string(k.Role)) + ":" + strconv.FormatInt(k.UserID, 10)
}

type OTPRepository interface {
	// Save overwrites any previous state under the key.
	Save(ctx context.Context, key OTPKey, state *models.OTPState, ttl time.Duration) error
	Get(ctx context.Context, key OTPKey) (*models.OTPState, error)
	// Consume deletes the state only if match accepts it, atomically with
	// respect to concurrent Save/Consume on the same key.
	Consume(ctx context.Context, key OTPKey, match func(*models.OTPState) bool) (bool, error)
}

type redisOTPRepository struct {
	client *redis.Client
}

func NewOTPRepository(client *redis.Client) OTPRepository {
	return &redisOTPRepository{client: client}
}

func (r *redisOTPRepository) Save(ctx context.Context, key OTPKey, state *models.OTPState, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("otp save %s: non-positive ttl %s", key, ttl)
	}
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("otp save %s: marshal: %w", key, err)
	}
	if err := r.client.Set(ctx, key.String(), data, ttl).Err(); err != nil {
		return fmt.Errorf("otp save %s: %w", key, err)
	}
	return nil
}

func (r *redisOTPRepository) Get(ctx context.Context, key OTPKey) (*models.OTPState, error) {
	raw, err := r.client.Get(ctx, key.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("otp get %s: %w", key, err)
	}
	return decodeOTPState(key, raw)
}

func (r *redisOTPRepository) Consume(ctx context.Context, key OTPKey, match func(*models.OTPState) bool) (bool, error) {
	k := key.String()
	consumed := false

	txf := func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, k).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		if err != nil {
			return err
		}
		st, err := decodeOTPState(key, raw)
		if err != nil {
			return err
		}
		if !match(st) {
			return nil
		}
		if _, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, k)
			return nil
		}); err != nil {
			return err
		}
		consumed = true
		return nil
	}

	err := r.client.Watch(ctx, txf, k)
	if errors.Is(err, redis.TxFailedErr) {
		// lost the race: another request consumed or replaced the code
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("otp consume %s: %w", key, err)
	}
	return consumed, nil
}

func decodeOTPState(key OTPKey, raw []byte) (*models.OTPState, error) {
	var st models.OTPState
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, fmt.Errorf("otp decode %s: %w", key, err)
	}
	return &st, nil
}
