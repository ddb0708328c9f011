package otp

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"
)

// Verification failure modes surfaced to the caller.
var (
	ErrCodeNotFound = errors.New("no verification code found")
	ErrCodeExpired  = errors.New("verification code expired")
	ErrCodeMismatch = errors.New("invalid verification code")
)

// expiryGrace keeps expired records around long enough to report
// "expired" instead of "not found" on late verification attempts.
const expiryGrace = time.Hour

// Store keeps one-time verification codes in Redis, keyed by phone
// number. Codes survive process restarts and are shared across
// instances, unlike an in-process map.
type Store struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
}

// NewStore builds a store with the given code lifetime.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Store{client: client, ttl: ttl, now: time.Now}
}

type record struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Issue generates a fresh 6-digit code for the phone number, replacing
// any previous one, and returns it for delivery.
func (s *Store) Issue(ctx context.Context, phone string) (string, error) {
	code, err := generateCode()
	if err != nil {
		return "", err
	}

	rec := record{Code: code, ExpiresAt: s.now().Add(s.ttl)}
	payload, err := json.Marshal(rec)
	if err != nil {
		return "", err
	}

	if err := s.client.Set(ctx, key(phone), payload, s.ttl+expiryGrace).Err(); err != nil {
		return "", fmt.Errorf("store verification code: %w", err)
	}
	return code, nil
}

// Verify checks the submitted code. A code is consumed on success and on
// expiry; a successful code cannot be replayed.
func (s *Store) Verify(ctx context.Context, phone, code string) error {
	payload, err := s.client.Get(ctx, key(phone)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCodeNotFound
	}
	if err != nil {
		return fmt.Errorf("load verification code: %w", err)
	}

	var rec record
	if err := json.Unmarshal(payload, &rec); err != nil {
		return fmt.Errorf("decode verification code: %w", err)
	}

	if s.now().After(rec.ExpiresAt) {
		_ = s.client.Del(ctx, key(phone)).Err()
		return ErrCodeExpired
	}
	if rec.Code != code {
		return ErrCodeMismatch
	}

	if err := s.client.Del(ctx, key(phone)).Err(); err != nil {
		return fmt.Errorf("consume verification code: %w", err)
	}
	return nil
}

func key(phone string) string {
	return "otp:" + phone
}

func generateCode() (string, error) {
	// 6 digits, leading digit never zero.
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
