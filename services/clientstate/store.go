package clientstate

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
)

// Store keeps tab-scoped values that must survive a reload but not the visit:
// the current verification session token and last auto-submitted code per booking
// session, and draft form values per visitor.
type Store interface {
	VerificationToken(ctx context.Context, sessionID string) (string, error)
	SetVerificationToken(ctx context.Context, sessionID, token string) error
	ClearVerificationToken(ctx context.Context, sessionID string) error

	LastSubmittedCode(ctx context.Context, sessionID string) (string, error)
	SetLastSubmittedCode(ctx context.Context, sessionID, code string) error

	Draft(ctx context.Context, visitorID, form string) (map[string]string, error)
	SaveDraft(ctx context.Context, visitorID, form string, values map[string]string) error
	ClearDraft(ctx context.Context, visitorID, form string) error
}

const (
	tokenPrefix = "portal:vst:"
	codePrefix  = "portal:code:"
	draftPrefix = "portal:draft:"
)

func draftKey(visitorID, form string) string {
	return draftPrefix + visitorID + ":" + form
}

type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	sealer *Sealer
}

// NewRedisStore stores drafts sealed when sealer is non-nil.
func NewRedisStore(client *redis.Client, ttl time.Duration, sealer *Sealer) *RedisStore {
	return &RedisStore{client: client, ttl: ttl, sealer: sealer}
}

// getString maps a missing key to "".
func (s *RedisStore) getString(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	return val, err
}

func (s *RedisStore) VerificationToken(ctx context.Context, sessionID string) (string, error) {
	return s.getString(ctx, tokenPrefix+sessionID)
}

// SetVerificationToken with an empty token clears it. A different token starts a new
// verification session, so the submitted-code guard is reset with it.
func (s *RedisStore) SetVerificationToken(ctx context.Context, sessionID, token string) error {
	if token == "" {
		return s.ClearVerificationToken(ctx, sessionID)
	}
	current, err := s.getString(ctx, tokenPrefix+sessionID)
	if err != nil {
		return err
	}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, tokenPrefix+sessionID, token, s.ttl)
		if current != token {
			pipe.Del(ctx, codePrefix+sessionID)
		}
		return nil
	})
	return err
}

// ClearVerificationToken also drops the submitted-code guard tied to the old token.
func (s *RedisStore) ClearVerificationToken(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, tokenPrefix+sessionID, codePrefix+sessionID).Err()
}

func (s *RedisStore) LastSubmittedCode(ctx context.Context, sessionID string) (string, error) {
	return s.getString(ctx, codePrefix+sessionID)
}

// SetLastSubmittedCode with an empty code forgets the guard.
func (s *RedisStore) SetLastSubmittedCode(ctx context.Context, sessionID, code string) error {
	if code == "" {
		return s.client.Del(ctx, codePrefix+sessionID).Err()
	}
	return s.client.Set(ctx, codePrefix+sessionID, code, s.ttl).Err()
}

func (s *RedisStore) Draft(ctx context.Context, visitorID, form string) (map[string]string, error) {
	data, err := s.client.Get(ctx, draftKey(visitorID, form)).Result()
	if err == redis.Nil {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}
	raw := []byte(data)
	if s.sealer != nil {
		if raw, err = s.sealer.Open(raw); err != nil {
			// A draft sealed under a previous key is as good as gone.
			return map[string]string{}, nil
		}
	}
	values := map[string]string{}
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, err
	}
	return values, nil
}

func (s *RedisStore) SaveDraft(ctx context.Context, visitorID, form string, values map[string]string) error {
	b, err := json.Marshal(values)
	if err != nil {
		return err
	}
	if s.sealer != nil {
		if b, err = s.sealer.Seal(b); err != nil {
			return err
		}
	}
	return s.client.Set(ctx, draftKey(visitorID, form), b, s.ttl).Err()
}

func (s *RedisStore) ClearDraft(ctx context.Context, visitorID, form string) error {
	return s.client.Del(ctx, draftKey(visitorID, form)).Err()
}
