package userstore

import (
	"context"

	"github.com/cccteam/httpio"
	"github.com/go-playground/errors/v5"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
)

var (
	_ Store  = &Redis{}
	_ Writer = &Redis{}
)

// Redis is the user-record store backed by Redis. Role records are plain
// string values under a key prefix, mirrored from the system of record for
// low-latency lookups.
type Redis struct {
	client redis.UniversalClient
	prefix string
}

// NewRedis creates a Redis user store on the given client.
func NewRedis(client redis.UniversalClient) *Redis {
	return &Redis{
		client: client,
		prefix: "user-role:",
	}
}

// NewRedisWithPrefix creates a Redis user store with a custom key prefix.
func NewRedisWithPrefix(client redis.UniversalClient, prefix string) *Redis {
	return &Redis{
		client: client,
		prefix: prefix,
	}
}

// UserRole returns the stored role for the subject.
func (s *Redis) UserRole(ctx context.Context, subject string) (string, error) {
	ctx, span := otel.Tracer(name).Start(ctx, "Redis.UserRole()")
	defer span.End()

	role, err := s.client.Get(ctx, s.prefix+subject).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", httpio.NewNotFoundMessagef("no user record for subject %s", subject)
		}

		return "", errors.Wrapf(err, "failed to read role for subject %s", subject)
	}

	return role, nil
}

// AssignRole stores the role for the subject. Records do not expire; the
// back office owns their lifecycle.
func (s *Redis) AssignRole(ctx context.Context, subject, role string) error {
	ctx, span := otel.Tracer(name).Start(ctx, "Redis.AssignRole()")
	defer span.End()

	if err := s.client.Set(ctx, s.prefix+subject, role, 0).Err(); err != nil {
		return errors.Wrapf(err, "failed to assign role for subject %s", subject)
	}

	return nil
}
