package repository

import (
	"context"
	"time"

	"institute-admin-console/internal/domain/entity"
)

type SessionRepository interface {
	Save(ctx context.Context, session *entity.AdminSession, ttl time.Duration) error
	// FindByID returns nil, nil when the session does not exist or has expired
	FindByID(ctx context.Context, id string) (*entity.AdminSession, error)
	Delete(ctx context.Context, id string) error
}
