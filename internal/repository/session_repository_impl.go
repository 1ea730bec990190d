package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"institute-admin-console/internal/domain/entity"
	domainRepo "institute-admin-console/internal/domain/repository"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "admin_session:"

type sessionRepository struct {
	redisClient *redis.Client
}

func NewSessionRepository(redisClient *redis.Client) domainRepo.SessionRepository {
	return &sessionRepository{redisClient: redisClient}
}

func sessionKey(id string) string {
	return fmt.Sprintf("%s%s", sessionKeyPrefix, id)
}

func (r *sessionRepository) Save(ctx context.Context, session *entity.AdminSession, ttl time.Duration) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return r.redisClient.Set(ctx, sessionKey(session.ID), payload, ttl).Err()
}

func (r *sessionRepository) FindByID(ctx context.Context, id string) (*entity.AdminSession, error) {
	payload, err := r.redisClient.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var session entity.AdminSession
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	return r.redisClient.Del(ctx, sessionKey(id)).Err()
}
