package repository

import (
	"context"

	"institute-admin-console/internal/domain/entity"
)

type AdminAuthRepository interface {
	// Login exchanges admin credentials for a backend bearer token
	Login(ctx context.Context, email, password string) (string, *entity.AdminProfile, error)
}
