package repository

import (
	"context"
	"errors"
	"net/http"

	"institute-admin-console/internal/domain/entity"
	domainRepo "institute-admin-console/internal/domain/repository"
	"institute-admin-console/internal/infrastructure/remote"
)

const loginPath = "/admin/login"

var errEmptyLoginToken = errors.New("login response carried no token")

type adminAuthRepository struct {
	remoteResource
}

func NewAdminAuthRepository(client *remote.Client, baseURL string) domainRepo.AdminAuthRepository {
	return &adminAuthRepository{remoteResource{client: client, baseURL: baseURL}}
}

type loginPayload struct {
	Token string              `json:"token"`
	Admin entity.AdminProfile `json:"admin"`
}

func (r *adminAuthRepository) Login(ctx context.Context, email, password string) (string, *entity.AdminProfile, error) {
	body := map[string]string{"email": email, "password": password}

	var out struct {
		loginPayload
		Data *loginPayload `json:"data"`
	}
	if err := r.client.DoAnonymous(ctx, http.MethodPost, r.endpoint(nil, loginPath), body, &out); err != nil {
		return "", nil, err
	}

	payload := out.loginPayload
	if payload.Token == "" && out.Data != nil {
		payload = *out.Data
	}
	if payload.Token == "" {
		return "", nil, errEmptyLoginToken
	}
	return payload.Token, &payload.Admin, nil
}
