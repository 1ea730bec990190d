package repository

import (
	"net/url"

	"institute-admin-console/internal/infrastructure/remote"
)

// remoteResource binds a backend client to the base URL of one resource group
type remoteResource struct {
	client  *remote.Client
	baseURL string
}

func (r remoteResource) endpoint(query url.Values, segments ...string) string {
	return remote.Endpoint(r.baseURL, query, segments...)
}
