// Package services binds the REST client, the query cache and user
// notifications into the use cases behind the CLI views.
package services

import (
	"github.com/go-playground/validator/v10"

	"github.com/dmitrijs2005/vidgen/internal/client/query"
)

// Cache keys.
const (
	KeyAdminUsers    query.Key = "admin-users"
	KeyAdminVideos   query.Key = "admin-videos"
	KeyAdminStats    query.Key = "admin-stats"
	KeyRecentVideos  query.Key = "recent-videos"
	KeyExampleVideos query.Key = "example-videos"
)

var validate = validator.New()
