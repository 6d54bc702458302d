package session

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/vidgen/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/vidgen/internal/common"
)

// TokenStore persists the bearer token. Token returns "" when none is saved,
// which also makes it a rest.TokenSource.
type TokenStore interface {
	Token(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

type metadataTokenStore struct {
	repo metadata.Repository
}

// NewTokenStore keeps the token under common.AuthTokenKey in repo.
func NewTokenStore(repo metadata.Repository) TokenStore {
	return &metadataTokenStore{repo: repo}
}

func (s *metadataTokenStore) Token(ctx context.Context) (string, error) {
	v, ok, err := s.repo.Get(ctx, common.AuthTokenKey)
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	if !ok {
		return "", nil
	}
	return v, nil
}

func (s *metadataTokenStore) Save(ctx context.Context, token string) error {
	if err := s.repo.Set(ctx, common.AuthTokenKey, token); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

func (s *metadataTokenStore) Clear(ctx context.Context) error {
	if err := s.repo.Delete(ctx, common.AuthTokenKey); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}
