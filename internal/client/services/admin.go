package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/vidgen/internal/client/client"
	"github.com/dmitrijs2005/vidgen/internal/client/models"
	"github.com/dmitrijs2005/vidgen/internal/client/notify"
	"github.com/dmitrijs2005/vidgen/internal/client/query"
	"github.com/dmitrijs2005/vidgen/internal/client/table"
	"github.com/dmitrijs2005/vidgen/internal/logging"
)

// AdminService is the admin back-office.
//
// Row actions never edit cached data. On success they invalidate
// "admin-users" so the collection is refetched; on failure they notify and
// leave the cache as it was.
type AdminService interface {
	Users(ctx context.Context) ([]models.User, error)
	UsersState() query.Snapshot[[]models.User]
	SubscribeUsers() (unsubscribe func())
	Videos(ctx context.Context, ownerEmail string) ([]models.Video, error)
	Stats(ctx context.Context) ([]models.Stat, error)
	Prefetch(ctx context.Context) error

	DeleteUser(ctx context.Context, userID string) error
	ToggleActive(ctx context.Context, userID string) error
	ToggleAdmin(ctx context.Context, userID string) error
	AddCredits(ctx context.Context, userID string, amount int) error
}

type creditsInput struct {
	UserID string `validate:"required"`
	Amount int    `validate:"gt=0"`
}

type adminService struct {
	api    client.AdminAPI
	cache  *query.Cache
	notify notify.Notifier
	log    logging.Logger

	users  *query.Query[[]models.User]
	videos *query.Query[[]models.Video]
	stats  *query.Query[[]models.Stat]

	deleteUser   *query.Mutation[string, struct{}]
	toggleActive *query.Mutation[string, struct{}]
	toggleAdmin  *query.Mutation[string, struct{}]
	addCredits   *query.Mutation[creditsInput, struct{}]
}

func NewAdminService(api client.AdminAPI, cache *query.Cache, n notify.Notifier, log logging.Logger) AdminService {
	if log == nil {
		log = logging.Discard()
	}
	s := &adminService{api: api, cache: cache, notify: n, log: log}

	s.users = query.NewQuery(cache, KeyAdminUsers, api.AllUsers)
	s.videos = query.NewQuery(cache, KeyAdminVideos, api.AllVideos)
	s.stats = query.NewQuery(cache, KeyAdminStats, api.Stats)

	s.deleteUser = userAction(s, api.DeleteUser, "User deleted successfully", "Failed to delete user")
	s.toggleActive = userAction(s, api.ToggleActive, "User status updated", "Failed to update user status")
	s.toggleAdmin = userAction(s, api.ToggleAdmin, "User role updated", "Failed to update user role")
	s.addCredits = query.NewMutation(
		func(ctx context.Context, in creditsInput) (struct{}, error) {
			return struct{}{}, api.AddCredits(ctx, in.UserID, in.Amount)
		},
		query.OnSuccess(func(ctx context.Context, in creditsInput, _ struct{}) {
			s.refreshUsers(ctx)
			s.notify.Success(ctx, fmt.Sprintf("Added %d credits", in.Amount))
		}),
		query.OnError[creditsInput, struct{}](func(ctx context.Context, _ creditsInput, err error) {
			s.notify.Error(ctx, client.Message(err, "Failed to add credits"))
		}),
	)
	return s
}

func userAction(s *adminService, call func(ctx context.Context, userID string) error, okMsg, failMsg string) *query.Mutation[string, struct{}] {
	return query.NewMutation(
		func(ctx context.Context, userID string) (struct{}, error) {
			return struct{}{}, call(ctx, userID)
		},
		query.OnSuccess(func(ctx context.Context, _ string, _ struct{}) {
			s.refreshUsers(ctx)
			s.notify.Success(ctx, okMsg)
		}),
		query.OnError[string, struct{}](func(ctx context.Context, userID string, err error) {
			s.log.Warn(ctx, "admin action failed", "user_id", userID, "error", err)
			s.notify.Error(ctx, client.Message(err, failMsg))
		}),
	)
}

// refreshUsers invalidates the users collection. A failed refetch is
// recorded on the cache entry and shown by the users view.
func (s *adminService) refreshUsers(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, KeyAdminUsers); err != nil {
		s.log.Warn(ctx, "users refetch failed", "error", err)
	}
}

func (s *adminService) Users(ctx context.Context) ([]models.User, error) {
	return s.users.Get(ctx)
}

func (s *adminService) UsersState() query.Snapshot[[]models.User] {
	return s.users.Peek()
}

func (s *adminService) SubscribeUsers() func() {
	return s.users.Subscribe()
}

// Videos returns all videos, or only those owned by ownerEmail when set.
func (s *adminService) Videos(ctx context.Context, ownerEmail string) ([]models.Video, error) {
	all, err := s.videos.Get(ctx)
	if err != nil {
		return nil, err
	}
	return table.FilterVideosByOwner(all, ownerEmail), nil
}

func (s *adminService) Stats(ctx context.Context) ([]models.Stat, error) {
	return s.stats.Get(ctx)
}

// Prefetch loads stats, users and videos concurrently.
func (s *adminService) Prefetch(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := s.stats.Get(ctx)
		return err
	})
	g.Go(func() error {
		_, err := s.users.Get(ctx)
		return err
	})
	g.Go(func() error {
		_, err := s.videos.Get(ctx)
		return err
	})
	return g.Wait()
}

func (s *adminService) DeleteUser(ctx context.Context, userID string) error {
	_, err := s.deleteUser.Mutate(ctx, userID)
	return err
}

func (s *adminService) ToggleActive(ctx context.Context, userID string) error {
	_, err := s.toggleActive.Mutate(ctx, userID)
	return err
}

func (s *adminService) ToggleAdmin(ctx context.Context, userID string) error {
	_, err := s.toggleAdmin.Mutate(ctx, userID)
	return err
}

// AddCredits rejects a missing user or a non-positive amount without a
// request.
func (s *adminService) AddCredits(ctx context.Context, userID string, amount int) error {
	in := creditsInput{UserID: userID, Amount: amount}
	if err := validate.Struct(in); err != nil {
		return fmt.Errorf("%w: credit amount must be a positive number", client.ErrValidation)
	}
	_, err := s.addCredits.Mutate(ctx, in)
	return err
}
