package client

import (
	"context"

	"github.com/dmitrijs2005/vidgen/internal/client/models"
)

// AuthResult is a successful credential exchange.
type AuthResult struct {
	Token string
	User  models.UserDTO
}

// RegisterRequest is the account creation payload.
type RegisterRequest struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Register(ctx context.Context, req RegisterRequest) (*AuthResult, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*models.UserDTO, error)
	ForgotPassword(ctx context.Context, email string) error
}

type VideoAPI interface {
	GenerateVideo(ctx context.Context, prompt string) (models.GeneratedVideo, error)
	EnhancePrompt(ctx context.Context, prompt string) (string, error)
	RecentVideos(ctx context.Context) ([]models.Video, error)
	ExampleVideos(ctx context.Context) ([]models.Video, error)
}

type AdminAPI interface {
	Stats(ctx context.Context) ([]models.Stat, error)
	AllUsers(ctx context.Context) ([]models.User, error)
	AllVideos(ctx context.Context) ([]models.Video, error)
	DeleteUser(ctx context.Context, userID string) error
	ToggleActive(ctx context.Context, userID string) error
	ToggleAdmin(ctx context.Context, userID string) error
	AddCredits(ctx context.Context, userID string, amount int) error
}

type Client interface {
	AuthAPI
	VideoAPI
	AdminAPI
}
