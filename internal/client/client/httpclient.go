package client

import (
	"context"

	"github.com/dmitrijs2005/vidgen/internal/client/models"
	"github.com/dmitrijs2005/vidgen/internal/client/rest"
)

// HTTPClient implements Client over REST.
type HTTPClient struct {
	auth   *rest.Requester
	public *rest.Requester
}

// NewHTTPClient takes the authenticated and the public requester.
func NewHTTPClient(auth, public *rest.Requester) *HTTPClient {
	return &HTTPClient{auth: auth, public: public}
}

var _ Client = (*HTTPClient)(nil)

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	resp, err := c.public.Post(ctx, "/auth/login", loginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	var out authResponse
	if err := decodeObject(resp, &out, func(r *authResponse) envelope { return r.envelope }, "Login failed"); err != nil {
		return nil, err
	}
	return &AuthResult{Token: out.Token, User: *out.User}, nil
}

func (c *HTTPClient) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	body := registerRequest{
		Username:  req.Email,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	resp, err := c.public.Post(ctx, "/auth/register", body)
	if err != nil {
		return nil, err
	}
	var out authResponse
	if err := decodeObject(resp, &out, func(r *authResponse) envelope { return r.envelope }, "Registration failed"); err != nil {
		return nil, err
	}
	return &AuthResult{Token: out.Token, User: *out.User}, nil
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	_, err := c.auth.Post(ctx, "/auth/logout", nil)
	return err
}

func (c *HTTPClient) Me(ctx context.Context) (*models.UserDTO, error) {
	resp, err := c.auth.Get(ctx, "/auth/me")
	if err != nil {
		return nil, err
	}
	var out meResponse
	if err := decodeObject(resp, &out, func(r *meResponse) envelope { return r.envelope }, "Session invalid"); err != nil {
		return nil, err
	}
	return out.User, nil
}

func (c *HTTPClient) ForgotPassword(ctx context.Context, email string) error {
	resp, err := c.public.Post(ctx, "/auth/forgot-password", emailRequest{Email: email})
	if err != nil {
		return err
	}
	var out envelope
	if err := resp.Decode(&out); err != nil {
		return nil
	}
	return out.check(resp.Status, "Failed to send reset email")
}

func (c *HTTPClient) GenerateVideo(ctx context.Context, prompt string) (models.GeneratedVideo, error) {
	resp, err := c.auth.Post(ctx, "/video/generate", promptRequest{Prompt: prompt})
	if err != nil {
		return models.GeneratedVideo{}, err
	}
	var out generateResponse
	if err := decodeObject(resp, &out, func(r *generateResponse) envelope { return r.envelope }, "Video generation failed"); err != nil {
		return models.GeneratedVideo{}, err
	}
	return models.GeneratedVideo{VideoURL: out.VideoURL}, nil
}

// EnhancePrompt returns the rewritten prompt, or the input when the server
// sent none back.
func (c *HTTPClient) EnhancePrompt(ctx context.Context, prompt string) (string, error) {
	resp, err := c.auth.Post(ctx, "/video/enhancePrompt", promptRequest{Prompt: prompt})
	if err != nil {
		return "", err
	}
	var out enhanceResponse
	if err := decodeObject(resp, &out, func(r *enhanceResponse) envelope { return r.envelope }, "Prompt enhancement failed"); err != nil {
		return "", err
	}
	if out.EnhancedPrompt == "" {
		return prompt, nil
	}
	return out.EnhancedPrompt, nil
}

func (c *HTTPClient) RecentVideos(ctx context.Context) ([]models.Video, error) {
	return c.videos(ctx, c.auth, "/video/recent")
}

func (c *HTTPClient) ExampleVideos(ctx context.Context) ([]models.Video, error) {
	return c.videos(ctx, c.public, "/video/examples")
}

func (c *HTTPClient) AllVideos(ctx context.Context) ([]models.Video, error) {
	return c.videos(ctx, c.auth, "/video/all")
}

func (c *HTTPClient) videos(ctx context.Context, r *rest.Requester, path string) ([]models.Video, error) {
	resp, err := r.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	items, err := decodeList[models.VideoDTO](resp, "videos", "Failed to load videos")
	if err != nil {
		return nil, err
	}
	return models.VideosFromDTO(items), nil
}

func (c *HTTPClient) Stats(ctx context.Context) ([]models.Stat, error) {
	resp, err := c.auth.Get(ctx, "/admin/stats")
	if err != nil {
		return nil, err
	}
	items, err := decodeList[models.StatDTO](resp, "stats", "Failed to load stats")
	if err != nil {
		return nil, err
	}
	return models.StatsFromDTO(items), nil
}

func (c *HTTPClient) AllUsers(ctx context.Context) ([]models.User, error) {
	resp, err := c.auth.Get(ctx, "/admin/allUsers")
	if err != nil {
		return nil, err
	}
	items, err := decodeList[models.UserDTO](resp, "users", "Failed to load users")
	if err != nil {
		return nil, err
	}
	return models.UsersFromDTO(items), nil
}

func (c *HTTPClient) DeleteUser(ctx context.Context, userID string) error {
	return c.adminAction(ctx, "DELETE", "/admin/user", userRequest{UserID: userID}, "Failed to delete user")
}

func (c *HTTPClient) ToggleActive(ctx context.Context, userID string) error {
	return c.adminAction(ctx, "PATCH", "/admin/user/toggleActive", userRequest{UserID: userID}, "Failed to update user status")
}

func (c *HTTPClient) ToggleAdmin(ctx context.Context, userID string) error {
	return c.adminAction(ctx, "PATCH", "/admin/user/toggleAdmin", userRequest{UserID: userID}, "Failed to update user role")
}

func (c *HTTPClient) AddCredits(ctx context.Context, userID string, amount int) error {
	return c.adminAction(ctx, "PATCH", "/admin/addCredits", creditsRequest{UserID: userID, Credits: amount}, "Failed to add credits")
}

// adminAction sends a fire-and-forget mutation. An empty or non-JSON 2xx body
// counts as success.
func (c *HTTPClient) adminAction(ctx context.Context, method, path string, body any, fallback string) error {
	resp, err := c.auth.Do(ctx, method, path, body)
	if err != nil {
		return err
	}
	var out envelope
	if err := resp.Decode(&out); err != nil {
		return nil
	}
	return out.check(resp.Status, fallback)
}
