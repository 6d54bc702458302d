package session

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/vidgen/internal/client/client"
	"github.com/dmitrijs2005/vidgen/internal/client/models"
)

type fakeAuthAPI struct {
	loginFn    func(ctx context.Context, email, password string) (*client.AuthResult, error)
	registerFn func(ctx context.Context, req client.RegisterRequest) (*client.AuthResult, error)
	logoutErr  error
	meFn       func(ctx context.Context) (*models.UserDTO, error)
	forgotErr  error

	lastRegister client.RegisterRequest
	logoutCalls  int
	meCalls      int
}

func (f *fakeAuthAPI) Login(ctx context.Context, email, password string) (*client.AuthResult, error) {
	return f.loginFn(ctx, email, password)
}

func (f *fakeAuthAPI) Register(ctx context.Context, req client.RegisterRequest) (*client.AuthResult, error) {
	f.lastRegister = req
	if f.registerFn == nil {
		return &client.AuthResult{Token: "r", User: models.UserDTO{ID: "u", Email: req.Email, FirstName: req.FirstName, LastName: req.LastName}}, nil
	}
	return f.registerFn(ctx, req)
}

func (f *fakeAuthAPI) Logout(context.Context) error {
	f.logoutCalls++
	return f.logoutErr
}

func (f *fakeAuthAPI) Me(ctx context.Context) (*models.UserDTO, error) {
	f.meCalls++
	if f.meFn == nil {
		return nil, errors.New("me not stubbed")
	}
	return f.meFn(ctx)
}

func (f *fakeAuthAPI) ForgotPassword(context.Context, string) error { return f.forgotErr }

type memTokens struct {
	mu       sync.Mutex
	token    string
	saveErr  error
	clearErr error
	cleared  int
}

func (m *memTokens) Token(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *memTokens) Save(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.token = token
	return nil
}

func (m *memTokens) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cleared++
	if m.clearErr != nil {
		return m.clearErr
	}
	m.token = ""
	return nil
}
