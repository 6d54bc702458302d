package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrijs2005/vidgen/internal/client/models"
	"github.com/dmitrijs2005/vidgen/internal/client/notify"
	"github.com/dmitrijs2005/vidgen/internal/client/query"
	"github.com/dmitrijs2005/vidgen/internal/client/services"
)

type fakeAuth struct {
	session      *models.Session
	loginErr     error
	forgotErr    error
	bootstrapped bool
	loggedOut    bool
	lastName     string
	loading      bool
}

func (f *fakeAuth) Login(_ context.Context, email, _ string) (models.Session, error) {
	if f.loginErr != nil {
		return models.Session{}, f.loginErr
	}
	role := models.RoleUser
	if strings.HasPrefix(email, "admin") {
		role = models.RoleAdmin
	}
	f.session = &models.Session{UserID: "u1", DisplayName: "Jane Doe", Email: email, Role: role}
	return *f.session, nil
}

func (f *fakeAuth) Register(_ context.Context, name, email, _ string) (models.Session, error) {
	f.lastName = name
	f.session = &models.Session{UserID: "u9", DisplayName: name, Email: email, CreditBalance: 50, Role: models.RoleUser}
	return *f.session, nil
}

func (f *fakeAuth) Logout(context.Context) {
	f.loggedOut = true
	f.session = nil
}

func (f *fakeAuth) ForgotPassword(context.Context, string) error { return f.forgotErr }
func (f *fakeAuth) Bootstrap(context.Context)                    { f.bootstrapped = true }

func (f *fakeAuth) Current() (models.Session, bool) {
	if f.session == nil {
		return models.Session{}, false
	}
	return *f.session, true
}

func (f *fakeAuth) IsAuthenticated() bool { return f.session != nil }
func (f *fakeAuth) IsAdmin() bool         { return f.session != nil && f.session.IsAdmin() }
func (f *fakeAuth) IsLoading() bool       { return f.loading }

type fakeAPI struct {
	mu         sync.Mutex
	users      []models.User
	videos     []models.Video
	stats      []models.Stat
	usersErr   error
	actionErr  error
	generated  []string
	usersCalls int
	statsCalls int
}

func (f *fakeAPI) Stats(context.Context) ([]models.Stat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statsCalls++
	return f.stats, nil
}

func (f *fakeAPI) AllUsers(context.Context) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.usersCalls++
	if f.usersErr != nil {
		return nil, f.usersErr
	}
	return append([]models.User(nil), f.users...), nil
}

func (f *fakeAPI) AllVideos(context.Context) ([]models.Video, error) { return f.videos, nil }

func (f *fakeAPI) DeleteUser(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.actionErr != nil {
		return f.actionErr
	}
	for i, u := range f.users {
		if u.ID == id {
			f.users = append(f.users[:i:i], f.users[i+1:]...)
			return nil
		}
	}
	return errors.New("no such user")
}

func (f *fakeAPI) ToggleActive(context.Context, string) error { return f.actionErr }
func (f *fakeAPI) ToggleAdmin(context.Context, string) error  { return f.actionErr }
func (f *fakeAPI) AddCredits(context.Context, string, int) error {
	return f.actionErr
}

func (f *fakeAPI) GenerateVideo(_ context.Context, prompt string) (models.GeneratedVideo, error) {
	f.generated = append(f.generated, prompt)
	return models.GeneratedVideo{VideoURL: "https://cdn/v1.mp4"}, nil
}

func (f *fakeAPI) EnhancePrompt(_ context.Context, prompt string) (string, error) {
	return prompt + ", golden hour", nil
}

func (f *fakeAPI) RecentVideos(context.Context) ([]models.Video, error) { return f.videos, nil }
func (f *fakeAPI) ExampleVideos(context.Context) ([]models.Video, error) {
	return nil, nil
}

type fakeDownloader struct {
	err  error
	path string
}

func (d *fakeDownloader) ToFile(_ context.Context, _ string, path string) (int64, error) {
	d.path = path
	if d.err != nil {
		return 0, d.err
	}
	return 1024, nil
}

type testEnv struct {
	app  *App
	auth *fakeAuth
	api  *fakeAPI
	out  *bytes.Buffer
}

func newTestEnv(t *testing.T, input string) *testEnv {
	t.Helper()
	out := &bytes.Buffer{}
	auth := &fakeAuth{}
	api := &fakeAPI{users: usersFixture(23)}
	cache := query.NewCache(nil)
	n := notify.NewConsole(out)

	app := NewApp(Deps{
		Auth:       auth,
		Videos:     services.NewVideoService(api, cache, n, nil),
		Admin:      services.NewAdminService(api, cache, n, nil),
		Cache:      cache,
		Downloader: &fakeDownloader{},
		Notifier:   n,
		PageSize:   10,
		In:         strings.NewReader(input),
		Out:        out,
	})

	origPw := getPassword
	getPassword = func(io.Writer) (string, error) { return "pw", nil }
	t.Cleanup(func() { getPassword = origPw })

	return &testEnv{app: app, auth: auth, api: api, out: out}
}

func usersFixture(n int) []models.User {
	out := make([]models.User, n)
	for i := range out {
		role := models.RoleUser
		if i%5 == 0 {
			role = models.RoleAdmin
		}
		out[i] = models.User{
			ID:        fmt.Sprintf("u%02d", i),
			FirstName: fmt.Sprintf("First%02d", i),
			LastName:  "Last",
			Email:     fmt.Sprintf("user%02d@x.io", i),
			Role:      role,
			IsActive:  i%2 == 0,
		}
	}
	return out
}

func (e *testEnv) signInAdmin(t *testing.T) {
	t.Helper()
	e.auth.session = &models.Session{UserID: "a1", DisplayName: "Root", Email: "admin@x.io", Role: models.RoleAdmin}
}

func (e *testEnv) take() string {
	s := e.out.String()
	e.out.Reset()
	return s
}
