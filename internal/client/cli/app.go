package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/vidgen/internal/client/client"
	"github.com/dmitrijs2005/vidgen/internal/client/models"
	"github.com/dmitrijs2005/vidgen/internal/client/notify"
	"github.com/dmitrijs2005/vidgen/internal/client/query"
	"github.com/dmitrijs2005/vidgen/internal/client/services"
	"github.com/dmitrijs2005/vidgen/internal/client/table"
	"github.com/dmitrijs2005/vidgen/internal/logging"
)

// Authenticator is the session surface the CLI needs. *session.Store
// implements it.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (models.Session, error)
	Register(ctx context.Context, name, email, password string) (models.Session, error)
	Logout(ctx context.Context)
	ForgotPassword(ctx context.Context, email string) error
	Bootstrap(ctx context.Context)
	Current() (models.Session, bool)
	IsAuthenticated() bool
	IsAdmin() bool
	IsLoading() bool
}

// Downloader saves a video URL to a local file.
type Downloader interface {
	ToFile(ctx context.Context, rawURL, path string) (int64, error)
}

// Deps are the collaborators of App.
type Deps struct {
	Auth       Authenticator
	Videos     services.VideoService
	Admin      services.AdminService
	Cache      *query.Cache
	Downloader Downloader
	Notifier   notify.Notifier
	Logger     logging.Logger
	PageSize   int
	In         io.Reader
	Out        io.Writer
}

type App struct {
	auth   Authenticator
	videos services.VideoService
	admin  services.AdminService
	cache  *query.Cache
	dl     Downloader
	notify notify.Notifier
	log    logging.Logger

	pageSize     int
	usersView    *table.UsersView
	unwatchUsers func()

	reader *bufio.Reader
	out    io.Writer
}

func NewApp(d Deps) *App {
	if d.In == nil {
		d.In = os.Stdin
	}
	if d.Out == nil {
		d.Out = os.Stdout
	}
	if d.Logger == nil {
		d.Logger = logging.Discard()
	}
	if d.Notifier == nil {
		d.Notifier = notify.NewConsole(d.Out)
	}
	if d.Cache == nil {
		d.Cache = query.NewCache(d.Logger)
	}
	return &App{
		auth:      d.Auth,
		videos:    d.Videos,
		admin:     d.Admin,
		cache:     d.Cache,
		dl:        d.Downloader,
		notify:    d.Notifier,
		log:       d.Logger,
		pageSize:  d.PageSize,
		usersView: table.NewUsersView(d.PageSize),
		reader:    bufio.NewReader(d.In),
		out:       d.Out,
	}
}

// Run restores the persisted session and runs the REPL until exit.
func (a *App) Run(ctx context.Context) {
	a.auth.Bootstrap(ctx)
	a.println("Welcome to vgcli (type 'help' for commands)")
	if s, ok := a.auth.Current(); ok {
		a.println(fmt.Sprintf("Signed in as %s", s.DisplayName))
	}
	runREPL(ctx, a, a.status, bufio.NewScanner(byteReader{a.reader}))
	a.stopWatchingUsers()
}

// byteReader hands the scanner one byte per Read, so it never buffers past
// the current line and prompts can keep reading from the same reader.
type byteReader struct {
	r *bufio.Reader
}

func (b byteReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	c, err := b.r.ReadByte()
	if err != nil {
		return 0, err
	}
	p[0] = c
	return 1, nil
}

func (a *App) isLoggedIn() bool { return a.auth.IsAuthenticated() }
func (a *App) isAdmin() bool    { return a.auth.IsAdmin() }

func (a *App) status() string {
	if a.auth.IsLoading() {
		return "(loading)"
	}
	s, ok := a.auth.Current()
	if !ok {
		return ""
	}
	if s.IsAdmin() {
		return fmt.Sprintf("(%s admin)", s.Email)
	}
	return fmt.Sprintf("(%s)", s.Email)
}

func (a *App) println(args ...any) {
	_, _ = fmt.Fprintln(a.out, args...)
}

// reportFetchError prints a failed load. A rejected token ends the session.
func (a *App) reportFetchError(ctx context.Context, what string, err error) {
	if errors.Is(err, client.ErrUnauthorized) && a.isLoggedIn() {
		a.println("Session expired, please log in again")
		_ = a.Logout(ctx)
		return
	}
	a.println(fmt.Sprintf("Failed to load %s: %s", what, client.Message(err, "request failed")))
}

// reportMutationError prints what the notifier did not: input rejected
// before any request was sent.
func (a *App) reportMutationError(err error) {
	if errors.Is(err, client.ErrValidation) {
		a.println(err.Error())
	}
}

func (a *App) stopWatchingUsers() {
	if a.unwatchUsers != nil {
		a.unwatchUsers()
		a.unwatchUsers = nil
	}
}
