package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/vidgen/internal/client/table"
)

// getSimpleText and getPassword are indirections swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

// Login prompts for email and password and signs in.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	s, err := a.auth.Login(ctx, email, password)
	if err != nil {
		a.println(err.Error())
		return err
	}
	a.println(fmt.Sprintf("Welcome back, %s!", s.DisplayName))
	a.warmAdminCache(ctx)
	return nil
}

// Register prompts for a full name, email and password and creates an
// account.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter full name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	s, err := a.auth.Register(ctx, name, email, password)
	if err != nil {
		a.println(err.Error())
		return err
	}
	a.println(fmt.Sprintf("Welcome, %s! You have %d credits.", s.DisplayName, s.CreditBalance))
	return nil
}

func (a *App) Forgot(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter your account email", a.out)
	if err != nil {
		return err
	}
	if err := a.auth.ForgotPassword(ctx, email); err != nil {
		a.notify.Error(ctx, err.Error())
		return err
	}
	a.notify.Success(ctx, "Password reset email sent successfully")
	return nil
}

func (a *App) WhoAmI(context.Context) error {
	s, ok := a.auth.Current()
	if !ok {
		a.println("Not logged in")
		return nil
	}
	a.println(fmt.Sprintf("%s <%s>, role: %s, credits: %d", s.DisplayName, s.Email, s.Role, s.CreditBalance))
	return nil
}

// Logout ends the session and drops all cached server data.
func (a *App) Logout(ctx context.Context) error {
	a.auth.Logout(ctx)
	a.stopWatchingUsers()
	a.cache.Reset()
	a.usersView = table.NewUsersView(a.pageSize)
	a.println("Logged out")
	return nil
}

// warmAdminCache prefetches the back-office data after an admin signs in.
// A failure is left for the view that needs the data to report.
func (a *App) warmAdminCache(ctx context.Context) {
	if !a.auth.IsAdmin() || a.admin == nil {
		return
	}
	if err := a.admin.Prefetch(ctx); err != nil {
		a.log.Debug(ctx, "admin prefetch failed", "error", err)
	}
}
