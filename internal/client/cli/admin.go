package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/vidgen/internal/client/query"
	"github.com/dmitrijs2005/vidgen/internal/client/table"
)

func (a *App) Stats(ctx context.Context) error {
	stats, err := a.admin.Stats(ctx)
	if err != nil {
		a.reportFetchError(ctx, "stats", err)
		return err
	}
	renderStats(a.out, stats)
	return nil
}

// Users opens the users table. The view stays subscribed to the users
// collection until logout, so row actions refetch it immediately.
func (a *App) Users(ctx context.Context) error {
	if err := a.loadUsers(ctx); err != nil {
		return err
	}
	renderUsers(a.out, a.usersView)
	return nil
}

func (a *App) loadUsers(ctx context.Context) error {
	if a.unwatchUsers == nil {
		a.unwatchUsers = a.admin.SubscribeUsers()
	}
	users, err := a.admin.Users(ctx)
	if err != nil {
		a.reportFetchError(ctx, "users", err)
		return err
	}
	a.usersView.SetUsers(users)
	return nil
}

// ensureUsers loads the users view unless it already holds a fetched
// collection. A failed earlier load is retried.
func (a *App) ensureUsers(ctx context.Context) error {
	if a.unwatchUsers != nil && a.admin.UsersState().Status == query.StatusSuccess {
		return nil
	}
	return a.loadUsers(ctx)
}

// Filter sets the users filter from key=value args. Keys not given keep
// their value; no args clears the filter.
func (a *App) Filter(ctx context.Context, args []string) error {
	if err := a.ensureUsers(ctx); err != nil {
		return err
	}
	f, err := parseFilter(a.usersView.Filter(), args)
	if err != nil {
		a.println(err.Error())
		return err
	}
	if err := a.usersView.SetFilter(f); err != nil {
		a.println(err.Error())
		return err
	}
	renderUsers(a.out, a.usersView)
	return nil
}

var errFilterUsage = errors.New("usage: filter [search=<text>] [role=all|admin|user] [status=all|active|inactive]")

func parseFilter(cur table.UserFilter, args []string) (table.UserFilter, error) {
	if len(args) == 0 {
		return table.UserFilter{}, nil
	}
	f := cur
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		if !ok {
			return cur, errFilterUsage
		}
		switch strings.ToLower(k) {
		case "search":
			f.Search = v
		case "role":
			f.Role = strings.ToLower(v)
		case "status":
			f.Status = strings.ToLower(v)
		default:
			return cur, errFilterUsage
		}
	}
	return f, nil
}

func (a *App) Sort(ctx context.Context, column string) error {
	if err := a.ensureUsers(ctx); err != nil {
		return err
	}
	if err := a.usersView.ToggleSort(column); err != nil {
		ids := make([]string, 0, len(a.usersView.Columns()))
		for _, c := range a.usersView.Columns() {
			ids = append(ids, c.ID)
		}
		a.println(fmt.Sprintf("%v (columns: %s)", err, strings.Join(ids, ", ")))
		return err
	}
	renderUsers(a.out, a.usersView)
	return nil
}

func (a *App) Page(ctx context.Context, arg string) error {
	if err := a.ensureUsers(ctx); err != nil {
		return err
	}
	v := a.usersView
	switch strings.ToLower(arg) {
	case "first":
		v.FirstPage()
	case "prev":
		v.PrevPage()
	case "next":
		v.NextPage()
	case "last":
		v.LastPage()
	default:
		n, err := strconv.Atoi(arg)
		if err != nil {
			a.println("Usage: page first|prev|next|last|<n>")
			return err
		}
		v.SetPageIndex(n - 1)
	}
	renderUsers(a.out, v)
	return nil
}

func (a *App) DeleteUser(ctx context.Context, id string) error {
	return a.userAction(ctx, a.admin.DeleteUser(ctx, id))
}

func (a *App) ToggleAdmin(ctx context.Context, id string) error {
	return a.userAction(ctx, a.admin.ToggleAdmin(ctx, id))
}

func (a *App) ToggleActive(ctx context.Context, id string) error {
	return a.userAction(ctx, a.admin.ToggleActive(ctx, id))
}

func (a *App) AddCredits(ctx context.Context, id, amount string) error {
	n, err := strconv.Atoi(amount)
	if err != nil {
		a.println("Amount must be a whole number")
		return err
	}
	return a.userAction(ctx, a.admin.AddCredits(ctx, id, n))
}

// userAction re-renders an open users view after a successful row action.
// The service has already notified and refreshed the collection.
func (a *App) userAction(ctx context.Context, err error) error {
	if err != nil {
		a.reportMutationError(err)
		return err
	}
	if a.unwatchUsers == nil {
		return nil
	}
	return a.Users(ctx)
}

func (a *App) Videos(ctx context.Context, ownerEmail string) error {
	videos, err := a.admin.Videos(ctx, ownerEmail)
	if err != nil {
		a.reportFetchError(ctx, "videos", err)
		return err
	}
	if ownerEmail != "" {
		a.println("Videos by", ownerEmail)
	}
	renderVideos(a.out, videos, "No videos found")
	return nil
}
