package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing REPL output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. App satisfies it;
// tests use a stub.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool

	Login(ctx context.Context) error
	Register(ctx context.Context) error
	Forgot(ctx context.Context) error
	Examples(ctx context.Context) error

	WhoAmI(ctx context.Context) error
	Generate(ctx context.Context, prompt string) error
	Enhance(ctx context.Context, prompt string) error
	Recent(ctx context.Context) error
	Download(ctx context.Context, url, path string) error
	Logout(ctx context.Context) error

	Stats(ctx context.Context) error
	Users(ctx context.Context) error
	Filter(ctx context.Context, args []string) error
	Sort(ctx context.Context, column string) error
	Page(ctx context.Context, arg string) error
	DeleteUser(ctx context.Context, id string) error
	ToggleAdmin(ctx context.Context, id string) error
	ToggleActive(ctx context.Context, id string) error
	AddCredits(ctx context.Context, id, amount string) error
	Videos(ctx context.Context, ownerEmail string) error
}

const (
	helpAnonymous = "Available commands: login, register, forgot, examples, exit"
	helpUser      = "Available commands: whoami, generate <prompt>, enhance <prompt>, recent, download <url> [file], examples, logout, exit"
	helpAdmin     = "Admin commands: stats, users, filter [search=..] [role=all|admin|user] [status=all|active|inactive], " +
		"sort <column>, page first|prev|next|last|<n>, deluser <id>, toggleadmin <id>, toggleactive <id>, " +
		"addcredits <id> <amount>, videos [email]"
)

var (
	userCommands = map[string]bool{
		"whoami": true, "generate": true, "enhance": true, "recent": true, "download": true, "logout": true,
	}
	adminCommands = map[string]bool{
		"stats": true, "users": true, "filter": true, "sort": true, "page": true, "deluser": true,
		"toggleadmin": true, "toggleactive": true, "addcredits": true, "videos": true,
	}
)

// runREPL reads commands line by line and dispatches them to a.
//
// Commands are gated the way routes are in a web client: signed-in commands
// need a session, admin commands need the admin role. Errors returned by
// handlers are ignored here; handlers report to the user themselves. The loop
// ends on EOF or "exit"/"quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("vg%s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		if userCommands[cmd] && !a.isLoggedIn() {
			printlnFn("Please log in first")
			continue
		}
		if adminCommands[cmd] {
			if !a.isLoggedIn() {
				printlnFn("Please log in first")
				continue
			}
			if !a.isAdmin() {
				printlnFn("Admin access required")
				continue
			}
		}

		switch cmd {
		case "help":
			switch {
			case a.isAdmin():
				printlnFn(helpUser)
				printlnFn(helpAdmin)
			case a.isLoggedIn():
				printlnFn(helpUser)
			default:
				printlnFn(helpAnonymous)
			}

		case "login":
			if a.isLoggedIn() {
				printlnFn("Already logged in, use logout first")
				continue
			}
			_ = a.Login(ctx)

		case "register":
			if a.isLoggedIn() {
				printlnFn("Already logged in, use logout first")
				continue
			}
			_ = a.Register(ctx)

		case "forgot":
			_ = a.Forgot(ctx)

		case "examples":
			_ = a.Examples(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "generate":
			_ = a.Generate(ctx, strings.Join(args, " "))

		case "enhance":
			_ = a.Enhance(ctx, strings.Join(args, " "))

		case "recent":
			_ = a.Recent(ctx)

		case "download":
			if len(args) < 1 || len(args) > 2 {
				printlnFn("Usage: download <url> [file]")
				continue
			}
			path := ""
			if len(args) == 2 {
				path = args[1]
			}
			_ = a.Download(ctx, args[0], path)

		case "logout":
			_ = a.Logout(ctx)

		case "stats":
			_ = a.Stats(ctx)

		case "users":
			_ = a.Users(ctx)

		case "filter":
			_ = a.Filter(ctx, args)

		case "sort":
			if len(args) != 1 {
				printlnFn("Usage: sort <column>")
				continue
			}
			_ = a.Sort(ctx, args[0])

		case "page":
			if len(args) != 1 {
				printlnFn("Usage: page first|prev|next|last|<n>")
				continue
			}
			_ = a.Page(ctx, args[0])

		case "deluser", "toggleadmin", "toggleactive":
			if len(args) != 1 {
				printlnFn(fmt.Sprintf("Usage: %s <id>", cmd))
				continue
			}
			switch cmd {
			case "deluser":
				_ = a.DeleteUser(ctx, args[0])
			case "toggleadmin":
				_ = a.ToggleAdmin(ctx, args[0])
			default:
				_ = a.ToggleActive(ctx, args[0])
			}

		case "addcredits":
			if len(args) != 2 {
				printlnFn("Usage: addcredits <id> <amount>")
				continue
			}
			_ = a.AddCredits(ctx, args[0], args[1])

		case "videos":
			email := ""
			if len(args) > 0 {
				email = args[0]
			}
			_ = a.Videos(ctx, email)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
