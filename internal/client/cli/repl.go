package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dmitrijs2005/tijarah/internal/client/access"
	"github.com/dmitrijs2005/tijarah/internal/client/client"
	"github.com/dmitrijs2005/tijarah/internal/client/services"
	"github.com/dmitrijs2005/tijarah/internal/client/session"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// Command is one REPL command. Route is the view it belongs to; the guard
// evaluates the route's requirement, raised to Require when that is stricter.
type Command struct {
	Name    string
	Aliases []string
	Usage   string
	Route   access.Route
	Require access.Requirement
	Run     func(ctx context.Context, args []string) error
}

// requirement is the effective requirement of c.
func (c Command) requirement() access.Requirement {
	if r := access.RequirementOf(c.Route); r > c.Require {
		return r
	}
	return c.Require
}

// execIface defines the minimal surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Access() access.Snapshot
	Commands() []Command
}

// runREPL starts a simple read–eval–print loop for the Tijarah CLI.
//
// It reads a line, parses the first token as the command and looks it up in
// a.Commands(). Before running, the command's requirement is checked with
// access.Decide against the current session:
//
//   - Allow runs the command;
//   - Loading reports that the session is still being restored;
//   - Deny reports why and runs the command that owns the redirect route,
//     so an anonymous user asking for a protected view lands on login.
//
// Errors from commands are printed. A command failing with
// client.ErrSessionExpired redirects to login the same way. The loop exits on
// EOF or when the user types "exit" or "quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("tj> %s > ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || strings.TrimSpace(line) == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		name, args := strings.ToLower(parts[0]), parts[1:]

		switch name {
		case "exit", "quit":
			printlnFn("Bye!")
			return
		case "help", "?":
			printHelp(a)
			continue
		}

		cmd, ok := lookup(a.Commands(), name)
		if !ok {
			printlnFn("Unknown command:", name)
			continue
		}
		dispatch(ctx, a, cmd, args)
	}
}

func dispatch(ctx context.Context, a execIface, cmd Command, args []string) {
	d := access.Decide(cmd.requirement(), a.Access())
	switch d.Outcome {
	case access.Loading:
		printlnFn("Still restoring your session, try again in a moment.")
		return
	case access.Deny:
		if d.Redirect == access.RouteLogin {
			printlnFn("Please log in to continue.")
		} else {
			printlnFn("This area is for administrators only.")
		}
		redirect(ctx, a, d.Redirect)
		return
	}

	err := cmd.Run(ctx, args)
	if err == nil {
		return
	}
	printlnFn(describe(err))
	if errors.Is(err, client.ErrSessionExpired) {
		redirect(ctx, a, access.RouteLogin)
	}
}

// redirect runs the first command that belongs to route, if it is allowed.
func redirect(ctx context.Context, a execIface, route access.Route) {
	for _, c := range a.Commands() {
		if c.Route != route || c.requirement() != access.RequireNone {
			continue
		}
		if err := c.Run(ctx, nil); err != nil {
			printlnFn(describe(err))
		}
		return
	}
}

func lookup(cmds []Command, name string) (Command, bool) {
	for _, c := range cmds {
		if c.Name == name {
			return c, true
		}
		for _, alias := range c.Aliases {
			if alias == name {
				return c, true
			}
		}
	}
	return Command{}, false
}

// printHelp lists the commands the current session may run right now.
func printHelp(a execIface) {
	snap := a.Access()
	var usable []string
	for _, c := range a.Commands() {
		if access.Decide(c.requirement(), snap).Allowed() {
			usable = append(usable, "  "+c.Usage)
		}
	}
	sort.Strings(usable)
	printlnFn("Available commands:\n" + strings.Join(usable, "\n") + "\n  help\n  exit")
}

// describe turns an error into the message shown to the user.
func describe(err error) string {
	detail, hasDetail := client.Detail(err)
	switch {
	case errors.Is(err, client.ErrUnavailable):
		return "Unable to reach the server. Check your connection and try again."
	case errors.Is(err, client.ErrServer):
		return "Something went wrong on our side. Please try again later."
	case errors.Is(err, client.ErrSessionExpired):
		return "Your session has expired. Please log in again."
	case errors.Is(err, client.ErrAccountDisabled):
		if hasDetail {
			return detail
		}
		return "Your account has been disabled."
	case errors.Is(err, client.ErrUnauthorized):
		if hasDetail {
			return detail
		}
		return "Invalid login credentials."
	case errors.Is(err, client.ErrValidation):
		return validationMessage(err, detail, hasDetail)
	case errors.Is(err, client.ErrNotFound):
		return "Not found."
	case errors.Is(err, client.ErrForbidden):
		return "You do not have permission to do that."
	case errors.Is(err, services.ErrNotPermitted):
		return "Not allowed: " + strings.TrimPrefix(err.Error(), services.ErrNotPermitted.Error()+": ")
	case errors.Is(err, services.ErrNotAuthenticated):
		return "Please log in to continue."
	case errors.Is(err, services.ErrInvalidInput):
		return strings.TrimPrefix(err.Error(), services.ErrInvalidInput.Error()+": ")
	case errors.Is(err, session.ErrClosed):
		return "The session has been closed."
	default:
		return "Error: " + err.Error()
	}
}

// validationMessage prefers field errors, then the problem detail.
func validationMessage(err error, detail string, hasDetail bool) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && len(apiErr.Errors) > 0 {
		fields := make([]string, 0, len(apiErr.Errors))
		for f := range apiErr.Errors {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		lines := make([]string, 0, len(fields))
		for _, f := range fields {
			lines = append(lines, fmt.Sprintf("%s: %s", f, strings.Join(apiErr.Errors[f], " ")))
		}
		return strings.Join(lines, "\n")
	}
	if hasDetail {
		return detail
	}
	return "The request was rejected. Check your input."
}
