// Package cli implements the punchclock command-line client.
package cli

import (
	"context"
	"fmt"

	"github.com/avasiliev/punchclock/internal/client/api"
	"github.com/avasiliev/punchclock/internal/client/iocli"
	"github.com/avasiliev/punchclock/internal/client/storage"
)

// Cli dispatches CLI commands
type Cli struct {
	apiClient *api.Client
	sessions  storage.SessionStorage
	io        iocli.IO
}

// New creates a new CLI dispatcher
func New(apiClient *api.Client, sessions storage.SessionStorage, io iocli.IO) *Cli {
	return &Cli{
		apiClient: apiClient,
		sessions:  sessions,
		io:        io,
	}
}

// Run executes the named command
func (c *Cli) Run(ctx context.Context, command string) error {
	switch command {
	case "register":
		return c.runRegister(ctx)
	case "login":
		return c.runLogin(ctx)
	case "logout":
		return c.runLogout(ctx)
	case "whoami":
		return c.runWhoami(ctx)
	case "in":
		return c.runClockIn(ctx)
	case "out":
		return c.runClockOut(ctx)
	case "punches":
		return c.runPunches(ctx)
	default:
		PrintUsage()
		return fmt.Errorf("unknown command: %s", command)
	}
}

// PrintUsage prints the command list
func PrintUsage() {
	fmt.Println("Usage: punchclock-cli [flags] <command>")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  register   Create a new account")
	fmt.Println("  login      Log in and store the session")
	fmt.Println("  logout     Delete the stored session")
	fmt.Println("  whoami     Show the identity behind the stored token")
	fmt.Println("  in         Clock in")
	fmt.Println("  out        Clock out")
	fmt.Println("  punches    List punch entries")
}

// withSession loads the stored session and arms the API client with its
// bearer token.
func (c *Cli) withSession(ctx context.Context) (*storage.Session, error) {
	session, err := c.sessions.GetSession(ctx)
	if err != nil {
		if err == storage.ErrSessionNotFound {
			return nil, fmt.Errorf("not logged in; run 'punchclock-cli login' first")
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	c.apiClient.SetAuthToken(session.AuthToken)
	return session, nil
}
