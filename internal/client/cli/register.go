package cli

import (
	"context"
	"fmt"

	"github.com/avasiliev/punchclock/internal/client/storage"
	"github.com/avasiliev/punchclock/pkg/api"
)

func (c *Cli) runRegister(ctx context.Context) error {
	c.io.Println("=== Registration ===")
	c.io.Println()

	email, err := c.io.ReadInput("Email: ")
	if err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}

	username, err := c.io.ReadInput("Username: ")
	if err != nil {
		return fmt.Errorf("failed to read username: %w", err)
	}

	password, err := c.io.ReadPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	confirm, err := c.io.ReadPassword("Confirm password: ")
	if err != nil {
		return fmt.Errorf("failed to read confirmation: %w", err)
	}

	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}

	resp, err := c.apiClient.Signup(ctx, api.SignupRequest{
		Email:    email,
		Password: password,
		Username: username,
	})
	if err != nil {
		return err
	}

	// Registration already yields a token; store it so the user is
	// logged in right away
	session := &storage.Session{
		Email:     email,
		Username:  username,
		AuthToken: resp.AuthToken,
	}
	if err := c.sessions.SaveSession(ctx, session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	c.io.Println()
	c.io.Println("Registration successful, you are logged in.")

	return nil
}
