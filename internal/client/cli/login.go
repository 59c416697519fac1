package cli

import (
	"context"
	"fmt"

	"github.com/avasiliev/punchclock/internal/client/storage"
	"github.com/avasiliev/punchclock/pkg/api"
)

func (c *Cli) runLogin(ctx context.Context) error {
	email, err := c.io.ReadInput("Email: ")
	if err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}

	password, err := c.io.ReadPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	resp, err := c.apiClient.Login(ctx, api.LoginRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return err
	}

	c.apiClient.SetAuthToken(resp.AuthToken)

	// Fetch the claims so the stored session carries the display name
	verified, err := c.apiClient.Verify(ctx)
	if err != nil {
		return err
	}

	session := &storage.Session{
		Email:     verified.Email,
		Username:  verified.Username,
		AuthToken: resp.AuthToken,
	}
	if err := c.sessions.SaveSession(ctx, session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	c.io.Printf("Logged in as %s\n", verified.Username)

	return nil
}
