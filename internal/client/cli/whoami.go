package cli

import (
	"context"
)

func (c *Cli) runWhoami(ctx context.Context) error {
	if _, err := c.withSession(ctx); err != nil {
		return err
	}

	// Ask the server rather than trusting the cached session; this also
	// surfaces an expired token as a 401
	claims, err := c.apiClient.Verify(ctx)
	if err != nil {
		return err
	}

	c.io.Printf("User ID:  %s\n", claims.UserID)
	c.io.Printf("Email:    %s\n", claims.Email)
	c.io.Printf("Username: %s\n", claims.Username)

	return nil
}
