package cli

import (
	"context"
	"fmt"
	"time"
)

const timeLayout = "2006-01-02 15:04"

func (c *Cli) runClockIn(ctx context.Context) error {
	if _, err := c.withSession(ctx); err != nil {
		return err
	}

	resp, err := c.apiClient.ClockIn(ctx)
	if err != nil {
		return err
	}

	c.io.Printf("Clocked in at %s\n", resp.Entry.ClockIn.Local().Format(timeLayout))
	return nil
}

func (c *Cli) runClockOut(ctx context.Context) error {
	if _, err := c.withSession(ctx); err != nil {
		return err
	}

	resp, err := c.apiClient.ClockOut(ctx)
	if err != nil {
		return err
	}

	entry := resp.Entry
	if entry.ClockOut == nil {
		return fmt.Errorf("server returned an entry without a clock-out time")
	}

	c.io.Printf("Clocked out at %s\n", entry.ClockOut.Local().Format(timeLayout))
	c.io.Printf("Worked %s\n", entry.ClockOut.Sub(entry.ClockIn).Round(time.Minute))
	return nil
}

func (c *Cli) runPunches(ctx context.Context) error {
	if _, err := c.withSession(ctx); err != nil {
		return err
	}

	resp, err := c.apiClient.ListPunches(ctx)
	if err != nil {
		return err
	}

	if len(resp.Entries) == 0 {
		c.io.Println("No punch entries.")
		return nil
	}

	for _, entry := range resp.Entries {
		if entry.ClockOut != nil {
			c.io.Printf("%s - %s (%s)\n",
				entry.ClockIn.Local().Format(timeLayout),
				entry.ClockOut.Local().Format(timeLayout),
				entry.ClockOut.Sub(entry.ClockIn).Round(time.Minute))
		} else {
			c.io.Printf("%s - still clocked in\n",
				entry.ClockIn.Local().Format(timeLayout))
		}
	}

	return nil
}
