package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/talgya/starlanes/internal/persistence"
)

var logCmd = &cobra.Command{
	Use:   "log [session-id]",
	Short: "Print the event log of a voyage",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := openGame(cmdConfig)
		if err != nil {
			return err
		}
		defer g.close()

		sessionID := ""
		if len(args) == 1 {
			sessionID = args[0]
		} else {
			sessionID, err = g.db.LatestSessionID()
			if errors.Is(err, persistence.ErrNotFound) {
				return fmt.Errorf("no saved sessions")
			}
			if err != nil {
				return err
			}
		}

		rows, err := g.db.SessionEvents(sessionID)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			fmt.Printf("no events recorded for session %s\n", sessionID)
			return nil
		}

		printSection(fmt.Sprintf("Session %s", sessionID))
		for _, row := range rows {
			fmt.Printf("  %4d  day %-3d %s\n", row.Seq, row.Day, row.Type)
		}
		return nil
	},
}
