package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/talgya/starlanes/internal/events"
	"github.com/talgya/starlanes/internal/persistence"
	"github.com/talgya/starlanes/internal/rng"
	"github.com/talgya/starlanes/internal/travel"
)

var resumeCmd = &cobra.Command{
	Use:   "resume [session-id]",
	Short: "Continue the latest (or a named) saved voyage",
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

		state, inst, err := g.db.LoadSession(sessionID, g.reg)
		if err != nil {
			return err
		}
		if !state.PausedForEncounter || inst == nil {
			return fmt.Errorf("session %s is not paused", sessionID)
		}

		// Replay the stream to the saved cursor so the continuation
		// draws exactly what an uninterrupted run would have.
		stream := rng.Restore("travel", state.RNGSeed, state.RNGCalls)

		rec := &events.Recorder{}
		bus := events.NewBus(rec, events.SlogSink{})
		exec := travel.NewExecutor(g.graph, g.reg, bus, stream)

		res := &travel.Result{
			Status:       travel.StatusPaused,
			State:        state,
			Instance:     inst,
			EncounterCtx: g.encounterContext(state),
		}
		fmt.Printf("resuming session %s at %s, day %d\n",
			sessionID, state.CurrentLocation, g.camp.Day)
		return g.driveVoyage(cmd.InOrStdin(), exec, bus, stream, rec, res)
	},
}
