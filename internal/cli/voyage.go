package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/talgya/starlanes/internal/campaign"
	"github.com/talgya/starlanes/internal/encounter"
	"github.com/talgya/starlanes/internal/events"
	"github.com/talgya/starlanes/internal/rng"
	"github.com/talgya/starlanes/internal/travel"
)

var voyageCmd = &cobra.Command{
	Use:   "voyage <destination>",
	Short: "Run a voyage from the campaign's current location",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := openGame(cmdConfig)
		if err != nil {
			return err
		}
		defer g.close()

		dest, err := g.resolveLocation(args[0])
		if err != nil {
			return err
		}

		plan := g.planner().PlanRoute(g.camp.Location, dest.ID)
		printPlan(plan)
		if !plan.Valid {
			return fmt.Errorf("no viable route: %s", plan.Reason)
		}
		if g.camp.Fuel() < plan.TotalFuel {
			printWarning("tank holds %s, route needs %s", fuelStr(g.camp.Fuel()), fuelStr(plan.TotalFuel))
		}

		seed, err := rng.NewSeed()
		if err != nil {
			return err
		}

		rec := &events.Recorder{}
		bus := events.NewBus(rec, events.SlogSink{})
		stream := rng.NewStream("travel", seed)
		exec := travel.NewExecutor(g.graph, g.reg, bus, stream)

		res := exec.Execute(plan, g.camp)
		return g.driveVoyage(cmd.InOrStdin(), exec, bus, stream, rec, res)
	},
}

func init() {
	voyageCmd.Flags().BoolVar(&flagAuto, "auto", false, "Pick encounter options automatically (highest success chance)")
	resumeCmd.Flags().BoolVar(&flagAuto, "auto", false, "Pick encounter options automatically (highest success chance)")
}

// driveVoyage loops a paused executor result through its encounter until
// the voyage completes or is interrupted, persisting at every pause
// point and once at the end.
func (g *game) driveVoyage(in io.Reader, exec *travel.Executor, bus *events.Bus, stream *rng.Stream, rec *events.Recorder, res *travel.Result) error {
	runner := encounter.NewRunner(bus)
	input := bufio.NewReader(in)

	for res.Status == travel.StatusPaused {
		if err := g.db.SaveSession(travel.StatusPaused, res.State, res.Instance); err != nil {
			return err
		}
		if err := g.db.SaveCampaign(g.camp); err != nil {
			return err
		}

		outcome, crewID, err := g.runEncounter(input, runner, res.Instance, res.EncounterCtx, stream)
		if err != nil {
			return err
		}

		applier := campaign.NewApplier(g.camp)
		for _, change := range applier.Apply(res.Instance.DrainEffects(), crewID) {
			fmt.Printf("    %s\n", change.Description)
		}

		res = exec.Resume(res.State, g.camp, outcome)
	}

	if err := g.db.SaveSession(res.Status, res.State, nil); err != nil {
		return err
	}
	if err := g.db.SaveCampaign(g.camp); err != nil {
		return err
	}
	if err := g.db.AppendEvents(res.State.SessionID, rec.Events); err != nil {
		return err
	}

	switch res.Status {
	case travel.StatusCompleted:
		printSuccess("arrived at %s on the %s, %s burned",
			res.FinalLocation, ordinalDay(g.camp.Day), fuelStr(res.FuelConsumed))
	case travel.StatusInterrupted:
		printError("voyage interrupted at %s: %s", res.FinalLocation, res.Reason)
	}
	fmt.Println(dimColor.Sprintf("  session %s | %s", res.State.SessionID, g.camp))
	return nil
}

// runEncounter drives one encounter instance to completion and returns
// the outcome to report back to the executor, plus the crew member who
// resolved the last skill check.
func (g *game) runEncounter(in *bufio.Reader, runner *encounter.Runner, inst *encounter.Instance, ctx *encounter.Context, stream *rng.Stream) (travel.EncounterOutcome, string, error) {
	printSection(fmt.Sprintf("Encounter: %s", inst.Template.Name))

	step, err := runner.Start(inst, ctx)
	if err != nil {
		return travel.EncounterOutcome{}, "", err
	}

	var crewID string
	for step.AwaitingInput {
		node := inst.CurrentNode()
		if node.Text != "" {
			fmt.Printf("\n  %s\n", node.Text)
		}

		options := runner.AvailableOptions(inst, ctx)
		if len(options) == 0 {
			printWarning("no options available, standing down")
			break
		}

		for i, opt := range options {
			line := fmt.Sprintf("  [%d] %s", i+1, opt.Text)
			if opt.Check != nil {
				line += dimColor.Sprintf(" (%s vs %d, %d%%)",
					opt.Check.Stat, opt.Check.Difficulty, encounter.PreviewChance(opt.Check, ctx))
			}
			fmt.Println(line)
		}

		index, err := pickOption(in, options, ctx)
		if err != nil {
			return travel.EncounterOutcome{}, "", err
		}

		step, err = runner.SelectOption(inst, ctx, index, stream)
		if err != nil {
			return travel.EncounterOutcome{}, "", err
		}
		if step.Check != nil {
			crewID = step.Check.CrewID
			printCheck(step.Check)
		}
		if inst.PausedForMission != "" {
			printWarning("tactical mission %q deferred to the mission queue", inst.PausedForMission)
		}
	}

	if step.Result != "" {
		fmt.Printf("\n  outcome: %s\n", step.Result)
	}
	return travel.EncounterOutcome{InstanceID: inst.ID, Result: step.Result}, crewID, nil
}

// pickOption chooses among visible options, either automatically by best
// preview chance or by prompting.
func pickOption(in *bufio.Reader, options []*encounter.Option, ctx *encounter.Context) (int, error) {
	if flagAuto {
		best, bestChance := 0, -1
		for i, opt := range options {
			chance := 100
			if opt.Check != nil {
				chance = encounter.PreviewChance(opt.Check, ctx)
			}
			if chance > bestChance {
				best, bestChance = i, chance
			}
		}
		fmt.Println(dimColor.Sprintf("  auto: option %d", best+1))
		return best, nil
	}

	for {
		_, _ = promptColor.Print("  choose> ")
		line, err := in.ReadString('\n')
		if err != nil {
			return 0, fmt.Errorf("read choice: %w", err)
		}
		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err == nil && n >= 1 && n <= len(options) {
			return n - 1, nil
		}
		printWarning("enter a number between 1 and %d", len(options))
	}
}

func printCheck(check *encounter.CheckResult) {
	verdict := successColor.Sprint("success")
	if !check.Success {
		verdict = errorColor.Sprint("failure")
	}
	if check.CriticalSuccess {
		verdict = successColor.Sprint("critical success")
	} else if check.CriticalFailure {
		verdict = errorColor.Sprint("critical failure")
	}
	fmt.Printf("  %s rolls %d + %d = %d vs %d: %s\n",
		check.CrewName, check.Roll, check.StatValue+check.TraitBonus, check.Total,
		check.Difficulty, verdict)
}
