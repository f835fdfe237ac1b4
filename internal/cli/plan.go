package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/talgya/starlanes/internal/travel"
)

var planCmd = &cobra.Command{
	Use:   "plan <origin> <destination>",
	Short: "Compute and print a route",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := openGame(cmdConfig)
		if err != nil {
			return err
		}
		defer g.close()

		origin, err := g.resolveLocation(args[0])
		if err != nil {
			return err
		}
		dest, err := g.resolveLocation(args[1])
		if err != nil {
			return err
		}

		plan := g.planner().PlanRoute(origin.ID, dest.ID)
		printPlan(plan)
		if !plan.Valid {
			printWarning("route not viable: %s", plan.Reason)
		}
		return nil
	},
}

func printPlan(plan *travel.Plan) {
	printSection(fmt.Sprintf("Route %s -> %s", plan.OriginID, plan.DestinationID))
	for i, seg := range plan.Segments {
		fmt.Printf("  %d. %-14s -> %-14s %s, %s, encounter %3.0f%%  [%s]\n",
			i+1, seg.FromID, seg.ToID,
			dayStr(seg.TimeDays), fuelStr(seg.FuelCost),
			seg.EncounterChance*100, seg.SuggestedTag)
	}
	fmt.Printf("\n  total: %s, %s, hazard %.1f\n",
		dayStr(plan.TotalDays), fuelStr(plan.TotalFuel), plan.TotalHazard)
}
