package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var worldgenCmd = &cobra.Command{
	Use:   "worldgen",
	Short: "Print the generated sector",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := openGame(cmdConfig)
		if err != nil {
			return err
		}
		defer g.close()

		printSection(fmt.Sprintf("Sector (seed %d)", g.seed))
		for _, loc := range g.graph.Locations() {
			fmt.Printf("  %-14s %-18s sec %.2f  crime %.2f  %-10s %s\n",
				loc.ID, loc.Name, loc.Security, loc.Crime, loc.Faction, tagList(loc.Tags))
		}

		printSection("Lanes")
		for _, lane := range g.graph.Lanes() {
			fmt.Printf("  %-14s <-> %-14s dist %5.1f  hazard %.2f  %s\n",
				lane.From, lane.To, lane.Distance, lane.Hazard, tagList(lane.Tags))
		}
		return nil
	},
}
