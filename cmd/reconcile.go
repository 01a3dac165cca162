package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DhavalSuthar-24/pitchside/internal/team"
)

var reconcileTeamID uint

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Recount active participants and repair team player counters",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, db, err := bootstrap()
		if err != nil {
			return err
		}
		svc := newMatchService(cfg, db, logger, nil, nil)

		var results []team.ReconcileResult
		if reconcileTeamID != 0 {
			res, err := svc.ReconcileTeam(cmd.Context(), reconcileTeamID)
			if err != nil {
				return err
			}
			results = append(results, *res)
		} else {
			results, err = svc.ReconcileAll(cmd.Context())
			if err != nil {
				return err
			}
		}

		repaired := 0
		for _, r := range results {
			status := "ok"
			if r.Repaired {
				status = "repaired"
				repaired++
			}
			fmt.Fprintf(cmd.OutOrStdout(), "team %d\tcached=%d\tactual=%d\t%s\n", r.TeamID, r.Cached, r.Actual, status)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d teams checked, %d repaired\n", len(results), repaired)
		return nil
	},
}

func init() {
	reconcileCmd.Flags().UintVar(&reconcileTeamID, "team", 0, "reconcile a single team by id")
}
