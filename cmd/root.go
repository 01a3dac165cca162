package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/pitchside/config"
	"github.com/DhavalSuthar-24/pitchside/internal/match"
	"github.com/DhavalSuthar-24/pitchside/internal/notify"
	"github.com/DhavalSuthar-24/pitchside/internal/team"
	"github.com/DhavalSuthar-24/pitchside/internal/venue"
)

var rootCmd = &cobra.Command{
	Use:   "pitchside",
	Short: "Cricket match scheduling and roster service",
	Long: `pitchside organises cricket matches: scheduling, teams, player
positions and the match lifecycle.

Configuration is read from the environment (and a .env file when present).
See config/config.go for the full list of keys.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, reconcileCmd, tokenCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func allModels() []interface{} {
	return []interface{}{
		&match.Match{}, &match.Umpire{},
		&team.Team{}, &team.Participant{},
		&venue.Venue{},
	}
}

// bootstrap loads config and opens the database.
func bootstrap() (*config.Config, hclog.Logger, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}
	logger := config.NewLogger(cfg)
	db, err := config.ConnectDB(cfg, logger.Named("db"))
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, logger, db, nil
}

func newMatchService(cfg *config.Config, db *gorm.DB, logger hclog.Logger, notifier notify.Dispatcher, venues venue.Directory) *match.MatchService {
	deps := match.ServiceDeps{
		Repo:      match.NewGormMatchRepository(db),
		Lifecycle: match.NewLifecycle(nil),
		Policy:    match.TeamPolicy{Mode: cfg.Roster.TeamPolicy, Count: cfg.Roster.TeamCount},
		Notifier:  notifier,
		Venues:    venues,
		Location:  cfg.Location(),
		Logger:    logger.Named("match"),
	}
	return match.NewMatchService(deps)
}
