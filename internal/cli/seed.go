package cli

import (
	"fmt"

	"github.com/skillhub/backend/internal/config"
	"github.com/skillhub/backend/internal/database"
	"github.com/skillhub/backend/internal/jobs"
	"github.com/skillhub/backend/internal/repositories"
	"github.com/skillhub/backend/internal/services"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newSeedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed FILE",
		Short: "Load roadmaps, learning items and reviews from a YAML or JSON file into the database",
		Long: `Upserts every roadmap and learning item of FILE by id, replacing its steps and links,
and adds the reviews that are not stored yet. Uses the same DB_* settings as the API server.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			db, err := database.Connect(cfg.DSN())
			if err != nil {
				return err
			}
			defer db.Close()

			if err := database.Migrate(db); err != nil {
				return err
			}

			contentService := services.NewContentService(
				repositories.NewContentRepository(db, a.logger),
				repositories.NewReviewRepository(db, a.logger),
				a.logger,
			)

			result, err := jobs.NewContentSync(contentService, args[0], a.logger).Run(cmd.Context())
			if err != nil {
				return err
			}

			a.logger.Info("seed applied", zap.String("file", args[0]))
			fmt.Fprintf(a.out, "Seeded %d items with %d steps; %d reviews added, %d already present\n",
				result.Contents, result.Steps, result.ReviewsCreated, result.ReviewsSkipped)
			return nil
		},
	}
}
