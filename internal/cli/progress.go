package cli

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/skillhub/backend/internal/client"
	"github.com/skillhub/backend/internal/models"
	"github.com/spf13/cobra"
)

func newProgressCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "progress",
		Short: "Show completed steps per roadmap and learning item",
		Args:  cobra.NoArgs,
		RunE: a.withSession(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			progress := a.progressController(ctx)
			if err := progress.Load(ctx); err != nil {
				return describe(err)
			}

			roadmaps, err := a.api.Roadmaps(ctx)
			if err != nil {
				return describe(err)
			}
			learning, err := a.api.Learning(ctx)
			if err != nil {
				return describe(err)
			}

			fmt.Fprintf(a.out, "%d steps completed\n", progress.Count())
			w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			for _, content := range append(roadmaps, learning...) {
				done, total, percent := progress.ContentProgress(&content)
				fmt.Fprintf(w, "%s\t%s\t%s\t%d/%d\t%d%%\n", content.Namespace, content.Slug, content.Title, done, total, percent)
			}
			return w.Flush()
		}),
	}
}

func newToggleCmd(a *app) *cobra.Command {
	var namespace, contentID string
	var step int

	cmd := &cobra.Command{
		Use:   "toggle [STEP_ID]",
		Short: "Mark a step as completed, or as not completed if it already is",
		Example: `  skillhub toggle roadmap-web-3
  skillhub toggle --namespace roadmap --content web --step 3`,
		Args: cobra.MaximumNArgs(1),
		RunE: a.withSession(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			stepID, err := stepIDFromInput(args, namespace, contentID, step)
			if err != nil {
				return err
			}

			// Without a session Toggle reports the missing login itself
			progress := a.progressController(ctx)
			if err := progress.Load(ctx); err != nil && !errors.Is(err, client.ErrLoginRequired) {
				return describe(err)
			}
			if err := progress.Toggle(ctx, stepID); err != nil {
				return describe(err)
			}

			state := "not completed"
			if progress.IsCompleted(stepID) {
				state = "completed"
			}
			fmt.Fprintf(a.out, "%s: %s (%d steps completed)\n", stepID, state, progress.Count())
			return nil
		}),
	}
	cmd.Flags().StringVar(&namespace, "namespace", "", "Namespace of the step: roadmap or learning")
	cmd.Flags().StringVar(&contentID, "content", "", "Roadmap or learning item id")
	cmd.Flags().IntVar(&step, "step", 0, "Step number inside the item")
	return cmd
}

// stepIDFromInput takes the identifier from the argument, or builds it from the flags.
// An argument must have the <namespace>-<content>-<step> shape the content listings print.
func stepIDFromInput(args []string, namespace, contentID string, step int) (string, error) {
	if len(args) == 1 {
		if namespace != "" || contentID != "" || step != 0 {
			return "", errors.New("pass either STEP_ID or --namespace/--content/--step, not both")
		}
		if args[0] == "" {
			return "", errors.New("step id is required")
		}
		if _, _, _, err := models.ParseStepID(args[0]); err != nil {
			return "", fmt.Errorf("invalid step id %q: expected <namespace>-<content>-<step>, e.g. roadmap-web-3", args[0])
		}
		return args[0], nil
	}

	ns := models.Namespace(namespace)
	if !ns.Valid() {
		return "", fmt.Errorf("--namespace must be %q or %q", models.NamespaceRoadmap, models.NamespaceLearning)
	}
	if contentID == "" {
		return "", errors.New("--content is required")
	}
	if step <= 0 {
		return "", errors.New("--step must be positive")
	}
	return models.NewStepID(ns, contentID, step), nil
}

// loadIfSignedIn fills a controller when a session exists, so listings can mark completed steps
func (a *app) loadIfSignedIn(ctx context.Context) *client.ProgressController {
	if a.session.Token() == "" {
		return nil
	}
	progress := a.progressController(ctx)
	if err := progress.Load(ctx); err != nil {
		fmt.Fprintf(a.errOut, "progress unavailable: %v\n", describe(err))
		return nil
	}
	return progress
}
