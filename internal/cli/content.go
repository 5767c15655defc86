package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/skillhub/backend/internal/models"
	"github.com/spf13/cobra"
)

// newContentCmd lists one namespace; use is "roadmaps" or "learning"
func newContentCmd(a *app, use, short string) *cobra.Command {
	var showSteps bool

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: a.withSession(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			list := a.api.Roadmaps
			if use == "learning" {
				list = a.api.Learning
			}
			contents, err := list(ctx)
			if err != nil {
				return describe(err)
			}
			if len(contents) == 0 {
				fmt.Fprintln(a.out, "Nothing here yet")
				return nil
			}

			if !showSteps {
				w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
				for _, content := range contents {
					fmt.Fprintf(w, "%s\t%s\t%s\t%d steps\n", content.Slug, content.Title, content.Icon, len(content.Steps))
				}
				return w.Flush()
			}

			progress := a.loadIfSignedIn(ctx)
			for i, content := range contents {
				if i > 0 {
					fmt.Fprintln(a.out)
				}
				fmt.Fprintf(a.out, "%s (%s)\n", content.Title, content.Slug)
				for _, step := range content.Steps {
					id := content.StepID(step)
					fmt.Fprintf(a.out, "  %s %s  %s\n", checkbox(progress != nil && progress.IsCompleted(id)), id, step.Title)
					printLinks(a, "resource", step.Resources)
					printLinks(a, "assignment", step.Assignments)
				}
			}
			return nil
		}),
	}
	cmd.Flags().BoolVar(&showSteps, "steps", false, "Show steps with their ids and links")
	return cmd
}

func printLinks(a *app, label string, links []models.Link) {
	for _, link := range links {
		fmt.Fprintf(a.out, "      %s: %s %s\n", label, link.Name, link.URL)
	}
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}
