package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/iudanet/mastopress/internal/sync"
)

// NewOnceCommand creates the once command.
func NewOnceCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "once",
		Short: "Run a single sync pass and print its counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnce(cmd.Context(), rootOpts, cmd)
		},
	}

	return cmd
}

func runOnce(ctx context.Context, opts *RootOptions, cmd *cobra.Command) error {
	a, err := newApp(ctx, opts, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.engine.RunPass(ctx)
	if result != nil {
		printPassResult(cmd.OutOrStdout(), result)
	}
	if err != nil {
		return fmt.Errorf("sync pass failed: %w", err)
	}
	return nil
}

func printPassResult(w io.Writer, r *sync.PassResult) {
	fmt.Fprintf(w, "Pass %s\n", r.ID)
	fmt.Fprintf(w, "Intake: fetched=%d created=%d already_tracked=%d create_failed=%d duplicates=%d fetch_failed=%t\n",
		r.Intake.Fetched, r.Intake.Created, r.Intake.AlreadyTracked, r.Intake.CreateFailed, r.Intake.Duplicates, r.Intake.FetchFailed)
	fmt.Fprintf(w, "Merge: posts=%d pages_updated=%d replies_merged=%d update_failed=%d fetch_failed=%d\n",
		r.Merge.Posts, r.Merge.PagesUpdated, r.Merge.RepliesMerged, r.Merge.UpdateFailed, r.Merge.FetchFailed)
}
