package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/iudanet/mastopress/internal/config"
	"github.com/iudanet/mastopress/internal/state"
)

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// StatusOptions - флаги команды status
type StatusOptions struct {
	Format string
}

// PostStatus - состояние одного отслеживаемого поста
type PostStatus struct {
	PostID  string `json:"post_id"`
	PageID  string `json:"page_id"`
	Replies int    `json:"replies"`
}

// StatusReport - вывод команды status
type StatusReport struct {
	Backend string       `json:"backend"`
	Path    string       `json:"path"`
	Posts   []PostStatus `json:"posts"`
	Tracked int          `json:"tracked"`
}

// NewStatusCommand creates the status command.
func NewStatusCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StatusOptions{}

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show tracked posts and merged reply counts",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd.Context(), rootOpts, opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	return cmd
}

func runStatus(ctx context.Context, rootOpts *RootOptions, opts *StatusOptions, cmd *cobra.Command) error {
	cfg, logger, err := loadConfig(rootOpts, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	tracked, err := readState(ctx, cfg.State, logger)
	if err != nil {
		return err
	}

	report := StatusReport{
		Backend: cfg.State.Backend,
		Path:    cfg.State.Path,
		Tracked: tracked.Len(),
		Posts:   make([]PostStatus, 0, tracked.Len()),
	}
	for _, postID := range tracked.PostIDs() {
		entry, _ := tracked.Get(postID)
		report.Posts = append(report.Posts, PostStatus{
			PostID:  postID,
			PageID:  entry.PageID,
			Replies: len(entry.Replies),
		})
	}

	if opts.Format == "json" {
		return writeJSON(cmd.OutOrStdout(), report)
	}
	writeStatusText(cmd.OutOrStdout(), report)
	return nil
}

// readState загружает состояние, не создавая хранилище: bolt и sqlite
// создают файл при открытии, а status не должен ничего оставлять на диске.
func readState(ctx context.Context, cfg config.StateConfig, logger *slog.Logger) (*state.TrackedState, error) {
	if _, err := os.Stat(cfg.Path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return state.New(), nil
		}
		return nil, fmt.Errorf("failed to stat state store: %w", err)
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open state store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("Failed to close state store", "error", err)
		}
	}()

	tracked, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tracked state: %w", err)
	}
	return tracked, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeStatusText(w io.Writer, r StatusReport) {
	fmt.Fprintf(w, "State: %s (%s)\n", r.Path, r.Backend)
	fmt.Fprintf(w, "Tracked posts: %d\n", r.Tracked)
	for _, p := range r.Posts {
		fmt.Fprintf(w, "  %s -> page %s, %d replies merged\n", p.PostID, p.PageID, p.Replies)
	}
}
