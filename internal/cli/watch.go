package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"orm-generator/internal/pipeline"
	"orm-generator/internal/report"
)

func newWatchCmd(opts *rootOptions) *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch [packages...]",
		Short: "Regenerate mappers whenever models change",
		Long: `Poll the given packages and regenerate mappers of changed models. Unchanged
models are served from the session cache.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := opts.setup(cmd, args)
			if err != nil {
				return err
			}

			if interval <= 0 {
				interval = r.cfg.WatchInterval
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return r.watch(ctx, interval)
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 0, "Polling interval (default from config)")

	return cmd
}

// watch runs passes until ctx is done. A failing pass is logged and the
// next tick retries.
func (r *runner) watch(ctx context.Context, interval time.Duration) error {
	s := r.session()
	defer s.Close()

	r.log.Info("watching", "packages", r.patterns, "interval", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		r.tick(ctx, s)

		select {
		case <-ctx.Done():
			r.log.Info("watch stopped")
			return nil
		case <-ticker.C:
		}
	}
}

func (r *runner) tick(ctx context.Context, s *pipeline.Session) {
	res, err := r.pass(ctx, s)
	if err != nil {
		if ctx.Err() == nil {
			r.log.Error("pass failed", "error", err)
		}

		return
	}

	if err := r.write(res); err != nil {
		r.log.Error("writing mappers failed", "error", err)
		return
	}

	if len(res.Fresh()) > 0 || len(res.Retired) > 0 || res.Diagnostics.Len() > 0 {
		r.out.Result(res)
		return
	}

	r.log.Debug("no changes", "unchanged", report.Summarize(res).Unchanged)
}
