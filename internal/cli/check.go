package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"orm-generator/internal/pipeline"
)

func newCheckCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check [packages...]",
		Short: "Report diagnostics and stale mappers without writing",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := opts.setup(cmd, args)
			if err != nil {
				return err
			}

			s := r.session()
			defer s.Close()

			res, err := r.pass(cmd.Context(), s)
			if err != nil {
				return err
			}

			stale := r.stale(res)

			r.out.Diagnostics(res.Diagnostics)

			if res.Diagnostics.HasErrors() || stale > 0 {
				r.log.Info("check failed", "errors", len(res.Diagnostics.Errors), "stale", stale)
				return ErrReported
			}

			writeLine(cmd.OutOrStdout(), "%d mappers up to date", len(res.Outputs))

			return nil
		},
	}
}

// stale reports and counts the outputs whose file is missing or differs.
func (r *runner) stale(res *pipeline.Result) int {
	n := 0

	for _, o := range res.Outputs {
		path := filepath.Join(o.Dir, o.Artifact.FileName())

		data, err := os.ReadFile(path)
		if err == nil && string(data) == o.Artifact.Text {
			continue
		}

		r.out.Stale(r.rel(path))
		n++
	}

	return n
}
