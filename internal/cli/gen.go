package cli

import (
	"github.com/spf13/cobra"
)

func newGenCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "gen [packages...]",
		Short: "Generate mappers",
		Long: `Generate a mapper file next to every marked model of the given packages.
Packages default to the list in the config file.`,
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

			if err := r.write(res); err != nil {
				return err
			}

			r.out.Result(res)

			if res.Diagnostics.HasErrors() {
				return ErrReported
			}

			return nil
		},
	}
}
