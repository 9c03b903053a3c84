package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"orm-generator/internal/config"
)

func newInitCmd(opts *rootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [packages...]",
		Short: "Write a default config file",
		Long: `Write ` + config.FileName + ` with default settings. The given package
patterns become the packages generated by a bare "gen".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.configPath
			if path == "" {
				path = filepath.Join(opts.dir, config.FileName)
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists, use --force to overwrite", path)
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}

			cfg := config.Default()
			cfg.Packages = args

			if err := config.WriteFile(cfg, path); err != nil {
				return err
			}

			writeLine(cmd.OutOrStdout(), "wrote %s", path)

			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	return cmd
}
