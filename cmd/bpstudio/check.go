package main

import (
	"fmt"

	"github.com/kingrea/battlepass-studio/internal/config"
	"github.com/kingrea/battlepass-studio/internal/studio"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

func newCheckCmd() *cobra.Command {
	var flags documentFlags
	cmd := &cobra.Command{
		Use:   "check [dir]",
		Short: "Validate documents and list every problem",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewConfig(projectDir(args))
			if err != nil {
				return err
			}
			flags.apply(cfg)
			s, err := studio.New(cfg)
			if err != nil {
				return err
			}
			if err := s.Reload(); err != nil {
				return err
			}
			problems := multierr.Errors(s.Check())
			out := cmd.OutOrStdout()
			for _, p := range problems {
				fmt.Fprintf(out, "- %v\n", p)
			}
			fmt.Fprintln(out, s.Status())
			if len(problems) > 0 {
				return fmt.Errorf("%d problem(s) found", len(problems))
			}
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}
