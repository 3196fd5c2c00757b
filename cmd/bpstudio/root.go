package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kingrea/battlepass-studio/internal/config"
	"github.com/kingrea/battlepass-studio/internal/tui"
	"github.com/spf13/cobra"
)

// documentFlags are shared by every command that opens a project.
type documentFlags struct {
	quests string
	pool   string
}

func (f *documentFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.quests, "quests", "", "quest document to open instead of discovering one")
	cmd.Flags().StringVar(&f.pool, "pool", "", "pool document to open instead of the configured one")
}

func (f *documentFlags) apply(cfg *config.Config) {
	if f.quests != "" {
		cfg.SetQuestsPath(f.quests)
	}
	if f.pool != "" {
		cfg.SetPoolPath(f.pool)
	}
}

func newRootCmd() *cobra.Command {
	var flags documentFlags
	root := &cobra.Command{
		Use:           "bpstudio [dir]",
		Short:         "Edit battle-pass tiers, rewards and quests",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := projectDir(args)
			if err := config.InitStudioDir(dir); err != nil {
				return fmt.Errorf("initialize %s: %w", config.StudioDir, err)
			}
			app, err := tui.NewApp(dir, tui.WithQuestsFile(flags.quests), tui.WithPoolFile(flags.pool))
			if err != nil {
				return err
			}
			defer app.Close()
			p := tea.NewProgram(app, tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("running TUI: %w", err)
			}
			return nil
		},
	}
	flags.register(root)
	root.AddCommand(newCheckCmd(), newGenerateCmd())
	return root
}

func projectDir(args []string) string {
	if len(args) == 0 {
		return "."
	}
	return args[0]
}
