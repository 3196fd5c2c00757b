package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/kingrea/battlepass-studio/internal/catalog"
	"github.com/kingrea/battlepass-studio/internal/document"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newGenerateCmd() *cobra.Command {
	var count int
	var seed int64
	cmd := &cobra.Command{
		Use:       "generate reward|quest",
		Short:     "Print random rewards or quests as YAML",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"reward", "quest"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return fmt.Errorf("--count must be at least 1, got %d", count)
			}
			if !cmd.Flags().Changed("seed") {
				seed = time.Now().UnixNano()
			}
			rng := rand.New(rand.NewSource(seed))
			var root *yaml.Node
			switch args[0] {
			case "reward":
				rewards := catalog.NewRewards()
				for i := 0; i < count; i++ {
					rewards.Random(rng)
				}
				root = rewards.Node()
			case "quest":
				quests := catalog.NewQuests()
				for i := 0; i < count; i++ {
					quests.Random(rng)
				}
				root = quests.Node()
			}
			data, err := document.Encode(root)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().IntVar(&count, "count", 1, "number of records to generate")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed; a time-based seed is used when unset")
	return cmd
}
