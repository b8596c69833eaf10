package main

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/rpg2048/internal/config"
	"github.com/vovakirdan/rpg2048/internal/games/rpg2048/engine"
)

var flagRosterLevels int

var rosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "Show enemies and attacks per level",
	Long: `Print the enemy each level would field for the given seed, with
its goal and the attacks it may use. Bosses appear every tenth level.

Examples:
  rpg2048 roster
  rpg2048 roster --levels 60 --seed 7
  rpg2048 roster --config ./my-battle.yaml`,
	Args: cobra.NoArgs,
	RunE: runRoster,
}

func init() {
	rosterCmd.Flags().IntVar(&flagRosterLevels, "levels", 30, "Number of levels to show")
}

func runRoster(_ *cobra.Command, _ []string) error {
	battle, err := config.LoadBattle(flagConfig)
	if err != nil {
		return err
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	fmt.Printf("Enemy roster (seed %d)\n", seed)
	fmt.Println()
	fmt.Printf("  %-5s  %-5s  %-6s  %-34s  %s\n", "Level", "", "HP", "Goal", "Attacks")
	fmt.Printf("  %-5s  %-5s  %-6s  %-34s  %s\n", "-----", "", "--", "----", "-------")

	for level := range flagRosterLevels {
		e := engine.NewEnemy(level, battle.Pools, rng)

		tag := ""
		if e.Boss {
			tag = "BOSS"
		}
		hp := "-"
		if e.ShowsHPBar() {
			hp = fmt.Sprint(e.MaxHP)
		}

		var attacks []string
		for _, k := range engine.AttackKinds {
			if e.Mechanics.Allows(k) {
				attacks = append(attacks, k.String())
			}
		}

		fmt.Printf("  %-5d  %-5s  %-6s  %-34s  %s\n", level+1, tag, hp, e.ConditionText(), strings.Join(attacks, ", "))
	}
	return nil
}
