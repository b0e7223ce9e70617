package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/imbue/internal/config"
	"github.com/jmylchreest/imbue/internal/target"
)

// targetsCmd represents the targets command.
var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "List the applications imbue can theme",
	Long: `List every target in apply order with its state under the current
configuration. Core desktop targets always run; optional targets are
switched on in the config file's targets: block, or named explicitly
with 'imbue apply --targets'.`,
	Args: cobra.NoArgs,
	RunE: runTargets,
}

func runTargets(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(globalConfigPath)
	if err != nil {
		return err
	}

	registry := target.NewRegistry()

	tbl := NewTable("TARGET", "STATE", "DESCRIPTION")
	tbl.WrapColumn(2, 40)
	for _, tgt := range registry.All() {
		tbl.AddRow(tgt.Name(), targetState(tgt, cfg), tgt.Description())
	}

	fmt.Print(tbl.Render())
	fmt.Println()
	fmt.Println("Optional targets are enabled in the config file's targets: block,")
	fmt.Println("or per run with 'imbue apply --targets <name,...>'.")
	return nil
}

// targetState renders one target's effective state for the listing.
func targetState(tgt target.Target, cfg *config.Config) string {
	if !tgt.Optional() {
		return "core"
	}
	if !cfg.Targets.Enabled(tgt.Name()) {
		return "disabled"
	}
	if tgt.Name() == "obsidian" && cfg.Targets.ObsidianVault == "" {
		return "enabled, no vault"
	}
	return "enabled"
}
