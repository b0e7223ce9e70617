package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/imbue/internal/apply"
)

// uninstallCmd represents the uninstall command.
var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Restore the desktop to its pre-imbue state",
	Long: `Revert everything the last apply recorded: remove the files imbue
wrote, restore any backups it took, and reset the desktop settings it
changed. The manifest, last-run record, and scheme cache are removed
as well.

Running uninstall when nothing is applied is a harmless no-op.`,
	Args: cobra.NoArgs,
	RunE: runUninstall,
}

func runUninstall(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	verbose, _ := cmd.Flags().GetBool("verbose")
	logger := newLogger(cmd)

	orch, err := apply.New(apply.Options{Logger: logger})
	if err != nil {
		return err
	}

	report, err := orch.Uninstall(ctx)
	if report != nil {
		printUninstallReport(report, verbose)
	}
	if err != nil {
		return fmt.Errorf("failed to remove manifest: %w", err)
	}
	return nil
}

// printUninstallReport writes the uninstall summary to stderr.
func printUninstallReport(report *apply.UninstallReport, verbose bool) {
	if report.NothingToDo {
		fmt.Fprintln(os.Stderr, "Nothing to uninstall.")
		return
	}

	if report.Conservative {
		fmt.Fprintln(os.Stderr, "⚠ Manifest was unreadable; only files imbue can prove it owns were touched.")
	}

	fmt.Fprintf(os.Stderr, "✓ Restored %d file(s), removed %d path(s), reset %d setting(s)\n",
		len(report.Restored), len(report.Removed), len(report.ResetKeys))

	if verbose {
		for _, path := range report.Restored {
			fmt.Fprintf(os.Stderr, "  └─ restored %s\n", path)
		}
		for _, path := range report.Removed {
			fmt.Fprintf(os.Stderr, "  └─ removed %s\n", path)
		}
		for _, key := range report.ResetKeys {
			fmt.Fprintf(os.Stderr, "  └─ reset %s\n", key)
		}
	}

	for _, note := range report.Notes {
		fmt.Fprintf(os.Stderr, "⚠ %s\n", note)
	}
}
