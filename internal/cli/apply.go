package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/imbue/internal/apply"
	"github.com/jmylchreest/imbue/internal/colour"
	"github.com/jmylchreest/imbue/internal/config"
	imbueimage "github.com/jmylchreest/imbue/internal/image"
)

var (
	applyMode    string
	applyTargets []string
	applySilent  bool
)

// applyCmd represents the apply command.
var applyCmd = &cobra.Command{
	Use:   "apply [wallpaper]",
	Short: "Theme the desktop from a wallpaper",
	Long: `Generate a colour scheme from a wallpaper image and apply it to every
enabled target. A directory argument picks a random image inside it.
Without any argument, the previous run is replayed from the last-run
record.

Optional targets (spotify, discord, vscode, obsidian, vivaldi) are
controlled by the config file unless --targets names them explicitly.

Examples:
  # Theme everything from a wallpaper
  imbue apply ~/Pictures/walls/forest.jpg

  # Pick a random wallpaper from a directory
  imbue apply ~/Pictures/walls

  # Light mode, terminal and GTK only
  imbue apply --mode light --targets gtk3,gtk4,gnome-terminal forest.jpg

  # Re-run the previous apply (e.g. after editing templates)
  imbue apply`,
	Args: cobra.MaximumNArgs(1),
	RunE: runApply,
}

func init() {
	applyCmd.Flags().StringVarP(&applyMode, "mode", "m", "", "theme mode (dark, light); overrides the config file")
	applyCmd.Flags().StringSliceVarP(&applyTargets, "targets", "t", nil, "comma-separated targets to apply (default: all enabled)")
	applyCmd.Flags().BoolVar(&applySilent, "silent", false, "suppress the per-target report")
}

func runApply(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	verbose, _ := cmd.Flags().GetBool("verbose")
	logger := newLogger(cmd)

	cfg, err := config.Load(globalConfigPath)
	if err != nil {
		return err
	}

	req, err := buildApplyRequest(args, cfg)
	if err != nil {
		return err
	}

	orch, err := apply.New(apply.Options{
		Logger:       logger,
		Prefs:        cfg.Targets,
		SetWallpaper: cfg.WallpaperEnabled(),
	})
	if err != nil {
		return err
	}

	report, err := orch.Apply(ctx, req)
	if err != nil {
		return err
	}

	if !applySilent {
		printApplyReport(report, verbose)
	}

	if failures := report.Failures(); len(failures) > 0 {
		return fmt.Errorf("%d of %d target(s) failed", len(failures), len(report.Outcomes))
	}

	return nil
}

// buildApplyRequest resolves the wallpaper, mode, and target set for a
// run. A directory argument resolves to a random image inside it before
// anything is recorded, so replays reuse the picked file. A bare
// invocation replays the last-run record; flags override the replayed
// values.
func buildApplyRequest(args []string, cfg *config.Config) (apply.Request, error) {
	var req apply.Request

	modeName := applyMode
	req.Targets = applyTargets

	if len(args) == 1 {
		wallpaper, err := imbueimage.ResolveWallpaper(args[0])
		if err != nil {
			return req, err
		}
		req.WallpaperPath = wallpaper
	} else {
		lastPath, err := config.DefaultLastRunPath()
		if err != nil {
			return req, err
		}
		last, err := config.LoadLastRun(lastPath)
		if os.IsNotExist(err) {
			return req, fmt.Errorf("no previous run to replay (run 'imbue apply <wallpaper>' first)")
		}
		if err != nil {
			return req, fmt.Errorf("failed to load last run: %w", err)
		}
		req.WallpaperPath = last.Wallpaper
		if modeName == "" {
			modeName = last.Mode
		}
		if len(req.Targets) == 0 {
			req.Targets = last.Targets
		}
	}

	if modeName == "" {
		modeName = cfg.Mode
	}
	if modeName == "" {
		modeName = "dark"
	}
	mode, err := colour.ParseThemeMode(modeName)
	if err != nil {
		return req, err
	}
	req.Mode = mode

	return req, nil
}

// printApplyReport writes the per-target summary to stderr.
func printApplyReport(report *apply.Report, verbose bool) {
	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Scheme seed: %s (cache %s)\n", report.Seed.Hex(), cacheWord(report.CacheHit))
		fmt.Fprintf(os.Stderr, "  └─ wallpaper: %s\n", report.Wallpaper)
		fmt.Fprintf(os.Stderr, "  └─ mode: %s\n", report.Mode)
	}

	for _, outcome := range report.Outcomes {
		switch {
		case outcome.Failed():
			fmt.Fprintf(os.Stderr, "✗ %s failed: %v\n", outcome.Target, outcome.Err)
		case outcome.Skipped():
			fmt.Fprintf(os.Stderr, "⚠ Skipping %s: %s\n", outcome.Target, strings.Join(outcome.Notes, "; "))
			continue
		default:
			fmt.Fprintf(os.Stderr, "✓ %s\n", outcome.Target)
		}

		if verbose {
			for _, path := range outcome.Written {
				fmt.Fprintf(os.Stderr, "  └─ %s\n", path)
			}
		}
		for _, note := range outcome.Notes {
			fmt.Fprintf(os.Stderr, "  └─ %s\n", note)
		}
	}
}

func cacheWord(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}
