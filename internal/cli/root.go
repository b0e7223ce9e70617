// Package cli provides the command-line interface for Imbue.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/imbue/internal/version"
)

var (
	// Global config path override
	globalConfigPath string

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "imbue",
		Short: "A wallpaper-driven desktop theming tool",
		Long: `Imbue derives a complete colour scheme from a wallpaper and applies it
across the desktop: GTK 3/4, GNOME Shell, GNOME Terminal, and optional
application targets such as Spotify, Discord, VS Code, Obsidian, and
Vivaldi.

Everything imbue writes is recorded in a manifest, so a single
'imbue uninstall' restores the desktop to its previous state.`,
		Version:      version.Short(),
		SilenceUsage: true,
	}
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&globalConfigPath, "config", "", "config file (default ~/.config/imbue/config.yaml)")

	// Set version template
	rootCmd.SetVersionTemplate(version.String() + "\n")

	versionCmd.Flags().BoolVar(&versionAsJSON, "json", false, "print version information as JSON")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(uninstallCmd)
	rootCmd.AddCommand(schemeCmd)
	rootCmd.AddCommand(targetsCmd)
	rootCmd.AddCommand(templatesCmd)
}

// newLogger builds the run logger from the persistent verbosity flags.
// Verbose wins over quiet when both are set.
func newLogger(cmd *cobra.Command) hclog.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	quiet, _ := cmd.Flags().GetBool("quiet")

	switch {
	case verbose:
		return hclog.New(&hclog.LoggerOptions{
			Name:   "imbue",
			Output: os.Stderr,
			Level:  hclog.Debug,
		})
	case quiet:
		return hclog.New(&hclog.LoggerOptions{
			Name:   "imbue",
			Output: io.Discard,
			Level:  hclog.Off,
		})
	default:
		return hclog.New(&hclog.LoggerOptions{
			Name:   "imbue",
			Output: os.Stderr,
			Level:  hclog.Warn,
		})
	}
}

var versionAsJSON bool

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print detailed version information including build date, commit hash, and Go version.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if versionAsJSON {
			data, err := json.MarshalIndent(version.GetInfo(), "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}
		fmt.Println(version.String())
		return nil
	},
}
