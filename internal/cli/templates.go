package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/imbue/internal/compression"
	"github.com/jmylchreest/imbue/internal/target"
	"github.com/jmylchreest/imbue/internal/template"
)

var (
	templateTargets  []string
	templateForce    bool
	templateLocation string
)

// templatesCmd represents the templates command.
var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Manage target templates",
	Long: `Manage the templates imbue renders theme files from.

Templates can be customised by dumping them to
~/.config/imbue/templates/<target>/ and editing them. A custom template
is used instead of the embedded one on the next apply.

Examples:
  imbue templates list
  imbue templates dump -t gtk3,discord
  imbue templates install nordic-pack.tar.xz`,
}

// templatesListCmd lists available templates.
var templatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available target templates",
	Long: `List the template files of every target that ships them.

Shows which templates are embedded and which have custom overrides.`,
	Args: cobra.NoArgs,
	RunE: runTemplatesList,
}

// templatesDumpCmd dumps embedded templates to files.
var templatesDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Dump embedded templates to files",
	Long: `Extract embedded templates to ~/.config/imbue/templates/<target>/
so they can be customised. By default every target is dumped.

Examples:
  imbue templates dump
  imbue templates dump -t gtk3,gtk4 --force
  imbue templates dump -l ~/my-themes/templates`,
	Args: cobra.NoArgs,
	RunE: runTemplatesDump,
}

// templatesInstallCmd unpacks a template pack archive.
var templatesInstallCmd = &cobra.Command{
	Use:   "install <archive>",
	Short: "Install a template pack",
	Long: `Unpack an archive of custom templates into
~/.config/imbue/templates/. The archive lays templates out the same way
the templates directory does: <target>/<file>.tmpl.

Supported formats: .tar.gz, .tgz, .tar.xz, .tar.bz2, .zip.`,
	Args: cobra.ExactArgs(1),
	RunE: runTemplatesInstall,
}

func init() {
	templatesCmd.AddCommand(templatesListCmd)
	templatesCmd.AddCommand(templatesDumpCmd)
	templatesCmd.AddCommand(templatesInstallCmd)

	addTargetsFlag(templatesListCmd.Flags())
	addTargetsFlag(templatesDumpCmd.Flags())
	templatesDumpCmd.Flags().BoolVarP(&templateForce, "force", "f", false, "overwrite existing custom templates")
	addLocationFlag(templatesDumpCmd.Flags(), "custom location to dump templates (default: ~/.config/imbue/templates)")
	addLocationFlag(templatesInstallCmd.Flags(), "custom location to install into (default: ~/.config/imbue/templates)")
}

// addTargetsFlag registers --targets on a subcommand. Every registration
// shares the same backing slice.
func addTargetsFlag(fs *pflag.FlagSet) {
	fs.StringSliceVarP(&templateTargets, "targets", "t", []string{}, "comma-separated list of targets (default: all)")
}

func addLocationFlag(fs *pflag.FlagSet, usage string) {
	fs.StringVarP(&templateLocation, "location", "l", "", usage)
}

// targetTemplates pairs a target name with its template loader.
type targetTemplates struct {
	name   string
	loader *template.Loader
}

// resolveTemplateLoaders builds loaders for the named targets, or for
// every target that ships templates when names is empty.
func resolveTemplateLoaders(names []string, customBase string) ([]targetTemplates, error) {
	registry := target.NewRegistry()

	explicit := len(names) > 0
	if !explicit {
		names = registry.Names()
	}

	var out []targetTemplates
	for _, name := range names {
		if _, ok := registry.Get(name); !ok {
			return nil, fmt.Errorf("unknown target: %s (run 'imbue targets' for the list)", name)
		}
		embedded, err := target.Templates(name)
		if err != nil {
			// gnome-terminal themes through settings alone.
			if explicit {
				return nil, fmt.Errorf("target %s has no templates", name)
			}
			continue
		}
		out = append(out, targetTemplates{name: name, loader: newTemplateLoader(name, embedded, customBase)})
	}
	return out, nil
}

func newTemplateLoader(name string, embedded fs.FS, customBase string) *template.Loader {
	loader := template.NewLoader(name, embedded)
	if customBase != "" {
		loader = loader.WithCustomBase(customBase)
	}
	return loader
}

func runTemplatesList(cmd *cobra.Command, args []string) error {
	loaders, err := resolveTemplateLoaders(templateTargets, "")
	if err != nil {
		return err
	}

	fmt.Println("Available target templates:")
	fmt.Println()

	hasOverrides := false
	for _, tt := range loaders {
		templates, err := tt.loader.ListEmbedded()
		if err != nil {
			return fmt.Errorf("failed to list templates for %s: %w", tt.name, err)
		}

		fmt.Printf("Target: %s\n", tt.name)
		fmt.Printf("  Custom template directory: %s\n", tt.loader.CustomDir())
		fmt.Printf("  Templates:\n")
		for _, tmpl := range templates {
			if tt.loader.GetInfo(tmpl).CustomExists {
				fmt.Printf("    - %s*\n", tmpl)
				hasOverrides = true
			} else {
				fmt.Printf("    - %s\n", tmpl)
			}
		}
		fmt.Println()
	}

	fmt.Println("To customise a template, use: imbue templates dump -t <target>")
	if hasOverrides {
		fmt.Println("Templates with active overrides are shown with an asterisk (*).")
	}
	return nil
}

func runTemplatesDump(cmd *cobra.Command, args []string) error {
	customBase, err := expandLocation(templateLocation)
	if err != nil {
		return err
	}
	loaders, err := resolveTemplateLoaders(templateTargets, customBase)
	if err != nil {
		return err
	}

	if customBase != "" {
		fmt.Printf("Dumping templates to custom location: %s\n", customBase)
		fmt.Println()
	}

	totalDumped := 0
	for _, tt := range loaders {
		fmt.Printf("Dumping templates for %s...\n", tt.name)

		dumped, err := tt.loader.DumpAllTemplates(templateForce)
		for _, path := range dumped {
			fmt.Printf("   %s\n", path)
			totalDumped++
		}
		if err != nil {
			var exists *template.OverrideExistsError
			if !errors.As(err, &exists) {
				return fmt.Errorf("failed to dump templates for %s: %w", tt.name, err)
			}
			// Existing overrides are skipped, not clobbered; show each one.
			for _, path := range exists.Paths {
				fmt.Printf("  ⊘ %s (already exists)\n", path)
			}
		}
	}

	if totalDumped == 0 {
		fmt.Fprintln(os.Stderr, "No templates were dumped; use --force to overwrite existing ones.")
	}
	return nil
}

func runTemplatesInstall(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	archivePath := args[0]

	destDir, err := expandLocation(templateLocation)
	if err != nil {
		return err
	}
	if destDir == "" {
		destDir = template.DefaultCustomBase()
	}

	data, err := os.ReadFile(archivePath) // #nosec G304 - archive named by the user on the command line
	if err != nil {
		return fmt.Errorf("failed to read archive: %w", err)
	}

	result, err := compression.ExtractPack(data, filepath.Base(archivePath), destDir)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Installed %d template(s) to %s\n", len(result.Files), destDir)
	if verbose {
		for _, path := range result.Files {
			fmt.Printf("  └─ %s\n", path)
		}
	}
	return nil
}

// expandLocation expands a leading ~/ in a --location override.
func expandLocation(location string) (string, error) {
	if !strings.HasPrefix(location, "~/") {
		return location, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, location[2:]), nil
}
