package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jmylchreest/imbue/internal/colour"
	"github.com/jmylchreest/imbue/internal/colour/schemecache"
	imbueimage "github.com/jmylchreest/imbue/internal/image"
)

var (
	schemeAsJSON bool
	schemeSeed   string
)

// schemeCmd represents the scheme command.
var schemeCmd = &cobra.Command{
	Use:   "scheme [wallpaper]",
	Short: "Inspect the colour scheme a wallpaper produces",
	Long: `Generate a colour scheme without applying anything and print it, either
as a swatch table (when stdout is a terminal) or as JSON (when piped,
or with --json).

Instead of a wallpaper, --seed builds the scheme from a literal colour.

Examples:
  imbue scheme ~/Pictures/walls/forest.jpg
  imbue scheme --seed '#7287fd'
  imbue scheme forest.jpg --json > scheme.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScheme,
}

func init() {
	schemeCmd.Flags().BoolVar(&schemeAsJSON, "json", false, "print the scheme as JSON")
	schemeCmd.Flags().StringVar(&schemeSeed, "seed", "", "build the scheme from a hex colour instead of a wallpaper")
}

func runScheme(cmd *cobra.Command, args []string) error {
	logger := newLogger(cmd)

	scheme, err := resolveSchemeInput(args, logger)
	if err != nil {
		return err
	}

	if schemeAsJSON || !term.IsTerminal(int(os.Stdout.Fd())) {
		data, err := json.MarshalIndent(scheme, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode scheme: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	printSwatchTable(scheme)
	return nil
}

// resolveSchemeInput produces the scheme from either --seed or a
// wallpaper argument, going through the scheme cache for the latter so
// inspection and apply share work.
func resolveSchemeInput(args []string, logger hclog.Logger) (colour.Scheme, error) {
	if schemeSeed != "" {
		if len(args) > 0 {
			return colour.Scheme{}, fmt.Errorf("--seed cannot be combined with a wallpaper argument")
		}
		seed, err := colour.ParseHex(schemeSeed)
		if err != nil {
			return colour.Scheme{}, err
		}
		return colour.SchemeFromSeed(seed), nil
	}

	if len(args) == 0 {
		return colour.Scheme{}, fmt.Errorf("a wallpaper argument or --seed is required")
	}
	wallpaper := args[0]

	cache, err := schemecache.New("")
	if err != nil {
		return colour.Scheme{}, err
	}
	fingerprint, err := schemecache.Fingerprint(wallpaper)
	if err != nil {
		return colour.Scheme{}, err
	}
	if scheme, ok := cache.Load(fingerprint); ok {
		logger.Debug("scheme cache hit", "fingerprint", fingerprint)
		return scheme, nil
	}

	sampler := imbueimage.NewSampler(nil)
	weighted, err := sampler.Sample(wallpaper)
	if err != nil {
		return colour.Scheme{}, err
	}
	scheme, err := colour.Generate(weighted)
	if err != nil {
		return colour.Scheme{}, err
	}
	if err := cache.Store(fingerprint, scheme); err != nil {
		logger.Warn("failed to cache scheme", "error", err)
	}
	return scheme, nil
}

// printSwatchTable renders both mode columns with 24-bit ANSI blocks.
func printSwatchTable(s colour.Scheme) {
	fmt.Printf("seed  %s %s\n\n", colour.ColourPreview(s.Seed, 4), s.Seed.Hex())
	fmt.Printf("%-22s %-13s %s\n", "role", "dark", "light")

	for role := range colour.Roles {
		dark := s.Colour(role, colour.ModeDark)
		light := s.Colour(role, colour.ModeLight)
		fmt.Printf("%-22s %s %s  %s %s\n",
			role.String(),
			colour.ColourPreview(dark, 4), dark.Hex(),
			colour.ColourPreview(light, 4), light.Hex())
	}
}
