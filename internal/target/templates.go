package target

import (
	"embed"
	"fmt"
	"io/fs"
)

//go:embed templates
var embeddedTemplates embed.FS

// Templates returns the embedded template directory for a target, rooted
// so that template filenames resolve directly. Targets without templates
// (gnome-terminal) have no directory and return an error.
func Templates(name string) (fs.FS, error) {
	dir := "templates/" + name
	if _, err := fs.Stat(embeddedTemplates, dir); err != nil {
		return nil, fmt.Errorf("no embedded templates for target %q: %w", name, err)
	}
	return fs.Sub(embeddedTemplates, dir)
}
