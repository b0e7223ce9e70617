package apply

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmylchreest/imbue/internal/colour"
	"github.com/jmylchreest/imbue/internal/target"
)

// Uninstall reverts everything the manifest records: written files are
// removed or their backups restored, recorded desktop keys are reset,
// and the manifest itself goes last so an interrupted uninstall can be
// rerun. Without a manifest the run is a no-op; with a corrupt one it
// falls back to touching only paths it can prove are imbue's own.
func (o *Orchestrator) Uninstall(ctx context.Context) (*UninstallReport, error) {
	report := &UninstallReport{}

	manifest, err := ReadManifest(o.manifestPath)
	if err != nil {
		if os.IsNotExist(err) {
			report.NothingToDo = true
			return report, nil
		}
		var corrupt *ManifestCorruptError
		if errors.As(err, &corrupt) {
			o.logger.Warn("manifest corrupt, using conservative uninstall", "error", corrupt)
			report.Conservative = true
			report.Notes = append(report.Notes, corrupt.Error())
			o.uninstallConservative(ctx, report)
			return o.finishUninstall(report)
		}
		return nil, err
	}

	for _, rec := range manifest.Files {
		o.revertFile(rec.Path, rec.Backup, report)
	}
	o.removeOwnedDirs(report)

	for _, rec := range manifest.Settings {
		if err := o.sink.Reset(ctx, rec.Key); err != nil {
			report.Notes = append(report.Notes, "could not reset "+rec.Key+": "+err.Error())
			continue
		}
		report.ResetKeys = append(report.ResetKeys, rec.Key)
	}

	return o.finishUninstall(report)
}

// revertFile undoes one recorded write: the backup (when one was taken)
// moves back over the destination, otherwise the destination is removed.
// A vanished file is already what uninstall wants.
func (o *Orchestrator) revertFile(path string, hadBackup bool, report *UninstallReport) {
	if hadBackup {
		backupPath := path + BackupSuffix
		err := os.Rename(backupPath, path)
		if err == nil {
			report.Restored = append(report.Restored, path)
			return
		}
		if !os.IsNotExist(err) {
			report.Notes = append(report.Notes, "could not restore "+path+": "+err.Error())
			return
		}
		report.Notes = append(report.Notes, "backup missing for "+path+", removing instead")
	}

	err := os.Remove(path)
	switch {
	case err == nil:
		report.Removed = append(report.Removed, path)
	case os.IsNotExist(err):
	default:
		report.Notes = append(report.Notes, "could not remove "+path+": "+err.Error())
	}
}

// ownedDirs are directories that exist solely to hold imbue output and
// are safe to remove wholesale. The imbue config directory is absent on
// purpose: it holds the user's configuration and template overrides.
func (o *Orchestrator) ownedDirs() []string {
	return []string{
		filepath.Join(o.home, ".local", "share", "themes", "Imbue-dark"),
		filepath.Join(o.home, ".local", "share", "themes", "Imbue-light"),
		filepath.Join(o.home, ".config", "spicetify", "Themes", "Imbue"),
		filepath.Join(o.home, ".vscode", "extensions", "imbue-theme"),
		filepath.Join(o.home, ".config", "imbue", "chrome"),
		filepath.Join(o.home, ".config", "imbue", "vivaldi"),
	}
}

func (o *Orchestrator) removeOwnedDirs(report *UninstallReport) {
	for _, dir := range o.ownedDirs() {
		if _, err := os.Lstat(dir); err != nil {
			continue
		}
		if err := os.RemoveAll(dir); err != nil {
			report.Notes = append(report.Notes, "could not remove "+dir+": "+err.Error())
			continue
		}
		report.Removed = append(report.Removed, dir)
	}
}

// uninstallConservative handles a corrupt manifest. It walks the
// registry's possible destinations for both modes, restores any backup
// it finds, removes only paths carrying an imbue-branded element, and
// leaves everything else with a note.
func (o *Orchestrator) uninstallConservative(ctx context.Context, report *UninstallReport) {
	seenKeys := make(map[string]bool)
	for _, mode := range []colour.ThemeMode{colour.ModeDark, colour.ModeLight} {
		env := target.Env{Mode: mode, Home: o.home, ObsidianVault: o.prefs.ObsidianVault}
		for _, tgt := range o.registry.All() {
			specs, err := tgt.Files(env)
			if err != nil {
				continue
			}
			for _, spec := range specs {
				o.revertConservative(spec.Destination, report)
			}
			for _, act := range tgt.Activations(env) {
				if !act.IsSetting() || seenKeys[act.Key] {
					continue
				}
				seenKeys[act.Key] = true
				if err := o.sink.Reset(ctx, act.Key); err != nil {
					report.Notes = append(report.Notes, "could not reset "+act.Key+": "+err.Error())
					continue
				}
				report.ResetKeys = append(report.ResetKeys, act.Key)
			}
		}
	}
	o.removeOwnedDirs(report)
}

// revertConservative handles one candidate destination without manifest
// knowledge. A surviving backup proves imbue displaced the original, so
// restoring is always safe; removal needs the path itself to be branded.
func (o *Orchestrator) revertConservative(path string, report *UninstallReport) {
	backupPath := path + BackupSuffix
	if _, err := os.Lstat(backupPath); err == nil {
		if err := os.Rename(backupPath, path); err != nil {
			report.Notes = append(report.Notes, "could not restore "+path+": "+err.Error())
			return
		}
		report.Restored = append(report.Restored, path)
		return
	}

	if _, err := os.Lstat(path); err != nil {
		return
	}
	if !imbueOwned(path) {
		report.Notes = append(report.Notes, "left "+path+": not verifiably imbue-owned")
		return
	}
	if err := os.Remove(path); err != nil {
		report.Notes = append(report.Notes, "could not remove "+path+": "+err.Error())
		return
	}
	report.Removed = append(report.Removed, path)
}

// imbueOwned reports whether some path element carries imbue branding.
func imbueOwned(path string) bool {
	for _, element := range strings.Split(filepath.ToSlash(path), "/") {
		if strings.Contains(strings.ToLower(element), "imbue") {
			return true
		}
	}
	return false
}

// finishUninstall clears imbue's own state: last-run, the scheme cache,
// and the manifest strictly last. Failing to remove the manifest is the
// one error worth failing the whole uninstall for, since it would make a
// rerun repeat everything.
func (o *Orchestrator) finishUninstall(report *UninstallReport) (*UninstallReport, error) {
	if err := os.Remove(o.lastRunPath); err == nil {
		report.Removed = append(report.Removed, o.lastRunPath)
	} else if !os.IsNotExist(err) {
		report.Notes = append(report.Notes, "could not remove "+o.lastRunPath+": "+err.Error())
	}

	cacheDir := o.cache.Dir()
	if _, err := os.Lstat(cacheDir); err == nil {
		if err := os.RemoveAll(cacheDir); err != nil {
			report.Notes = append(report.Notes, "could not remove "+cacheDir+": "+err.Error())
		} else {
			report.Removed = append(report.Removed, cacheDir)
		}
	}

	if err := os.Remove(o.manifestPath); err != nil && !os.IsNotExist(err) {
		return report, err
	}
	return report, nil
}
