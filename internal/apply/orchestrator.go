package apply

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/imbue/internal/colour"
	"github.com/jmylchreest/imbue/internal/colour/schemecache"
	"github.com/jmylchreest/imbue/internal/config"
	imbueimage "github.com/jmylchreest/imbue/internal/image"
	"github.com/jmylchreest/imbue/internal/target"
	"github.com/jmylchreest/imbue/internal/template"
)

// wallpaperTarget labels the desktop wallpaper keys in manifests and
// reports. It is not a registry target; the orchestrator owns it.
const wallpaperTarget = "wallpaper"

// Options configures an Orchestrator. Zero fields get working defaults;
// tests inject fakes.
type Options struct {
	Logger       hclog.Logger
	Sampler      *imbueimage.Sampler
	Cache        *schemecache.Cache
	Registry     *target.Registry
	Sink         target.ActivationSink
	ManifestPath string
	LastRunPath  string
	Home         string
	Prefs        config.TargetPrefs
	SetWallpaper bool
	// TemplateBase overrides the custom-template directory root.
	TemplateBase string
}

// Orchestrator runs applies and uninstalls. It holds no per-run state;
// one instance can serve many runs.
type Orchestrator struct {
	logger       hclog.Logger
	sampler      *imbueimage.Sampler
	cache        *schemecache.Cache
	registry     *target.Registry
	sink         target.ActivationSink
	manifestPath string
	lastRunPath  string
	home         string
	prefs        config.TargetPrefs
	setWallpaper bool
	templateBase string
}

// New creates an Orchestrator, filling unset options with defaults.
func New(opts Options) (*Orchestrator, error) {
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	sampler := opts.Sampler
	if sampler == nil {
		sampler = imbueimage.NewSampler(nil)
	}
	cache := opts.Cache
	if cache == nil {
		var err error
		cache, err = schemecache.New("")
		if err != nil {
			return nil, err
		}
	}
	registry := opts.Registry
	if registry == nil {
		registry = target.NewRegistry()
	}
	sink := opts.Sink
	if sink == nil {
		sink = target.NewGSettingsSink(logger)
	}
	home := opts.Home
	if home == "" {
		var err error
		home, err = os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to determine home directory: %w", err)
		}
	}
	manifestPath := opts.ManifestPath
	if manifestPath == "" {
		var err error
		manifestPath, err = config.DefaultManifestPath()
		if err != nil {
			return nil, err
		}
	}
	lastRunPath := opts.LastRunPath
	if lastRunPath == "" {
		var err error
		lastRunPath, err = config.DefaultLastRunPath()
		if err != nil {
			return nil, err
		}
	}
	return &Orchestrator{
		logger:       logger,
		sampler:      sampler,
		cache:        cache,
		registry:     registry,
		sink:         sink,
		manifestPath: manifestPath,
		lastRunPath:  lastRunPath,
		home:         home,
		prefs:        opts.Prefs,
		setWallpaper: opts.SetWallpaper,
		templateBase: opts.TemplateBase,
	}, nil
}

// Request describes one apply run.
type Request struct {
	WallpaperPath string
	Mode          colour.ThemeMode
	// Targets restricts the run to the named targets. Empty means every
	// enabled target. Naming an optional target explicitly overrides its
	// configuration preference.
	Targets []string
}

// plannedFile is a rendered destination waiting to be written.
type plannedFile struct {
	spec       target.FileSpec
	content    []byte
	fromCustom bool
}

// targetPlan is one target's fully resolved work. Planning happens for
// every target before the first byte is written, so a render error in
// one target never leaves another half-applied.
type targetPlan struct {
	target      target.Target
	files       []plannedFile
	activations []target.Activation
	note        string
	err         error
}

// Apply runs the full pipeline: scheme, plan, writes, activation,
// manifest, last-run. Per-target problems land in the report; the
// returned error is reserved for run-level failures.
func (o *Orchestrator) Apply(ctx context.Context, req Request) (*Report, error) {
	wallpaper, err := filepath.Abs(req.WallpaperPath)
	if err != nil {
		return nil, imbueimage.NewReadError(req.WallpaperPath, err)
	}

	scheme, stats, fingerprint, cacheHit, err := o.resolveScheme(wallpaper)
	if err != nil {
		return nil, err
	}

	selected, err := o.selectTargets(req.Targets)
	if err != nil {
		return nil, err
	}

	env := target.Env{
		Mode:          req.Mode,
		Scheme:        scheme,
		Stats:         stats,
		Wallpaper:     wallpaper,
		Home:          o.home,
		ObsidianVault: o.prefs.ObsidianVault,
	}

	o.logger.Info("applying theme",
		"wallpaper", wallpaper,
		"mode", req.Mode.String(),
		"seed", scheme.Seed.Hex(),
		"targets", len(selected),
		"cache_hit", cacheHit)

	plans := make([]targetPlan, 0, len(selected))
	for _, tgt := range selected {
		plans = append(plans, o.planTarget(tgt, env))
	}

	prevOwned := o.previousOwned()

	report := &Report{
		RunID:     uuid.New().String(),
		Wallpaper: wallpaper,
		Mode:      req.Mode,
		Seed:      scheme.Seed,
		CacheHit:  cacheHit,
	}
	manifest := &Manifest{
		RunID:       report.RunID,
		Fingerprint: fingerprint,
		Mode:        req.Mode.String(),
		Wallpaper:   wallpaper,
		AppliedAt:   time.Now(),
	}

	settingSeen := make(map[string]bool)
	for _, plan := range plans {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		outcome := o.runTarget(ctx, plan, prevOwned, manifest, settingSeen)
		report.Outcomes = append(report.Outcomes, outcome)
	}

	if o.setWallpaper {
		report.Outcomes = append(report.Outcomes, o.applyWallpaper(ctx, wallpaper, manifest, settingSeen))
	}

	if err := WriteManifest(o.manifestPath, manifest); err != nil {
		return report, err
	}
	if err := config.SaveLastRun(o.lastRunPath, config.LastRun{
		Wallpaper: wallpaper,
		Mode:      req.Mode.String(),
		Targets:   req.Targets,
	}); err != nil {
		return report, err
	}

	return report, nil
}

// resolveScheme returns the scheme, image statistics and wallpaper
// fingerprint, generating and caching the scheme on a cache miss.
func (o *Orchestrator) resolveScheme(wallpaper string) (colour.Scheme, imbueimage.Stats, string, bool, error) {
	fingerprint, err := schemecache.Fingerprint(wallpaper)
	if err != nil {
		return colour.Scheme{}, imbueimage.Stats{}, "", false, imbueimage.NewReadError(wallpaper, err)
	}

	if scheme, ok := o.cache.Load(fingerprint); ok {
		stats, err := o.sampler.Stats(wallpaper)
		if err != nil {
			return colour.Scheme{}, imbueimage.Stats{}, "", false, err
		}
		o.logger.Debug("scheme cache hit", "fingerprint", fingerprint)
		return scheme, stats, fingerprint, true, nil
	}

	analysis, err := o.sampler.Analyse(wallpaper)
	if err != nil {
		return colour.Scheme{}, imbueimage.Stats{}, "", false, err
	}
	scheme, err := colour.Generate(analysis.Colours)
	if err != nil {
		return colour.Scheme{}, imbueimage.Stats{}, "", false, err
	}
	if err := o.cache.Store(fingerprint, scheme); err != nil {
		o.logger.Warn("failed to cache scheme", "error", err)
	}
	return scheme, analysis.Stats, fingerprint, false, nil
}

// selectTargets resolves the run's target set. Without explicit names,
// optional targets follow their configuration preference.
func (o *Orchestrator) selectTargets(names []string) ([]target.Target, error) {
	if len(names) > 0 {
		return o.registry.Select(names)
	}
	var selected []target.Target
	for _, tgt := range o.registry.All() {
		if tgt.Optional() && !o.prefs.Enabled(tgt.Name()) {
			continue
		}
		selected = append(selected, tgt)
	}
	return selected, nil
}

// planTarget resolves and renders everything a target will write.
func (o *Orchestrator) planTarget(tgt target.Target, env target.Env) targetPlan {
	plan := targetPlan{target: tgt}

	specs, err := tgt.Files(env)
	if err != nil {
		if errors.Is(err, target.ErrNotConfigured) {
			plan.note = "skipped: not configured"
			return plan
		}
		plan.err = fmt.Errorf("target %s: resolving files: %w", tgt.Name(), err)
		return plan
	}
	plan.activations = tgt.Activations(env)
	if len(specs) == 0 {
		return plan
	}

	fsys, err := target.Templates(tgt.Name())
	if err != nil {
		plan.err = fmt.Errorf("target %s: %w", tgt.Name(), err)
		return plan
	}
	loader := template.NewLoader(tgt.Name(), fsys)
	if o.templateBase != "" {
		loader = loader.WithCustomBase(o.templateBase)
	}

	renderCtx := template.RenderContext{WallpaperPath: env.Wallpaper}
	for _, spec := range specs {
		content, fromCustom, err := loader.Load(spec.Template)
		if err != nil {
			plan.err = fmt.Errorf("target %s: loading template %s: %w", tgt.Name(), spec.Template, err)
			return plan
		}
		rendered, err := template.Render(string(content), env.Scheme, env.Mode, renderCtx)
		if err != nil {
			plan.err = fmt.Errorf("target %s: rendering %s: %w", tgt.Name(), spec.Template, err)
			return plan
		}
		plan.files = append(plan.files, plannedFile{
			spec:       spec,
			content:    []byte(rendered),
			fromCustom: fromCustom,
		})
	}
	return plan
}

// previousOwned loads the prior manifest's file index so backup flags
// carry across runs. A missing or corrupt manifest means no prior claim.
func (o *Orchestrator) previousOwned() map[string]FileRecord {
	prev, err := ReadManifest(o.manifestPath)
	if err != nil {
		if !os.IsNotExist(err) {
			o.logger.Warn("ignoring unreadable previous manifest", "error", err)
		}
		return nil
	}
	return prev.OwnedFiles()
}

// runTarget writes one planned target and runs its activation steps.
// Every written file and setting is recorded in the manifest even when
// the target later fails, so uninstall can always revert it.
func (o *Orchestrator) runTarget(ctx context.Context, plan targetPlan, prevOwned map[string]FileRecord, manifest *Manifest, settingSeen map[string]bool) TargetOutcome {
	name := plan.target.Name()
	outcome := TargetOutcome{Target: name}
	if plan.note != "" {
		outcome.Notes = append(outcome.Notes, plan.note)
		return outcome
	}
	if plan.err != nil {
		outcome.Err = plan.err
		return outcome
	}

	for _, file := range plan.files {
		dest := file.spec.Destination
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			outcome.Err = NewTargetWriteError(name, dest, err)
			return outcome
		}
		backedUp, err := o.backupIfNeeded(dest, prevOwned)
		if err != nil {
			outcome.Err = NewTargetWriteError(name, dest, err)
			return outcome
		}
		if err := os.WriteFile(dest, file.content, 0o644); err != nil { // #nosec G306 - theme files are world-readable
			outcome.Err = NewTargetWriteError(name, dest, err)
			return outcome
		}
		if file.fromCustom {
			o.logger.Debug("rendered custom template", "target", name, "template", file.spec.Template)
		}
		manifest.Files = append(manifest.Files, FileRecord{Target: name, Path: dest, Backup: backedUp})
		outcome.Written = append(outcome.Written, dest)
	}

	for _, act := range plan.activations {
		if act.IsSetting() {
			if err := o.sink.Set(ctx, act.Key, act.Value); err != nil {
				outcome.Err = NewActivationError(name, act.Key, err)
				return outcome
			}
			if !settingSeen[act.Key] {
				settingSeen[act.Key] = true
				manifest.Settings = append(manifest.Settings, SettingRecord{Target: name, Key: act.Key})
			}
			continue
		}
		if err := o.sink.RunHook(ctx, *act.Hook); err != nil {
			if errors.Is(err, target.ErrHookSkipped) {
				outcome.Notes = append(outcome.Notes, err.Error())
				continue
			}
			outcome.Err = NewActivationError(name, act.Hook.Name, err)
			return outcome
		}
	}

	return outcome
}

// backupIfNeeded displaces a pre-existing destination that imbue does
// not own. The first backup wins: later applies never overwrite it, and
// a destination already recorded in the previous manifest keeps its
// original backup flag.
func (o *Orchestrator) backupIfNeeded(dest string, prevOwned map[string]FileRecord) (bool, error) {
	if rec, ours := prevOwned[dest]; ours {
		return rec.Backup, nil
	}
	if _, err := os.Lstat(dest); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	backupPath := dest + BackupSuffix
	if _, err := os.Lstat(backupPath); err == nil {
		return true, nil
	}
	if err := os.Rename(dest, backupPath); err != nil {
		return false, err
	}
	o.logger.Debug("backed up pre-existing file", "path", dest)
	return true, nil
}

// applyWallpaper sets the desktop wallpaper keys.
func (o *Orchestrator) applyWallpaper(ctx context.Context, wallpaper string, manifest *Manifest, settingSeen map[string]bool) TargetOutcome {
	outcome := TargetOutcome{Target: wallpaperTarget}
	uri := "file://" + wallpaper
	settings := []struct{ key, value string }{
		{"org.gnome.desktop.background picture-uri", uri},
		{"org.gnome.desktop.background picture-uri-dark", uri},
		{"org.gnome.desktop.background picture-options", "zoom"},
	}
	for _, s := range settings {
		if err := o.sink.Set(ctx, s.key, s.value); err != nil {
			outcome.Err = NewActivationError(wallpaperTarget, s.key, err)
			return outcome
		}
		if !settingSeen[s.key] {
			settingSeen[s.key] = true
			manifest.Settings = append(manifest.Settings, SettingRecord{Target: wallpaperTarget, Key: s.key})
		}
	}
	return outcome
}
