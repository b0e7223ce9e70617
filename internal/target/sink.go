package target

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// ErrHookSkipped marks a hook that did not run because its subject is
// unavailable (binary not installed, process not running, unsupported
// platform). Callers treat it as a note, not a failure.
var ErrHookSkipped = errors.New("hook skipped")

// ActivationSink applies activation steps to the desktop. Implementations
// must be safe to call for keys they have never seen; the production sink
// shells out to gsettings, tests substitute a recorder.
type ActivationSink interface {
	// Set writes a desktop setting. Key is "schema key" with a single
	// space separating the two halves.
	Set(ctx context.Context, key, value string) error
	// Reset reverts a previously written key to its schema default.
	Reset(ctx context.Context, key string) error
	// RunHook executes a reload hook. Returns an error wrapping
	// ErrHookSkipped when the hook's subject is unavailable.
	RunHook(ctx context.Context, hook Hook) error
}

// GSettingsSink applies settings through the gsettings command line tool
// and hooks through exec or process signals.
type GSettingsSink struct {
	logger hclog.Logger

	bin    string
	binErr error

	// profilePath caches the resolved gnome-terminal default profile
	// path for the lifetime of the sink.
	profilePath string
}

// NewGSettingsSink returns a sink backed by the gsettings binary. The
// binary is resolved once; if it is missing every Set and Reset fails.
func NewGSettingsSink(logger hclog.Logger) *GSettingsSink {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	bin, err := exec.LookPath("gsettings")
	return &GSettingsSink{logger: logger, bin: bin, binErr: err}
}

func (s *GSettingsSink) Set(ctx context.Context, key, value string) error {
	schema, name, err := s.resolveKey(ctx, key)
	if err != nil {
		return err
	}
	s.logger.Debug("setting desktop key", "schema", schema, "key", name, "value", value)
	return s.run(ctx, "set", schema, name, value)
}

func (s *GSettingsSink) Reset(ctx context.Context, key string) error {
	schema, name, err := s.resolveKey(ctx, key)
	if err != nil {
		return err
	}
	s.logger.Debug("resetting desktop key", "schema", schema, "key", name)
	return s.run(ctx, "reset", schema, name)
}

func (s *GSettingsSink) RunHook(ctx context.Context, hook Hook) error {
	if hook.SignalProcess != "" {
		pids, err := findProcessByName(hook.SignalProcess)
		if err != nil {
			return fmt.Errorf("hook %s: %w: %v", hook.Name, ErrHookSkipped, err)
		}
		if len(pids) == 0 {
			return fmt.Errorf("hook %s: %w: %s is not running", hook.Name, ErrHookSkipped, hook.SignalProcess)
		}
		for _, pid := range pids {
			if err := signalReload(pid); err != nil {
				return fmt.Errorf("hook %s: signalling pid %d: %w", hook.Name, pid, err)
			}
		}
		s.logger.Debug("signalled processes", "hook", hook.Name, "process", hook.SignalProcess, "count", len(pids))
		return nil
	}

	if len(hook.Argv) == 0 {
		return fmt.Errorf("hook %s: %w: nothing to run", hook.Name, ErrHookSkipped)
	}
	bin, err := exec.LookPath(hook.Argv[0])
	if err != nil {
		return fmt.Errorf("hook %s: %w: %s is not installed", hook.Name, ErrHookSkipped, hook.Argv[0])
	}
	s.logger.Debug("running hook", "hook", hook.Name, "argv", hook.Argv)
	cmd := exec.CommandContext(ctx, bin, hook.Argv[1:]...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("hook %s: %s: %w", hook.Name, strings.TrimSpace(string(out)), err)
	}
	return nil
}

// resolveKey splits "schema key" and substitutes the gnome-terminal
// default profile path for the "{profile}" placeholder.
func (s *GSettingsSink) resolveKey(ctx context.Context, key string) (schema, name string, err error) {
	schema, name, ok := strings.Cut(key, " ")
	if !ok {
		return "", "", fmt.Errorf("malformed settings key %q", key)
	}
	if strings.Contains(schema, "{profile}") {
		path, err := s.defaultTerminalProfile(ctx)
		if err != nil {
			return "", "", err
		}
		schema = strings.ReplaceAll(schema, "{profile}", path)
	}
	return schema, name, nil
}

func (s *GSettingsSink) defaultTerminalProfile(ctx context.Context) (string, error) {
	if s.profilePath != "" {
		return s.profilePath, nil
	}
	if s.binErr != nil {
		return "", fmt.Errorf("gsettings not available: %w", s.binErr)
	}
	cmd := exec.CommandContext(ctx, s.bin, "get", "org.gnome.Terminal.ProfilesList", "default")
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("resolving default terminal profile: %w", err)
	}
	uuid := strings.Trim(strings.TrimSpace(string(out)), "'")
	if uuid == "" {
		return "", errors.New("no default terminal profile configured")
	}
	s.profilePath = "/org/gnome/terminal/legacy/profiles:/:" + uuid + "/"
	return s.profilePath, nil
}

func (s *GSettingsSink) run(ctx context.Context, args ...string) error {
	if s.binErr != nil {
		return fmt.Errorf("gsettings not available: %w", s.binErr)
	}
	cmd := exec.CommandContext(ctx, s.bin, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("gsettings %s: %s: %w", args[0], strings.TrimSpace(string(out)), err)
	}
	return nil
}
