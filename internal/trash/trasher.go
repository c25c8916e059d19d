// Package trash moves files into a trash folder instead of deleting them.
package trash

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/lakshaymaurya-felt/trash/internal/config"
	"github.com/lakshaymaurya-felt/trash/internal/core"
	"github.com/lakshaymaurya-felt/trash/internal/logging"
)

// Trasher moves targets into the configured trash folder, one at a time and
// in order. It is not safe for concurrent use.
type Trasher struct {
	cfg    *config.Config
	logger *slog.Logger
	mover  *mover

	// claimed holds trash paths taken by planned moves during a dry run,
	// so later targets resolve against them as if they had been moved.
	claimed map[string]bool
}

// New returns a Trasher for cfg. A nil logger discards all output.
func New(cfg *config.Config, logger *slog.Logger) *Trasher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Trasher{
		cfg:     cfg,
		logger:  logger,
		mover:   newMover(logger),
		claimed: make(map[string]bool),
	}
}

// ─── Public API ──────────────────────────────────────────────────────────────

// Run checks the trash folder and then trashes every target in order.
//
// The returned error is non-nil only when the run was aborted: the trash
// folder is unusable, or brittle mode is on and a target failed. Targets
// processed before an abort stay where they were moved. Per-target errors
// that did not abort the run are in the Report.
func (t *Trasher) Run(targets []string) (*Report, error) {
	report := &Report{}

	if err := t.CheckTrash(); err != nil {
		return report, err
	}
	t.logger.Debug("trash folder is okay", slog.String("trash", t.cfg.TrashFolder))

	for _, target := range targets {
		out := t.Trash(target)
		report.add(out)
		if out.Err != nil && t.cfg.Brittle {
			t.logger.Log(context.Background(), logging.LevelCritical, "aborting on first error (brittle)",
				slog.String("path", target), slog.String("error", out.Err.Error()))
			return report, out.Err
		}
	}

	t.logger.Info("done",
		slog.Int("moved", report.Count(StatusMoved)),
		slog.Int("renamed", report.Count(StatusRenamed)),
		slog.Int("overwritten", report.Count(StatusOverwritten)),
		slog.Int("skipped", report.Count(StatusSkipped)),
		slog.Int("failed", report.Count(StatusFailed)),
		slog.Bool("dry_run", t.cfg.DryRun))
	return report, nil
}

// CheckTrash verifies that the trash folder exists and is a directory.
func (t *Trasher) CheckTrash() error {
	trash := t.cfg.TrashFolder

	info, err := os.Stat(trash)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			// Unreadable counts as missing; the cause stays attached.
			return t.fatal(newError(KindTrashDoesNotExist, trash, err))
		}
		return t.fatal(newError(KindTrashDoesNotExist, trash, nil))
	}
	if !info.IsDir() {
		return t.fatal(newError(KindTrashIsNotDirectory, trash, nil))
	}
	return nil
}

func (t *Trasher) fatal(err *Error) error {
	t.logger.Log(context.Background(), logging.LevelCritical, err.Error())
	return err
}

// Trash moves a single target into the trash folder, resolving a name
// collision according to the configured policy. The Outcome carries any
// per-target error; whether that error ends the run is up to the caller.
func (t *Trasher) Trash(target string) Outcome {
	t.logger.Debug("now operating on", slog.String("path", target))

	if _, err := os.Lstat(target); err != nil {
		var cause error
		if !errors.Is(err, fs.ErrNotExist) {
			cause = err
		}
		return t.failed(target, newError(KindTargetNotFound, target, cause))
	}

	if err := t.checkSafe(target); err != nil {
		return t.failed(target, err)
	}

	name := filepath.Base(filepath.Clean(target))
	dest := filepath.Join(t.cfg.TrashFolder, name)

	taken, err := t.exists(dest)
	if err != nil {
		return t.failed(target, newError(KindMoveFailed, target, err))
	}
	if !taken {
		return t.moveTo(target, dest, StatusMoved)
	}
	return t.resolveConflict(target, name)
}

// ─── Internal Helpers ────────────────────────────────────────────────────────

// checkSafe rejects targets whose removal would take the trash folder or a
// whole filesystem with it, and targets already inside the trash folder.
// A trash entry can only be resolved against itself, which under
// --overwrite would delete it outright.
func (t *Trasher) checkSafe(target string) *Error {
	cleaned := filepath.Clean(target)
	base := filepath.Base(cleaned)
	if base == "." || base == ".." || core.IsFilesystemRoot(cleaned) {
		return newError(KindUnsafeTarget, target, errors.New("not a removable entry"))
	}

	absTarget, err := filepath.Abs(cleaned)
	if err != nil {
		return newError(KindUnsafeTarget, target, err)
	}
	absTrash, err := filepath.Abs(t.cfg.TrashFolder)
	if err != nil {
		return newError(KindUnsafeTarget, target, err)
	}
	sep := string(filepath.Separator)
	if absTrash == absTarget || strings.HasPrefix(absTrash, absTarget+sep) {
		return newError(KindUnsafeTarget, target, errors.New("it contains the trash folder"))
	}
	if strings.HasPrefix(absTarget, absTrash+sep) {
		return newError(KindUnsafeTarget, target, errors.New("it is already in the trash folder"))
	}

	// Catch the same locations reached through symlinks or bind mounts.
	if sameEntry(filepath.Dir(absTarget), absTrash, os.Stat) ||
		sameEntry(absTarget, filepath.Join(absTrash, base), os.Lstat) {
		return newError(KindUnsafeTarget, target, errors.New("it is already in the trash folder"))
	}
	return nil
}

// sameEntry reports whether a and b resolve to the same file. Paths that
// cannot be stat'ed are never the same.
func sameEntry(a, b string, stat func(string) (os.FileInfo, error)) bool {
	ai, err := stat(a)
	if err != nil {
		return false
	}
	bi, err := stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}

// exists reports whether path is taken in the trash folder, either on disk
// or by a planned dry-run move.
func (t *Trasher) exists(path string) (bool, error) {
	if t.claimed[path] {
		return true, nil
	}
	_, err := os.Lstat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}

// moveTo moves target to dest, or records the plan during a dry run.
func (t *Trasher) moveTo(target, dest string, status Status) Outcome {
	if t.cfg.DryRun {
		t.claimed[dest] = true
		t.logger.Info("would move to trash", slog.String("path", target), slog.String("dest", dest))
		return Outcome{Source: target, Dest: dest, Status: status, Planned: true}
	}

	if err := t.mover.move(target, dest); err != nil {
		return t.failed(target, newError(KindMoveFailed, target, fmt.Errorf("move to %s: %w", dest, err)))
	}

	t.logger.Debug("moved to trash", slog.String("path", target), slog.String("dest", dest))
	return Outcome{Source: target, Dest: dest, Status: status}
}

func (t *Trasher) failed(target string, err *Error) Outcome {
	t.logger.Error(err.Error(), slog.String("kind", err.Kind.String()))
	return Outcome{Source: target, Status: StatusFailed, Err: err}
}
