package trash

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/lakshaymaurya-felt/trash/internal/config"
)

// resolveConflict handles a target whose base name is already present in
// the trash folder.
func (t *Trasher) resolveConflict(target, name string) Outcome {
	msg := fmt.Sprintf("a file with the name '%s' already exists in the trash", name)
	existing := filepath.Join(t.cfg.TrashFolder, name)

	switch t.cfg.Policy {
	case config.PolicySkip:
		t.logger.Warn(msg+", skipping", slog.String("path", target))
		out := Outcome{Source: target, Status: StatusSkipped}
		if t.cfg.Brittle {
			out.Err = newError(KindFilenameConflict, target, nil)
		}
		return out

	case config.PolicyOverwrite:
		t.logger.Info(msg+", overwriting", slog.String("path", target))
		if !t.cfg.DryRun {
			// The old entry may be a whole directory tree.
			if err := os.RemoveAll(existing); err != nil {
				return t.failed(target, newError(KindMoveFailed, target,
					fmt.Errorf("remove %s: %w", existing, err)))
			}
			t.logger.Debug("removed old trash entry", slog.String("dest", existing))
		}
		return t.moveTo(target, existing, StatusOverwritten)

	default:
		t.logger.Info(msg, slog.String("path", target))
		dest, err := t.uniqueName(name)
		if err != nil {
			return t.failed(target, newError(KindMoveFailed, target, err))
		}
		t.logger.Info("moving to trash under a new name",
			slog.String("path", target), slog.String("name", filepath.Base(dest)))
		return t.moveTo(target, dest, StatusRenamed)
	}
}

// uniqueName returns the first trash path of the form name+"0", name+"1",
// ... that is not taken. The digits are appended with no separator, so
// "photo.jpg" becomes "photo.jpg0".
func (t *Trasher) uniqueName(name string) (string, error) {
	for i := 0; ; i++ {
		candidate := filepath.Join(t.cfg.TrashFolder, name+strconv.Itoa(i))
		taken, err := t.exists(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
}
