package trash

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/otiai10/copy"
	"github.com/shirou/gopsutil/v4/disk"

	"github.com/lakshaymaurya-felt/trash/internal/core"
)

// ─── Move primitive ──────────────────────────────────────────────────────────

// mover renames targets into the trash folder. When the rename crosses a
// filesystem boundary it falls back to copying the entry and removing the
// original, which is not atomic: a failure half way leaves the source in
// place and removes the partial copy.
type mover struct {
	logger *slog.Logger

	// rename and freeSpace are replaced in tests.
	rename    func(oldpath, newpath string) error
	freeSpace func(path string) (uint64, error)
}

func newMover(logger *slog.Logger) *mover {
	return &mover{
		logger:    logger,
		rename:    os.Rename,
		freeSpace: diskFree,
	}
}

// diskFree returns the bytes available on the filesystem holding path.
func diskFree(path string) (uint64, error) {
	usage, err := disk.Usage(path)
	if err != nil {
		return 0, err
	}
	return usage.Free, nil
}

// move puts src at dst. dst must not exist.
func (m *mover) move(src, dst string) error {
	err := m.rename(src, dst)
	if err == nil {
		return nil
	}
	if !core.IsCrossDevice(err) {
		return err
	}

	m.logger.Debug("rename crosses filesystems, copying instead",
		slog.String("path", src), slog.String("dest", dst))
	return m.copyThenRemove(src, dst)
}

// copyThenRemove copies src to dst (symlinks are copied as links, times are
// preserved) and then removes src.
func (m *mover) copyThenRemove(src, dst string) error {
	size, err := entrySize(src)
	if err != nil {
		return fmt.Errorf("measure %s: %w", src, err)
	}

	free, err := m.freeSpace(filepath.Dir(dst))
	switch {
	case err != nil:
		// Not every filesystem reports usage; let the copy find out.
		m.logger.Debug("free space unknown", slog.String("dir", filepath.Dir(dst)),
			slog.String("error", err.Error()))
	case uint64(size) > free:
		return fmt.Errorf("not enough space in %s: need %d bytes, %d available",
			filepath.Dir(dst), size, free)
	}

	opts := copy.Options{
		OnSymlink: func(string) copy.SymlinkAction {
			return copy.Shallow
		},
		PreserveTimes: true,
		Sync:          true,
	}
	if err := copy.Copy(src, dst, opts); err != nil {
		// dst did not exist before, so anything there is our partial copy.
		if rmErr := os.RemoveAll(dst); rmErr != nil {
			err = errors.Join(err, fmt.Errorf("remove partial copy: %w", rmErr))
		}
		return fmt.Errorf("copy %s to %s: %w", src, dst, err)
	}

	if err := os.RemoveAll(src); err != nil {
		return fmt.Errorf("remove %s after copying to trash: %w", src, err)
	}
	return nil
}

// entrySize returns the total size of the regular files at or under path.
// Symlinks are not followed.
func entrySize(path string) (int64, error) {
	var total int64
	err := filepath.WalkDir(path, func(_ string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		total += info.Size()
		return nil
	})
	return total, err
}
