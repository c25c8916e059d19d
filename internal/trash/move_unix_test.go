//go:build unix

package trash

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestRun_CrossDeviceFallsBackToCopy(t *testing.T) {
	trashDir, work, cfg := setup(t)
	target := writeFile(t, filepath.Join(work, "report.pdf"), "pdf")

	tr := New(cfg, nil)
	tr.mover.rename = func(oldpath, newpath string) error {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: unix.EXDEV}
	}
	tr.mover.freeSpace = func(string) (uint64, error) { return 1 << 20, nil }

	report, err := tr.Run([]string{target})
	require.NoError(t, err)
	require.False(t, report.Failed())
	require.NoFileExists(t, target)
	require.Equal(t, "pdf", readFile(t, filepath.Join(trashDir, "report.pdf")))
}
