//go:build unix

package core

import (
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestIsCrossDevice_EXDEV(t *testing.T) {
	err := &os.LinkError{Op: "rename", Old: "/a", New: "/mnt/b", Err: unix.EXDEV}
	require.True(t, IsCrossDevice(err))
	require.True(t, IsCrossDevice(fmt.Errorf("move: %w", err)))
}
