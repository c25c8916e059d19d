//go:build windows

package core

import (
	"errors"

	"golang.org/x/sys/windows"
)

// MoveFileEx reports ERROR_NOT_SAME_DEVICE when asked to rename across
// volumes without MOVEFILE_COPY_ALLOWED, which os.Rename never passes.
func isCrossDeviceErrno(err error) bool {
	return errors.Is(err, windows.ERROR_NOT_SAME_DEVICE)
}
