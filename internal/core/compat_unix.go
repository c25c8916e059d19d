//go:build unix

package core

import (
	"errors"

	"golang.org/x/sys/unix"
)

func isCrossDeviceErrno(err error) bool {
	return errors.Is(err, unix.EXDEV)
}
