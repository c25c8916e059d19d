//go:build !unix && !windows

package core

func isCrossDeviceErrno(error) bool {
	return false
}
