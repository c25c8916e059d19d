// Package core holds the small platform-specific shims the trasher needs.
package core

import (
	"errors"
	"os"
	"path/filepath"
)

// IsCrossDevice reports whether err came from a rename whose source and
// destination live on different filesystems. Such a rename can never
// succeed and has to be replaced by copy-then-remove.
func IsCrossDevice(err error) bool {
	if err == nil {
		return false
	}
	var linkErr *os.LinkError
	if errors.As(err, &linkErr) {
		err = linkErr.Err
	}
	return isCrossDeviceErrno(err)
}

// IsFilesystemRoot reports whether path names a filesystem root such as
// "/" or "C:\".
func IsFilesystemRoot(path string) bool {
	cleaned := filepath.Clean(path)
	vol := filepath.VolumeName(cleaned)
	rest := cleaned[len(vol):]
	return rest == string(filepath.Separator) || (vol != "" && rest == "")
}
