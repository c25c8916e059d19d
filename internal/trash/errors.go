package trash

import (
	"errors"
	"fmt"
)

// Kind classifies a trash error. The caller decides whether a kind is
// fatal; see Kind.Fatal.
type Kind int

const (
	// KindTrashDoesNotExist means the trash folder is missing.
	KindTrashDoesNotExist Kind = iota + 1
	// KindTrashIsNotDirectory means the trash folder path is not a directory.
	KindTrashIsNotDirectory
	// KindTargetNotFound means a target path does not exist.
	KindTargetNotFound
	// KindFilenameConflict means the target's name is taken in the trash
	// and the policy refused to resolve it.
	KindFilenameConflict
	// KindUnsafeTarget means the target is ".", a filesystem root, or the
	// trash folder (or one of its ancestors).
	KindUnsafeTarget
	// KindMoveFailed means a rename, copy or remove failed underneath.
	KindMoveFailed
)

// Sentinels, one per kind, for use with errors.Is.
var (
	ErrTrashDoesNotExist   = errors.New("trash folder does not exist")
	ErrTrashIsNotDirectory = errors.New("trash folder is not a folder")
	ErrTargetNotFound      = errors.New("file does not exist")
	ErrFilenameConflict    = errors.New("file name already exists in the trash")
	ErrUnsafeTarget        = errors.New("refusing to trash")
	ErrMoveFailed          = errors.New("move to trash failed")
)

func (k Kind) sentinel() error {
	switch k {
	case KindTrashDoesNotExist:
		return ErrTrashDoesNotExist
	case KindTrashIsNotDirectory:
		return ErrTrashIsNotDirectory
	case KindTargetNotFound:
		return ErrTargetNotFound
	case KindFilenameConflict:
		return ErrFilenameConflict
	case KindUnsafeTarget:
		return ErrUnsafeTarget
	default:
		return ErrMoveFailed
	}
}

func (k Kind) String() string {
	switch k {
	case KindTrashDoesNotExist:
		return "TrashDoesNotExist"
	case KindTrashIsNotDirectory:
		return "TrashIsNotDirectory"
	case KindTargetNotFound:
		return "TargetNotFound"
	case KindFilenameConflict:
		return "FilenameConflict"
	case KindUnsafeTarget:
		return "UnsafeTarget"
	case KindMoveFailed:
		return "MoveFailed"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Fatal reports whether errors of this kind abort the run even when
// brittle mode is off. Only trash folder problems do.
func (k Kind) Fatal() bool {
	return k == KindTrashDoesNotExist || k == KindTrashIsNotDirectory
}

// Error is the single error type returned by this package.
type Error struct {
	Kind Kind
	// Path is the trash folder for trash kinds, otherwise the target.
	Path string
	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: '%s'", e.Kind.sentinel(), e.Path)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind's sentinel and the underlying cause.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind.sentinel()}
	}
	return []error{e.Kind.sentinel(), e.Err}
}

func newError(kind Kind, path string, err error) *Error {
	return &Error{Kind: kind, Path: path, Err: err}
}

// KindOf returns the Kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind
	}
	return 0
}
