package errors

import (
	"errors"
	"fmt"
)

type Kind string

const (
	InvalidConfig     Kind = "invalid_config"
	Validation        Kind = "validation"
	Metadata          Kind = "metadata"
	NoDatesFound      Kind = "no_dates_found"
	NoRawFiles        Kind = "no_raw_files"
	DestinationExists Kind = "destination_exists"
	InvalidPath       Kind = "invalid_path"
	IOFailure         Kind = "io_failure"
	Cancelled         Kind = "cancelled"
	Internal          Kind = "internal"
)

type AppError struct {
	Kind Kind
	Op   string
	Path string
	Err  error
}

func (e *AppError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func Wrap(kind Kind, op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &AppError{
		Kind: kind,
		Op:   op,
		Path: path,
		Err:  err,
	}
}

// New builds an AppError from a plain message.
func New(kind Kind, op, path, msg string) error {
	return Wrap(kind, op, path, errors.New(msg))
}

// KindOf returns the kind of the outermost AppError in err's chain, or Internal.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return Internal
}

func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	for err != nil {
		if !errors.As(err, &appErr) {
			return false
		}
		if appErr.Kind == kind {
			return true
		}
		err = appErr.Err
	}
	return false
}

func UserMessage(err error) string {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return err.Error()
	}
	switch appErr.Kind {
	case InvalidConfig:
		return fmt.Sprintf("Invalid configuration: %v", appErr.Err)
	case Validation:
		return fmt.Sprintf("Invalid %s path: %s (%v)", appErr.Op, appErr.Path, appErr.Err)
	case Metadata:
		return fmt.Sprintf("Metadata read failed: %s (%v)", appErr.Path, appErr.Err)
	case NoDatesFound:
		return "No capture dates found in RAW files, cannot derive a destination folder"
	case NoRawFiles:
		return fmt.Sprintf("No RAW files were found in: %s", appErr.Path)
	case DestinationExists:
		return fmt.Sprintf("Destination already exists: %s", appErr.Path)
	case InvalidPath:
		return fmt.Sprintf("%s is not a valid file path", appErr.Path)
	case IOFailure:
		return fmt.Sprintf("I/O error: %s (%v)", appErr.Path, appErr.Err)
	case Cancelled:
		return fmt.Sprintf("Transfer cancelled, partial output left in %s", appErr.Path)
	default:
		return fmt.Sprintf("Unexpected error: %v", appErr.Err)
	}
}
