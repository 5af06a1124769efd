package saves

import "fmt"

// IoError is a failed read or write of the save file. Save-side IO failures
// are non-fatal: the in-memory session stays authoritative.
type IoError struct {
	Op  string
	Err error
}

func (e *IoError) Error() string {
	return fmt.Sprintf("saves: %s: %v", e.Op, e.Err)
}

func (e *IoError) Unwrap() error {
	return e.Err
}

// SerializeError is a failed snapshot assembly or encoding.
type SerializeError struct {
	Err error
}

func (e *SerializeError) Error() string {
	return fmt.Sprintf("saves: serialize: %v", e.Err)
}

func (e *SerializeError) Unwrap() error {
	return e.Err
}

// ParseError is a save file that could not be decoded.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("saves: parse save file: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// VersionError is a save file whose version cannot be brought to the current
// format: newer than this build, or older with no migration path. The file is
// rejected wholesale, never partially applied.
type VersionError struct {
	Version int
	Err     error
}

func (e *VersionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("saves: incompatible save version %d: %v", e.Version, e.Err)
	}
	return fmt.Sprintf("saves: incompatible save version %d", e.Version)
}

func (e *VersionError) Unwrap() error {
	return e.Err
}
