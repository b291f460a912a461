// Package errs defines the error domains shared across icyengine: loading,
// saving, parsing, editing, transfer and connection failures. Callers use
// errors.Is/errors.As against the sentinel values and wrapper types here
// rather than matching on message text.
package errs

import "fmt"

// Sentinel errors used with errors.Is.
var (
	ErrUnknownExtension       = fmt.Errorf("icyengine: unknown file extension")
	ErrIncompatibleFormat     = fmt.Errorf("icyengine: buffer state incompatible with target format")
	ErrLayerIndexOutOfRange   = fmt.Errorf("icyengine: layer index out of range")
	ErrPositionOutOfLayer     = fmt.Errorf("icyengine: position out of layer")
	ErrInvalidPaletteIndex    = fmt.Errorf("icyengine: invalid palette index")
	ErrPaletteFull            = fmt.Errorf("icyengine: palette is full")
	ErrPaletteIncompatible    = fmt.Errorf("icyengine: palette incompatible with buffer content")
	ErrAtomicGroupRolledBack  = fmt.Errorf("icyengine: atomic undo group rolled back")
	ErrUnsupportedTransport   = fmt.Errorf("icyengine: unsupported connection transport")
	ErrNoUndo                 = fmt.Errorf("icyengine: nothing to undo")
	ErrNoRedo                 = fmt.Errorf("icyengine: nothing to redo")
)

// LoadingError wraps a failure to open, read, or decode a file.
type LoadingError struct {
	Path string
	Err  error
}

func (e *LoadingError) Error() string {
	return fmt.Sprintf("load %q: %v", e.Path, e.Err)
}

func (e *LoadingError) Unwrap() error { return e.Err }

// SaveError wraps a failure to encode or write a file.
type SaveError struct {
	Path string
	Err  error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("save %q: %v", e.Path, e.Err)
}

func (e *SaveError) Unwrap() error { return e.Err }

// ParserErrorKind distinguishes the shape of a ParserError without reaching
// for a message match.
type ParserErrorKind int

const (
	UnsupportedEscapeSequence ParserErrorKind = iota
	UnsupportedCustomCommand
	UnsupportedDCSSequence
)

// ParserError is advisory: a parser that returns one has already reset
// itself to its default state and corrupted nothing.
type ParserError struct {
	Kind   ParserErrorKind
	Detail string
}

func (e *ParserError) Error() string {
	switch e.Kind {
	case UnsupportedCustomCommand:
		return fmt.Sprintf("unsupported custom command: %s", e.Detail)
	case UnsupportedDCSSequence:
		return fmt.Sprintf("unsupported DCS sequence: %s", e.Detail)
	default:
		return "unsupported escape sequence"
	}
}

// TransferError wraps a failure from an Xmodem/Ymodem/Zmodem driver.
type TransferError struct {
	Protocol string
	Err      error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("%s transfer: %v", e.Protocol, e.Err)
}

func (e *TransferError) Unwrap() error { return e.Err }

// ConnectionError wraps a failure from a transport.
type ConnectionError struct {
	Transport string
	Err       error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("%s connection: %v", e.Transport, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }
