package cert

import (
	"context"
	"fmt"
)

// Parser extracts the comparable pieces of a certificate artifact.
//
// Implementations return *ParseError when the file cannot be read as the
// requested format, and an error wrapping ErrNotRSA when the artifact parses
// but carries no RSA modulus.
type Parser interface {
	ModulusFingerprint(ctx context.Context, path string, f Format) (Fingerprint, error)
	// ValidityWindow is only meaningful for FormatX509. A boundary that is
	// missing or unparseable is reported through Boundary.Err; the returned
	// error is reserved for files that cannot be parsed at all.
	ValidityWindow(ctx context.Context, path string) (ValidityWindow, error)
}

// NewParser returns the parser registered under name ("native" or
// "openssl"). opensslPath is only used by the openssl parser.
func NewParser(name, opensslPath string) (Parser, error) {
	switch name {
	case "", "native":
		return NativeParser{}, nil
	case "openssl":
		return NewOpenSSLParser(&OSExecutor{Binary: opensslPath}), nil
	default:
		return nil, &UnknownParserError{Name: name}
	}
}

// UnknownParserError is returned by NewParser for an unregistered name.
type UnknownParserError struct {
	Name string
}

func (e *UnknownParserError) Error() string {
	return fmt.Sprintf("unknown parser %q (want \"native\" or \"openssl\")", e.Name)
}
