package cert

import (
	"errors"
	"fmt"
	"time"
)

// Format is the cryptographic encoding an artifact is parsed as.
type Format string

const (
	FormatX509   Format = "x509"
	FormatPKCS10 Format = "pkcs10"
	FormatRSAKey Format = "rsa"
)

// opensslCommand is the openssl subcommand that understands the format.
func (f Format) opensslCommand() string {
	switch f {
	case FormatX509:
		return "x509"
	case FormatPKCS10:
		return "req"
	case FormatRSAKey:
		return "rsa"
	default:
		return ""
	}
}

// HasValidityWindow reports whether artifacts of this format carry
// notBefore/notAfter.
func (f Format) HasValidityWindow() bool {
	return f == FormatX509
}

// Fingerprint is the hex MD5 digest of an artifact's "Modulus=<HEX>" line.
// Two artifacts embed the same RSA key iff their fingerprints are equal.
type Fingerprint string

func (f Fingerprint) String() string { return string(f) }

// Boundary is one end of a validity window as reported by a parser.
//
// Raw is the textual form ("Jan  2 15:04:05 2030 GMT"). Err is set when the
// field was missing or its text could not be parsed; Time is only meaningful
// when Err is nil.
type Boundary struct {
	Raw  string
	Time time.Time
	Err  error
}

// OK reports whether Time holds a parsed timestamp.
func (b Boundary) OK() bool { return b.Err == nil }

// ValidityWindow holds the notBefore/notAfter fields of an X.509 certificate.
type ValidityWindow struct {
	NotBefore Boundary
	NotAfter  Boundary
}

var (
	// ErrNotRSA marks a parseable artifact whose public key is not RSA.
	ErrNotRSA = errors.New("not an RSA key/certificate (no modulus)")

	// ErrFieldMissing is used for a validity boundary the parser did not report.
	ErrFieldMissing = errors.New("field not present")
)

// ParseError is returned when a file cannot be read as the declared format.
type ParseError struct {
	Path   string
	Format Format
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s as %s: %v", e.Path, e.Format, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func parseErr(path string, f Format, err error) error {
	return &ParseError{Path: path, Format: f, Err: err}
}
