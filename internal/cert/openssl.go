package cert

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"github.com/nickromney/certcheck/internal/trace"
)

var (
	publicKeyHeaderRE = regexp.MustCompile(`^-----BEGIN (RSA )?PUBLIC KEY-----$`)
	// openssl 3 exits 0 for non-RSA keys and prints prose after "Modulus=",
	// e.g. "No modulus for this public key type" or "Wrong Algorithm type".
	hexModulusRE = regexp.MustCompile(`^[0-9A-Fa-f]+$`)
)

// Executor runs openssl commands and returns stdout, stderr, and any error.
type Executor interface {
	Run(ctx context.Context, args ...string) (stdout, stderr []byte, err error)
}

// OSExecutor calls openssl via exec.CommandContext.
type OSExecutor struct {
	// Binary defaults to "openssl" on $PATH.
	Binary string
}

func (o *OSExecutor) Run(ctx context.Context, args ...string) ([]byte, []byte, error) {
	bin := o.Binary
	if bin == "" {
		bin = "openssl"
	}

	start := time.Now()
	cmd := exec.CommandContext(ctx, bin, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	trace.Log.Debugf("%s %s (%s, err=%v)", bin, strings.Join(args, " "), time.Since(start), err)
	return stdout.Bytes(), stderr.Bytes(), err
}

// OpenSSLParser extracts fingerprints and dates by running the openssl CLI,
// the same commands an operator would type to check a pair by hand.
type OpenSSLParser struct {
	exec Executor
}

// NewOpenSSLParser creates an OpenSSLParser with the given Executor.
func NewOpenSSLParser(exec Executor) *OpenSSLParser {
	return &OpenSSLParser{exec: exec}
}

func (p *OpenSSLParser) ModulusFingerprint(ctx context.Context, path string, f Format) (Fingerprint, error) {
	sub := f.opensslCommand()
	if sub == "" {
		return "", parseErr(path, f, fmt.Errorf("unsupported format"))
	}

	args := []string{sub, "-noout", "-modulus", "-in", path}
	if f == FormatRSAKey && hasPublicKeyMarker(path) {
		args = append(args, "-pubin")
	}

	stdout, stderr, err := p.exec.Run(ctx, args...)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", parseErr(path, f, ctxErr)
		}
		if isNotRSAStderr(stderr) {
			return "", parseErr(path, f, ErrNotRSA)
		}
		return "", parseErr(path, f, preferStderr(err, stderr))
	}

	mod, ok := parseModulus(stdout)
	if !ok || !hexModulusRE.MatchString(mod) {
		return "", parseErr(path, f, ErrNotRSA)
	}
	return FingerprintModulus(mod), nil
}

func (p *OpenSSLParser) ValidityWindow(ctx context.Context, path string) (ValidityWindow, error) {
	stdout, stderr, err := p.exec.Run(ctx, "x509", "-noout", "-dates", "-in", path)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ValidityWindow{}, parseErr(path, FormatX509, ctxErr)
		}
		return ValidityWindow{}, parseErr(path, FormatX509, preferStderr(err, stderr))
	}
	return parseDates(stdout), nil
}

func isNotRSAStderr(stderr []byte) bool {
	msg := strings.ToLower(strings.TrimSpace(string(stderr)))
	return strings.Contains(msg, "non-rsa") ||
		strings.Contains(msg, "not rsa") ||
		strings.Contains(msg, "can't use -modulus") ||
		strings.Contains(msg, "unknown option -modulus") ||
		strings.Contains(msg, "expecting:") && strings.Contains(msg, "rsa")
}

// preferStderr returns stderr as the error when available. This avoids surfacing
// unhelpful "exit status N" messages to end users.
func preferStderr(err error, stderr []byte) error {
	msg := strings.TrimSpace(string(stderr))
	if msg != "" {
		return errors.New(msg)
	}
	return err
}

func hasPublicKeyMarker(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if publicKeyHeaderRE.MatchString(strings.TrimSpace(scanner.Text())) {
			return true
		}
	}
	return false
}
