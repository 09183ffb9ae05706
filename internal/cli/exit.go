package cli

import "errors"

const (
	// ExitFailed means at least one certificate group failed validation.
	ExitFailed = 1
	// ExitUsage covers bad flags and a target that is not a directory.
	ExitUsage = 2
)

// ExitError carries an intended process exit code.
//
// Failed verdicts are reported through the diagnostic lines already printed,
// so those exits are Silent.
type ExitError struct {
	Code   int
	Silent bool   // if true, main should not print "Error: ..." for this
	Msg    string // optional message (already user-facing)
}

func (e *ExitError) Error() string {
	return e.Msg
}

func ExitCode(err error) (code int, silent bool, ok bool) {
	var ee *ExitError
	if !errors.As(err, &ee) {
		return 0, false, false
	}
	return ee.Code, ee.Silent, true
}

func usageError(msg string) error {
	return &ExitError{Code: ExitUsage, Msg: msg}
}
