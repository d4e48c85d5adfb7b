package util

import (
	"fmt"
	"strconv"
)

// FetchError wraps a failed or malformed response from one of the upstream
// sources (version manifest, pack format index, Modrinth).
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return "failed to fetch " + e.Source + ": " + e.Err.Error()
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ResolutionError means the selection policy cannot be satisfied from the
// manifest, e.g. not enough release entries for the default policy.
type ResolutionError struct {
	Reason string
}

func (e *ResolutionError) Error() string {
	return "cannot resolve target versions: " + e.Reason
}

// LookupError means a selected version has no discoverable pack format.
type LookupError struct {
	Version string
}

func (e *LookupError) Error() string {
	return "no pack format metadata for version " + e.Version
}

// ExternalToolError carries the exit code and captured output of a failed
// collaborator process.
type ExternalToolError struct {
	Tool     string
	ExitCode int
	Output   string
}

func (e *ExternalToolError) Error() string {
	msg := e.Tool + " exited with code " + strconv.Itoa(e.ExitCode)
	if e.Output != "" {
		msg += fmt.Sprintf(": %.500s", e.Output)
	}
	return msg
}
