package podlock

import (
	"errors"
	"fmt"
)

// Sentinel errors for common lock document failures.
var (
	// ErrMissingExternalSource indicates a dependency token points at an
	// external source but the document has no EXTERNAL SOURCES entry for it.
	ErrMissingExternalSource = errors.New("missing external source entry")
)

// DecodeError is returned when lock document text cannot be decoded:
// invalid YAML, an unexpected document shape, an unknown section, or a
// malformed entry token. Decoding is all or nothing, so no partial
// document accompanies it.
type DecodeError struct {
	// Section names the top-level section being decoded, when known.
	Section string

	// Err is the underlying cause.
	Err error
}

func (e *DecodeError) Error() string {
	if e.Section != "" {
		return fmt.Sprintf("decode lockfile: section %s: %v", e.Section, e.Err)
	}
	return fmt.Sprintf("decode lockfile: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// MalformedPodTokenError is returned when a PODS entry token does not
// follow the "Name (Version)" form.
type MalformedPodTokenError struct {
	// Token is the offending token verbatim.
	Token string

	// Err is the underlying cause, when one exists.
	Err error
}

func (e *MalformedPodTokenError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed pod token %q: %v", e.Token, e.Err)
	}
	return fmt.Sprintf("malformed pod token %q", e.Token)
}

func (e *MalformedPodTokenError) Unwrap() error {
	return e.Err
}

// MalformedDependencyTokenError is returned when a DEPENDENCIES entry
// token does not follow any of the recognized forms.
type MalformedDependencyTokenError struct {
	// Token is the offending token verbatim.
	Token string

	// Err is the underlying cause, when one exists.
	Err error
}

func (e *MalformedDependencyTokenError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed dependency token %q: %v", e.Token, e.Err)
	}
	return fmt.Sprintf("malformed dependency token %q", e.Token)
}

func (e *MalformedDependencyTokenError) Unwrap() error {
	return e.Err
}

// InconsistentLockfileError is returned when a query requires data the
// document should hold but does not, for example a pinned dependency for
// a pod locked without a version.
type InconsistentLockfileError struct {
	// Pod is the name of the pod the query was about.
	Pod string

	// Reason describes what is missing.
	Reason string
}

func (e *InconsistentLockfileError) Error() string {
	return fmt.Sprintf("inconsistent lockfile: pod %q: %s", e.Pod, e.Reason)
}
