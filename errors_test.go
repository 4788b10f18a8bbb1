package podlock

import (
	"errors"
	"testing"
)

func TestDecodeErrorMessage(t *testing.T) {
	bare := &DecodeError{Err: errors.New("boom")}
	if got := bare.Error(); got != "decode lockfile: boom" {
		t.Errorf("Error() = %q", got)
	}

	sectioned := &DecodeError{Section: sectionPods, Err: errors.New("boom")}
	if got := sectioned.Error(); got != "decode lockfile: section PODS: boom" {
		t.Errorf("Error() = %q", got)
	}
}

func TestTokenErrorMessages(t *testing.T) {
	podErr := &MalformedPodTokenError{Token: "A ("}
	if got := podErr.Error(); got != `malformed pod token "A ("` {
		t.Errorf("Error() = %q", got)
	}

	depErr := &MalformedDependencyTokenError{Token: "A", Err: errors.New("boom")}
	if got := depErr.Error(); got != `malformed dependency token "A": boom` {
		t.Errorf("Error() = %q", got)
	}

	inconsistent := &InconsistentLockfileError{Pod: "A", Reason: "no version recorded"}
	if got := inconsistent.Error(); got != `inconsistent lockfile: pod "A": no version recorded` {
		t.Errorf("Error() = %q", got)
	}
}

func TestErrorUnwrapping(t *testing.T) {
	cause := errors.New("cause")

	wrapped := &DecodeError{Err: &MalformedPodTokenError{Token: "A", Err: cause}}
	if !errors.Is(wrapped, cause) {
		t.Error("cause not reachable through the decode error chain")
	}

	var tokenErr *MalformedPodTokenError
	if !errors.As(wrapped, &tokenErr) {
		t.Error("token error not reachable through the decode error chain")
	}
}
