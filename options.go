package podlock

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/albertocavalcante/go-podlock/version"
)

// GenerateOption configures lock document generation.
type GenerateOption func(*generateConfig) error

// generateConfig holds all generation configuration.
type generateConfig struct {
	cocoapodsVersion string
	podfileChecksum  string
	checkoutOptions  map[string]ExternalSource
	digest           DigestFunc

	// logger is the structured logger for debug output.
	// If nil, logging is disabled (silent mode).
	logger *slog.Logger
}

// WithCocoaPodsVersion overrides the tool version recorded in the
// COCOAPODS section. The default is CompatibilityVersion; tests pin this
// to keep generated output stable.
func WithCocoaPodsVersion(v string) GenerateOption {
	return func(c *generateConfig) error {
		if _, err := version.New(v); err != nil {
			return fmt.Errorf("cocoapods version: %w", err)
		}
		c.cocoapodsVersion = v
		return nil
	}
}

// WithPodfileChecksum records the digest of the manifest the document is
// generated from, written to the PODFILE CHECKSUM section.
func WithPodfileChecksum(sum string) GenerateOption {
	return func(c *generateConfig) error {
		c.podfileChecksum = sum
		return nil
	}
}

// WithCheckoutOptions records the exact checkout state of externally
// sourced pods, written to the CHECKOUT OPTIONS section. Entries for pods
// that are not declared with an external source are dropped.
func WithCheckoutOptions(opts map[string]ExternalSource) GenerateOption {
	return func(c *generateConfig) error {
		c.checkoutOptions = opts
		return nil
	}
}

// WithDigest replaces the podspec digest function used for the
// SPEC CHECKSUMS section. The default is DigestContent.
func WithDigest(fn DigestFunc) GenerateOption {
	return func(c *generateConfig) error {
		if fn == nil {
			return fmt.Errorf("digest function must not be nil")
		}
		c.digest = fn
		return nil
	}
}

// WithLogger sets a structured logger for generation diagnostics.
// If not set, logging is disabled (silent mode).
//
// The library uses log/slog, so any backend can be plugged in via a
// handler.
func WithLogger(l *slog.Logger) GenerateOption {
	return func(c *generateConfig) error {
		c.logger = l
		return nil
	}
}

// log returns the configured logger, or a no-op logger if none was set,
// so generation code never has to nil-check.
func (c *generateConfig) log() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return slog.New(discardHandler{})
}

// discardHandler is a slog.Handler that discards all log records.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }

// newGenerateConfig applies the options over the defaults.
func newGenerateConfig(opts ...GenerateOption) (*generateConfig, error) {
	c := &generateConfig{
		cocoapodsVersion: CompatibilityVersion,
		digest:           DigestContent,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}
