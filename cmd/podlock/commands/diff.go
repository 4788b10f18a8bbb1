package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	podlock "github.com/albertocavalcante/go-podlock"
	"github.com/albertocavalcante/go-podlock/manifest"
)

// ErrChangesDetected is returned by diff when the manifest drifted from
// the lock document. The caller maps it to a nonzero exit without an
// error message.
var ErrChangesDetected = errors.New("changes detected")

func (c *CLI) newDiffCmd() *cobra.Command {
	var (
		manifestPath string
		format       string
	)

	cmd := &cobra.Command{
		Use:   "diff <Podfile.lock>",
		Short: "Classify manifest changes against a lock document",
		Long: `diff loads the dependency manifest, compares it with the declared
dependencies recorded in the lock document and reports every pod as
added, changed, removed or unchanged.

The command exits nonzero when anything was added, changed or removed,
so it can gate continuous integration on lockfile freshness.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lf, err := podlock.ReadFile(args[0])
			if err != nil {
				return err
			}
			deps, err := manifest.Load(manifestPath)
			if err != nil {
				return err
			}
			changes := lf.DetectChanges(deps)
			c.log.Debug("classified dependencies",
				"manifest", manifestPath,
				"total", changes.Total(),
				"changed", changes.HasChanges())

			out := cmd.OutOrStdout()
			switch format {
			case "text":
				reportChanges(out, changes)
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(changes); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown format %q (want text or json)", format)
			}

			if changes.HasChanges() {
				return ErrChangesDetected
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", manifest.DefaultFileName, "Dependency manifest to diff against")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, json")
	return cmd
}

func reportChanges(w io.Writer, changes *podlock.Changes) {
	sections := []struct {
		label string
		names []string
	}{
		{"Added", changes.Added},
		{"Changed", changes.Changed},
		{"Removed", changes.Removed},
		{"Unchanged", changes.Unchanged},
	}
	for _, s := range sections {
		if len(s.names) == 0 {
			continue
		}
		fmt.Fprintf(w, "%s:\n", s.label)
		for _, name := range s.names {
			fmt.Fprintf(w, "  %s\n", name)
		}
	}
	if !changes.HasChanges() {
		fmt.Fprintln(w, "Lock document is up to date.")
	}
}
