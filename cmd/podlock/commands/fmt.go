package commands

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	podlock "github.com/albertocavalcante/go-podlock"
)

// ErrNotCanonical is returned by fmt when a document differs from its
// canonical encoding and -w was not given.
var ErrNotCanonical = errors.New("not in canonical form")

func (c *CLI) newFmtCmd() *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "fmt <Podfile.lock>...",
		Short: "Rewrite lock documents in canonical form",
		Long: `fmt parses each document and compares it with its canonical encoding.
Without -w it prints the name of every file that differs and exits
nonzero, like gofmt -l. With -w it rewrites those files in place.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dirty := false
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				lf, err := podlock.Parse(data)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				canonical := lf.Encode()
				if bytes.Equal(data, canonical) {
					continue
				}
				dirty = true
				if write {
					if err := os.WriteFile(path, canonical, 0o644); err != nil {
						return err
					}
					c.log.Debug("rewrote lock document", "path", path)
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			if dirty && !write {
				return ErrNotCanonical
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&write, "write", "w", false, "Rewrite files in place instead of listing them")
	return cmd
}
