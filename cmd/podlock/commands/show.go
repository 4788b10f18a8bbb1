package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	podlock "github.com/albertocavalcante/go-podlock"
)

func (c *CLI) newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <Podfile.lock>",
		Short: "Summarize a lock document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lf, err := podlock.ReadFile(args[0])
			if err != nil {
				return err
			}
			pods := lf.Pods()
			deps := lf.Dependencies()
			c.log.Debug("read lock document", "path", args[0], "pods", len(pods))

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d pods, %d direct dependencies", len(pods), len(deps))
			if v := lf.CocoaPodsVersion(); v != "" {
				fmt.Fprintf(out, " (CocoaPods %s)", v)
			}
			fmt.Fprintln(out)

			fmt.Fprintln(out, "\nPods:")
			for _, pod := range pods {
				fmt.Fprintf(out, "  %s\n", pod.Token())
			}

			fmt.Fprintln(out, "\nDependencies:")
			for _, dep := range deps {
				fmt.Fprintf(out, "  %s\n", dep.String())
			}

			if sum, ok := lf.PodfileChecksum(); ok {
				fmt.Fprintf(out, "\nPodfile checksum: %s\n", sum)
			}
			return nil
		},
	}
}
