package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wopp/internal/cli"
	werrors "github.com/matzehuels/wopp/pkg/errors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	stop()
	os.Exit(exitCode(os.Stderr, err))
}

func run(ctx context.Context) error {
	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()
	addVerboseFlag(root, c)
	return root.ExecuteContext(ctx)
}

// addVerboseFlag registers -v. The level is raised ahead of the root's own
// PersistentPreRunE so config loading is already traced.
func addVerboseFlag(root *cobra.Command, c *cli.CLI) {
	var verbose bool
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	next := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose {
			c.SetLogLevel(cli.LogDebug)
		}
		if next == nil {
			return nil
		}
		return next(cmd, args)
	}
}

// exitCode reports err on w and maps it to the process status: 0 on
// success, 130 after an interrupt, 1 otherwise.
func exitCode(w io.Writer, err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return 130
	default:
		fmt.Fprintln(w, "Error:", werrors.UserMessage(err))
		return 1
	}
}
