package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"
)

type RunCmd struct {
	timeout time.Duration
	runtime *Runtime
}

func NewRunCmd(runtime *Runtime) *cobra.Command {
	rc := &RunCmd{runtime: runtime}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Audit storage accounts and print the usage tables",
		Args:  cobra.NoArgs,
		RunE:  rc.run,
	}

	cmd.Flags().DurationVar(&rc.timeout, "timeout", 0, "Abort the audit after this long (0 means no limit)")

	return cmd
}

func (rc *RunCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := rc.runtime.Logger.WithContext(cmd.Context())
	if rc.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, rc.timeout)
		defer cancel()
	}

	auditor, err := rc.runtime.connect(ctx)
	if err != nil {
		return err
	}

	report, err := auditor.Run(ctx)
	if err != nil {
		return err
	}

	return rc.runtime.Reporter.Handle(report)
}
