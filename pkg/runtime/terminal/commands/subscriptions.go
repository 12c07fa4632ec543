package commands

import (
	"github.com/spf13/cobra"
)

type SubscriptionsCmd struct {
	runtime *Runtime
}

func NewSubscriptionsCmd(runtime *Runtime) *cobra.Command {
	sc := &SubscriptionsCmd{runtime: runtime}
	return &cobra.Command{
		Use:   "subscriptions",
		Short: "Show which subscriptions would be audited and their thresholds",
		Args:  cobra.NoArgs,
		RunE:  sc.run,
	}
}

func (sc *SubscriptionsCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := sc.runtime.Logger.WithContext(cmd.Context())

	auditor, err := sc.runtime.connect(ctx)
	if err != nil {
		return err
	}

	selections, _, err := auditor.Select(ctx)
	if err != nil {
		return err
	}

	return sc.runtime.Reporter.HandleSelection(selections)
}
