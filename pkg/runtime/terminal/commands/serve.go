package commands

import (
	"github.com/de-tools/storage-audit/pkg/server"
	"github.com/de-tools/storage-audit/pkg/services/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type ServeCmd struct {
	runtime *Runtime
}

func NewServeCmd(runtime *Runtime, v *viper.Viper) *cobra.Command {
	sc := &ServeCmd{runtime: runtime}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Expose the audit over HTTP",
		Args:  cobra.NoArgs,
		RunE:  sc.run,
	}

	cmd.Flags().String("addr", config.DefaultServerAddr, "Address to listen on")
	_ = v.BindPFlag(config.KeyServerAddr, cmd.Flags().Lookup("addr"))

	return cmd
}

func (sc *ServeCmd) run(cmd *cobra.Command, _ []string) error {
	logger := sc.runtime.Logger
	ctx := logger.WithContext(cmd.Context())

	auditor, err := sc.runtime.connect(ctx)
	if err != nil {
		return err
	}

	api := server.NewWebAPI(logger, server.Config{
		Addr: sc.runtime.Config.Server.Addr,
		Dependencies: server.Dependencies{
			Auditor: auditor,
		},
	})
	return api.Start(ctx)
}
