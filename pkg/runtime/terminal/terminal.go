package terminal

import (
	"context"
	"io"
	"os"

	"github.com/de-tools/storage-audit/pkg/runtime/terminal/commands"
	"github.com/de-tools/storage-audit/pkg/runtime/terminal/export"
	"github.com/de-tools/storage-audit/pkg/services/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// CLI represents the command-line interface
type CLI struct {
	runtime    *commands.Runtime
	viper      *viper.Viper
	configPath string
	errOutput  io.Writer
	rootCmd    *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Connect   commands.ProviderFactory
	Output    io.Writer
	ErrOutput io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.ErrOutput == nil {
		opts.ErrOutput = os.Stderr
	}

	cli := &CLI{
		runtime: &commands.Runtime{
			Connect:  opts.Connect,
			Reporter: export.NewReporter(opts.Output),
		},
		viper:     config.NewViper(),
		errOutput: opts.ErrOutput,
	}

	cli.rootCmd = cli.newRootCmd()
	cli.rootCmd.SetOut(opts.Output)
	cli.rootCmd.SetErr(opts.ErrOutput)
	return cli
}

func (cli *CLI) Execute(ctx context.Context) error {
	return cli.rootCmd.ExecuteContext(ctx)
}

// SetArgs overrides os.Args for the next Execute
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "storage-audit",
		Short:             "Audit Azure storage account capacity against per-subscription thresholds",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: cli.setup,
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&cli.configPath, "config", "c", "", "Path to a YAML config file")
	flags.String("tag-name", config.DefaultTagName, "Subscription tag holding the threshold in GB")
	flags.Int("default-threshold", config.DefaultThresholdGB, "Threshold in GB when the tag is missing or invalid")
	flags.StringSlice("subscription-id", nil, "Audit only these subscription ids (repeatable)")
	flags.Bool("all", false, "Audit every subscription, tagged or not")
	flags.StringSlice("exclude", nil, "Storage account names to leave out of the audit (repeatable)")
	flags.String("profile", "", "Profile section to read from the Azure config file")
	flags.String("azure-config", "", "Path to the Azure config file (default $HOME/.azure/config)")
	flags.String("tenant-id", "", "Azure tenant to authenticate against")
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")
	flags.String("log-format", config.LogFormatConsole, "Log format (console, json)")

	bindings := map[string]string{
		config.KeyTagName:                 "tag-name",
		config.KeyDefaultThresholdGB:      "default-threshold",
		config.KeySubscriptionIDs:         "subscription-id",
		config.KeyAllSubscriptions:        "all",
		config.KeyExcludedStorageAccounts: "exclude",
		config.KeyAzureProfile:            "profile",
		config.KeyAzureConfigPath:         "azure-config",
		config.KeyAzureTenantID:           "tenant-id",
		config.KeyLogLevel:                "log-level",
		config.KeyLogFormat:               "log-format",
	}
	for key, flag := range bindings {
		_ = cli.viper.BindPFlag(key, flags.Lookup(flag))
	}

	cmd.AddCommand(commands.NewRunCmd(cli.runtime))
	cmd.AddCommand(commands.NewSubscriptionsCmd(cli.runtime))
	cmd.AddCommand(commands.NewServeCmd(cli.runtime, cli.viper))

	return cmd
}

func (cli *CLI) setup(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(cli.viper, cli.configPath)
	if err != nil {
		return err
	}

	logger, err := NewLogger(cfg.Log, cli.errOutput)
	if err != nil {
		return err
	}

	cli.runtime.Config = cfg
	cli.runtime.Logger = logger
	return nil
}
