package commands

import (
	"context"

	"github.com/de-tools/storage-audit/pkg/runtime/terminal/export"
	"github.com/de-tools/storage-audit/pkg/services/audit"
	"github.com/de-tools/storage-audit/pkg/services/azure"
	"github.com/de-tools/storage-audit/pkg/services/config"
	"github.com/rs/zerolog"
)

// ProviderFactory authenticates and returns a ready cloud provider
type ProviderFactory func(ctx context.Context, cfg azure.ProfileConfig) (audit.Provider, error)

// Runtime carries what the root command prepared for its subcommands.
// Config and Logger are set by the root PersistentPreRunE.
type Runtime struct {
	Config   *config.Config
	Logger   zerolog.Logger
	Connect  ProviderFactory
	Reporter *export.Reporter
}

func (rt *Runtime) connect(ctx context.Context) (*audit.Auditor, error) {
	provider, err := rt.Connect(ctx, rt.Config.Azure)
	if err != nil {
		return nil, err
	}
	return audit.NewAuditor(provider, rt.Config.Audit), nil
}
