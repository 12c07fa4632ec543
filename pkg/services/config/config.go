package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/de-tools/storage-audit/pkg/models/domain"
	"github.com/de-tools/storage-audit/pkg/services/azure"
	"github.com/spf13/viper"
)

const EnvPrefix = "STORAGE_AUDIT"

// Config keys, shared by the config file, the environment and the CLI flags.
const (
	KeyTagName                  = "tag_name"
	KeyDefaultThresholdGB       = "default_threshold_gb"
	KeyUseSpecificSubscriptions = "use_specific_subscriptions"
	KeySubscriptionIDs          = "subscription_ids"
	KeyAllSubscriptions         = "all_subscriptions"
	KeyExcludedStorageAccounts  = "excluded_storage_accounts"
	KeyAzureProfile             = "azure.profile"
	KeyAzureConfigPath          = "azure.config_path"
	KeyAzureTenantID            = "azure.tenant_id"
	KeyLogLevel                 = "log.level"
	KeyLogFormat                = "log.format"
	KeyServerAddr               = "server.addr"
)

const (
	DefaultTagName     = "StorageThresholdGB"
	DefaultThresholdGB = 1024
	DefaultServerAddr  = "127.0.0.1:8080"
	LogFormatConsole   = "console"
	LogFormatJSON      = "json"
	defaultLogLevel    = "info"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type LogConfig struct {
	Level  string
	Format string
}

type ServerConfig struct {
	Addr string
}

type Config struct {
	Audit  domain.AuditConfig
	Azure  azure.ProfileConfig
	Log    LogConfig
	Server ServerConfig
}

// NewViper returns a viper instance with defaults registered and environment
// overrides enabled, e.g. STORAGE_AUDIT_TAG_NAME or STORAGE_AUDIT_AZURE_PROFILE.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyTagName, DefaultTagName)
	v.SetDefault(KeyDefaultThresholdGB, DefaultThresholdGB)
	v.SetDefault(KeySubscriptionIDs, []string{})
	v.SetDefault(KeyAllSubscriptions, false)
	v.SetDefault(KeyExcludedStorageAccounts, []string{})
	v.SetDefault(KeyAzureProfile, "")
	v.SetDefault(KeyAzureConfigPath, "")
	v.SetDefault(KeyAzureTenantID, "")
	v.SetDefault(KeyLogLevel, defaultLogLevel)
	v.SetDefault(KeyLogFormat, LogFormatConsole)
	v.SetDefault(KeyServerAddr, DefaultServerAddr)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the optional config file at path into v and decodes the result
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	ids := v.GetStringSlice(KeySubscriptionIDs)
	cfg := &Config{
		Audit: domain.AuditConfig{
			TagName:            strings.TrimSpace(v.GetString(KeyTagName)),
			DefaultThresholdGB: v.GetInt(KeyDefaultThresholdGB),
			// Passing ids implies specific selection unless it was turned off explicitly
			UseSpecificSubscriptions: v.GetBool(KeyUseSpecificSubscriptions) ||
				(len(ids) > 0 && !v.IsSet(KeyUseSpecificSubscriptions)),
			SpecificSubscriptionIDs: ids,
			CheckAllSubscriptions:   v.GetBool(KeyAllSubscriptions),
			ExcludedStorageAccounts: v.GetStringSlice(KeyExcludedStorageAccounts),
		},
		Azure: azure.ProfileConfig{
			Profile:    v.GetString(KeyAzureProfile),
			ConfigPath: v.GetString(KeyAzureConfigPath),
			TenantID:   v.GetString(KeyAzureTenantID),
		},
		Log: LogConfig{
			Level:  v.GetString(KeyLogLevel),
			Format: v.GetString(KeyLogFormat),
		},
		Server: ServerConfig{
			Addr: v.GetString(KeyServerAddr),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Audit.TagName == "" {
		return fmt.Errorf("%w: %s must not be empty", ErrInvalidConfig, KeyTagName)
	}
	if c.Audit.DefaultThresholdGB < 0 {
		return fmt.Errorf("%w: %s must be >= 0, got %d", ErrInvalidConfig, KeyDefaultThresholdGB, c.Audit.DefaultThresholdGB)
	}
	switch c.Log.Format {
	case LogFormatConsole, LogFormatJSON:
	default:
		return fmt.Errorf("%w: %s must be %q or %q, got %q",
			ErrInvalidConfig, KeyLogFormat, LogFormatConsole, LogFormatJSON, c.Log.Format)
	}
	return nil
}
