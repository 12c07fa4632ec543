package azure

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"gopkg.in/ini.v1"
)

const (
	DefaultProfile  = "default"
	managementScope = "https://management.azure.com/.default"
)

// ProfileConfig selects which identity the audit authenticates as
type ProfileConfig struct {
	// Profile is a section of the INI config file; empty means no profile lookup
	Profile string
	// ConfigPath overrides $HOME/.azure/config
	ConfigPath string
	// TenantID takes precedence over the tenant found in the profile
	TenantID string
}

// Profile holds the values read from one section of the Azure config file
type Profile struct {
	Name     string
	TenantID string
	ClientID string
}

func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("unable to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".azure", "config"), nil
}

// LoadProfile reads a profile section from an INI file
func LoadProfile(configPath, profile string) (*Profile, error) {
	if profile == "" {
		profile = DefaultProfile
	}

	cfg, err := ini.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("unable to load Azure config file: %w", err)
	}

	section, err := cfg.GetSection(profile)
	if err != nil {
		return nil, fmt.Errorf("profile %s not found in Azure config: %w", profile, err)
	}

	return &Profile{
		Name:     profile,
		TenantID: section.Key("tenant").String(),
		ClientID: section.Key("client_id").String(),
	}, nil
}

// Authenticate builds a credential and proves it works by fetching a
// management-plane token, failing fast on bad credentials.
func Authenticate(ctx context.Context, cfg ProfileConfig) (azcore.TokenCredential, error) {
	opts := &azidentity.DefaultAzureCredentialOptions{TenantID: cfg.TenantID}

	if cfg.Profile != "" {
		path := cfg.ConfigPath
		if path == "" {
			var err error
			if path, err = DefaultConfigPath(); err != nil {
				return nil, err
			}
		}
		profile, err := LoadProfile(path, cfg.Profile)
		if err != nil {
			return nil, err
		}
		if opts.TenantID == "" {
			opts.TenantID = profile.TenantID
		}
	}

	cred, err := azidentity.NewDefaultAzureCredential(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure credential: %w", err)
	}

	if _, err := cred.GetToken(ctx, policy.TokenRequestOptions{Scopes: []string{managementScope}}); err != nil {
		var authErr *azidentity.AuthenticationFailedError
		if errors.As(err, &authErr) {
			return nil, fmt.Errorf("azure rejected the credential: %w", err)
		}
		return nil, fmt.Errorf("failed to acquire management token: %w", err)
	}
	return cred, nil
}
