package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/cheddaboards/cheddaboards-go/config"
	"github.com/cheddaboards/cheddaboards-go/internal/adapters/oidc"
	"github.com/cheddaboards/cheddaboards-go/internal/domain/auth"
)

// BuildAcquirer wires the OAuth/OIDC code-flow helper from configuration,
// for embedders who want the SDK to obtain the provider credential itself.
func BuildAcquirer(ctx context.Context, cfg config.OAuthConfig) (*oidc.Acquirer, error) {
	provider := auth.Provider(strings.ToLower(cfg.Provider))
	if !provider.Valid() {
		return nil, fmt.Errorf("unsupported oauth provider %q", cfg.Provider)
	}

	acquirer, err := oidc.NewAcquirer(ctx, oidc.AcquirerConfig{
		Provider:     provider,
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		IssuerURL:    cfg.IssuerURL,
		Scopes:       strings.Fields(cfg.Scope),
	})
	if err != nil {
		return nil, fmt.Errorf("build oauth acquirer: %w", err)
	}
	return acquirer, nil
}
