package cli

import (
	cacheAdapter "github.com/rulekit/rulekit/internal/adapters/outbound/cache"
	configAdapter "github.com/rulekit/rulekit/internal/adapters/outbound/config"
	"github.com/rulekit/rulekit/internal/adapters/outbound/frontmatter"
	"github.com/rulekit/rulekit/internal/adapters/outbound/scanner"
	"github.com/rulekit/rulekit/internal/application"
	"github.com/rulekit/rulekit/internal/domain"
)

// newServices wires the standard set of outbound adapters and services.
// The content cache is sized from the root's config.
func newServices(root string) (*application.ValidateService, *application.MigrateService, domain.ContentStore, error) {
	loader := configAdapter.New()

	cfg, err := loader.Load(root)
	if err != nil {
		cfg = domain.DefaultConfig()
	}

	store, err := cacheAdapter.New(cfg.CacheSize)
	if err != nil {
		return nil, nil, nil, err
	}

	par := frontmatter.New()
	sc := scanner.New()

	validateSvc := application.NewValidateService(par, sc, store, loader)
	migrateSvc := application.NewMigrateService(par, sc, store, loader)
	return validateSvc, migrateSvc, store, nil
}
