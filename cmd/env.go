package main

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/lendstack/prospect-pipeline/internal/prospect"
	"github.com/lendstack/prospect-pipeline/internal/search"
	"github.com/lendstack/prospect-pipeline/pkg/apify"
)

// initStore opens the configured store backend and runs migrations.
// Callers should defer st.Close().
func initStore(ctx context.Context) (prospect.Store, error) {
	var (
		st  prospect.Store
		err error
	)
	switch cfg.Store.Driver {
	case "postgres":
		st, err = prospect.NewPostgres(ctx, cfg.Store.DatabaseURL)
	case "sqlite", "":
		st, err = prospect.NewSQLite(cfg.Store.DatabaseURL)
	default:
		return nil, eris.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
	if err != nil {
		return nil, eris.Wrap(err, "init store")
	}

	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}
	return st, nil
}

// initNormalizer builds the search normalizer against the live Apify
// provider, with the store as the criteria source.
func initNormalizer(st prospect.Store) *search.Normalizer {
	client := apify.NewClient(cfg.Apify.Token,
		apify.WithBaseURL(cfg.Apify.BaseURL),
		apify.WithActor(cfg.Apify.Actor),
	)
	return search.NewNormalizer(search.NewApifyProvider(client), st, search.Config{
		MaxResults: cfg.Search.MaxResults,
		RateLimit:  cfg.Search.RatePerSecond,
	})
}
