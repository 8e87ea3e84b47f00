package catalog

import (
	"context"

	"mini-storefront/internal/model"

	"github.com/rs/zerolog"
)

// fallbackLoader tries a remote loader first, then falls back to the local file system.
type fallbackLoader struct {
	remote       Loader
	local        Loader
	remotePrefix string
	logger       zerolog.Logger
}

// NewFallbackLoader creates a loader that tries remote first, then local.
// A nil remote loader means only local is used. remotePrefix is prepended to
// the location for the remote loader only.
func NewFallbackLoader(remote, local Loader, remotePrefix string, logger zerolog.Logger) Loader {
	return &fallbackLoader{
		remote:       remote,
		local:        local,
		remotePrefix: remotePrefix,
		logger:       logger.With().Str("component", "fallback-loader").Logger(),
	}
}

// Load attempts the remote loader with the prefixed location, and on failure
// loads location as-is from the local loader.
func (l *fallbackLoader) Load(ctx context.Context, location string) ([]model.Product, error) {
	if l.remote != nil {
		key := l.remotePrefix + location

		products, err := l.remote.Load(ctx, key)
		if err == nil {
			l.logger.Info().Str("key", key).Msg("catalogue loaded from remote")
			return products, nil
		}

		l.logger.Warn().
			Err(err).
			Str("key", key).
			Msg("failed to load from remote, falling back to local file system")
	} else {
		l.logger.Debug().Msg("remote loader not configured, using local file system")
	}

	return l.local.Load(ctx, location)
}
