package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Khaja2988/AI-Driven-WAF/internal/domain/port"
)

// GeoEnricher fills in an absent Country from the event's IP address before
// scoring. Lookup failures fall back to the event as submitted.
type GeoEnricher struct {
	resolver port.CountryResolver
	logger   *slog.Logger
}

// NewGeoEnricher creates a GeoEnricher. A nil resolver disables enrichment.
func NewGeoEnricher(resolver port.CountryResolver, logger *slog.Logger) *GeoEnricher {
	return &GeoEnricher{
		resolver: resolver,
		logger:   logger,
	}
}

// Enrich returns event with Country resolved when it was empty, and whether a
// country was filled in.
func (g *GeoEnricher) Enrich(ctx context.Context, event LoginEvent) (LoginEvent, bool) {
	if g == nil || g.resolver == nil {
		return event, false
	}
	if event.Country != "" {
		return event, false
	}
	ip := strings.TrimSpace(event.IPAddress)
	if ip == "" {
		return event, false
	}

	country, err := g.resolver.ResolveCountry(ctx, ip)
	if err != nil {
		g.logger.WarnContext(ctx, "country lookup failed, scoring without geography",
			slog.String("ip", ip),
			slog.String("error", err.Error()),
		)
		return event, false
	}
	if country == "" {
		return event, false
	}

	event.Country = country
	return event, true
}
