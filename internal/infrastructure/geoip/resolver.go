// Package geoip resolves client IP addresses to countries using a MaxMind
// GeoIP2 or GeoLite2 database.
package geoip

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/oschwald/geoip2-golang"

	"github.com/Khaja2988/AI-Driven-WAF/internal/domain/port"
)

// ErrInvalidIP is returned for addresses that do not parse.
var ErrInvalidIP = errors.New("geoip: invalid IP address")

type countryReader interface {
	Country(ip net.IP) (*geoip2.Country, error)
	Close() error
}

// Resolver implements port.CountryResolver on top of a MaxMind database.
// It is safe for concurrent use.
type Resolver struct {
	reader countryReader
}

var _ port.CountryResolver = (*Resolver)(nil)

// Open loads the database at path. Both City and Country editions work.
func Open(path string) (*Resolver, error) {
	reader, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("geoip: open %s: %w", path, err)
	}
	return &Resolver{reader: reader}, nil
}

// FromBytes loads a database held in memory.
func FromBytes(data []byte) (*Resolver, error) {
	reader, err := geoip2.FromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("geoip: load database: %w", err)
	}
	return &Resolver{reader: reader}, nil
}

// ResolveCountry returns the ISO 3166-1 alpha-2 code for ip, or "" when the
// address has no country in the database.
func (r *Resolver) ResolveCountry(_ context.Context, ip string) (string, error) {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidIP, ip)
	}

	record, err := r.reader.Country(parsed)
	if err != nil {
		return "", fmt.Errorf("geoip: lookup %s: %w", ip, err)
	}
	if record == nil {
		return "", nil
	}
	if record.Country.IsoCode != "" {
		return record.Country.IsoCode, nil
	}
	return record.RegisteredCountry.IsoCode, nil
}

// Close releases the database.
func (r *Resolver) Close() error {
	return r.reader.Close()
}
