package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/netip"
	"os"

	"github.com/miekg/dns"
)

// CountryTable maps IP ranges to 2-letter ISO country codes. It is loaded
// once at startup from a JSON export and shared read-only, exactly like the
// phishing-domain set.
type CountryTable struct {
	ranges []countryRange
}

type countryRange struct {
	prefix  netip.Prefix
	country string
}

// LoadCountryTable reads a JSON file of {"cidr": ..., "country": ...}
// entries. Missing file is not an error: geolocation then always reports
// unknown, which the feature encoding handles with its UN sentinel.
func LoadCountryTable(path string) (*CountryTable, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &CountryTable{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read country table: %w", err)
	}

	var entries []struct {
		CIDR    string `json:"cidr"`
		Country string `json:"country"`
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse country table: %w", err)
	}

	table := &CountryTable{ranges: make([]countryRange, 0, len(entries))}
	for _, e := range entries {
		prefix, err := netip.ParsePrefix(e.CIDR)
		if err != nil {
			return nil, fmt.Errorf("bad CIDR %q in country table: %w", e.CIDR, err)
		}
		if len(e.Country) != 2 {
			return nil, fmt.Errorf("bad country code %q for %s", e.Country, e.CIDR)
		}
		table.ranges = append(table.ranges, countryRange{prefix: prefix, country: e.Country})
	}
	return table, nil
}

// Lookup returns the country code for an IP, or "" on a miss.
func (t *CountryTable) Lookup(ip netip.Addr) string {
	for _, r := range t.ranges {
		if r.prefix.Contains(ip) {
			return r.country
		}
	}
	return ""
}

// Len returns the number of ranges in the table.
func (t *CountryTable) Len() int {
	return len(t.ranges)
}

// DNSGeoLocator resolves a hostname's first A record and maps it to a
// country through the CIDR table. Resolution goes straight to a configured
// DNS server; if that fails the system resolver is tried as a fallback.
type DNSGeoLocator struct {
	table    *CountryTable
	server   string // host:port of the DNS server
	client   *dns.Client
	resolver *net.Resolver
}

// NewDNSGeoLocator creates a geo locator using the given DNS server
// (host:port) and country table.
func NewDNSGeoLocator(server string, table *CountryTable) *DNSGeoLocator {
	return &DNSGeoLocator{
		table:    table,
		server:   server,
		client:   new(dns.Client),
		resolver: net.DefaultResolver,
	}
}

// CountryCode resolves the hostname and returns its country code. A miss in
// the table is returned as an error so the caller uniformly records the UN
// sentinel.
func (g *DNSGeoLocator) CountryCode(ctx context.Context, hostname string) (string, error) {
	if hostname == "" {
		return "", fmt.Errorf("empty hostname")
	}

	ip, err := g.resolve(ctx, hostname)
	if err != nil {
		return "", err
	}

	country := g.table.Lookup(ip)
	if country == "" {
		return "", fmt.Errorf("no country range matches %s", ip)
	}
	return country, nil
}

func (g *DNSGeoLocator) resolve(ctx context.Context, hostname string) (netip.Addr, error) {
	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(hostname), dns.TypeA)

	reply, _, err := g.client.ExchangeContext(ctx, msg, g.server)
	if err == nil {
		for _, rr := range reply.Answer {
			if a, ok := rr.(*dns.A); ok {
				if addr, ok := netip.AddrFromSlice(a.A.To4()); ok {
					return addr, nil
				}
			}
		}
	}

	// Fall back to the system resolver.
	addrs, rerr := g.resolver.LookupNetIP(ctx, "ip4", hostname)
	if rerr != nil || len(addrs) == 0 {
		if err != nil {
			return netip.Addr{}, fmt.Errorf("dns resolution failed: %w", err)
		}
		return netip.Addr{}, fmt.Errorf("no A records for %s", hostname)
	}
	return addrs[0], nil
}
