package lookup

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"
)

// ianaWHOIS is the root WHOIS server used to discover the registry server
// for a TLD before querying it for the registration record.
const ianaWHOIS = "whois.iana.org:43"

// creationDateKeys are the field names registries use for the registration
// date. Formats vary wildly between registries; this covers the common ones.
var creationDateKeys = []string{
	"creation date:",
	"created:",
	"created on:",
	"registered on:",
	"registration time:",
}

var creationDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02-Jan-2006",
	"2006.01.02 15:04:05",
}

// WHOISAgeLookup resolves domain registration age via the WHOIS protocol.
// One query chain per call, no retries: a failure degrades the age signal to
// unknown rather than delaying the scoring request.
type WHOISAgeLookup struct {
	dialer net.Dialer
	now    func() time.Time
}

// NewWHOISAgeLookup creates a WHOIS-backed domain age lookup.
func NewWHOISAgeLookup() *WHOISAgeLookup {
	return &WHOISAgeLookup{now: time.Now}
}

// AgeInDays returns the number of days since the hostname's registrable
// domain was registered. The context deadline bounds the whole query chain.
func (l *WHOISAgeLookup) AgeInDays(ctx context.Context, hostname string) (int, error) {
	if hostname == "" {
		return 0, fmt.Errorf("empty hostname")
	}

	// WHOIS records exist for the registrable domain, not for subdomains.
	domain, err := publicsuffix.EffectiveTLDPlusOne(hostname)
	if err != nil {
		return 0, fmt.Errorf("no registrable domain for %q: %w", hostname, err)
	}

	// Ask IANA which server is authoritative for this TLD, then query it.
	referral, err := l.query(ctx, ianaWHOIS, domain)
	if err != nil {
		return 0, fmt.Errorf("iana whois query failed: %w", err)
	}

	response := referral
	if server := parseField(referral, "refer:"); server != "" {
		response, err = l.query(ctx, net.JoinHostPort(server, "43"), domain)
		if err != nil {
			return 0, fmt.Errorf("registry whois query failed: %w", err)
		}
	}

	created, err := parseCreationDate(response)
	if err != nil {
		return 0, err
	}

	age := int(l.now().Sub(created).Hours() / 24)
	if age < 0 {
		age = 0
	}
	return age, nil
}

func (l *WHOISAgeLookup) query(ctx context.Context, server, domain string) (string, error) {
	conn, err := l.dialer.DialContext(ctx, "tcp", server)
	if err != nil {
		return "", err
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	if _, err := fmt.Fprintf(conn, "%s\r\n", domain); err != nil {
		return "", err
	}

	var sb strings.Builder
	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		sb.WriteString(scanner.Text())
		sb.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// parseField returns the value of the first line starting with key
// (case-insensitive), or "".
func parseField(response, key string) string {
	for _, line := range strings.Split(response, "\n") {
		trimmed := strings.TrimSpace(line)
		if len(trimmed) >= len(key) && strings.EqualFold(trimmed[:len(key)], key) {
			return strings.TrimSpace(trimmed[len(key):])
		}
	}
	return ""
}

func parseCreationDate(response string) (time.Time, error) {
	for _, key := range creationDateKeys {
		value := parseField(response, key)
		if value == "" {
			continue
		}
		// Some registries append a comment after the date.
		if i := strings.IndexByte(value, ' '); i > 0 && !strings.Contains(value[:i], "T") {
			// Keep "2006-01-02 15:04:05" intact, drop trailing junk otherwise.
			if _, err := time.Parse("2006-01-02 15:04:05", value); err != nil {
				value = value[:i]
			}
		}
		for _, layout := range creationDateLayouts {
			if t, err := time.Parse(layout, value); err == nil {
				return t, nil
			}
		}
	}
	return time.Time{}, fmt.Errorf("no creation date in whois response")
}
