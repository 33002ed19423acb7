// Package feeds aggregates public phishing blocklists into the domain list
// store. It runs out-of-band (cmd/feed-update); the scoring server only ever
// reads the merged result.
package feeds

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"sort"
	"strings"
	"time"
)

// Source is one upstream blocklist.
type Source struct {
	Name string
	URL  string
}

// DefaultSources are the public feeds the aggregated list is built from.
var DefaultSources = []Source{
	{Name: "Phishing.Database", URL: "https://raw.githubusercontent.com/mitchellkrogza/Phishing.Database/master/phishing-domains-ACTIVE.txt"},
	{Name: "Phishing Army Extended", URL: "https://phishing.army/download/phishing_army_blocklist_extended.txt"},
	{Name: "tweedge malicious hosts", URL: "https://hosts.tweedge.net/malicious.txt"},
	{Name: "URLhaus Hostfile", URL: "https://urlhaus.abuse.ch/downloads/hostfile/"},
}

// sourceTimeout bounds each individual feed download.
const sourceTimeout = 30 * time.Second

// Fetcher downloads and merges blocklist feeds.
type Fetcher struct {
	client  *http.Client
	sources []Source
}

// NewFetcher creates a feed fetcher over the given sources.
func NewFetcher(client *http.Client, sources []Source) *Fetcher {
	if client == nil {
		client = &http.Client{}
	}
	return &Fetcher{client: client, sources: sources}
}

// FetchAll downloads every source and returns the deduplicated, sorted union
// of their entries. A failing source is logged and skipped — a partial list
// is better than no refresh — but if every source fails an error is returned
// so the caller doesn't overwrite a good list with an empty one.
func (f *Fetcher) FetchAll(ctx context.Context) ([]string, error) {
	merged := make(map[string]struct{})
	failures := 0

	for _, src := range f.sources {
		entries, err := f.fetch(ctx, src)
		if err != nil {
			log.Printf("feed %s failed: %v", src.Name, err)
			failures++
			continue
		}
		for _, e := range entries {
			merged[e] = struct{}{}
		}
		log.Printf("feed %s: %d entries", src.Name, len(entries))
	}

	if failures == len(f.sources) {
		return nil, fmt.Errorf("all %d feed sources failed", failures)
	}

	out := make([]string, 0, len(merged))
	for e := range merged {
		out = append(out, e)
	}
	sort.Strings(out)
	return out, nil
}

func (f *Fetcher) fetch(ctx context.Context, src Source) ([]string, error) {
	sctx, cancel := context.WithTimeout(ctx, sourceTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(sctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return ParseLines(string(body)), nil
}

// ParseLines extracts usable entries from a feed body: blank lines, comments
// and hosts-file decoration are dropped, and everything is lowercased. Only
// lines starting with an alphanumeric survive, which also discards hosts-file
// IP prefixes like "0.0.0.0 evil.example" after splitting on whitespace.
func ParseLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		// Hosts-file feeds prefix entries with a sinkhole address.
		if fields := strings.Fields(line); len(fields) == 2 && (fields[0] == "0.0.0.0" || fields[0] == "127.0.0.1") {
			line = fields[1]
		}
		if !isAlnum(line[0]) {
			continue
		}
		out = append(out, strings.ToLower(line))
	}
	return out
}

func isAlnum(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
