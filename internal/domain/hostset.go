package domain

// HostnameSet is an immutable membership set of known-phishing hostnames.
// It is built once at startup from the aggregated feed data and shared
// read-only across concurrent scoring requests, so no locking is needed.
type HostnameSet struct {
	members map[string]struct{}
}

// NewHostnameSet builds a set from raw feed entries. Entries may be bare
// domains or full URLs (the public feeds mix both); each one is normalized
// through NewURLRecord so membership checks always compare hostnames.
func NewHostnameSet(entries []string) *HostnameSet {
	members := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		rec := NewURLRecord(entry)
		if rec.Hostname == "" {
			continue
		}
		members[rec.Hostname] = struct{}{}
	}
	return &HostnameSet{members: members}
}

// Contains reports whether hostname is in the set. The empty hostname of an
// unparseable URL is never a member.
func (s *HostnameSet) Contains(hostname string) bool {
	if hostname == "" {
		return false
	}
	_, ok := s.members[hostname]
	return ok
}

// Len returns the number of hostnames in the set.
func (s *HostnameSet) Len() int {
	return len(s.members)
}
