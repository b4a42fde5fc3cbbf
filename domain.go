package govdoc

import (
	"net"
	"net/url"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/idna"
)

// DefaultDomains lists the Indian government domains authorized by default.
// Subdomains of every entry are authorized as well.
var DefaultDomains = []string{
	"gov.in", "nic.in", "india.gov.in", "mygov.in", "eci.gov.in",
	"rbi.org.in", "sebi.gov.in", "irdai.gov.in", "epfo.gov.in",
	"ugc.ac.in", "aicte-india.org", "ncert.nic.in", "cbse.gov.in",
	"maharashtra.gov.in", "karnataka.gov.in", "tamilnadu.gov.in",
	"gujarat.gov.in", "rajasthan.gov.in", "up.gov.in", "bihar.gov.in",
	"sci.gov.in", "cag.gov.in", "upsc.gov.in", "ssc.nic.in",
}

// Decision is the outcome of checking a URL against an authorized domain set.
type Decision struct {
	// Host is the normalized host of the URL, as it will be reported to the
	// caller (lowercase, no port, "www." kept).
	Host string

	// Domain is the authorized domain the host matched. Empty when the host
	// is not authorized.
	Domain string

	Authorized bool
}

// Authorizer decides whether a URL belongs to an authorized domain.
// Implementations must not perform network I/O.
type Authorizer interface {
	// Authorize returns the authorization decision for rawURL.
	// Returns EINVALID if rawURL is malformed or has no host. Callers must
	// treat an error as "not authorized".
	Authorize(rawURL string) (Decision, error)
}

// IsAuthorized reports whether rawURL is authorized by a.
// Malformed input is never authorized.
func IsAuthorized(a Authorizer, rawURL string) bool {
	d, err := a.Authorize(rawURL)
	return err == nil && d.Authorized
}

// Ensure DomainSet implements Authorizer at compile time.
var _ Authorizer = (*DomainSet)(nil)

// DomainSet is an immutable set of authorized root domains.
// A host is authorized if, after dropping a leading "www." label, it equals
// a member or ends with "." followed by a member.
//
// DomainSet is safe for concurrent use.
type DomainSet struct {
	domains map[string]struct{}
	sorted  []string
}

// NewDomainSet creates a DomainSet from the given root domains.
// Domains are normalized the same way URL hosts are.
func NewDomainSet(domains ...string) (*DomainSet, error) {
	s := &DomainSet{domains: make(map[string]struct{}, len(domains))}
	for _, d := range domains {
		host, err := NormalizeHost(d)
		if err != nil {
			return nil, Errorf(EINVALID, "invalid authorized domain %q: %s", d, ErrorMessage(err))
		}
		host = stripWWW(host)
		if _, ok := s.domains[host]; ok {
			continue
		}
		s.domains[host] = struct{}{}
		s.sorted = append(s.sorted, host)
	}
	if len(s.sorted) == 0 {
		return nil, Errorf(EINVALID, "at least one authorized domain required")
	}
	sort.Strings(s.sorted)
	return s, nil
}

// DefaultDomainSet returns a DomainSet containing DefaultDomains.
func DefaultDomainSet() *DomainSet {
	s, err := NewDomainSet(DefaultDomains...)
	if err != nil {
		panic(err)
	}
	return s
}

// Domains returns the authorized domains in sorted order.
func (s *DomainSet) Domains() []string {
	out := make([]string, len(s.sorted))
	copy(out, s.sorted)
	return out
}

// Match reports whether host is authorized and returns the matching domain.
// The host must already be normalized (see NormalizeHost).
func (s *DomainSet) Match(host string) (string, bool) {
	host = stripWWW(host)
	if host == "" {
		return "", false
	}
	if _, ok := s.domains[host]; ok {
		return host, true
	}
	// Walking parent domains label by label is equivalent to checking
	// strings.HasSuffix(host, "."+member) for every member.
	for i := strings.IndexByte(host, '.'); i >= 0; {
		parent := host[i+1:]
		if _, ok := s.domains[parent]; ok {
			return parent, true
		}
		next := strings.IndexByte(parent, '.')
		if next < 0 {
			break
		}
		i += next + 1
	}
	return "", false
}

// Authorize returns the authorization decision for rawURL.
func (s *DomainSet) Authorize(rawURL string) (Decision, error) {
	host, err := ParseHost(rawURL)
	if err != nil {
		return Decision{}, err
	}
	domain, ok := s.Match(host)
	return Decision{Host: host, Domain: domain, Authorized: ok}, nil
}

// IsAuthorized reports whether rawURL is authorized.
func (s *DomainSet) IsAuthorized(rawURL string) bool {
	return IsAuthorized(s, rawURL)
}

// ParseHost extracts the normalized host from an http or https URL.
// Path, query and fragment are ignored.
func ParseHost(rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", Errorf(EINVALID, "empty url")
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", Errorf(EINVALID, "malformed url: %v", err)
	}

	switch u.Scheme {
	case "http", "https":
	case "":
		return "", Errorf(EINVALID, "url must contain scheme")
	default:
		return "", Errorf(EINVALID, "unsupported scheme: %s", u.Scheme)
	}

	return NormalizeHost(u.Hostname())
}

// NormalizeHost converts a raw host (no scheme, no path) into canonical form:
// lowercase ASCII, no trailing dot, IDNA-encoded when non-ASCII.
// IP addresses are returned in their canonical string form.
func NormalizeHost(raw string) (string, error) {
	host := strings.TrimSpace(raw)
	host = strings.TrimSuffix(host, ".")
	if len(host) > 2 && host[0] == '[' && host[len(host)-1] == ']' {
		host = host[1 : len(host)-1]
	}
	if host == "" {
		return "", Errorf(EINVALID, "empty host")
	}

	if ip := net.ParseIP(host); ip != nil {
		return ip.String(), nil
	}

	if isASCII(host) {
		return strings.ToLower(host), nil
	}

	ascii, err := idna.Lookup.ToASCII(host)
	if err != nil {
		return "", Errorf(EINVALID, "invalid host %q: %v", host, err)
	}
	return strings.ToLower(ascii), nil
}

func stripWWW(host string) string {
	return strings.TrimPrefix(host, "www.")
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
