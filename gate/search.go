package gate

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fwojciec/govdoc"
)

// DefaultSearchLimit is the number of authorized results returned.
const DefaultSearchLimit = 3

// candidateFactor is how many candidates are requested per wanted result,
// leaving room for results on unauthorized domains to be dropped.
const candidateFactor = 4

// SiteSearch searches the web and keeps only results on authorized
// government domains.
type SiteSearch struct {
	Searcher   govdoc.Searcher
	Authorizer govdoc.Authorizer

	// Optional.
	Accesses govdoc.AccessService
	Logger   *slog.Logger

	// Limit is the number of results returned. Zero uses DefaultSearchLimit.
	Limit int
}

// Search returns up to Limit authorized results for query.
func (s *SiteSearch) Search(ctx context.Context, query string) string {
	l := ledger{accesses: s.Accesses, logger: s.Logger}

	query = strings.TrimSpace(query)
	if query == "" {
		return govdoc.Fail("searching government sites", govdoc.Errorf(govdoc.EINVALID, "query required"))
	}

	limit := s.Limit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	results, err := s.Searcher.Search(ctx, query, limit*candidateFactor)
	if err != nil {
		l.record(ctx, ToolSearch, query, "", govdoc.OutcomeFailed, nil, err)
		return govdoc.Fail("searching government sites", err)
	}

	var kept []govdoc.SearchResult
	for _, r := range results {
		if len(kept) == limit {
			break
		}
		if govdoc.IsAuthorized(s.Authorizer, r.URL) {
			kept = append(kept, r)
		}
	}

	listing := formatResults(query, kept)
	l.record(ctx, ToolSearch, query, "", govdoc.OutcomeVerified, []byte(listing), nil)
	return listing
}

func formatResults(query string, results []govdoc.SearchResult) string {
	if len(results) == 0 {
		return fmt.Sprintf("No results from authorized government domains for %q.", query)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Results from authorized government domains for %q:\n", query)
	for i, r := range results {
		title := strings.Join(strings.Fields(r.Title), " ")
		if title == "" {
			title = r.URL
		}
		fmt.Fprintf(&b, "\n%d. %s\n   %s %s\n", i+1, title, govdoc.SuccessMarker, r.URL)
		if snippet := strings.Join(strings.Fields(r.Snippet), " "); snippet != "" {
			fmt.Fprintf(&b, "   %s\n", snippet)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
