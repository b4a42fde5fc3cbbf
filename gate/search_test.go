package gate_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/govdoc"
	"github.com/fwojciec/govdoc/gate"
	"github.com/fwojciec/govdoc/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSiteSearch_Search(t *testing.T) {
	t.Parallel()

	results := []govdoc.SearchResult{
		{Title: "PM Kisan - Home", URL: "https://pmkisan.gov.in/", Snippet: "Income support of Rs 6000 per year."},
		{Title: "PM Kisan explained", URL: "https://news.example.com/pm-kisan", Snippet: "A blog post."},
		{Title: "Scheme details", URL: "https://www.india.gov.in/spotlight/pm-kisan", Snippet: ""},
		{Title: "Agriculture dept", URL: "https://agriwelfare.gov.in/", Snippet: "Department of Agriculture."},
		{Title: "Fourth", URL: "https://maharashtra.gov.in/", Snippet: "State portal."},
	}

	t.Run("keeps only authorized results up to the limit", func(t *testing.T) {
		t.Parallel()

		var gotLimit int
		s := &gate.SiteSearch{
			Authorizer: govdoc.DefaultDomainSet(),
			Searcher: &mock.Searcher{
				SearchFn: func(ctx context.Context, query string, limit int) ([]govdoc.SearchResult, error) {
					gotLimit = limit
					return results, nil
				},
			},
		}

		out := s.Search(context.Background(), "  PM Kisan eligibility ")

		assert.Equal(t, "Results from authorized government domains for \"PM Kisan eligibility\":\n"+
			"\n1. PM Kisan - Home\n   ✅ https://pmkisan.gov.in/\n   Income support of Rs 6000 per year.\n"+
			"\n2. Scheme details\n   ✅ https://www.india.gov.in/spotlight/pm-kisan\n"+
			"\n3. Agriculture dept\n   ✅ https://agriwelfare.gov.in/\n   Department of Agriculture.", out)
		assert.Equal(t, gate.DefaultSearchLimit*4, gotLimit)
	})

	t.Run("reports when nothing is authorized", func(t *testing.T) {
		t.Parallel()

		s := &gate.SiteSearch{
			Authorizer: govdoc.DefaultDomainSet(),
			Searcher: &mock.Searcher{
				SearchFn: func(ctx context.Context, query string, limit int) ([]govdoc.SearchResult, error) {
					return results[1:2], nil
				},
			},
			Limit: 1,
		}

		out := s.Search(context.Background(), "pm kisan")

		assert.Equal(t, `No results from authorized government domains for "pm kisan".`, out)
	})

	t.Run("returns failure notice for empty query", func(t *testing.T) {
		t.Parallel()

		s := &gate.SiteSearch{Authorizer: govdoc.DefaultDomainSet()}

		out := s.Search(context.Background(), "   ")

		assert.True(t, govdoc.IsFailure(out))
		assert.Contains(t, out, "query required")
	})

	t.Run("returns failure notice when search fails", func(t *testing.T) {
		t.Parallel()

		log := &accessLog{}
		s := &gate.SiteSearch{
			Authorizer: govdoc.DefaultDomainSet(),
			Searcher: &mock.Searcher{
				SearchFn: func(ctx context.Context, query string, limit int) ([]govdoc.SearchResult, error) {
					return nil, errors.New("connection refused")
				},
			},
			Accesses: log.service(),
		}

		out := s.Search(context.Background(), "upsc calendar")

		assert.Equal(t, "❌ ERROR: searching government sites: connection refused", out)
		accesses := log.all()
		require.Len(t, accesses, 1)
		assert.Equal(t, gate.ToolSearch, accesses[0].Tool)
		assert.Equal(t, "upsc calendar", accesses[0].URL)
		assert.Equal(t, govdoc.OutcomeFailed, accesses[0].Outcome)
	})
}
