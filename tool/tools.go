package tool

import (
	"context"
	"fmt"
	"strings"
)

// Tool names.
const (
	ParsePDF        = "ParseAuthorizedGovPDF"
	ExtractContent  = "ExtractAuthorizedGovContent"
	ListDomains     = "ListAuthorizedDomains"
	Summarize       = "SummarizeGovContent"
	SearchSites     = "SearchAuthorizedGovSites"
	ListLinks       = "ListAuthorizedGovLinks"
	DiscoverSitemap = "DiscoverAuthorizedGovSitemap"
)

// DocumentExtractor extracts text from government documents.
type DocumentExtractor interface {
	ExtractDocument(ctx context.Context, url string) string
}

// PageExtractor extracts text from government web pages.
type PageExtractor interface {
	ExtractPage(ctx context.Context, url string) string
}

// Navigator lists links and sitemap URLs of government sites.
type Navigator interface {
	ListLinks(ctx context.Context, url string) string
	DiscoverSitemap(ctx context.Context, url string) string
}

// Summarizer summarizes verified content.
type Summarizer interface {
	Summarize(ctx context.Context, text string) string
}

// Searcher searches authorized government sites.
type Searcher interface {
	Search(ctx context.Context, query string) string
}

// Services are the operations behind the tools. A nil service leaves its
// tools unregistered.
type Services struct {
	Domains    []string
	Documents  DocumentExtractor
	Pages      PageExtractor
	Navigator  Navigator
	Summarizer Summarizer
	Searcher   Searcher
}

// NewGovRegistry returns a registry with a tool for every configured service.
// ListAuthorizedDomains is always registered.
func NewGovRegistry(s Services) (*Registry, error) {
	r := NewRegistry()

	defs := []Definition{{
		Name: ListDomains,
		Description: "Display the list of authorized government domains that this agent accepts. " +
			"Use this when users ask about which sources are considered official.",
		Handler: func(ctx context.Context, _ string) string {
			return FormatDomains(s.Domains)
		},
	}}

	if s.Documents != nil {
		defs = append(defs, Definition{
			Name: ParsePDF,
			Description: "Extract content from government PDF documents ONLY from authorized domains. " +
				"The source is validated before processing and non-government PDFs are rejected. " +
				"Provide the complete PDF URL from an official government website.",
			Argument: "url",
			Handler:  s.Documents.ExtractDocument,
		})
	}
	if s.Pages != nil {
		defs = append(defs, Definition{
			Name: ExtractContent,
			Description: "Extract content from authorized government websites ONLY. " +
				"Domain authorization is validated before extraction and non-government sites are rejected.",
			Argument: "url",
			Handler:  s.Pages.ExtractPage,
		})
	}
	if s.Summarizer != nil {
		defs = append(defs, Definition{
			Name: Summarize,
			Description: "Summarize government content that has been verified as from authorized sources " +
				"into clear bullet points.",
			Argument: "text",
			Handler:  s.Summarizer.Summarize,
		})
	}
	if s.Searcher != nil {
		defs = append(defs, Definition{
			Name: SearchSites,
			Description: "Search ONLY authorized Indian government websites for official information. " +
				"Results from other domains are dropped.",
			Argument: "query",
			Handler:  s.Searcher.Search,
		})
	}
	if s.Navigator != nil {
		defs = append(defs,
			Definition{
				Name: ListLinks,
				Description: "List the links on an authorized government page that lead to other authorized " +
					"government pages. PDF documents are marked [PDF].",
				Argument: "url",
				Handler:  s.Navigator.ListLinks,
			},
			Definition{
				Name:        DiscoverSitemap,
				Description: "List the page URLs published in the sitemap of an authorized government website.",
				Argument:    "url",
				Handler:     s.Navigator.DiscoverSitemap,
			},
		)
	}

	for _, def := range defs {
		if err := r.Register(def); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// FormatDomains renders the authorized domain list.
func FormatDomains(domains []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "AUTHORIZED GOVERNMENT DOMAINS (%d):", len(domains))
	for _, d := range domains {
		fmt.Fprintf(&b, "\n- %s", d)
	}
	b.WriteString("\n\nSubdomains of these domains are also authorized.")
	return b.String()
}
