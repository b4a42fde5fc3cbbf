package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/govdoc"
	"github.com/fwojciec/govdoc/tool"
	"golang.org/x/sync/errgroup"
)

// extractAll runs extract for every URL with at most concurrency calls in
// flight. Results are returned in input order.
func extractAll(ctx context.Context, urls []string, concurrency int, extract func(context.Context, string) string) []string {
	if concurrency <= 0 {
		concurrency = 1
	}
	results := make([]string, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, url := range urls {
		g.Go(func() error {
			results[i] = extract(gctx, url)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// printResults writes results to w, each headed by its URL when there is
// more than one. It returns an error naming how many sources were not
// verified.
func printResults(w io.Writer, urls, results []string) error {
	unverified := 0
	for i, result := range results {
		if len(results) > 1 {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "=== %s ===\n", urls[i])
		}
		fmt.Fprintln(w, result)
		if govdoc.IsRejection(result) || govdoc.IsFailure(result) {
			unverified++
		}
	}
	if unverified > 0 {
		return fmt.Errorf("%d of %d sources not verified", unverified, len(results))
	}
	return nil
}

// Run executes the pdf command.
func (c *PDFCmd) Run(deps *Dependencies) error {
	results := extractAll(deps.Ctx, c.URLs, c.Concurrency, deps.Documents.ExtractDocument)
	return printResults(deps.Stdout, c.URLs, results)
}

// Run executes the page command.
func (c *PageCmd) Run(deps *Dependencies) error {
	results := extractAll(deps.Ctx, c.URLs, c.Concurrency, deps.Pages.ExtractPage)
	return printResults(deps.Stdout, c.URLs, results)
}

// Run executes the links command.
func (c *LinksCmd) Run(deps *Dependencies) error {
	return printResults(deps.Stdout, []string{c.URL}, []string{deps.Navigator.ListLinks(deps.Ctx, c.URL)})
}

// Run executes the sitemap command.
func (c *SitemapCmd) Run(deps *Dependencies) error {
	return printResults(deps.Stdout, []string{c.URL}, []string{deps.Navigator.DiscoverSitemap(deps.Ctx, c.URL)})
}

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	if deps.Searcher == nil {
		fmt.Fprintln(deps.Stderr, "Hint: Set SEARXNG_URL to the base URL of a SearxNG instance")
		return fmt.Errorf("search is not configured")
	}
	query := strings.Join(c.Query, " ")
	return printResults(deps.Stdout, []string{query}, []string{deps.Searcher.Search(deps.Ctx, query)})
}

// Run executes the summarize command.
func (c *SummarizeCmd) Run(deps *Dependencies) error {
	if deps.Summarizer == nil {
		fmt.Fprintln(deps.Stderr, "Hint: Set GEMINI_API_KEY, or AZURE_OPENAI_API_KEY and AZURE_OPENAI_ENDPOINT")
		return fmt.Errorf("summarizer is not configured")
	}

	text := c.Text
	if text == "-" {
		b, err := io.ReadAll(deps.Stdin)
		if err != nil {
			return fmt.Errorf("reading standard input: %w", err)
		}
		text = string(b)
	}

	return printResults(deps.Stdout, []string{"-"}, []string{deps.Summarizer.Summarize(deps.Ctx, text)})
}

// Run executes the domains command.
func (c *DomainsCmd) Run(deps *Dependencies) error {
	fmt.Fprintln(deps.Stdout, tool.FormatDomains(deps.Domains))
	return nil
}

// Run executes the check command. A URL that is not authorized is an error.
func (c *CheckCmd) Run(deps *Dependencies) error {
	d, err := deps.Authorizer.Authorize(c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stdout, "invalid: %s\n", govdoc.ErrorMessage(err))
		return err
	}
	if !d.Authorized {
		fmt.Fprintf(deps.Stdout, "not authorized: %s\n", d.Host)
		return fmt.Errorf("%s is not an authorized government domain", d.Host)
	}
	fmt.Fprintf(deps.Stdout, "authorized: %s (matches %s)\n", d.Host, d.Domain)
	return nil
}

// Run executes the call command.
func (c *CallCmd) Run(deps *Dependencies) error {
	result := deps.Registry.Call(deps.Ctx, c.Tool, strings.Join(c.Arg, " "))
	return printResults(deps.Stdout, []string{c.Tool}, []string{result})
}

// Run executes the tools command.
func (c *ToolsCmd) Run(deps *Dependencies) error {
	for _, def := range deps.Registry.Definitions() {
		arg := ""
		if def.Argument != "" {
			arg = "<" + def.Argument + ">"
		}
		fmt.Fprintf(deps.Stdout, "%s(%s)\n    %s\n", def.Name, arg, def.Description)
	}
	return nil
}
