package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/govdoc"
	"github.com/fwojciec/govdoc/tool"
)

// Extraction modes for rendered pages.
const (
	ModeText     = "text"
	ModeMain     = "main"
	ModeArticle  = "article"
	ModeMarkdown = "markdown"
)

// Summarizer backends.
const (
	SummarizerGemini = "gemini"
	SummarizerAzure  = "azure"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	Domains    []string
	Authorizer govdoc.Authorizer
	CacheDir   string
	Accesses   govdoc.AccessService

	Documents  tool.DocumentExtractor
	Pages      tool.PageExtractor
	Navigator  tool.Navigator
	Summarizer tool.Summarizer
	Searcher   tool.Searcher
	Registry   *tool.Registry
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config   string   `type:"path" help:"Config file (default ~/.govdoc/config.yaml)"`
	CacheDir string   `name:"cache-dir" help:"Directory for cached documents"`
	DB       string   `name:"db" help:"Access ledger database path"`
	Domain   []string `name:"domain" help:"Authorized domain, replaces the default list (repeatable)"`
	Mode     string   `help:"Page text extraction: text, main, article or markdown"`
	Verbose  bool     `short:"v" help:"Log to stderr"`

	PDF       PDFCmd       `cmd:"" name:"pdf" help:"Extract text from government PDF documents"`
	Page      PageCmd      `cmd:"" help:"Extract text from government web pages"`
	Links     LinksCmd     `cmd:"" help:"List authorized links on a government web page"`
	Sitemap   SitemapCmd   `cmd:"" help:"List sitemap URLs of a government site"`
	Search    SearchCmd    `cmd:"" help:"Search authorized government sites"`
	Summarize SummarizeCmd `cmd:"" help:"Summarize verified content"`
	Domains   DomainsCmd   `cmd:"" help:"List authorized government domains"`
	Check     CheckCmd     `cmd:"" help:"Show the authorization decision for a URL"`
	Call      CallCmd      `cmd:"" help:"Call a tool by name"`
	Tools     ToolsCmd     `cmd:"" help:"List available tools"`
	Audit     AuditCmd     `cmd:"" help:"Show recent gated requests"`
	Cache     CacheCmd     `cmd:"" help:"Manage the document cache"`
}

// apply copies flags that were set onto cfg.
func (c *CLI) apply(cfg *Config) {
	if c.CacheDir != "" {
		cfg.CacheDir = c.CacheDir
	}
	if c.DB != "" {
		cfg.DBPath = c.DB
	}
	if len(c.Domain) > 0 {
		cfg.Domains = c.Domain
	}
	if c.Mode != "" {
		cfg.Mode = c.Mode
	}
}

// PDFCmd is the "pdf" subcommand.
type PDFCmd struct {
	URLs        []string `arg:"" name:"url" help:"PDF URLs"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent downloads"`
}

// PageCmd is the "page" subcommand.
type PageCmd struct {
	URLs        []string `arg:"" name:"url" help:"Page URLs"`
	Concurrency int      `short:"c" default:"2" help:"Concurrent renders"`
}

// LinksCmd is the "links" subcommand.
type LinksCmd struct {
	URL string `arg:"" help:"Page URL"`
}

// SitemapCmd is the "sitemap" subcommand.
type SitemapCmd struct {
	URL string `arg:"" help:"Site URL"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query []string `arg:"" help:"Search query"`
}

// SummarizeCmd is the "summarize" subcommand.
type SummarizeCmd struct {
	Text string `arg:"" help:"Text to summarize, or - to read standard input"`
}

// DomainsCmd is the "domains" subcommand.
type DomainsCmd struct{}

// CheckCmd is the "check" subcommand.
type CheckCmd struct {
	URL string `arg:"" help:"URL to check"`
}

// CallCmd is the "call" subcommand.
type CallCmd struct {
	Tool string   `arg:"" help:"Tool name"`
	Arg  []string `arg:"" optional:"" help:"Tool argument"`
}

// ToolsCmd is the "tools" subcommand.
type ToolsCmd struct{}

// AuditCmd is the "audit" subcommand.
type AuditCmd struct {
	Host    string `help:"Only requests to this host"`
	Outcome string `help:"Only requests with this outcome: verified, rejected or failed"`
	Tool    string `help:"Only requests made by this tool"`
	Limit   int    `short:"n" default:"20" help:"Number of entries"`
}

// CacheCmd is the "cache" command group.
type CacheCmd struct {
	Purge CachePurgeCmd `cmd:"" help:"Remove cached documents older than --max-age"`
	Clear CacheClearCmd `cmd:"" help:"Remove every cached document"`
	Path  CachePathCmd  `cmd:"" help:"Print the cache file for a URL"`
}

// CachePurgeCmd is the "cache purge" subcommand.
type CachePurgeCmd struct {
	MaxAge time.Duration `name:"max-age" required:"" help:"Remove entries older than this"`
}

// CacheClearCmd is the "cache clear" subcommand.
type CacheClearCmd struct{}

// CachePathCmd is the "cache path" subcommand.
type CachePathCmd struct {
	URL string `arg:"" help:"Document URL"`
}
