package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fwojciec/govdoc"
	"github.com/fwojciec/govdoc/bloom"
	"github.com/fwojciec/govdoc/fs"
	"github.com/fwojciec/govdoc/gate"
	"github.com/fwojciec/govdoc/gemini"
	"github.com/fwojciec/govdoc/goquery"
	"github.com/fwojciec/govdoc/htmltomarkdown"
	lochttp "github.com/fwojciec/govdoc/http"
	"github.com/fwojciec/govdoc/limit"
	"github.com/fwojciec/govdoc/openai"
	"github.com/fwojciec/govdoc/pdf"
	"github.com/fwojciec/govdoc/readability"
	"github.com/fwojciec/govdoc/rod"
	"github.com/fwojciec/govdoc/searxng"
	govslog "github.com/fwojciec/govdoc/slog"
	"github.com/fwojciec/govdoc/sqlite"
	"github.com/fwojciec/govdoc/tool"
	"github.com/fwojciec/govdoc/trafilatura"
	"google.golang.org/genai"
)

// tokenizerModel is the model whose local tokenizer sizes summarizer
// prompts.
const tokenizerModel = "gemini-2.5-flash"

// wire builds the services the command needs from m.Config.
func (m *Main) wire(ctx context.Context, command string, deps *Dependencies, logger *slog.Logger) error {
	cfg := m.Config

	domains, err := govdoc.NewDomainSet(cfg.Domains...)
	if err != nil {
		return err
	}
	deps.Domains = domains.Domains()
	deps.Authorizer = govslog.NewLoggingAuthorizer(domains, logger)
	deps.CacheDir = cfg.CacheDir

	switch command {
	case "domains", "check", "cache":
		return nil
	}

	m.DB = sqlite.NewDB(cfg.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(deps.Stderr, "Hint: Set GOVDOC_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", cfg.DBPath, err)
	}
	accesses := sqlite.NewAccessService(m.DB)
	deps.Accesses = accesses

	if command == "audit" {
		return nil
	}

	limiter := limit.NewDomainLimiter(cfg.RequestsPerSecond)

	downloader := lochttp.NewDownloader(
		lochttp.WithTimeout(cfg.DownloadTimeout),
		lochttp.WithRedirectAuthorizer(domains),
		lochttp.WithSignature(lochttp.PDFSignature),
	)
	cache := fs.NewCache(cfg.CacheDir, fs.WithPolicy(govdoc.CachePolicy{MaxAge: cfg.CacheMaxAge}))

	deps.Documents = &gate.DocumentExtractor{
		Authorizer: deps.Authorizer,
		Cache:      govslog.NewLoggingCache(cache, logger),
		Downloader: govslog.NewLoggingDownloader(downloader, logger),
		Parser:     pdf.NewParser(),
		Limiter:    limiter,
		Accesses:   accesses,
		Logger:     logger,
		MaxLength:  cfg.MaxLength,
	}

	m.Fetcher = &lazyFetcher{opts: []rod.FetcherOption{
		rod.WithNavigationTimeout(cfg.RenderTimeout),
		rod.WithSettleDelay(cfg.SettleDelay),
		rod.WithFinalURLAuthorizer(domains),
		rod.WithUserAgent(lochttp.DefaultUserAgent),
		rod.WithBrowserRecycling(cfg.RecyclePages),
	}}
	fetcher := govslog.NewLoggingFetcher(m.Fetcher, logger)

	deps.Pages = &gate.PageExtractor{
		Authorizer: deps.Authorizer,
		Fetcher:    fetcher,
		Extractor:  newTextExtractor(cfg.Mode),
		Limiter:    limiter,
		Accesses:   accesses,
		Logger:     logger,
		MaxLength:  cfg.MaxLength,
	}

	deps.Navigator = &gate.Navigator{
		Authorizer: deps.Authorizer,
		Fetcher:    fetcher,
		Links:      goquery.NewLinkExtractor(),
		Sitemaps:   govslog.NewLoggingSitemapService(lochttp.NewSitemapService(nil), logger),
		NewURLSet:  bloom.NewURLSet,
		Limiter:    limiter,
		Accesses:   accesses,
		Logger:     logger,
	}

	summarizer, err := newSummarizer(ctx, cfg)
	if err != nil {
		return err
	}
	if summarizer != nil {
		deps.Summarizer = &gate.Summarizer{Summarizer: govslog.NewLoggingSummarizer(summarizer, logger)}
	}

	if cfg.Searx.URL != "" {
		searcher := searxng.NewSearcher(cfg.Searx.URL, searxng.WithUserAgent(lochttp.DefaultUserAgent))
		deps.Searcher = &gate.SiteSearch{
			Searcher:   govslog.NewLoggingSearcher(searcher, logger),
			Authorizer: deps.Authorizer,
			Accesses:   accesses,
			Logger:     logger,
			Limit:      cfg.Searx.Limit,
		}
	}

	deps.Registry, err = tool.NewGovRegistry(tool.Services{
		Domains:    deps.Domains,
		Documents:  deps.Documents,
		Pages:      deps.Pages,
		Navigator:  deps.Navigator,
		Summarizer: deps.Summarizer,
		Searcher:   deps.Searcher,
	})
	return err
}

// newTextExtractor returns the extractor for an extraction mode.
func newTextExtractor(mode string) govdoc.TextExtractor {
	switch mode {
	case ModeMain:
		return trafilatura.NewExtractor()
	case ModeArticle:
		return readability.NewExtractor()
	case ModeMarkdown:
		return htmltomarkdown.NewConverter()
	default:
		return goquery.NewTextExtractor()
	}
}

// newSummarizer returns the configured summarizer, or nil when no backend
// has credentials and none was requested explicitly.
func newSummarizer(ctx context.Context, cfg Config) (govdoc.Summarizer, error) {
	backend := cfg.Summarizer
	if backend == "" {
		switch {
		case cfg.Azure.APIKey != "" && cfg.Azure.Endpoint != "":
			backend = SummarizerAzure
		case cfg.Gemini.APIKey != "":
			backend = SummarizerGemini
		default:
			return nil, nil
		}
	}

	switch backend {
	case SummarizerAzure:
		client, err := openai.NewAzureClient(openai.Config{
			APIKey:     cfg.Azure.APIKey,
			Endpoint:   cfg.Azure.Endpoint,
			APIVersion: cfg.Azure.APIVersion,
			Deployment: cfg.Azure.Deployment,
		})
		if err != nil {
			return nil, fmt.Errorf("AZURE_OPENAI_API_KEY and AZURE_OPENAI_ENDPOINT must be set: %w", err)
		}
		return openai.NewSummarizer(client, cfg.Azure.Deployment), nil

	case SummarizerGemini:
		if cfg.Gemini.APIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.Gemini.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		counter, err := gemini.NewTokenCounter(tokenizerModel)
		if err != nil {
			return nil, fmt.Errorf("failed to create token counter: %w", err)
		}
		return gemini.NewSummarizer(client, counter,
			gemini.WithModel(cfg.Gemini.Model),
			gemini.WithTokenBudget(cfg.Gemini.TokenBudget),
		), nil
	}

	return nil, govdoc.Errorf(govdoc.EINVALID, "unknown summarizer %q", backend)
}
