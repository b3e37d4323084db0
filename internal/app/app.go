package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/bazoscrape/internal/fetch"
	"github.com/hyperifyio/bazoscrape/internal/listing"
	"github.com/hyperifyio/bazoscrape/internal/target"
)

var (
	// ErrUsage reports a command line without exactly one URL.
	ErrUsage = errors.New("wrong number of arguments")
	// ErrInvalidURL reports a URL outside the accepted bazos.sk pattern.
	ErrInvalidURL = errors.New("invalid URL")
)

// Fetcher retrieves one page. *fetch.Client implements it.
type Fetcher interface {
	Get(ctx context.Context, rawURL string) (*fetch.Response, error)
}

// App wires validation, retrieval, extraction and printing for one run.
type App struct {
	cfg       Config
	fetcher   Fetcher
	extractor listing.Extractor
	out       io.Writer
}

// Option customizes an App built by New.
type Option func(*App)

// WithFetcher replaces the HTTP client.
func WithFetcher(f Fetcher) Option { return func(a *App) { a.fetcher = f } }

// WithExtractor replaces the marker-based extractor.
func WithExtractor(e listing.Extractor) Option { return func(a *App) { a.extractor = e } }

// WithOutput redirects user-facing output, which goes to stdout by default.
func WithOutput(w io.Writer) Option { return func(a *App) { a.out = w } }

// New validates cfg and builds an App. Unset config fields take defaults.
func New(cfg Config, opts ...Option) (*App, error) {
	ApplyDefaults(&cfg)
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	a := &App{cfg: cfg, out: os.Stdout}
	for _, opt := range opts {
		opt(a)
	}
	if a.fetcher == nil {
		a.fetcher = &fetch.Client{
			HTTPClient:        newHTTPClient(cfg.Timeout),
			UserAgent:         cfg.UserAgent,
			PerRequestTimeout: cfg.Timeout,
			RedirectMaxHops:   cfg.RedirectMaxHops,
			MaxBodyBytes:      cfg.MaxBodyBytes,
		}
	}
	if a.extractor == nil {
		e, err := listing.NewMarkerExtractor(cfg.Markers)
		if err != nil {
			return nil, fmt.Errorf("config: markers: %w", err)
		}
		a.extractor = e
	}
	return a, nil
}

// Run scrapes rawURL and prints either the listing or exactly one message
// describing why it could not. The returned error is the one reported.
func (a *App) Run(ctx context.Context, rawURL string) error {
	l, err := a.Scrape(ctx, rawURL)
	if err != nil {
		a.report(err)
		return err
	}
	return PrintListing(a.out, l, a.cfg.Width)
}

// Scrape validates rawURL, fetches it and extracts the listing fields.
func (a *App) Scrape(ctx context.Context, rawURL string) (listing.Listing, error) {
	if !target.Valid(rawURL) {
		return listing.Listing{}, ErrInvalidURL
	}
	resp, err := a.fetcher.Get(ctx, rawURL)
	if err != nil {
		return listing.Listing{}, err
	}
	doc, err := listing.Parse(bytes.NewReader(resp.Body))
	if err != nil {
		return listing.Listing{}, err
	}
	return a.extractor.Extract(doc)
}

func (a *App) report(err error) {
	var (
		xerr *listing.ExtractionError
		terr *fetch.TransportError
		serr *fetch.StatusError
	)
	switch {
	case errors.As(err, &xerr):
		// The user only sees "Invalid URL!"; keep the real cause in the log.
		log.Warn().Err(xerr.Err).Str("field", xerr.Field).Str("marker", xerr.Marker).Msg("listing page not recognized")
	case errors.As(err, &terr):
		log.Debug().Err(terr.Err).Str("kind", terr.Kind.String()).Msg("transport failure")
	case errors.As(err, &serr):
		log.Debug().Int("status", serr.Code).Msg("page not retrieved")
	case errors.Is(err, ErrInvalidURL), errors.Is(err, ErrUsage):
	default:
		log.Error().Err(err).Msg("run failed")
	}
	fmt.Fprintln(a.out, Message(err))
}
