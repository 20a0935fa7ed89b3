package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/latticenb"
	"github.com/aretw0/latticenb/internal/config"
	"github.com/aretw0/latticenb/internal/logging"
	"github.com/aretw0/latticenb/pkg/adapters/redis"
	"github.com/aretw0/latticenb/pkg/display"
	"github.com/aretw0/latticenb/pkg/domain"
	"github.com/aretw0/latticenb/pkg/observability"
)

// FormatHTML collects payloads and writes a preview page when the session closes.
const FormatHTML = "html"

// Options configure a CLI session.
type Options struct {
	Config  config.Config
	Stdout  io.Writer
	Logger  *slog.Logger
	Metrics *observability.Metrics

	// Primary replaces the stdout sink chosen by Config.Format.
	Primary display.Sink
}

// Session owns the adapter and the sinks behind it for one command invocation.
type Session struct {
	Adapter *latticenb.Adapter

	out     io.Writer
	page    *display.HTML
	closers []func() error
}

// NewSession builds the sink chain from configuration:
// stdout (bundle, script or html) plus the Redis relay when an address is configured.
func NewSession(opts Options) (*Session, error) {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}
	cfg := opts.Config
	s := &Session{out: opts.Stdout}

	primary := opts.Primary
	switch {
	case primary != nil:
	case cfg.Format == FormatHTML:
		s.page = display.NewHTML(display.HTMLOptions{BaseURL: cfg.Preview.BaseURL})
		primary = s.page
	default:
		format, err := display.ParseFormat(cfg.Format)
		if err != nil {
			return nil, err
		}
		primary = display.NewWriter(opts.Stdout, format)
	}

	sink := primary
	if cfg.Redis.Addr != "" {
		pub := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, redis.WithPrefix(cfg.Redis.Prefix))
		s.closers = append(s.closers, pub.Close)
		sink = display.Tee(primary, pub)
		opts.Logger.Debug("relaying payloads to redis", "addr", cfg.Redis.Addr, "stream", pub.Stream())
	}

	s.Adapter = latticenb.New(sink,
		latticenb.WithLogger(opts.Logger),
		latticenb.WithContainer(domain.ContainerRef(cfg.Container)),
		latticenb.WithLibraries(cfg.Libraries),
		latticenb.WithScriptCheck(cfg.CheckScripts),
		latticenb.WithMetrics(opts.Metrics),
	)
	return s, nil
}

// Close flushes the preview page, if any, and releases connections.
func (s *Session) Close() error {
	var errs []error
	if s.page != nil && s.page.Len() > 0 {
		if err := s.page.Render(s.out); err != nil {
			errs = append(errs, fmt.Errorf("failed to write preview: %w", err))
		}
	}
	for _, c := range s.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
