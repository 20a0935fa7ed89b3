package redis

import (
	"context"
	"fmt"

	backend "github.com/redis/go-redis/v9"

	"github.com/aretw0/latticenb/pkg/display"
	"github.com/aretw0/latticenb/pkg/domain"
	"github.com/aretw0/latticenb/pkg/jscall"
)

// StreamKey is appended to the prefix to name the display stream.
const StreamKey = "display"

// Publisher relays payloads to a Redis stream so a frontend bridge running next to
// the notebook server can replay them into cells.
type Publisher struct {
	client *backend.Client
	prefix string
	maxLen int64
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithPrefix sets the key prefix (default "latticenb:").
func WithPrefix(prefix string) Option {
	return func(p *Publisher) {
		p.prefix = prefix
	}
}

// WithMaxLen caps the stream length. Zero keeps every entry.
func WithMaxLen(n int64) Option {
	return func(p *Publisher) {
		p.maxLen = n
	}
}

// New connects to addr.
func New(addr, password string, db int, opts ...Option) *Publisher {
	client := backend.NewClient(&backend.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return NewFromClient(client, opts...)
}

// NewFromClient creates a Publisher on an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Publisher {
	p := &Publisher{
		client: client,
		prefix: "latticenb:",
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Stream returns the full stream key.
func (p *Publisher) Stream() string {
	return p.prefix + StreamKey
}

// Display appends the payload to the stream.
func (p *Publisher) Display(ctx context.Context, payload display.Payload) error {
	args := &backend.XAddArgs{
		Stream: p.Stream(),
		Values: map[string]any{
			"renderer": string(payload.Renderer),
			"mime":     payload.MIMEType,
			"script":   payload.Script.String(),
		},
	}
	if p.maxLen > 0 {
		args.MaxLen = p.maxLen
	}
	if err := p.client.XAdd(ctx, args).Err(); err != nil {
		return fmt.Errorf("redis error publishing payload: %w", err)
	}
	return nil
}

// Entry is a payload read back from the stream.
type Entry struct {
	ID      string
	Payload display.Payload
}

// Recent returns up to n entries, newest first.
func (p *Publisher) Recent(ctx context.Context, n int64) ([]Entry, error) {
	msgs, err := p.client.XRevRangeN(ctx, p.Stream(), "+", "-", n).Result()
	if err != nil {
		return nil, fmt.Errorf("redis error reading stream: %w", err)
	}

	entries := make([]Entry, 0, len(msgs))
	for _, m := range msgs {
		entries = append(entries, Entry{
			ID: m.ID,
			Payload: display.Payload{
				Renderer: domain.RendererName(str(m.Values["renderer"])),
				MIMEType: str(m.Values["mime"]),
				Script:   jscall.Script(str(m.Values["script"])),
			},
		})
	}
	return entries, nil
}

// Ping checks connectivity.
func (p *Publisher) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

// Close releases the client.
func (p *Publisher) Close() error {
	return p.client.Close()
}

func str(v any) string {
	s, _ := v.(string)
	return s
}
