package display

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Format selects how Writer serializes payloads.
type Format string

const (
	// FormatBundle writes one Jupyter display_data content object per line.
	FormatBundle Format = "bundle"
	// FormatScript writes the bare script followed by a blank line.
	FormatScript Format = "script"
)

// ParseFormat accepts the CLI spelling of a format.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatBundle, "":
		return FormatBundle, nil
	case FormatScript, "js":
		return FormatScript, nil
	default:
		return "", fmt.Errorf("unknown output format %q", s)
	}
}

// Bundle is the content of a display_data message.
type Bundle struct {
	Data     map[string]string `json:"data"`
	Metadata map[string]any    `json:"metadata"`
}

// BundleFor builds the display_data content for p.
// The text/plain entry is what non-JavaScript frontends show instead.
func BundleFor(p Payload) Bundle {
	mime := p.MIMEType
	if mime == "" {
		mime = "application/javascript"
	}
	return Bundle{
		Data: map[string]string{
			mime:         p.Script.String(),
			"text/plain": fmt.Sprintf("<latticenb %s>", p.Renderer),
		},
		Metadata: map[string]any{},
	}
}

// Writer writes payloads to an io.Writer. Writes are serialized.
type Writer struct {
	mu     sync.Mutex
	w      io.Writer
	format Format
}

// NewWriter creates a Writer. A nil w writes to os.Stdout.
func NewWriter(w io.Writer, format Format) *Writer {
	if w == nil {
		w = os.Stdout
	}
	if format == "" {
		format = FormatBundle
	}
	return &Writer{w: w, format: format}
}

func (s *Writer) Display(ctx context.Context, p Payload) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var out []byte
	switch s.format {
	case FormatScript:
		out = []byte(strings.TrimRight(p.Script.String(), "\n") + "\n\n")
	default:
		b, err := json.Marshal(BundleFor(p))
		if err != nil {
			return fmt.Errorf("failed to encode display bundle: %w", err)
		}
		out = append(b, '\n')
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.w.Write(out); err != nil {
		return fmt.Errorf("failed to write payload: %w", err)
	}
	return nil
}
