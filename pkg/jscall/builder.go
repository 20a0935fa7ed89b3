package jscall

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aretw0/latticenb/pkg/domain"
)

// Script is JavaScript source ready for a display sink.
type Script string

// String implements fmt.Stringer.
func (s Script) String() string { return string(s) }

// Build renders the payload for a single invocation.
// Arguments are written in the order given; the container always comes first.
func Build(inv domain.ChartInvocation) (Script, error) {
	if !inv.Renderer.Valid() {
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownRenderer, inv.Renderer)
	}
	container := inv.Container
	if container == "" {
		container = domain.DefaultContainer
	}

	args := make([]string, 0, len(inv.Args)+1)
	args = append(args, string(container))
	for _, a := range inv.Args {
		enc, err := EncodeArg(a)
		if err != nil {
			return "", &domain.SerializationError{Renderer: inv.Renderer, Arg: a.Name, Err: err}
		}
		args = append(args, enc)
	}

	name := string(inv.Renderer)
	var sb strings.Builder
	sb.WriteString("(function(element){\n")
	fmt.Fprintf(&sb, "    require([%s], function(%s) {\n", Quote(name), name)
	fmt.Fprintf(&sb, "        %s(%s);\n", name, strings.Join(args, ", "))
	sb.WriteString("    });\n")
	sb.WriteString("})(element);\n")
	return Script(sb.String()), nil
}

// EncodeArg writes a single argument in its JavaScript form.
func EncodeArg(a domain.Arg) (string, error) {
	switch a.Kind {
	case domain.ArgLiteral:
		s, ok := a.Value.(string)
		if !ok {
			return "", fmt.Errorf("literal argument must be a string, got %T", a.Value)
		}
		return Quote(s), nil
	case domain.ArgJSON:
		return EncodeJSON(a.Value)
	default:
		return "", fmt.Errorf("unsupported argument kind %v", a.Kind)
	}
}

// EncodeJSON encodes v compactly. HTML-sensitive characters are escaped so the
// result stays inert inside a <script> element.
func EncodeJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
