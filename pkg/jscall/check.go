package jscall

import (
	"fmt"

	"github.com/dop251/goja"

	"github.com/aretw0/latticenb/pkg/domain"
)

// Check parses the script without running it.
func Check(s Script) error {
	if _, err := goja.Compile("payload.js", string(s), false); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMalformedScript, err)
	}
	return nil
}
