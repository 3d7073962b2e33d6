package gopayload

import (
	"github.com/d21d3q/gopayload/internal/decoder"
	internalopts "github.com/d21d3q/gopayload/internal/options"
)

// DecodeOptions configures decoding.
type DecodeOptions struct {
	// Layout overrides field offsets, e.g. "time=4,events=0". Empty keeps
	// the stock firmware layout.
	Layout string
}

func (opts DecodeOptions) toInternal() (decoder.Layout, error) {
	return internalopts.ParseLayout(opts.Layout)
}
