package options

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/d21d3q/gopayload/internal/decoder"
	"github.com/d21d3q/gopayload/internal/format"
)

// ParseFormat validates the --format flag value.
func ParseFormat(input string) (format.Format, error) {
	if strings.TrimSpace(input) == "" {
		return format.CSV, nil
	}
	return format.Parse(input)
}

// ParseLayout applies comma separated name=offset overrides on top of the
// default layout, e.g. "time=4,events=0". Names are status, battery,
// temperature, time and events.
func ParseLayout(input string) (decoder.Layout, error) {
	layout := decoder.DefaultLayout()
	clean := stripWhitespace(input)
	if clean == "" {
		return layout, nil
	}
	for _, pair := range strings.Split(clean, ",") {
		if pair == "" {
			continue
		}
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			return decoder.Layout{}, fmt.Errorf("layout entry %q must be name=offset", pair)
		}
		offset, err := strconv.Atoi(value)
		if err != nil {
			return decoder.Layout{}, fmt.Errorf("layout offset for %s: %w", name, err)
		}
		field, err := layoutField(&layout, strings.ToLower(name))
		if err != nil {
			return decoder.Layout{}, err
		}
		*field = offset
	}
	if err := layout.Validate(); err != nil {
		return decoder.Layout{}, err
	}
	return layout, nil
}

func layoutField(l *decoder.Layout, name string) (*int, error) {
	switch name {
	case "status":
		return &l.Status, nil
	case "battery":
		return &l.Battery, nil
	case "temperature", "temp":
		return &l.Temperature, nil
	case "time":
		return &l.Time, nil
	case "events", "eventcount":
		return &l.EventCount, nil
	default:
		return nil, fmt.Errorf("unknown layout field %q", name)
	}
}

func stripWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
