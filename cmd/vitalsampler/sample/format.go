package sample

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/martin2250/vitalsampler/sampler"
)

// DefaultOrder is the channel order used when none is given
var DefaultOrder = []sampler.Channel{sampler.TEMP, sampler.SPO2, sampler.HR}

// ParseOrder parses a comma separated list of channel names
func ParseOrder(s string) ([]sampler.Channel, error) {
	var order []sampler.Channel
	seen := make(map[sampler.Channel]bool)

	for _, name := range strings.Split(s, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		c, err := sampler.ParseChannel(name)
		if err != nil {
			return nil, fmt.Errorf("channel %q: %v", name, err)
		}
		if seen[c] {
			return nil, fmt.Errorf("channel %v listed twice", c)
		}
		seen[c] = true
		order = append(order, c)
	}

	return order, nil
}

// formatValue prints whole numbers with a trailing .0 so the type stays recognizable
func formatValue(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".NI") {
		s += ".0"
	}
	return s
}

// Print writes one line per measurement, formatted as {time, CHANNEL, value}.
// channels are printed in the given order, channels missing from order follow in declaration order
func Print(w io.Writer, series sampler.Series, order []sampler.Channel) error {
	printed := make(map[sampler.Channel]bool)

	channels := append([]sampler.Channel(nil), order...)
	channels = append(channels, sampler.Channels...)

	for _, c := range channels {
		if printed[c] {
			continue
		}
		printed[c] = true

		for _, m := range series[c] {
			_, err := fmt.Fprintf(w, "{%s, %s, %s}\n", m.Time.UTC().Format(timeLayout), m.Channel, formatValue(m.Value))
			if err != nil {
				return err
			}
		}
	}

	return nil
}
