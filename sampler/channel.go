package sampler

import (
	"strconv"
	"strings"
)

// Channel identifies the kind of a measurement
type Channel uint8

// known channels
const (
	SPO2 Channel = iota + 1
	HR
	TEMP
)

// Channels lists every known channel in declaration order
var Channels = []Channel{SPO2, HR, TEMP}

var channelNames = map[Channel]string{
	SPO2: "SPO2",
	HR:   "HR",
	TEMP: "TEMP",
}

// Valid reports whether c is one of the known channels
func (c Channel) Valid() bool {
	_, ok := channelNames[c]
	return ok
}

func (c Channel) String() string {
	if name, ok := channelNames[c]; ok {
		return name
	}
	return "Channel(" + strconv.Itoa(int(c)) + ")"
}

// ParseChannel finds the channel with the given name, ignoring case
func ParseChannel(s string) (Channel, error) {
	for c, name := range channelNames {
		if strings.EqualFold(name, s) {
			return c, nil
		}
	}
	return 0, ErrUnknownChannel
}

// MarshalText encodes the channel by name, so channels can be used as JSON keys
func (c Channel) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, ErrUnknownChannel
	}
	return []byte(c.String()), nil
}

// UnmarshalText is the inverse of MarshalText
func (c *Channel) UnmarshalText(text []byte) error {
	parsed, err := ParseChannel(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
