package lineprotocol

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// Line Protocol Format:
// "K:V K:V|VALUE|TIME" or "K:V K:V|VALUE|" (time is set on arrival)
// the tag list must contain the key "channel"

// MaxLength is the longest line accepted by Parse
const MaxLength = 8192

// ChannelKey is the tag holding the channel name
const ChannelKey = "channel"

type KVP struct {
	Key   string
	Value string
}

// Point is one parsed measurement line
type Point struct {
	Tags  []KVP
	Value float64
	Time  int64
}

var (
	ErrInvalidFormat = errors.New("invalid format")
	ErrTooLong       = errors.New("input exceeds maximum length")
	ErrInvalidSym    = errors.New("input has invalid symbols")
	ErrNoChannel     = errors.New("tag list has no channel")
)

// Tag returns the value of the first tag with the given key
func (p Point) Tag(key string) (string, bool) {
	for _, kvp := range p.Tags {
		if kvp.Key == key {
			return kvp.Value, true
		}
	}
	return "", false
}

// Channel returns the value of the channel tag
func (p Point) Channel() string {
	c, _ := p.Tag(ChannelKey)
	return c
}

func writeKVPs(sb *strings.Builder, kvps []KVP) {
	for i := range kvps {
		if i != 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(kvps[i].Key)
		sb.WriteByte(':')
		sb.WriteString(kvps[i].Value)
	}
}

func (p Point) String() string {
	var sb strings.Builder

	writeKVPs(&sb, p.Tags)
	sb.WriteByte('|')
	sb.WriteString(strconv.FormatFloat(p.Value, 'f', -1, 64))
	sb.WriteByte('|')
	sb.WriteString(strconv.FormatInt(p.Time, 10))

	return sb.String()
}

// Measurement builds a point from its parts
func Measurement(channel string, value float64, t time.Time, tags ...KVP) Point {
	return Point{
		Tags:  append([]KVP{{Key: ChannelKey, Value: channel}}, tags...),
		Value: value,
		Time:  t.Unix(),
	}
}

func parseKVP(text []byte, types []charType) (KVP, bool) {
	kvp := KVP{}
	indexStart := 0
	for i := range text {
		switch types[i] {
		case letter, number:
			continue
		case colon:
			break
		default:
			return KVP{}, false
		}
		// found colon
		if indexStart != 0 || i == 0 {
			return KVP{}, false
		}
		indexStart = i + 1
		kvp.Key = string(text[:i])
	}
	if indexStart == 0 || indexStart == len(text) {
		return KVP{}, false
	}
	kvp.Value = string(text[indexStart:])
	return kvp, true
}

func parseKVPs(text []byte, types []charType) ([]KVP, bool) {
	var kvps []KVP
	indexStart := 0
	for i, t := range types {
		switch t {
		case colon, letter, number:
			continue
		case space:
			break
		default:
			return nil, false
		}
		if indexStart == i {
			// allow multiple spaces
			indexStart = i + 1
			continue
		}
		kvp, ok := parseKVP(text[indexStart:i], types[indexStart:i])
		if !ok {
			return nil, false
		}
		kvps = append(kvps, kvp)
		indexStart = i + 1
	}
	if indexStart != len(types) {
		kvp, ok := parseKVP(text[indexStart:], types[indexStart:])
		if !ok {
			return nil, false
		}
		kvps = append(kvps, kvp)
	}
	return kvps, kvps != nil
}

func isNumeric(types []charType) bool {
	if len(types) == 0 {
		return false
	}
	for _, t := range types {
		if t != number {
			return false
		}
	}
	return true
}

// Parse parses a single line, surrounding whitespace must be removed by the caller
func Parse(line []byte) (Point, error) {
	if len(line) > MaxLength {
		return Point{}, ErrTooLong
	}

	// minimum useful length "channel:x|1|"
	if len(line) < 12 {
		return Point{}, ErrInvalidFormat
	}

	types := make([]charType, len(line))

	if !CheckSymbols(line, types) {
		return Point{}, ErrInvalidSym
	}

	// split at the two pipes
	var pipes []int
	for i, t := range types {
		if t == pipe {
			pipes = append(pipes, i)
		}
	}
	if len(pipes) != 2 {
		return Point{}, ErrInvalidFormat
	}

	p := Point{}

	var ok bool
	p.Tags, ok = parseKVPs(line[:pipes[0]], types[:pipes[0]])
	if !ok {
		return Point{}, ErrInvalidFormat
	}
	if p.Channel() == "" {
		return Point{}, ErrNoChannel
	}

	valueTypes := types[pipes[0]+1 : pipes[1]]
	if !isNumeric(valueTypes) {
		return Point{}, ErrInvalidFormat
	}
	var err error
	p.Value, err = strconv.ParseFloat(string(line[pipes[0]+1:pipes[1]]), 64)
	if err != nil {
		return Point{}, ErrInvalidFormat
	}

	if pipes[1] == len(line)-1 {
		p.Time = time.Now().Unix()
		return p, nil
	}

	if !isNumeric(types[pipes[1]+1:]) {
		return Point{}, ErrInvalidFormat
	}
	p.Time, err = strconv.ParseInt(string(line[pipes[1]+1:]), 10, 64)
	if err != nil {
		return Point{}, ErrInvalidFormat
	}

	return p, nil
}

type charType byte

const (
	letter charType = iota
	number
	other
	pipe  charType = '|'
	colon charType = ':'
	space charType = ' '
)

func checkChar(b byte) charType {
	if (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || b == '_' {
		return letter
	}

	if (b >= '0' && b <= '9') || b == '.' || b == '-' {
		return number
	}

	if b == '|' || b == ':' || b == ' ' {
		return charType(b)
	}

	return other
}

// CheckSymbols checks if the line contains symbols other than
// a-z A-Z 0-9 _ . : | space -
func CheckSymbols(line []byte, types []charType) bool {
	for i := range line {
		t := checkChar(line[i])
		types[i] = t
		if t == other {
			return false
		}
	}
	return true
}
