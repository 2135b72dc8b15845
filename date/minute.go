package date

import (
	"encoding/json"
	"fmt"
	"time"
)

// MinuteFormat is the format used to represent minutes as strings.
// It is the placement-time format of the ledger: the persistence layer may
// return second precision, which Minute truncates away on parse.
const MinuteFormat = "2006-01-02 15:04"

const secondFormat = "2006-01-02 15:04:05"

// Minute represents a wall-clock instant with minute-level granularity.
type Minute struct {
	t time.Time
}

// NewMinute returns a Minute for the given instant, truncated to the minute.
func NewMinute(t time.Time) Minute {
	return Minute{t: t.Truncate(time.Minute)}
}

// Now returns the current minute.
func Now() Minute { return NewMinute(time.Now()) }

// Date returns the calendar day this minute belongs to.
func (m Minute) Date() Date { return New(m.t.Date()) }

// Before reports whether the minute m is before x.
func (m Minute) Before(x Minute) bool { return m.t.Before(x.t) }

// After reports whether the minute m is after x.
func (m Minute) After(x Minute) bool { return m.t.After(x.t) }

// IsZero reports whether m is the zero Minute.
func (m Minute) IsZero() bool { return m.t.IsZero() }

// String formats the minute in its standard format.
func (m Minute) String() string { return m.t.Format(MinuteFormat) }

// ParseMinute parses a Minute from a string. It accepts both the minute
// format and the second-precision format stored by the persistence layer;
// anything beyond minute precision is truncated.
func ParseMinute(str string) (Minute, error) {
	if len(str) > len(MinuteFormat) {
		str = str[:len(MinuteFormat)]
	}
	on, err := time.Parse(MinuteFormat, str)
	if err != nil {
		return Minute{}, fmt.Errorf("invalid time %q want format %q: %w", str, secondFormat, err)
	}
	return Minute{t: on}, nil
}

// MustParseMinute is like ParseMinute but panics on error.
func MustParseMinute(str string) Minute {
	m, err := ParseMinute(str)
	if err != nil {
		panic(err.Error())
	}
	return m
}

// UnmarshalJSON implements the json specific way to unmarshall a minute from
// a json string. An empty string decodes to the zero Minute: historical
// payloads persist unset times that way.
func (m *Minute) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	if str == "" {
		*m = Minute{}
		return nil
	}
	parsed, err := ParseMinute(str)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m Minute) MarshalJSON() ([]byte, error) {
	str := m.String()
	return json.Marshal(&str)
}

var _ json.Marshaler = (*Minute)(nil)
var _ json.Unmarshaler = (*Minute)(nil)
