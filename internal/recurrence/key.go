package recurrence

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bfsmith/family-calendar/internal/constants"
)

// Key identifies either a base record (Derived == false) or one generated
// occurrence of it, addressed by the occurrence start in epoch milliseconds.
type Key struct {
	BaseID      string
	StartMillis int64
	Derived     bool
}

// CanonicalKey is the key of the stored record itself.
func CanonicalKey(baseID string) Key {
	return Key{BaseID: baseID}
}

// OccurrenceKey derives the key of the occurrence of baseID starting at start.
func OccurrenceKey(baseID string, start time.Time) Key {
	return Key{BaseID: baseID, StartMillis: start.UnixMilli(), Derived: true}
}

// Time returns the occurrence start encoded in a derived key.
func (k Key) Time() time.Time {
	return time.UnixMilli(k.StartMillis)
}

// String flattens the key to "{baseId}_{startMillis}", or just the base id
// for canonical keys.
func (k Key) String() string {
	if !k.Derived {
		return k.BaseID
	}
	return k.BaseID + constants.OccurrenceKeySeparator + strconv.FormatInt(k.StartMillis, 10)
}

// ParseKey reverses String. The separator is searched from the right so base
// ids that themselves contain it still round-trip. A string whose suffix is
// not an integer is treated as a canonical key.
func ParseKey(s string) Key {
	i := strings.LastIndex(s, constants.OccurrenceKeySeparator)
	if i <= 0 || i == len(s)-1 {
		return CanonicalKey(s)
	}
	millis, err := strconv.ParseInt(s[i+1:], 10, 64)
	if err != nil {
		return CanonicalKey(s)
	}
	return Key{BaseID: s[:i], StartMillis: millis, Derived: true}
}

func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Key) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		return fmt.Errorf("empty occurrence key")
	}
	*k = ParseKey(string(text))
	return nil
}
