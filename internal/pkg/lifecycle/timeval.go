package lifecycle

import (
	"math"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sam-zarila/essa-admin/internal/pkg/models"
)

// Timestamp layouts attempted for string-encoded dates, in order.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC1123,
	time.RFC1123Z,
}

// ToMillis converts any timestamp-like value to epoch milliseconds. It is
// total: unrecognized shapes yield nil, never a panic. Accepted shapes, in
// order of attempt: a native time value, a finite number, a parseable date
// string, anything with a zero-argument Time() conversion (mongo DateTime),
// and a {seconds, nanoseconds} structure.
func ToMillis(v interface{}) *int64 {
	switch t := v.(type) {
	case nil:
		return nil
	case time.Time:
		if t.IsZero() {
			return nil
		}
		return millisPtr(t.UnixMilli())
	case *time.Time:
		if t == nil || t.IsZero() {
			return nil
		}
		return millisPtr(t.UnixMilli())
	case primitive.DateTime:
		return millisPtr(int64(t))
	case primitive.Timestamp:
		return millisPtr(int64(t.T) * 1000)
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return nil
		}
		return millisPtr(int64(math.Round(t)))
	case float32:
		return ToMillis(float64(t))
	case int:
		return millisPtr(int64(t))
	case int32:
		return millisPtr(int64(t))
	case int64:
		return millisPtr(t)
	case string:
		return parseTimeString(t)
	}

	if conv, ok := v.(interface{ Time() time.Time }); ok {
		return ToMillis(conv.Time())
	}
	if m, ok := asMap(v); ok {
		return secondsStructMillis(m)
	}
	return nil
}

// ToTime is ToMillis lifted to a UTC time value.
func ToTime(v interface{}) *time.Time {
	ms := ToMillis(v)
	if ms == nil {
		return nil
	}
	t := time.UnixMilli(*ms).UTC()
	return &t
}

// ResolveTime resolves a timestamp-like field through the alias lists and
// converts it.
func ResolveTime(doc models.RawDoc, candidates []string) *time.Time {
	return ToTime(ResolveField(doc, candidates))
}

func parseTimeString(s string) *int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return millisPtr(t.UnixMilli())
		}
	}
	// Numeric strings are epoch milliseconds.
	if f, ok := toFloat(s); ok {
		return millisPtr(int64(math.Round(f)))
	}
	return nil
}

func secondsStructMillis(m map[string]interface{}) *int64 {
	secVal, exists := m["seconds"]
	if !exists {
		secVal, exists = m["_seconds"]
	}
	if !exists {
		return nil
	}
	seconds, ok := toFloat(secVal)
	if !ok {
		return nil
	}
	nanos := 0.0
	if nsVal, hasNanos := m["nanoseconds"]; hasNanos {
		if n, nOk := toFloat(nsVal); nOk {
			nanos = n
		}
	} else if nsVal, hasNanos := m["_nanoseconds"]; hasNanos {
		if n, nOk := toFloat(nsVal); nOk {
			nanos = n
		}
	}
	return millisPtr(int64(math.Round(seconds*1000 + nanos/1e6)))
}

func millisPtr(ms int64) *int64 {
	return &ms
}
