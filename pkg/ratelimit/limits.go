// Package ratelimit enforces request quotas such as "200 per day;50 per hour"
// per client key, either in process memory or in Redis.
package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Limit allows Count requests per Period.
type Limit struct {
	Count  int
	Period time.Duration
}

func (l Limit) String() string {
	return fmt.Sprintf("%d per %s", l.Count, l.Period)
}

// Decision is the outcome of one Allow call.
type Decision struct {
	Allowed bool
	// RetryAfter is how long the caller should wait when not allowed.
	RetryAfter time.Duration
}

// Store counts requests per key against a fixed set of limits. A request is
// allowed only when every limit allows it; a rejected request consumes
// nothing.
type Store interface {
	Allow(ctx context.Context, key string) (Decision, error)
	Close() error
}

var units = map[string]time.Duration{
	"second": time.Second,
	"minute": time.Minute,
	"hour":   time.Hour,
	"day":    24 * time.Hour,
	"month":  30 * 24 * time.Hour,
	"year":   365 * 24 * time.Hour,
}

// ParseLimits parses limits separated by ";" or ",". Each limit is
// "<count> per <unit>", "<count> per <n> <unit>s" or "<count>/<unit>".
func ParseLimits(raw string) ([]Limit, error) {
	var limits []Limit

	for _, part := range strings.FieldsFunc(raw, func(r rune) bool { return r == ';' || r == ',' }) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		limit, err := parseLimit(part)
		if err != nil {
			return nil, err
		}
		limits = append(limits, limit)
	}

	if len(limits) == 0 {
		return nil, fmt.Errorf("rate limit %q: no limits given", raw)
	}
	return limits, nil
}

func parseLimit(s string) (Limit, error) {
	fields := strings.Fields(strings.ToLower(strings.ReplaceAll(s, "/", " per ")))
	if len(fields) < 3 || fields[1] != "per" {
		return Limit{}, fmt.Errorf("rate limit %q: want \"<count> per <unit>\"", s)
	}

	count, err := strconv.Atoi(fields[0])
	if err != nil || count < 1 {
		return Limit{}, fmt.Errorf("rate limit %q: invalid count", s)
	}

	multiplier := 1
	rest := fields[2:]
	if len(rest) == 2 {
		multiplier, err = strconv.Atoi(rest[0])
		if err != nil || multiplier < 1 {
			return Limit{}, fmt.Errorf("rate limit %q: invalid period", s)
		}
		rest = rest[1:]
	}
	if len(rest) != 1 {
		return Limit{}, fmt.Errorf("rate limit %q: invalid period", s)
	}

	unit, ok := units[strings.TrimSuffix(rest[0], "s")]
	if !ok {
		return Limit{}, fmt.Errorf("rate limit %q: unknown unit %q", s, rest[0])
	}

	return Limit{Count: count, Period: time.Duration(multiplier) * unit}, nil
}
