package condition

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// ErrInvalidSpec is the sentinel wrapped by every validation failure so
// callers can reject bad input with errors.Is before touching the database.
var ErrInvalidSpec = errors.New("invalid condition spec")

// Recognized keys for the raw (map-shaped) form of a spec.
const (
	KeyStartTime  = "start_time"
	KeyFinishTime = "finish_time"
	KeyUserIDs    = "user_ids"
	KeyLimit      = "limit"
	KeyOffset     = "offset"
)

// Spec is the filter every action query runs under: an optional half-open
// time window [Start, Finish), an optional user allow-list, and optional
// limit/offset pagination. The zero value means "all users, all time,
// unpaged" and is valid.
//
// A Spec is constructed fresh per invocation and never mutated.
type Spec struct {
	Start   *time.Time
	Finish  *time.Time
	UserIDs []int64
	Limit   *int
	Offset  *int
}

// Validate reports whether the spec's shape is acceptable.
// A present UserIDs list must be non-empty; Limit and Offset must be
// non-negative. Start and Finish carry no mutual ordering requirement.
func (s Spec) Validate() error {
	if s.UserIDs != nil && len(s.UserIDs) == 0 {
		return fmt.Errorf("%w: user_ids must not be empty when present", ErrInvalidSpec)
	}
	if s.Limit != nil && *s.Limit < 0 {
		return fmt.Errorf("%w: limit must be >= 0, got %d", ErrInvalidSpec, *s.Limit)
	}
	if s.Offset != nil && *s.Offset < 0 {
		return fmt.Errorf("%w: offset must be >= 0, got %d", ErrInvalidSpec, *s.Offset)
	}
	return nil
}

// Windowed returns a spec covering the half-open interval [start, finish).
func Windowed(start, finish time.Time) Spec {
	return Spec{Start: &start, Finish: &finish}
}

// Paged returns a copy of s with limit/offset pagination applied.
func (s Spec) Paged(limit, offset int) Spec {
	out := s
	out.Limit = &limit
	out.Offset = &offset
	return out
}

// Parse builds a validated Spec from a raw map, the shape external callers
// (HTTP handlers, job arguments) hand in. It rejects unrecognized keys,
// malformed timestamps, and any non-numeric user ID before a query is
// allowed to run.
func Parse(raw map[string]any) (Spec, error) {
	var s Spec
	for key, value := range raw {
		switch key {
		case KeyStartTime:
			t, err := parseTime(key, value)
			if err != nil {
				return Spec{}, err
			}
			s.Start = &t
		case KeyFinishTime:
			t, err := parseTime(key, value)
			if err != nil {
				return Spec{}, err
			}
			s.Finish = &t
		case KeyUserIDs:
			ids, err := parseUserIDs(value)
			if err != nil {
				return Spec{}, err
			}
			s.UserIDs = ids
		case KeyLimit:
			n, err := parseNonNegativeInt(key, value)
			if err != nil {
				return Spec{}, err
			}
			s.Limit = &n
		case KeyOffset:
			n, err := parseNonNegativeInt(key, value)
			if err != nil {
				return Spec{}, err
			}
			s.Offset = &n
		default:
			return Spec{}, fmt.Errorf("%w: unrecognized key %q", ErrInvalidSpec, key)
		}
	}
	if err := s.Validate(); err != nil {
		return Spec{}, err
	}
	return s, nil
}

func parseTime(key string, value any) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		return v, nil
	case string:
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %s %q is not a valid RFC 3339 timestamp", ErrInvalidSpec, key, v)
		}
		return t, nil
	default:
		return time.Time{}, fmt.Errorf("%w: %s must be a timestamp, got %T", ErrInvalidSpec, key, value)
	}
}

func parseUserIDs(value any) ([]int64, error) {
	var ids []int64
	appendID := func(elem any) error {
		switch v := elem.(type) {
		case int64:
			ids = append(ids, v)
		case int:
			ids = append(ids, int64(v))
		case string:
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return fmt.Errorf("%w: user_ids element %q is not numeric", ErrInvalidSpec, v)
			}
			ids = append(ids, n)
		default:
			return fmt.Errorf("%w: user_ids element %v (%T) is not numeric", ErrInvalidSpec, elem, elem)
		}
		return nil
	}

	switch v := value.(type) {
	case []int64:
		ids = append(ids, v...)
	case []int:
		for _, n := range v {
			ids = append(ids, int64(n))
		}
	case []string:
		for _, elem := range v {
			if err := appendID(elem); err != nil {
				return nil, err
			}
		}
	case []any:
		for _, elem := range v {
			if err := appendID(elem); err != nil {
				return nil, err
			}
		}
	default:
		return nil, fmt.Errorf("%w: user_ids must be a list of integers, got %T", ErrInvalidSpec, value)
	}

	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: user_ids must not be empty when present", ErrInvalidSpec)
	}
	return ids, nil
}

func parseNonNegativeInt(key string, value any) (int, error) {
	var n int
	switch v := value.(type) {
	case int:
		n = v
	case int64:
		n = int(v)
	case string:
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("%w: %s %q is not an integer", ErrInvalidSpec, key, v)
		}
		n = parsed
	default:
		return 0, fmt.Errorf("%w: %s must be an integer, got %T", ErrInvalidSpec, key, value)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %s must be >= 0, got %d", ErrInvalidSpec, key, n)
	}
	return n, nil
}
