// Package clock isolates wall-clock access so batch drivers can be tested
// against fixed instants. "Today" and "yesterday" are always evaluated in
// the business timezone, never in the host's local zone.
package clock

import (
	"fmt"
	"time"
)

// DefaultBusinessTimezone is where the marketplace's day boundaries live.
const DefaultBusinessTimezone = "Asia/Tokyo"

// Clock supplies the current instant.
type Clock interface {
	Now() time.Time
}

// System is the wall clock.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Fixed always returns the same instant. Test helper.
type Fixed struct {
	Instant time.Time
}

func (f Fixed) Now() time.Time { return f.Instant }

// Business wraps a Clock with a business timezone and derives day
// boundaries from it.
type Business struct {
	clock Clock
	loc   *time.Location
}

// NewBusiness loads the named timezone. An empty name falls back to the
// default business timezone.
func NewBusiness(clock Clock, timezone string) (*Business, error) {
	if timezone == "" {
		timezone = DefaultBusinessTimezone
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("load business timezone %q: %w", timezone, err)
	}
	return &Business{clock: clock, loc: loc}, nil
}

// Location returns the business timezone.
func (b *Business) Location() *time.Location { return b.loc }

// Now returns the current instant in the business timezone.
func (b *Business) Now() time.Time { return b.clock.Now().In(b.loc) }

// StartOfToday returns today's 00:00 in the business timezone.
func (b *Business) StartOfToday() time.Time {
	now := b.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, b.loc)
}

// YesterdayWindow returns [yesterday 00:00, today 00:00) in the business
// timezone, the daily driver's default window.
func (b *Business) YesterdayWindow() (start, finish time.Time) {
	finish = b.StartOfToday()
	return finish.AddDate(0, 0, -1), finish
}

// DayWindowEndingAt parses a YYYY-MM-DD date and returns the one-day window
// that finishes at that date's 00:00 in the business timezone.
func (b *Business) DayWindowEndingAt(date string) (start, finish time.Time, err error) {
	parsed, err := time.ParseInLocation("2006-01-02", date, b.loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", date, err)
	}
	return parsed.AddDate(0, 0, -1), parsed, nil
}
