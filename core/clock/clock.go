// Package clock models wall-clock times of day at minute resolution.
package clock

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// MinutesPerDay is the length of the daily cycle.
const MinutesPerDay = 24 * 60

// Midnight is the first minute of the day.
const Midnight TimeOfDay = 0

// TimeOfDay is a count of minutes since midnight in [0, MinutesPerDay).
type TimeOfDay int

// hh:mm, 24-hour, optional leading zero on the hour
var pattern = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

// New builds a TimeOfDay from hours and minutes.
func New(hours, minutes int) (TimeOfDay, error) {
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("clock: out of range %02d:%02d", hours, minutes)
	}
	return TimeOfDay(hours*60 + minutes), nil
}

// MustParse is Parse for package-level tables; it panics on bad input.
func MustParse(s string) TimeOfDay {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Parse converts normalized "HH:MM" text. Text without a colon gets an implied ":00".
func Parse(s string) (TimeOfDay, error) {
	s = Normalize(s)
	if !Valid(s) {
		return 0, fmt.Errorf("clock: bad %q", s)
	}
	h, m, _ := strings.Cut(s, ":")
	hours, _ := strconv.Atoi(h)
	minutes, _ := strconv.Atoi(m)
	return New(hours, minutes)
}

// Normalize trims s and appends ":00" when non-empty text has no colon.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	if s != "" && !strings.Contains(s, ":") {
		return s + ":00"
	}
	return s
}

// Valid reports whether s matches the strict 24-hour HH:MM pattern.
func Valid(s string) bool {
	return pattern.MatchString(s)
}

// Mask applies the keystroke mask of the booking form: non-digits are dropped, a colon
// is inserted after the second digit once more than two digits are typed, and the
// result is cut to five characters.
func Mask(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	v := b.String()
	if len(v) > 2 {
		end := min(len(v), 4)
		v = v[:2] + ":" + v[2:end]
	}
	if len(v) > 5 {
		v = v[:5]
	}
	return v
}

// Hours returns the hour component.
func (t TimeOfDay) Hours() int { return int(t) / 60 }

// Minutes returns the minute component.
func (t TimeOfDay) Minutes() int { return int(t) % 60 }

// String renders "HH:MM". Values outside the day are folded into it first.
func (t TimeOfDay) String() string {
	m := int(t) % MinutesPerDay
	if m < 0 {
		m += MinutesPerDay
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// MarshalText implements encoding.TextMarshaler.
func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *TimeOfDay) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
