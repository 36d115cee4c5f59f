// Package rostime implements the signed second/nanosecond time value used
// throughout the action protocol: a non-negative Timestamp relative to an
// epoch, and a signed Duration interval. Both carry full nanosecond
// precision and a fixed-width textual form that sorts lexicographically
// within a same-sign magnitude.
package rostime

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const nanosPerSecond = int64(1e9)

// ErrNegativeTimestamp is returned when a textual timestamp parses to a
// negative instant, which violates the Timestamp invariant.
var ErrNegativeTimestamp = errors.New("rostime: timestamp must not be negative")

// Timestamp is an instant relative to an epoch. In normalized form
// 0 <= Nsec < 1e9 and Sec >= 0.
type Timestamp struct {
	Sec  int32
	Nsec int32
}

// Duration is a signed interval. In normalized form Sec and Nsec share the
// same sign, or either is zero, and |Nsec| < 1e9.
type Duration struct {
	Sec  int32
	Nsec int32
}

// TimestampFromNanos builds a Timestamp from a nanosecond count using
// truncated division, matching Go's native integer division and modulo.
func TimestampFromNanos(n int64) Timestamp {
	return Timestamp{Sec: int32(n / nanosPerSecond), Nsec: int32(n % nanosPerSecond)}
}

// DurationFromNanos builds a Duration from a signed nanosecond count using
// truncated division: Sec and Nsec both carry the sign of n.
func DurationFromNanos(n int64) Duration {
	return Duration{Sec: int32(n / nanosPerSecond), Nsec: int32(n % nanosPerSecond)}
}

// Nanos returns sec*1e9 + nsec, irrespective of whether the receiver is
// already normalized.
func (t Timestamp) Nanos() int64 {
	return int64(t.Sec)*nanosPerSecond + int64(t.Nsec)
}

// Nanos returns sec*1e9 + nsec, irrespective of whether the receiver is
// already normalized.
func (d Duration) Nanos() int64 {
	return int64(d.Sec)*nanosPerSecond + int64(d.Nsec)
}

// Normalize returns the canonical form of t: 0 <= Nsec < 1e9, Sec >= 0.
func (t Timestamp) Normalize() Timestamp {
	return TimestampFromNanos(t.Nanos())
}

// Normalize returns the canonical form of d: Sec and Nsec share a sign.
func (d Duration) Normalize() Duration {
	return DurationFromNanos(d.Nanos())
}

// Add returns t advanced by d.
func (t Timestamp) Add(d Duration) Timestamp {
	return TimestampFromNanos(t.Nanos() + d.Nanos())
}

// Sub returns the signed interval between t and u (t - u).
func (t Timestamp) Sub(u Timestamp) Duration {
	return DurationFromNanos(t.Nanos() - u.Nanos())
}

// Before reports whether t occurs strictly before u.
func (t Timestamp) Before(u Timestamp) bool { return t.Nanos() < u.Nanos() }

// After reports whether t occurs strictly after u.
func (t Timestamp) After(u Timestamp) bool { return t.Nanos() > u.Nanos() }

// IsZero reports whether t is the zero instant.
func (t Timestamp) IsZero() bool { return t.Sec == 0 && t.Nsec == 0 }

// Time converts t to a UTC time.Time anchored at the Unix epoch.
func (t Timestamp) Time() time.Time {
	return time.Unix(int64(t.Sec), int64(t.Nsec)).UTC()
}

// TimestampFromTime converts a time.Time to a Timestamp relative to the
// Unix epoch, discarding sub-nanosecond precision.
func TimestampFromTime(tm time.Time) Timestamp {
	return Timestamp{Sec: int32(tm.Unix()), Nsec: int32(tm.Nanosecond())}
}

// StdDuration converts d to a time.Duration, discarding its sign: a
// negative Duration maps to the same magnitude as its positive
// counterpart, matching time.Duration's unsigned-interval convention.
func (d Duration) StdDuration() time.Duration {
	n := d.Nanos()
	if n < 0 {
		n = -n
	}
	return time.Duration(n)
}

// DurationFromStdDuration converts a (conventionally non-negative)
// time.Duration to a Duration.
func DurationFromStdDuration(sd time.Duration) Duration {
	return DurationFromNanos(int64(sd))
}

// String renders t in normalized "<sec>.<9-digit nsec>" form.
func (t Timestamp) String() string { return formatNanos(t.Nanos()) }

// String renders d in normalized "<sec>.<9-digit nsec>" form, normalizing
// unnormalized-but-legal field combinations (e.g. Sec:-1, Nsec:1) before
// display.
func (d Duration) String() string { return formatNanos(d.Nanos()) }

func formatNanos(n int64) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	sec := n / nanosPerSecond
	nsec := n % nanosPerSecond
	return fmt.Sprintf("%s%d.%09d", sign, sec, nsec)
}

// parseNanos parses the "[-]<sec>.<nsec>" textual form into a signed
// nanosecond count. The nsec fraction is right-padded or truncated to 9
// digits.
func parseNanos(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("rostime: empty time value")
	}

	neg := false
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}

	secPart, nsecPart, hasFrac := strings.Cut(s, ".")
	if secPart == "" {
		secPart = "0"
	}
	sec, err := strconv.ParseInt(secPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("rostime: invalid seconds %q: %w", secPart, err)
	}

	if !hasFrac {
		nsecPart = "0"
	}
	if len(nsecPart) > 9 {
		nsecPart = nsecPart[:9]
	} else {
		nsecPart += strings.Repeat("0", 9-len(nsecPart))
	}
	nsec, err := strconv.ParseInt(nsecPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("rostime: invalid nanoseconds %q: %w", nsecPart, err)
	}

	total := sec*nanosPerSecond + nsec
	if neg {
		total = -total
	}
	return total, nil
}

// MarshalText implements encoding.TextMarshaler.
func (t Timestamp) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler. It rejects any text
// that parses to a negative instant.
func (t *Timestamp) UnmarshalText(text []byte) error {
	n, err := parseNanos(string(text))
	if err != nil {
		return err
	}
	if n < 0 {
		return ErrNegativeTimestamp
	}
	*t = TimestampFromNanos(n)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	n, err := parseNanos(string(text))
	if err != nil {
		return err
	}
	*d = DurationFromNanos(n)
	return nil
}
