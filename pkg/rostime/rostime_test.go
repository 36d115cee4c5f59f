package rostime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromNanosWorks(t *testing.T) {
	ts := TimestampFromNanos(123456789987654321)
	assert.Equal(t, int32(123456789), ts.Sec)
	assert.Equal(t, int32(987654321), ts.Nsec)

	d := DurationFromNanos(123456789987654321)
	assert.Equal(t, int32(123456789), d.Sec)
	assert.Equal(t, int32(987654321), d.Nsec)

	neg := DurationFromNanos(-123456789987654321)
	assert.Equal(t, int32(-123456789), neg.Sec)
	assert.Equal(t, int32(-987654321), neg.Nsec)
}

func TestNanosWorks(t *testing.T) {
	ts := Timestamp{Sec: 123456789, Nsec: 987654321}
	assert.Equal(t, int64(123456789987654321), ts.Nanos())

	d := Duration{Sec: 123456789, Nsec: 987654321}
	assert.Equal(t, int64(123456789987654321), d.Nanos())
}

func TestDurationWorksWithNegative(t *testing.T) {
	d := DurationFromNanos(-123456789987654321)
	assert.Equal(t, int32(-123456789), d.Sec)
	assert.Equal(t, int32(-987654321), d.Nsec)
	assert.Equal(t, int64(-123456789987654321), d.Nanos())
}

func TestDurationFromStdWorks(t *testing.T) {
	std := 123*time.Second + 456*time.Nanosecond
	d := DurationFromStdDuration(std)
	assert.Equal(t, int32(123), d.Sec)
	assert.Equal(t, int32(456), d.Nsec)

	std2 := 9876*time.Second + 54321*time.Nanosecond
	d2 := DurationFromStdDuration(std2)
	assert.Equal(t, int32(9876), d2.Sec)
	assert.Equal(t, int32(54321), d2.Nsec)
}

func TestDurationToStdWorks(t *testing.T) {
	d := Duration{Sec: 123, Nsec: 456}
	std := d.StdDuration()
	assert.Equal(t, int64(123), int64(std/time.Second))
	assert.Equal(t, int64(456), int64(std%time.Second))

	d2 := Duration{Sec: 9876, Nsec: 54321}
	std2 := d2.StdDuration()
	assert.Equal(t, int64(9876), int64(std2/time.Second))
	assert.Equal(t, int64(54321), int64(std2%time.Second))
}

func TestTimeFromStdWorks(t *testing.T) {
	tm := time.Unix(123, 456).UTC()
	ts := TimestampFromTime(tm)
	assert.Equal(t, int32(123), ts.Sec)
	assert.Equal(t, int32(456), ts.Nsec)

	tm2 := time.Unix(9876, 54321).UTC()
	ts2 := TimestampFromTime(tm2)
	assert.Equal(t, int32(9876), ts2.Sec)
	assert.Equal(t, int32(54321), ts2.Nsec)
}

func TestTimeToStdWorks(t *testing.T) {
	ts := Timestamp{Sec: 123, Nsec: 456}
	tm := ts.Time()
	assert.Equal(t, int64(123), tm.Unix())
	assert.Equal(t, 456, tm.Nanosecond())

	ts2 := Timestamp{Sec: 9876, Nsec: 54321}
	tm2 := ts2.Time()
	assert.Equal(t, int64(9876), tm2.Unix())
	assert.Equal(t, 54321, tm2.Nanosecond())
}

func TestDisplayZero(t *testing.T) {
	assert.Equal(t, "0.000000000", TimestampFromNanos(0).String())
	assert.Equal(t, "0.000000000", DurationFromNanos(0).String())
}

func TestDisplayFull(t *testing.T) {
	assert.Equal(t, "123456789.987654321", TimestampFromNanos(123456789987654321).String())
	assert.Equal(t, "123456789.987654321", DurationFromNanos(123456789987654321).String())
	assert.Equal(t, "-123456789.987654321", DurationFromNanos(-123456789987654321).String())
}

func TestDisplayTrailingZeros(t *testing.T) {
	cases := []struct {
		nanos int64
		want  string
	}{
		{123456789987654321, "123456789.987654321"},
		{123456789987654000, "123456789.987654000"},
		{123456789000000000, "123456789.000000000"},
		{123456700000000000, "123456700.000000000"},
		{-123456789987654321, "-123456789.987654321"},
		{-123456789987654000, "-123456789.987654000"},
		{-123456789000000000, "-123456789.000000000"},
		{-123456700000000000, "-123456700.000000000"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, DurationFromNanos(c.nanos).String())
	}
}

func TestDisplayDecimals(t *testing.T) {
	cases := []struct {
		nanos int64
		want  string
	}{
		{9987654321, "9.987654321"},
		{987654321, "0.987654321"},
		{654321, "0.000654321"},
		{9987654000, "9.987654000"},
		{987654000, "0.987654000"},
		{654000, "0.000654000"},
		{-9987654321, "-9.987654321"},
		{-987654321, "-0.987654321"},
		{-654321, "-0.000654321"},
		{-9987654000, "-9.987654000"},
		{-987654000, "-0.987654000"},
		{-654000, "-0.000654000"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, DurationFromNanos(c.nanos).String())
	}

	// Unnormalized-but-legal field combinations must normalize before display.
	assert.Equal(t, "-0.999999999", Duration{Sec: -1, Nsec: 1}.String())
	assert.Equal(t, "-1.000000001", Duration{Sec: -1, Nsec: -1}.String())
}

func TestTextRoundTrip(t *testing.T) {
	t.Run("Timestamp", func(t *testing.T) {
		ts := TimestampFromNanos(123456789987654321)
		text, err := ts.MarshalText()
		require.NoError(t, err)
		assert.Equal(t, "123456789.987654321", string(text))

		var got Timestamp
		require.NoError(t, got.UnmarshalText(text))
		assert.Equal(t, ts, got)
	})

	t.Run("Duration", func(t *testing.T) {
		d := DurationFromNanos(-123456789987654321)
		text, err := d.MarshalText()
		require.NoError(t, err)
		assert.Equal(t, "-123456789.987654321", string(text))

		var got Duration
		require.NoError(t, got.UnmarshalText(text))
		assert.Equal(t, d, got)
	})

	t.Run("TimestampRejectsNegative", func(t *testing.T) {
		var ts Timestamp
		err := ts.UnmarshalText([]byte("-1.000000000"))
		require.ErrorIs(t, err, ErrNegativeTimestamp)
	})

	t.Run("PadsShortFraction", func(t *testing.T) {
		var d Duration
		require.NoError(t, d.UnmarshalText([]byte("5.5")))
		assert.Equal(t, Duration{Sec: 5, Nsec: 500000000}, d)
	})

	t.Run("NoFraction", func(t *testing.T) {
		var d Duration
		require.NoError(t, d.UnmarshalText([]byte("5")))
		assert.Equal(t, Duration{Sec: 5, Nsec: 0}, d)
	})
}

func TestFromNanosInverse(t *testing.T) {
	samples := []int64{0, 1, -1, 999999999, -999999999, 1000000000, -1000000000, 123456789987654321, -123456789987654321}
	for _, n := range samples {
		assert.Equal(t, n, DurationFromNanos(n).Nanos())
	}
}

func TestAddSub(t *testing.T) {
	base := Timestamp{Sec: 10, Nsec: 500000000}
	advanced := base.Add(Duration{Sec: 1, Nsec: 600000000})
	assert.Equal(t, Timestamp{Sec: 12, Nsec: 100000000}, advanced)

	diff := advanced.Sub(base)
	assert.Equal(t, Duration{Sec: 1, Nsec: 600000000}, diff)
	assert.True(t, base.Before(advanced))
	assert.True(t, advanced.After(base))
}
