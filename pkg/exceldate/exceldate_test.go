package exceldate

import (
	"testing"
	"time"
)

func TestFromSerial_KnownDates(t *testing.T) {
	cases := []struct {
		serial float64
		year   int
		month  time.Month
		day    int
	}{
		{1, 1899, time.December, 31},
		{45292, 2024, time.January, 1},
		{45474, 2024, time.July, 1},
		{45490, 2024, time.July, 17},
		{45839, 2025, time.July, 1},
	}

	for _, tc := range cases {
		got := FromSerial(tc.serial)
		if got.Year() != tc.year || got.Month() != tc.month || got.Day() != tc.day {
			t.Errorf("FromSerial(%v): 期望 %d-%02d-%02d，实际 %v",
				tc.serial, tc.year, tc.month, tc.day, got)
		}
	}
}

func TestFromSerial_TimeFraction(t *testing.T) {
	// 0.5 表示中午 12:00
	got := FromSerial(45292.5)
	if got.Hour() != 12 || got.Minute() != 0 {
		t.Errorf("期望 12:00，实际 %02d:%02d", got.Hour(), got.Minute())
	}
}

func TestSerialRoundTrip(t *testing.T) {
	dates := []time.Time{
		time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.July, 3, 0, 0, 0, 0, time.UTC),
		time.Date(1999, time.December, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2100, time.February, 28, 0, 0, 0, 0, time.UTC),
	}

	for _, d := range dates {
		serial := ToSerial(d)
		back := FromSerial(serial)
		if !back.Equal(d) {
			t.Errorf("往返转换不一致: %v → %v → %v", d, serial, back)
		}
	}
}
