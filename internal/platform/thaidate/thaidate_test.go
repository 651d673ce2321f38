package thaidate

import (
	"testing"
	"time"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "buddhist era year",
			in:   time.Date(2563, 3, 15, 0, 0, 0, 0, time.UTC),
			want: time.Date(2020, 3, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "gregorian passes through",
			in:   time.Date(2020, 3, 15, 0, 0, 0, 0, time.UTC),
			want: time.Date(2020, 3, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "threshold year converts",
			in:   time.Date(2500, 1, 1, 0, 0, 0, 0, time.UTC),
			want: time.Date(1957, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "just below threshold untouched",
			in:   time.Date(2499, 1, 1, 0, 0, 0, 0, time.UTC),
			want: time.Date(2499, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); !got.Equal(tt.want) {
				t.Fatalf("Normalize(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"15/03/2563", time.Date(2020, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"15/03/2020", time.Date(2020, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"2020-03-15", time.Date(2020, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"2563-03-15", time.Date(2020, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"1/2/2562", time.Date(2019, 2, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.in, err)
			}
			if !got.Equal(tt.want) {
				t.Fatalf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, in := range []string{"", "not a date", "31/13/2020"} {
		if _, err := Parse(in); err == nil {
			t.Fatalf("Parse(%q): expected error", in)
		}
	}
}

func TestNormalizeYear(t *testing.T) {
	if got := NormalizeYear(2563); got != 2020 {
		t.Fatalf("NormalizeYear(2563) = %d, want 2020", got)
	}
	if got := NormalizeYear(1995); got != 1995 {
		t.Fatalf("NormalizeYear(1995) = %d, want 1995", got)
	}
}
