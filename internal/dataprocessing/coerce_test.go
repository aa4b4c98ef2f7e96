package dataprocessing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"42", 42, true},
		{" 3.5 ", 3.5, true},
		{"-12.75", -12.75, true},
		{"1e3", 1000, true},
		{"", 0, true},
		{"   ", 0, true},
		{"abc", 0, false},
		{"1,234", 0, false},
		{"$100", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
		{"-infinity", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseNumber(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestParseDate(t *testing.T) {
	want := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		in     string
		wantOK bool
	}{
		{"2024-03-09", true},
		{"2024-03-09T00:00:00Z", true},
		{"2024-03-09 00:00:00", true},
		{"2024/03/09", true},
		{"03/09/2024", true},
		{"not-a-date", false},
		{"", false},
		{"2024-13-01", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseDate(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.True(t, want.Equal(got), "got %v", got)
			}
		})
	}
}
