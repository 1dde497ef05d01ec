package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMonthName(t *testing.T) {
	tests := []struct {
		name  string
		month int
		want  string
	}{
		{name: "january", month: 1, want: "Jan"},
		{name: "december", month: 12, want: "Dec"},
		{name: "mid year", month: 7, want: "Jul"},
		{name: "zero falls back to numeric", month: 0, want: "0"},
		{name: "out of range falls back to numeric", month: 13, want: "13"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MonthName(tt.month))
		})
	}
}
