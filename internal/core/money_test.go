package core

import (
	"math"
	"testing"
)

func TestSubtotal(t *testing.T) {
	cases := []struct {
		name  string
		items []ItemDraft
		want  float64
	}{
		{"empty list", nil, 0},
		{
			"single item",
			[]ItemDraft{{Rate: "50", Hours: "2"}},
			100,
		},
		{
			"blank rate contributes zero",
			[]ItemDraft{{Rate: "50", Hours: "2"}, {Rate: "", Hours: "3"}},
			100,
		},
		{
			"blank hours contributes zero",
			[]ItemDraft{{Rate: "10", Hours: ""}, {Rate: "20", Hours: "1"}},
			20,
		},
		{
			"non-numeric contributes zero",
			[]ItemDraft{{Rate: "abc", Hours: "3"}, {Rate: "5", Hours: "4"}},
			20,
		},
		{
			"fractional values unrounded",
			[]ItemDraft{{Rate: "0.1", Hours: "3"}},
			0.1 * 3,
		},
		{
			"decimal comma accepted",
			[]ItemDraft{{Rate: "12,5", Hours: "2"}},
			25,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Subtotal(tc.items); got != tc.want {
				t.Errorf("Subtotal() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestRound2(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{8.004, 8},
		{8.005, 8.01},
		{10, 10},
		{12.345, 12.35},
		{math.NaN(), 0},
		{math.Inf(1), 0},
	}
	for _, tc := range cases {
		if got := Round2(tc.in); got != tc.want {
			t.Errorf("Round2(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"10", 10, true},
		{" 2.50 ", 2.5, true},
		{"2,50", 2.5, true},
		{"", 0, false},
		{"   ", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
	}
	for _, tc := range cases {
		got, ok := ParseAmount(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ParseAmount(%q) = (%v, %v), want (%v, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{10, "10"},
		{8.25, "8.25"},
		{0, "0"},
		{math.NaN(), "0"},
	}
	for _, tc := range cases {
		if got := FormatAmount(tc.in); got != tc.want {
			t.Errorf("FormatAmount(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
