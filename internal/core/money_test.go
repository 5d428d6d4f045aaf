package core

import (
	"encoding/json"
	"testing"
)

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0.01", 1, true},
		{"1.005", 101, true}, // half-up rounding
		{" 2.50 ", 250, true},
		{"-1", 0, false},
		{"0", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestMoneyString(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{1250, "12.50"},
		{5, "0.05"},
		{100, "1.00"},
		{-75, "-0.75"},
		{0, "0.00"},
	}
	for _, tc := range cases {
		if got := (Money{Cents: tc.cents}).String(); got != tc.want {
			t.Fatalf("cents %d: want %q, got %q", tc.cents, tc.want, got)
		}
	}
}

func TestMoneyJSON(t *testing.T) {
	cases := []struct {
		in    string
		cents int64
	}{
		{`12.5`, 1250},
		{`"12.50"`, 1250},
		{`0`, 0},
		{`-3.25`, -325},
		{`null`, 0},
	}
	for _, tc := range cases {
		var m Money
		if err := json.Unmarshal([]byte(tc.in), &m); err != nil {
			t.Fatalf("%s: unexpected error %v", tc.in, err)
		}
		if m.Cents != tc.cents {
			t.Fatalf("%s: want %d cents, got %d", tc.in, tc.cents, m.Cents)
		}
	}

	out, err := json.Marshal(Money{Cents: 1250})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != "12.50" {
		t.Fatalf("marshal: want 12.50, got %s", out)
	}
}
