package core

import "testing"

func TestParseMoney(t *testing.T) {
	cases := []struct {
		in    string
		cents int64
		ok    bool
	}{
		{"1234.56", 123456, true},
		{"1234,56", 123456, true},
		{"R$ 1.234,56", 123456, true},
		{"50000", 5000000, true},
		{"0", 0, true},
		{"12.345", 1235, true}, // half-up on the third decimal
		{"12.344", 1234, true},
		{"-10.00", -1000, true}, // sign preserved; validation rejects later
		{"", 0, false},
		{"abc", 0, false},
	}
	for _, tc := range cases {
		m, err := ParseMoney(tc.in)
		if tc.ok && err != nil {
			t.Fatalf("%q: unexpected error %v", tc.in, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("%q: expected error", tc.in)
		}
		if tc.ok && m.Cents != tc.cents {
			t.Fatalf("%q: got %d cents, want %d", tc.in, m.Cents, tc.cents)
		}
	}
}

func TestCoerceMoneyDefaultsToZero(t *testing.T) {
	if m := CoerceMoney("not a number"); m.Cents != 0 {
		t.Fatalf("got %d, want 0", m.Cents)
	}
	if m := CoerceMoney("15.50"); m.Cents != 1550 {
		t.Fatalf("got %d, want 1550", m.Cents)
	}
}

func TestMoneyDisplay(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{0, "R$ 0,00"},
		{123456, "R$ 1.234,56"},
		{5000000, "R$ 50.000,00"},
		{123456789, "R$ 1.234.567,89"},
		{-1000, "R$ -10,00"},
	}
	for _, tc := range cases {
		if got := (Money{Cents: tc.cents}).Display(); got != tc.want {
			t.Fatalf("%d cents: got %q, want %q", tc.cents, got, tc.want)
		}
	}
}

func TestMoneyStorage(t *testing.T) {
	if got := (Money{Cents: 5000000}).Storage(); got != "50000.00" {
		t.Fatalf("got %q", got)
	}
	if got := (Money{Cents: 1550}).Storage(); got != "15.50" {
		t.Fatalf("got %q", got)
	}
}
