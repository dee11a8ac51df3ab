package model

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseOperator(t *testing.T) {
	tests := []struct {
		in   string
		want Operator
		ok   bool
	}{
		{">", OpGT, true},
		{"<", OpLT, true},
		{">=", OpGE, true},
		{"≥", OpGE, true},
		{"<=", OpLE, true},
		{"≤", OpLE, true},
		{"==", OpEQ, true},
		{"=", OpEQ, true},
		{"!=", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseOperator(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseOperator(%q) = (%q,%v), want (%q,%v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestOperatorHolds(t *testing.T) {
	price := decimal.NewFromFloat(30050)
	target := decimal.NewFromInt(30000)

	tests := []struct {
		op   Operator
		want bool
	}{
		{OpGT, true},
		{OpGE, true},
		{OpLT, false},
		{OpLE, false},
		{OpEQ, false},
	}
	for _, tt := range tests {
		if got := tt.op.Holds(price, target); got != tt.want {
			t.Errorf("%s: Holds(30050, 30000) = %v, want %v", tt.op, got, tt.want)
		}
	}

	// Equality is exact under decimal comparison.
	if !OpEQ.Holds(decimal.RequireFromString("30000.00"), target) {
		t.Error("30000.00 == 30000 must hold")
	}
}

func TestParseTimeframe(t *testing.T) {
	for _, tf := range Timeframes {
		if got, ok := ParseTimeframe(string(tf)); !ok || got != tf {
			t.Errorf("ParseTimeframe(%q) failed", tf)
		}
	}
	for _, bad := range []string{"2m", "45m", "1M", "", "1H"} {
		if _, ok := ParseTimeframe(bad); ok {
			t.Errorf("ParseTimeframe(%q) should fail", bad)
		}
	}
}

func TestCloses(t *testing.T) {
	candles := []Candle{{Close: 1.5}, {Close: 2.5}}
	closes := Closes(candles)
	if len(closes) != 2 || closes[0] != 1.5 || closes[1] != 2.5 {
		t.Errorf("unexpected closes: %v", closes)
	}
}
