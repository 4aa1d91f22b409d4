package numeric

import (
	"math"
	"testing"
)

func TestNormalizeDecimal(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"", "", true},
		{"12.5", "12.5", true},
		{"12,5", "12.5", true},
		{".", ".", true},
		{"0", "0", true},
		{"1.2.3", "", false},
		{"12a", "", false},
		{"-5", "", false},
		{"1e5", "", false},
	}
	for _, c := range cases {
		got, ok := NormalizeDecimal(c.in)
		if ok != c.ok || got != c.want {
			t.Errorf("NormalizeDecimal(%q) = %q, %v; want %q, %v", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestNormalizeInteger(t *testing.T) {
	if _, ok := NormalizeInteger("12"); !ok {
		t.Error("digits rejected")
	}
	if _, ok := NormalizeInteger(""); !ok {
		t.Error("empty transient value rejected")
	}
	for _, bad := range []string{"1.5", "1,5", "a", "-1", " 3"} {
		if _, ok := NormalizeInteger(bad); ok {
			t.Errorf("NormalizeInteger(%q) accepted", bad)
		}
	}
}

func TestParseDecimal(t *testing.T) {
	if v, ok := ParseDecimal("2.09"); !ok || v != 2.09 {
		t.Errorf("ParseDecimal(2.09) = %v, %v", v, ok)
	}
	// Empty and in-progress input is undefined, never zero.
	for _, s := range []string{"", ".", "abc"} {
		if _, ok := ParseDecimal(s); ok {
			t.Errorf("ParseDecimal(%q) unexpectedly ok", s)
		}
	}
}

func TestPercent(t *testing.T) {
	if got := Percent(76.909); got != "76.91" {
		t.Errorf("Percent = %q", got)
	}
	if got := Percent(math.NaN()); got != "-" {
		t.Errorf("Percent(NaN) = %q, want -", got)
	}
}
