package cli

import "testing"

func TestFuelStr(t *testing.T) {
	if got := fuelStr(1250); got != "1,250 fuel" {
		t.Errorf("fuelStr(1250) = %q", got)
	}
}

func TestDayStr(t *testing.T) {
	if got := dayStr(1); got != "1 day" {
		t.Errorf("dayStr(1) = %q", got)
	}
	if got := dayStr(4); got != "4 days" {
		t.Errorf("dayStr(4) = %q", got)
	}
}

func TestHasPrefixFold(t *testing.T) {
	tests := []struct {
		s, prefix string
		want      bool
	}{
		{"Kessel Prime", "kes", true},
		{"Kessel Prime", "KESSEL", true},
		{"Kessel Prime", "varn", false},
		{"ab", "abc", false},
		{"anything", "", true},
	}
	for _, tt := range tests {
		if got := hasPrefixFold(tt.s, tt.prefix); got != tt.want {
			t.Errorf("hasPrefixFold(%q, %q) = %v", tt.s, tt.prefix, got)
		}
	}
}
