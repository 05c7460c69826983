package parking

import "testing"

func TestNormalizePlate(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"abc1234", "ABC1234"},
		{"  abc1234  ", "ABC1234"},
		{"AbC-1234", "ABC-1234"},
		{"   ", ""},
	}

	for _, tc := range cases {
		if got := NormalizePlate(tc.in); got != tc.want {
			t.Errorf("NormalizePlate(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestValidPlate(t *testing.T) {
	valid := []string{"ABC1234", "ABC-1234", "A1", "0-0"}
	for _, p := range valid {
		if !ValidPlate(p) {
			t.Errorf("expected %q to be valid", p)
		}
	}

	invalid := []string{"", "ABC 1234", "abc1234", "ABC_1234", "ÃBC1234"}
	for _, p := range invalid {
		if ValidPlate(p) {
			t.Errorf("expected %q to be invalid", p)
		}
	}
}
