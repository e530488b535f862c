package repository

import "testing"

func TestUnlinkLocksOut(t *testing.T) {
	cases := []struct {
		name        string
		hasPassword bool
		accounts    int
		want        bool
	}{
		{"sin password, única cuenta", false, 1, true},
		{"sin password, sin cuentas", false, 0, true},
		{"sin password, dos cuentas", false, 2, false},
		{"con password, única cuenta", true, 1, false},
		{"con password, sin cuentas", true, 0, false},
	}
	for _, tc := range cases {
		if got := UnlinkLocksOut(tc.hasPassword, tc.accounts); got != tc.want {
			t.Fatalf("%s: got %v, esperado %v", tc.name, got, tc.want)
		}
	}
}
