package betbook

import "testing"

func TestSettle(t *testing.T) {
	stake, odds, fee := dec("100"), dec("2"), dec("5")

	testCases := []struct {
		name    string
		outcome Outcome
		want    string
	}{
		{"win pays stake at odds minus fee", Win, "95"},
		{"lose costs stake and fee", Lose, "-105"},
		{"half win pays half the win", HalfWin, "45"},
		{"half lose costs half the stake", HalfLose, "-55"},
		{"pending yields nothing", Pending, "0"},
		{"unknown outcome yields nothing", Outcome("void"), "0"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			wantDec(t, "Settle()", Settle(stake, odds, fee, tc.outcome), dec(tc.want))
		})
	}
}

func TestSettle_Degenerate(t *testing.T) {
	// A zero stake still pays the fee on a loss.
	wantDec(t, "Settle(0 stake)", Settle(dec("0"), dec("2"), dec("3"), Lose), dec("-3"))
	// Odds below 1 make even a win negative. The engine does not second-guess it.
	wantDec(t, "Settle(odds<1)", Settle(dec("100"), dec("0.5"), dec("0"), Win), dec("-50"))
}
