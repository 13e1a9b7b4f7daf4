package journal

import (
	"fmt"
	"math"
)

// Policy names a derived-field normalization applied at construction time.
type Policy string

const (
	// NormalizeNone stores the user's numbers verbatim.
	NormalizeNone Policy = "none"
	// NormalizeSign derives the P&L sign from the result: wins are
	// non-negative, losses non-positive.
	NormalizeSign Policy = "sign"
	// NormalizeStrict applies NormalizeSign and also forces a loss's
	// risk/reward to exactly -1R.
	NormalizeStrict Policy = "strict"
)

// ParsePolicy maps a config value to a Policy. Empty means NormalizeNone.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case "", NormalizeNone:
		return NormalizeNone, nil
	case NormalizeSign:
		return NormalizeSign, nil
	case NormalizeStrict:
		return NormalizeStrict, nil
	}
	return "", fmt.Errorf("unknown normalize policy %q (want none, sign or strict)", s)
}

// Apply returns a normalized copy of t.
func (p Policy) Apply(t Trade) Trade {
	if p == NormalizeNone || p == "" {
		return t
	}

	if t.ProfitLoss != nil {
		v := math.Abs(*t.ProfitLoss)
		if t.Result == Loss && v != 0 {
			v = -v
		}
		t.ProfitLoss = &v
	}

	if p == NormalizeStrict && t.Result == Loss {
		t.RiskReward = -1
	}
	return t
}
