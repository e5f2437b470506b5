package sim

import "testing"

func TestApplyMasterBonusNoOpWithoutBays(t *testing.T) {
	left := CombatObject{NumBays: 0, NumBeams: 4}
	right := CombatObject{NumBays: 3, NumBeams: 4}
	before := right
	result := &Result{ThisBattleWeight: 1, TotalBattleWeight: 1}
	cfg := Configuration{}
	rng := NewRNG(1)

	applyMasterBonus(&left, &right, result, cfg, rng)

	if right != before {
		t.Fatalf("expected no-op when left carries no bays, right changed: %+v -> %+v", before, right)
	}
}

func TestApplyMasterBonusGrantsTableBonus(t *testing.T) {
	left := CombatObject{NumBays: 4, NumBeams: 4, FighterAmmo: 60, Shield: 0}
	right := CombatObject{NumBays: 4, NumBeams: 4, FighterAmmo: 60, Shield: 0}
	result := &Result{ThisBattleWeight: 1, TotalBattleWeight: 1}
	cfg := Configuration{}
	rng := NewRNG(1)

	eleft := clampIndex(left.NumBays-(right.NumBeams+2)/5+1, 0, 14)
	eright := clampIndex(right.NumBays-(left.NumBeams+2)/5+1, 0, 14)
	wantBays := int(masterBonusBaysX100[0][eright][eleft]) / 100
	wantFightersUncapped := int(masterBonusFightersX10[0][eright][eleft])

	beforeBays, beforeFighters := right.NumBays, right.FighterAmmo
	applyMasterBonus(&left, &right, result, cfg, rng)

	if right.NumBays != beforeBays+wantBays {
		t.Errorf("NumBays = %d, want %d", right.NumBays, beforeBays+wantBays)
	}
	if right.FighterAmmo < beforeFighters {
		t.Errorf("FighterAmmo decreased: %d -> %d", beforeFighters, right.FighterAmmo)
	}
	if wantFightersUncapped > 0 && right.FighterAmmo == beforeFighters && eright > 0 {
		t.Errorf("expected a nonzero fighter bonus for eleft=%d eright=%d", eleft, eright)
	}
}

func TestClampIndex(t *testing.T) {
	cases := []struct{ v, lo, hi, want int }{
		{-5, 0, 14, 0},
		{20, 0, 14, 14},
		{7, 0, 14, 7},
	}
	for _, c := range cases {
		if got := clampIndex(c.v, c.lo, c.hi); got != c.want {
			t.Errorf("clampIndex(%d, %d, %d) = %d, want %d", c.v, c.lo, c.hi, got, c.want)
		}
	}
}
