package vcr

import (
	"testing"

	"battlesim/internal/sim"
)

func armedShip(owner int) sim.CombatObject {
	return sim.CombatObject{
		Owner:             owner,
		Crew:              20,
		Shield:            100,
		NumBeams:          4,
		BeamKillRate:      30,
		NumLaunchers:      1,
		TorpedoAmmo:       20,
		TorpedoMissRate:   20,
		NumBays:           2,
		FighterAmmo:       10,
	}
}

func TestPlayBattleDeterministic(t *testing.T) {
	e := NewClassicEngine()
	left, right := armedShip(1), armedShip(2)

	a := e.PlayBattle(left, right, 1234)
	b := e.PlayBattle(left, right, 1234)

	if a.Outcome != b.Outcome {
		t.Fatalf("same seed produced different outcomes: %v vs %v", a.Outcome, b.Outcome)
	}
	if a.Left.Damage != b.Left.Damage || a.Right.Damage != b.Right.Damage {
		t.Fatalf("same seed produced different final damage: %+v vs %+v", a, b)
	}
}

func TestPlayBattleNeverIncreasesAmmo(t *testing.T) {
	e := NewClassicEngine()
	left, right := armedShip(1), armedShip(2)

	battle := e.PlayBattle(left, right, 99)

	if battle.Left.TorpedoAmmo > left.TorpedoAmmo || battle.Left.FighterAmmo > left.FighterAmmo {
		t.Errorf("left ammo increased: before %+v after %+v", left, battle.Left)
	}
	if battle.Right.TorpedoAmmo > right.TorpedoAmmo || battle.Right.FighterAmmo > right.FighterAmmo {
		t.Errorf("right ammo increased: before %+v after %+v", right, battle.Right)
	}
}

func TestPlayBattleNeverReturnsCapture(t *testing.T) {
	e := NewClassicEngine()
	left, right := armedShip(1), armedShip(2)

	for seed := uint16(0); seed < 50; seed++ {
		battle := e.PlayBattle(left, right, seed)
		if battle.Outcome == sim.OutcomeLeftCaptured || battle.Outcome == sim.OutcomeRightCaptured {
			t.Fatalf("seed %d: ClassicEngine returned a capture outcome it does not model: %v", seed, battle.Outcome)
		}
	}
}

func TestIsOperative(t *testing.T) {
	alive := sim.CombatObject{Damage: 50, Crew: 1}
	if !isOperative(alive) {
		t.Error("expected a lightly damaged, crewed object to be operative")
	}

	destroyed := sim.CombatObject{Damage: 150, Crew: 1}
	if isOperative(destroyed) {
		t.Error("expected a fully damaged object to be inoperative")
	}

	noCrew := sim.CombatObject{Damage: 0, Crew: 0}
	if isOperative(noCrew) {
		t.Error("expected a crewless object to be inoperative")
	}
}
