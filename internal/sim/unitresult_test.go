package sim

import "testing"

func TestItemAddSeedingThenAccumulate(t *testing.T) {
	var it Item
	it.add(10, 1, true, nil)
	if it.Min != 10 || it.Max != 10 || it.TotalScaled != 10 {
		t.Fatalf("seeding add: got %+v", it)
	}

	it.add(5, 1, false, nil)
	if it.Min != 5 {
		t.Errorf("Min not lowered by smaller value: got %d", it.Min)
	}
	if it.Max != 10 {
		t.Errorf("Max wrongly lowered: got %d", it.Max)
	}
	if it.TotalScaled != 15 {
		t.Errorf("TotalScaled = %d, want 15", it.TotalScaled)
	}

	it.add(20, 1, false, nil)
	if it.Max != 20 {
		t.Errorf("Max not raised by larger value: got %d", it.Max)
	}
}

func TestInvertItemRoundTrip(t *testing.T) {
	var lost Item
	lost.add(3, 2, true, nil)
	lost.add(7, 2, false, nil)
	lost.add(1, 2, false, nil)

	const startingFighters = 10
	left := InvertItem(lost, startingFighters, 2)

	// Left-over fighters should be the mirror image: min left-over
	// corresponds to max lost, and vice versa.
	if left.Min != startingFighters-lost.Max {
		t.Errorf("Min = %d, want %d", left.Min, startingFighters-lost.Max)
	}
	if left.Max != startingFighters-lost.Min {
		t.Errorf("Max = %d, want %d", left.Max, startingFighters-lost.Min)
	}

	back := InvertItem(left, startingFighters, 2)
	if back.Min != lost.Min || back.Max != lost.Max || back.TotalScaled != lost.TotalScaled {
		t.Fatalf("inverting twice did not round-trip: got %+v, want %+v", back, lost)
	}
}

func TestChangeWeightRescalesTotalOnly(t *testing.T) {
	var u UnitResult
	u.Damage.add(10, 2, true, nil)
	u.Damage.add(20, 2, false, nil)

	beforeMin, beforeMax := u.Damage.Min, u.Damage.Max
	u.ChangeWeight(2, 4)

	if u.Damage.Min != beforeMin || u.Damage.Max != beforeMax {
		t.Fatal("ChangeWeight must not alter Min/Max")
	}
	want := (int32(10) + 20) * 2 * 4 / 2
	if u.Damage.TotalScaled != want {
		t.Errorf("TotalScaled = %d, want %d", u.Damage.TotalScaled, want)
	}
}

func TestAddShipResultCaptureAndFightsWon(t *testing.T) {
	var u UnitResult
	res := Result{ThisBattleIndex: 0, ThisBattleWeight: 1, Battles: &Database{}}

	oldShip := NewShip()
	oldShip.Owner = 1
	oldShip.NumLaunchers = 1
	oldShip.Ammo = 10

	wonShip := oldShip
	wonShip.Ammo = 8
	u.AddShipResult(oldShip, wonShip, Statistic{}, res)
	if u.NumFights != 1 || u.NumFightsWon != 1 || u.NumCaptures != 0 {
		t.Fatalf("after a retained-ownership fight: fights=%d won=%d captures=%d", u.NumFights, u.NumFightsWon, u.NumCaptures)
	}
	if u.NumTorpedoesFired.Max != 2 {
		t.Errorf("torpedoes fired = %d, want 2", u.NumTorpedoesFired.Max)
	}

	capturedShip := oldShip
	capturedShip.Owner = 2
	u.AddShipResult(oldShip, capturedShip, Statistic{}, res)
	if u.NumCaptures != 1 {
		t.Fatalf("NumCaptures = %d, want 1 after a capture", u.NumCaptures)
	}
}
