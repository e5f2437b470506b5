package sim

import "testing"

func buildTestSetup() *Setup {
	s := &Setup{}
	ship1 := NewShip()
	ship1.Id = 1
	ship1.Owner = 1
	ship2 := NewShip()
	ship2.Id = 2
	ship2.Owner = 2
	s.AddShip(ship1)
	s.AddShip(ship2)

	planet := NewPlanet()
	planet.Owner = 3
	s.SetPlanet(planet)
	return s
}

func TestCloneIsIndependent(t *testing.T) {
	orig := buildTestSetup()
	clone := orig.Clone()

	clone.Ships[0].Damage = 99
	clone.Planet.Defense = 42

	if orig.Ships[0].Damage == 99 {
		t.Fatal("mutating clone's ship leaked into original")
	}
	if orig.Planet.Defense == 42 {
		t.Fatal("mutating clone's planet leaked into original")
	}

	clone.AddShip(NewShip())
	if len(orig.Ships) == len(clone.Ships) {
		t.Fatal("appending to clone's ship slice leaked into original")
	}
}

func TestCloneWithNoPlanet(t *testing.T) {
	s := &Setup{}
	s.AddShip(NewShip())
	clone := s.Clone()
	if clone.Planet != nil {
		t.Fatal("clone fabricated a planet the original never had")
	}
}

func TestRemoveShipOutOfRangeNoOp(t *testing.T) {
	s := buildTestSetup()
	before := len(s.Ships)
	s.RemoveShip(-1)
	s.RemoveShip(len(s.Ships))
	if len(s.Ships) != before {
		t.Fatalf("out-of-range RemoveShip mutated the ship list: got %d want %d", len(s.Ships), before)
	}
}

func TestSwapOutOfRangeNoOp(t *testing.T) {
	s := buildTestSetup()
	id0, id1 := s.Ships[0].Id, s.Ships[1].Id
	s.Swap(-1, 0)
	s.Swap(0, 5)
	if s.Ships[0].Id != id0 || s.Ships[1].Id != id1 {
		t.Fatal("out-of-range Swap mutated the ship list")
	}
}

func TestDuplicateOutOfRangeReturnsNil(t *testing.T) {
	s := buildTestSetup()
	if got := s.Duplicate(99); got != nil {
		t.Fatalf("Duplicate(99) = %v, want nil", got)
	}
}

func TestInvolvedPlayers(t *testing.T) {
	s := buildTestSetup()
	players := s.InvolvedPlayers()
	for _, owner := range []int{1, 2, 3} {
		if !players[owner] {
			t.Errorf("expected owner %d to be involved", owner)
		}
	}
	if len(players) != 3 {
		t.Fatalf("got %d involved players, want 3", len(players))
	}
}

func TestFindShipById(t *testing.T) {
	s := buildTestSetup()
	if got := s.FindShipById(1); got == nil || got.Id != 1 {
		t.Fatalf("FindShipById(1) = %v, want ship with Id 1", got)
	}
	if got := s.FindShipById(999); got != nil {
		t.Fatalf("FindShipById(999) = %v, want nil", got)
	}
}
