package sim

import "testing"

// testHostConfig is a minimal HostConfiguration stand-in, in the style
// of fakeHostConfig in internal/harness/harness_test.go: every method
// returns a fixed, named value so a test only needs to override what
// it cares about.
type testHostConfig struct {
	esbAgainstPlanets bool
	emodESBRate       int
}

func (c testHostConfig) AllowEngineShieldBonus() bool      { return false }
func (c testHostConfig) EngineShieldBonusRate(int) int     { return 0 }
func (c testHostConfig) AllowFedCombatBonus() bool         { return false }
func (c testHostConfig) AllowCloakedShipsAttack() bool     { return false }
func (c testHostConfig) AllowPlanetAttacks() bool          { return true }
func (c testHostConfig) AllowAlternativeCombat() bool      { return false }
func (c testHostConfig) AllowESBonusAgainstPlanets() bool  { return c.esbAgainstPlanets }
func (c testHostConfig) NumExperienceLevels() int          { return 0 }
func (c testHostConfig) ExtraFighterBays(int) int          { return 0 }
func (c testHostConfig) EModExtraFighterBays(int) int      { return 0 }
func (c testHostConfig) EModEngineShieldBonusRate(int) int { return c.emodESBRate }
func (c testHostConfig) PlanetaryTorpsPerTube(int) int     { return 0 }
func (c testHostConfig) EModPlanetaryTorpsPerTube(int) int { return 0 }
func (c testHostConfig) UseBaseTorpsInCombat() bool        { return false }
func (c testHostConfig) PlanetsHaveTubes() bool            { return false }
func (c testHostConfig) MaximumDefenseOnBase() int         { return 200 }
func (c testHostConfig) MaximumFightersOnBase() int        { return 60 }
func (c testHostConfig) PlayerRaceNumber(int) int          { return 1 }

// testShipList is a minimal ShipList stand-in carrying only what
// applyShipModifiers' engine-shield-bonus step needs.
type testShipList struct {
	engines map[int]Engine
}

func (l testShipList) Hull(int) (Hull, bool)         { return Hull{}, false }
func (l testShipList) Launcher(int) (Launcher, bool) { return Launcher{}, false }
func (l testShipList) Engine(id int) (Engine, bool)  { e, ok := l.engines[id]; return e, ok }
func (l testShipList) NumTorpedoTypes() int          { return 0 }
func (l testShipList) IsSpecialFriendlyCode(string) bool { return false }

func engineShieldBonusShip() *Ship {
	s := NewShip()
	s.Id = 1
	s.Owner = 1
	s.Engine = 9
	return s
}

// TestApplyShipModifiersScalesEngineShieldBonusByEngineCost exercises
// the corrected step 1 of applyShipModifiers: the accumulated bonus is
// a percentage of the ship's engine cost (run.cpp's
// applyShipModificators), not a flat mass addition.
func TestApplyShipModifiersScalesEngineShieldBonusByEngineCost(t *testing.T) {
	s := engineShieldBonusShip()
	list := testShipList{engines: map[int]Engine{9: {Id: 9, CostMoney: 200}}}
	config := testHostConfig{}
	opts := NewConfiguration()
	opts.Mode = VcrPHost4
	opts.EngineShieldBonus = 10

	var obj CombatObject
	helpers := fightHelpers{numShieldGenerators: 1}
	mods := GlobalModifiers{}

	applyShipModifiers(&obj, s, helpers, mods, opts, list, config, false, true)

	// bonus = 50*1 (shield generator) + 10 (flat ESB, not against a
	// planet) = 60; scaled by engine cost 200/100 => 120 added to mass.
	if obj.Mass != 120 {
		t.Errorf("Mass = %d, want 120", obj.Mass)
	}
}

// TestApplyShipModifiersWithholdsFlatBonusAgainstPlanet checks that the
// flat opts.EngineShieldBonus term is withheld when the fight is
// against a planet and AllowESBonusAgainstPlanets is false, while the
// unconditional shield-generator term still applies.
func TestApplyShipModifiersWithholdsFlatBonusAgainstPlanet(t *testing.T) {
	s := engineShieldBonusShip()
	list := testShipList{engines: map[int]Engine{9: {Id: 9, CostMoney: 200}}}
	config := testHostConfig{esbAgainstPlanets: false}
	opts := NewConfiguration()
	opts.Mode = VcrPHost4
	opts.EngineShieldBonus = 10

	var obj CombatObject
	helpers := fightHelpers{numShieldGenerators: 1}
	mods := GlobalModifiers{}

	applyShipModifiers(&obj, s, helpers, mods, opts, list, config, true, true)

	// bonus = 50*1 only, the flat term is withheld => 50*200/100 = 100.
	if obj.Mass != 100 {
		t.Errorf("Mass = %d, want 100", obj.Mass)
	}
}

// TestApplyShipModifiersHostFamilyDropsExperienceTerm checks that the
// experience-derived term never applies under HOST/NuHost, mirroring
// the !hosty gate in run.cpp.
func TestApplyShipModifiersHostFamilyDropsExperienceTerm(t *testing.T) {
	s := engineShieldBonusShip()
	list := testShipList{engines: map[int]Engine{9: {Id: 9, CostMoney: 100}}}
	config := testHostConfig{emodESBRate: 30}
	opts := NewConfiguration()
	opts.Mode = VcrHost
	opts.EngineShieldBonus = 10

	var obj CombatObject
	helpers := fightHelpers{}
	mods := GlobalModifiers{}

	applyShipModifiers(&obj, s, helpers, mods, opts, list, config, false, true)

	// no shield generators, HOST still takes the flat term (not a
	// planet fight) but never the experience term: bonus = 10,
	// scaled by 100/100 => 10.
	if obj.Mass != 10 {
		t.Errorf("Mass = %d, want 10", obj.Mass)
	}
}

// TestApplyShipModifiersUnknownEngineLeavesMassUntouched checks that a
// ship referencing an engine ID absent from the ShipList contributes
// no mass bonus rather than panicking or silently adding a flat value.
func TestApplyShipModifiersUnknownEngineLeavesMassUntouched(t *testing.T) {
	s := engineShieldBonusShip()
	s.Engine = 999
	list := testShipList{engines: map[int]Engine{9: {Id: 9, CostMoney: 200}}}
	config := testHostConfig{}
	opts := NewConfiguration()
	opts.Mode = VcrPHost4
	opts.EngineShieldBonus = 10

	var obj CombatObject
	helpers := fightHelpers{numShieldGenerators: 1}
	mods := GlobalModifiers{}

	applyShipModifiers(&obj, s, helpers, mods, opts, list, config, false, true)

	if obj.Mass != 0 {
		t.Errorf("Mass = %d, want 0 (unknown engine contributes nothing)", obj.Mass)
	}
}
