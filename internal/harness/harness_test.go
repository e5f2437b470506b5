package harness

import (
	"testing"

	"battlesim/internal/sim"
	"battlesim/internal/vcr"
	"battlesim/pkg/logger"
)

type noopLogger struct{}

func (noopLogger) Trace(level logger.Severity, module string, message string) {}

type fakeShipList struct {
	hulls     map[int]sim.Hull
	launchers map[int]sim.Launcher
	engines   map[int]sim.Engine
}

func (f fakeShipList) Hull(id int) (sim.Hull, bool)         { h, ok := f.hulls[id]; return h, ok }
func (f fakeShipList) Launcher(id int) (sim.Launcher, bool) { l, ok := f.launchers[id]; return l, ok }
func (f fakeShipList) Engine(id int) (sim.Engine, bool)     { e, ok := f.engines[id]; return e, ok }
func (f fakeShipList) NumTorpedoTypes() int                 { return len(f.launchers) }
func (f fakeShipList) IsSpecialFriendlyCode(fc string) bool { return false }

type fakeHostConfig struct{}

func (fakeHostConfig) AllowEngineShieldBonus() bool        { return false }
func (fakeHostConfig) EngineShieldBonusRate(int) int       { return 0 }
func (fakeHostConfig) AllowFedCombatBonus() bool           { return false }
func (fakeHostConfig) AllowCloakedShipsAttack() bool       { return false }
func (fakeHostConfig) AllowPlanetAttacks() bool            { return true }
func (fakeHostConfig) AllowAlternativeCombat() bool        { return false }
func (fakeHostConfig) AllowESBonusAgainstPlanets() bool    { return false }
func (fakeHostConfig) NumExperienceLevels() int            { return 0 }
func (fakeHostConfig) ExtraFighterBays(int) int            { return 0 }
func (fakeHostConfig) EModExtraFighterBays(int) int        { return 0 }
func (fakeHostConfig) EModEngineShieldBonusRate(int) int   { return 0 }
func (fakeHostConfig) PlanetaryTorpsPerTube(int) int       { return 0 }
func (fakeHostConfig) EModPlanetaryTorpsPerTube(int) int   { return 0 }
func (fakeHostConfig) UseBaseTorpsInCombat() bool          { return false }
func (fakeHostConfig) PlanetsHaveTubes() bool              { return false }
func (fakeHostConfig) MaximumDefenseOnBase() int           { return 200 }
func (fakeHostConfig) MaximumFightersOnBase() int          { return 60 }
func (fakeHostConfig) PlayerRaceNumber(int) int            { return 1 }

func buildTemplate() *sim.Setup {
	s := &sim.Setup{}

	left := sim.NewShip()
	left.Id = 1
	left.Owner = 1
	left.Hull = 1
	left.NumBeams = 4
	left.NumLaunchers = 1
	left.Ammo = 20
	left.Crew = 100
	left.Aggressiveness = sim.AggressivenessKill

	right := sim.NewShip()
	right.Id = 2
	right.Owner = 2
	right.Hull = 1
	right.NumBeams = 4
	right.NumLaunchers = 1
	right.Ammo = 20
	right.Crew = 100
	right.Aggressiveness = sim.AggressivenessKill

	s.AddShip(left)
	s.AddShip(right)
	return s
}

func TestRunSeriesRejectsNonPositiveNumRuns(t *testing.T) {
	_, err := RunSeries(buildTemplate(), sim.NewConfiguration(), fakeShipList{}, fakeHostConfig{},
		vcr.NewClassicEngine(), Options{NumRuns: 0}, noopLogger{})
	if err == nil {
		t.Fatal("expected an error for NumRuns <= 0")
	}
}

func TestRunSeriesAggregatesEveryRun(t *testing.T) {
	template := buildTemplate()
	cfg := sim.NewConfiguration()
	cfg.Mode = sim.VcrPHost4

	series, err := RunSeries(template, cfg, fakeShipList{
		hulls:     map[int]sim.Hull{1: {Id: 1, Mass: 100, NumBeams: 4, NumLaunchers: 1}},
		launchers: map[int]sim.Launcher{1: {Id: 1, Cost: 1}},
	}, fakeHostConfig{}, vcr.NewClassicEngine(), Options{NumRuns: 5, Workers: 3}, noopLogger{})
	if err != nil {
		t.Fatalf("RunSeries returned an error: %v", err)
	}

	for _, id := range []int{1, 2} {
		ur, ok := series.ShipResults[id]
		if !ok {
			t.Fatalf("missing UnitResult for ship %d", id)
		}
		if ur.NumFights != 5 {
			t.Errorf("ship %d: NumFights = %d, want 5", id, ur.NumFights)
		}
	}
}

func TestRunSeriesLeavesTemplateUntouched(t *testing.T) {
	template := buildTemplate()
	snapshotDamage := template.Ships[0].Damage

	cfg := sim.NewConfiguration()
	_, err := RunSeries(template, cfg, fakeShipList{
		hulls:     map[int]sim.Hull{1: {Id: 1, Mass: 100, NumBeams: 4, NumLaunchers: 1}},
		launchers: map[int]sim.Launcher{1: {Id: 1, Cost: 1}},
	}, fakeHostConfig{}, vcr.NewClassicEngine(), Options{NumRuns: 3, Workers: 2}, noopLogger{})
	if err != nil {
		t.Fatalf("RunSeries returned an error: %v", err)
	}

	if template.Ships[0].Damage != snapshotDamage {
		t.Error("RunSeries mutated the shared template's ship state")
	}
}
