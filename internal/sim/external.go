package sim

// This file declares the narrow, read-only interfaces the core consumes
// from external collaborators per SPEC_FULL.md §6. Concrete,
// database-backed implementations live in internal/shiplist; the
// classic/FLAK playback engine's concrete implementation lives in
// internal/vcr. The core itself only ever sees these interfaces.

// Hull describes one hull's capacity caps and cost, as consulted by
// packShip/unpackShip and the weapon-limit checks of §4.4.2.
type Hull struct {
	Id            int
	Mass          int
	NumBeams      int
	NumLaunchers  int
	NumBays       int
	PictureNumber int
}

// Launcher describes a torpedo launcher's cost, used for base-torpedo
// type conversion in packPlanet (§4.4.4).
type Launcher struct {
	Id   int
	Cost int
}

// Engine describes one engine type's money cost, consulted by the
// engine-shield bonus mass computation in applyShipModifiers (§4.4.2
// step 1): the bonus is a percentage of this cost, not a flat amount.
type Engine struct {
	Id        int
	CostMoney int
}

// ShipList :
// Read-only hull/beam/torpedo/engine/friendly-code data consulted by
// the VCR adapter and host-rule predicates. Never mutated by the core.
type ShipList interface {
	Hull(id int) (Hull, bool)
	Launcher(id int) (Launcher, bool)
	Engine(id int) (Engine, bool)
	NumTorpedoTypes() int
	// IsSpecialFriendlyCode reports whether fc is registered as a
	// special/extra code exempt from friendly-code matching under the
	// PHost family (§4.6.1 condition 9).
	IsSpecialFriendlyCode(fc string) bool
}

// HostConfiguration :
// Read-only, key-indexed store of per-player or scalar integers plus
// the owner→race map, per SPEC_FULL.md §6.
type HostConfiguration interface {
	AllowEngineShieldBonus() bool
	EngineShieldBonusRate(player int) int
	AllowFedCombatBonus() bool
	AllowCloakedShipsAttack() bool
	AllowPlanetAttacks() bool
	AllowAlternativeCombat() bool
	AllowESBonusAgainstPlanets() bool
	NumExperienceLevels() int
	ExtraFighterBays(player int) int
	EModExtraFighterBays(level int) int
	EModEngineShieldBonusRate(level int) int
	PlanetaryTorpsPerTube(player int) int
	EModPlanetaryTorpsPerTube(level int) int
	UseBaseTorpsInCombat() bool
	PlanetsHaveTubes() bool
	MaximumDefenseOnBase() int
	MaximumFightersOnBase() int
	PlayerRaceNumber(player int) int
}

// HostFamily identifies which host rules a HostVersion belongs to.
type HostFamily int

const (
	HostFamilyHost HostFamily = iota
	HostFamilyPHost
)

// HostVersion :
// Identifies the emulated host for rules that differ by exact version
// (e.g. hyperjump distance checks), per SPEC_FULL.md §6.
type HostVersion struct {
	Family HostFamily
	Major  int
	Minor  int
	Patch  int
}

func (h HostVersion) IsPHost() bool { return h.Family == HostFamilyPHost }

// FightOutcome :
// Result code returned by one playback-engine invocation.
type FightOutcome int

const (
	OutcomeTimeout FightOutcome = iota
	OutcomeLeftDestroyed
	OutcomeRightDestroyed
	OutcomeLeftCaptured
	OutcomeRightCaptured
	OutcomeMutual
)

// CombatObject :
// The playback engine's neutral, packed representation of one
// combatant, produced by packShip/packPlanet and consumed by
// unpackShip/unpackPlanet. Field names mirror the source's
// game::vcr::Object so the pack/unpack code reads as a direct port.
type CombatObject struct {
	Id                 int
	Name               string
	Damage             int
	Crew               int
	Owner              int
	Race               int
	Picture            int
	Hull               int
	Mass               int
	Shield             int
	ExperienceLevel    int
	BeamType           int
	NumBeams           int
	TorpedoType        int
	NumLaunchers       int
	NumBays            int
	FighterAmmo        int
	TorpedoAmmo        int
	BeamKillRate       int
	BeamChargeRate     int
	TorpedoChargeRate  int
	TorpedoMissRate    int
	CrewDefenseRate    int
	IsPlanetFlag       bool
}

func (c CombatObject) IsPlanet() bool { return c.IsPlanetFlag }

// Statistic :
// Per-side extra statistics reported by one playback, beyond the
// CombatObject's post-battle state: torpedo hits landed, minimum
// fighters aboard during the fight. Consumed by the aggregator (C10).
type Statistic struct {
	NumTorpedoHits    int
	MinFightersAboard int
}

// Battle :
// One played-out fight, as produced by the playback engine and stored
// (opaquely, from the core's point of view) in a Database_t handle.
type Battle struct {
	Left, Right         CombatObject
	LeftStat, RightStat Statistic
	Outcome             FightOutcome
}

// PlaybackEngine :
// The classic/FLAK combat mathematics, consumed through this narrow
// interface only (SPEC_FULL.md §A/out-of-scope boundary). Given a
// packed pair and a seed it plays exactly one battle.
type PlaybackEngine interface {
	PlayBattle(left, right CombatObject, seed uint16) Battle
}

// Database :
// Opaque, append-only battle record handle. The core only ever appends
// to and hands out references to one; it never inspects contents.
type Database struct {
	Battles []Battle
}

func (d *Database) Append(b Battle) { d.Battles = append(d.Battles, b) }
