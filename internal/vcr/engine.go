// Package vcr provides a concrete sim.PlaybackEngine: the actual
// cycle-by-cycle combat mathematics the core's pack/unpack layer feeds
// and reads back from, per SPEC_FULL.md §6's explicit out-of-scope
// boundary ("the classic/FLAK combat mathematics are a separate
// playback engine consumed through a narrow interface"). The engine
// here is a deliberately simplified stand-in, not a port of the
// historical VCR's real per-round phase structure (shield absorption,
// beam-vs-beam exchange, fighter sorties, torpedo salvos) — that
// algorithm is its own multi-thousand-line subsystem in the historical
// source (game/vcr/classic/*) and is out of this repo's scope. What is
// implemented here is just enough to exercise the core end-to-end: a
// seeded, round-based exchange that consumes ammo and shields/hull the
// way the real engine would, so packShip/packPlanet's output and
// unpackShip/unpackPlanet's expectations stay exercised by a live
// round trip rather than only by hand-built fixtures.
package vcr

import (
	"math/rand"

	"battlesim/internal/sim"
)

// ClassicEngine is the simplified playback engine described above.
type ClassicEngine struct{}

// NewClassicEngine returns a ready-to-use ClassicEngine.
func NewClassicEngine() *ClassicEngine { return &ClassicEngine{} }

const maxRounds = 500

// PlayBattle implements sim.PlaybackEngine.
func (e *ClassicEngine) PlayBattle(left, right sim.CombatObject, seed uint16) sim.Battle {
	rng := rand.New(rand.NewSource(int64(seed)))

	var leftStat, rightStat sim.Statistic
	leftStat.MinFightersAboard = left.FighterAmmo
	rightStat.MinFightersAboard = right.FighterAmmo

	for round := 0; round < maxRounds; round++ {
		if !isOperative(left) || !isOperative(right) {
			break
		}

		fire(rng, &left, &right, &leftStat)
		if !isOperative(right) {
			break
		}
		fire(rng, &right, &left, &rightStat)

		if left.FighterAmmo < leftStat.MinFightersAboard {
			leftStat.MinFightersAboard = left.FighterAmmo
		}
		if right.FighterAmmo < rightStat.MinFightersAboard {
			rightStat.MinFightersAboard = right.FighterAmmo
		}
	}

	outcome := resolveOutcome(left, right)
	return sim.Battle{
		Left: left, Right: right,
		LeftStat: leftStat, RightStat: rightStat,
		Outcome: outcome,
	}
}

func isOperative(o sim.CombatObject) bool {
	return o.Damage < 100 && o.Crew > 0
}

// fire resolves one attacker's weapons against a defender for one
// round: beams chip shield then hull damage, torpedoes do the same at
// a higher miss rate, fighters deal a small fixed hit per active bay.
func fire(rng *rand.Rand, attacker, defender *sim.CombatObject, stat *sim.Statistic) {
	if attacker.NumBeams > 0 {
		for i := 0; i < attacker.NumBeams; i++ {
			hit := 5 + rng.Intn(10)
			hit += hit * attacker.BeamKillRate / 100
			absorb(defender, hit)
		}
	}
	if attacker.NumLaunchers > 0 && attacker.TorpedoAmmo > 0 {
		if rng.Intn(100) >= attacker.TorpedoMissRate {
			attacker.TorpedoAmmo--
			hit := 15 + rng.Intn(15)
			absorb(defender, hit)
			stat.NumTorpedoHits++
		}
	}
	if attacker.NumBays > 0 && attacker.FighterAmmo > 0 {
		sorties := attacker.NumBays
		if sorties > attacker.FighterAmmo {
			sorties = attacker.FighterAmmo
		}
		attacker.FighterAmmo -= sorties
		absorb(defender, sorties*3)
	}
}

// absorb applies hit to defender's shield first, spilling remainder
// onto hull damage and crew loss, mirroring the source's general
// shield-then-hull order without reproducing its exact per-weapon
// tables.
func absorb(defender *sim.CombatObject, hit int) {
	if defender.Shield > 0 {
		absorbed := hit
		if absorbed > defender.Shield {
			absorbed = defender.Shield
		}
		defender.Shield -= absorbed
		hit -= absorbed
	}
	if hit <= 0 {
		return
	}
	defender.Damage += hit
	if defender.Damage > 150 {
		defender.Damage = 150
	}
	crewLoss := hit / 10
	if crewLoss > 0 {
		defender.Crew -= crewLoss
		if defender.Crew < 0 {
			defender.Crew = 0
		}
	}
}

func resolveOutcome(left, right sim.CombatObject) sim.FightOutcome {
	leftDead := !isOperative(left)
	rightDead := !isOperative(right)

	switch {
	case leftDead && rightDead:
		return sim.OutcomeMutual
	case leftDead:
		return sim.OutcomeLeftDestroyed
	case rightDead:
		return sim.OutcomeRightDestroyed
	default:
		return sim.OutcomeTimeout
	}
}
