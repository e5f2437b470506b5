package sim

import "strconv"

// isArmed reports whether a ship carries any beams, launchers or bays —
// the "real freighter test" the source substitutes for HOST's mission/
// crew check (condition 8 of ship/ship isAttacking).
func isArmed(s *Ship) bool { return s.IsArmed() }

// friendlyCodeValue derives a host-specific battle-order key in
// [0, 1000] from a friendly code: a fully numeric code sorts by its
// numeric value, any other code sorts after every numeric code (at a
// fixed value of 1000). The exact historical BattleOrderRule formula is
// not part of the retrieved source (only its call sites are); this is
// the documented approximation recorded in DESIGN.md.
func friendlyCodeValue(o *Object) int {
	if n, err := strconv.Atoi(o.FriendlyCode); err == nil && n >= 0 && n <= 1000 {
		return n
	}
	return 1000
}

// battleOrderValue returns the sort key used by BattleOrder: for PHost
// and Host alike this is the friendly-code value; the two families
// differ only in tie-breaking, handled by the caller.
func battleOrderValue(o *Object, mode VcrMode) int {
	return friendlyCodeValue(o)
}

// battleOrderLess orders two ships by the Host battle-order comparator:
// ascending friendly-code value, then ascending Id.
func battleOrderLess(a, b *Ship, mode VcrMode, list ShipList, config HostConfiguration) bool {
	av, bv := friendlyCodeValue(&a.Object), friendlyCodeValue(&b.Object)
	if av != bv {
		return av < bv
	}
	return a.Id < b.Id
}

// isFriendlyCodeExemptFromMatch reports whether fc is exempt from the
// friendly-code-match veto (condition 9 of ship/ship isAttacking).
// Host/NuHost hardcode their exemptions (checked by the caller via the
// mkt/lfm/NTP/??? literals); PHost-family hosts instead exempt every
// code registered as special/extra in the ship list.
func isFriendlyCodeExemptFromMatch(fc string, opts Configuration, list ShipList) bool {
	switch opts.Mode {
	case VcrHost, VcrNuHost:
		return false
	default:
		return list.IsSpecialFriendlyCode(fc)
	}
}

// isAttackingShipShip checks whether `at` attacks `op`, one direction
// only — call twice, swapping arguments, to test both directions. Per
// SPEC_FULL.md §4.6.1.
func isAttackingShipShip(at, op *Ship, opts Configuration, list ShipList, config HostConfiguration) bool {
	if at.IsDeactivated() || op.IsDeactivated() {
		return false
	}
	if at.Owner == 0 || op.Owner == 0 || at.Owner == op.Owner {
		return false
	}
	if opts.HonorAlliances && opts.Alliance(at.Owner, op.Owner) {
		return false
	}
	if at.Aggressiveness == AggressivenessPassive || at.Aggressiveness == AggressivenessNoFuel {
		return false
	}
	if at.Aggressiveness != AggressivenessKill {
		matchesPE := at.Aggressiveness.IsPrimaryEnemy() && int(at.Aggressiveness) == op.Owner
		if !matchesPE && !opts.Enemy(at.Owner, op.Owner) {
			return false
		}
	}
	if at.IsCloaked() && !config.AllowCloakedShipsAttack() {
		return false
	}
	if op.IsCloaked() {
		return false
	}
	if op.Aggressiveness == AggressivenessNoFuel {
		return false
	}
	if at.FriendlyCode == op.FriendlyCode {
		afc := at.FriendlyCode
		if afc != "mkt" && afc != "lfm" && afc != "NTP" && afc != "???" && !isFriendlyCodeExemptFromMatch(afc, opts, list) {
			return false
		}
	}
	return true
}

// isImmune reports whether a ship is immune to planetary attack, per
// SPEC_FULL.md §4.6.3.
func isImmune(s *Ship, opts Configuration, list ShipList, config HostConfiguration) bool {
	if config.PlayerRaceNumber(s.Owner) == 3 && s.Aggressiveness == AggressivenessNoFuel && s.NumBeams > 0 {
		return true
	}
	if s.HasAbility(PlanetImmunityAbility, list, config) {
		return true
	}
	if s.IsCloaked() {
		return true
	}
	return false
}

// isAttackingShipPlanet reports whether a fight occurs between a ship
// and a planet: symmetric evaluation of both directions, per
// SPEC_FULL.md §4.6.2.
func isAttackingShipPlanet(ship *Ship, planet *Planet, opts Configuration, list ShipList, config HostConfiguration) bool {
	if ship.IsDeactivated() || planet.IsDeactivated() {
		return false
	}
	if ship.Owner == 0 || planet.Owner == 0 || ship.Owner == planet.Owner {
		return false
	}
	if opts.HonorAlliances && opts.Alliance(ship.Owner, planet.Owner) && opts.Alliance(planet.Owner, ship.Owner) {
		return false
	}

	fcBlocks := ship.FriendlyCode == planet.FriendlyCode &&
		!isFriendlyCodeExemptFromMatch(planet.FriendlyCode, opts, list)

	shipWantsAttack := !ship.IsCloaked() && !fcBlocks &&
		(ship.Aggressiveness == AggressivenessKill ||
			(ship.Aggressiveness.IsPrimaryEnemy() && int(ship.Aggressiveness) == planet.Owner) ||
			opts.Enemy(ship.Owner, planet.Owner))

	fc := planet.FriendlyCode
	planetWantsAttack := !fcBlocks &&
		((fc == "ATT" && ship.Aggressiveness != AggressivenessNoFuel) || fc == "NUK") &&
		!isImmune(ship, opts, list, config)

	return shipWantsAttack || planetWantsAttack
}
