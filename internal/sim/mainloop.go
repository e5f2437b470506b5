package sim

// doInterceptAttacks runs the intercept-attack pre-pass of SPEC_FULL.md
// §4.8 step 2: any ship with a live InterceptId fights that target
// repeatedly (Squadron respawn notwithstanding) before the general
// combat order runs. Ships are scanned in the order they appear in
// interceptors. Returns true if OnlyOneSimulation stopped the run early.
func doInterceptAttacks(setup *Setup, interceptors []*Ship,
	shipResults map[int]*UnitResult, planetResult *UnitResult,
	opts Configuration, list ShipList, config HostConfiguration,
	mods GlobalModifiers, result *Result, engine PlaybackEngine, rng RandomNumberGenerator) bool {

	for _, iship := range interceptors {
		if iship.InterceptId == 0 {
			continue
		}
		target := setup.FindShipById(iship.InterceptId)
		if target == nil || target == iship {
			continue
		}
		for {
			again := FightShipShip(engine, setup, target, iship,
				shipResults[target.Id], shipResults[iship.Id],
				opts, list, config, mods, result, rng)
			if len(result.Battles.Battles) != 0 && opts.OnlyOneSimulation {
				return true
			}
			if !again {
				break
			}
		}
	}
	return false
}

// doCombatOrder runs the general combat pass of §4.8 step 3/5: every
// ordered pair (right, left) with left != right is tested for a fight.
// entries carries the combined, pre-sorted battle order (ships only for
// Host/NuHost; ships+planet for PHost-family).
func doCombatOrder(setup *Setup, entries []BattleOrderEntry,
	shipResults map[int]*UnitResult, planetResult *UnitResult,
	opts Configuration, list ShipList, config HostConfiguration,
	mods GlobalModifiers, result *Result, engine PlaybackEngine, rng RandomNumberGenerator) bool {

	for right := 0; right < len(entries); right++ {
		for left := 0; left < len(entries); left++ {
			if left == right {
				continue
			}
			for {
				var again bool
				le, re := entries[left], entries[right]
				switch {
				case le.Ship != nil && re.Ship != nil:
					again = FightShipShip(engine, setup, le.Ship, re.Ship,
						shipResults[le.Ship.Id], shipResults[re.Ship.Id],
						opts, list, config, mods, result, rng)
				case le.Ship != nil && re.PlanetObj != nil:
					again = FightShipPlanet(engine, setup, le.Ship, re.PlanetObj,
						shipResults[le.Ship.Id], planetResult,
						opts, list, config, mods, result, rng)
				case le.PlanetObj != nil && re.Ship != nil:
					again = FightShipPlanet(engine, setup, re.Ship, le.PlanetObj,
						shipResults[re.Ship.Id], planetResult,
						opts, list, config, mods, result, rng)
				default:
					again = false
				}
				if len(result.Battles.Battles) != 0 && opts.OnlyOneSimulation {
					return true
				}
				if !again {
					break
				}
			}
		}
	}
	return false
}

// toEntries wraps a flat []*Ship in BattleOrderEntry so the Host/NuHost
// path can share doCombatOrder/doInterceptAttacks with the PHost path.
func toEntries(ships []*Ship) []BattleOrderEntry {
	entries := make([]BattleOrderEntry, len(ships))
	for i, s := range ships {
		entries[i] = BattleOrderEntry{Obj: &s.Object, Ship: s}
	}
	return entries
}

// SimulateHost runs one battle according to Host/NuHost rules, per
// SPEC_FULL.md §4.8: ships fight ships in intercept order then battle
// order, and only afterward does every surviving ship get one pass at
// the planet (in battle order).
func SimulateHost(setup *Setup, opts Configuration, result *Result,
	shipResults map[int]*UnitResult, planetResult *UnitResult,
	list ShipList, config HostConfiguration, engine PlaybackEngine, rng RandomNumberGenerator) {

	mods := ComputeCommanderLevels(setup, opts, list, config)

	interceptOrder := setup.InterceptOrder()
	if doInterceptAttacks(setup, interceptOrder, shipResults, planetResult, opts, list, config, mods, result, engine, rng) {
		return
	}

	battleOrder := setup.HostBattleOrder(list, config, opts.Mode)
	if doCombatOrder(setup, toEntries(battleOrder), shipResults, planetResult, opts, list, config, mods, result, engine, rng) {
		return
	}

	if setup.Planet != nil {
		for _, ship := range battleOrder {
			for {
				again := FightShipPlanet(engine, setup, ship, setup.Planet,
					shipResults[ship.Id], planetResult, opts, list, config, mods, result, rng)
				if len(result.Battles.Battles) != 0 && opts.OnlyOneSimulation {
					return
				}
				if !again {
					break
				}
			}
		}
	}
}

// SimulatePHost runs one battle according to the PHost-family rules
// (PHost2-4; FLAK runs no battle at all — see SPEC_FULL.md §C), per
// SPEC_FULL.md §4.8: the planet's shield
// and damage reset before the fight, ships and the planet share one
// combined battle order, and the planet's stored tech is attenuated by
// accumulated damage afterward.
func SimulatePHost(setup *Setup, opts Configuration, result *Result,
	shipResults map[int]*UnitResult, planetResult *UnitResult,
	list ShipList, config HostConfiguration, engine PlaybackEngine, rng RandomNumberGenerator) {

	mods := ComputeCommanderLevels(setup, opts, list, config)

	if setup.Planet != nil {
		setup.Planet.SetShield(100)
		setup.Planet.SetDamage(0)
	}

	entries := setup.BattleOrder(opts.Mode)
	interceptors := make([]*Ship, 0, len(entries))
	for _, e := range entries {
		if e.Ship != nil {
			interceptors = append(interceptors, e.Ship)
		}
	}

	if doInterceptAttacks(setup, interceptors, shipResults, planetResult, opts, list, config, mods, result, engine, rng) {
		postprocessPHostPlanet(setup)
		return
	}
	doCombatOrder(setup, entries, shipResults, planetResult, opts, list, config, mods, result, engine, rng)
	postprocessPHostPlanet(setup)
}

// postprocessPHostPlanet attenuates a PHost-family planet's defense and
// stored base tech by the damage it accumulated this battle, per
// SPEC_FULL.md §4.8 step 6. Runs whether the battle ended early
// (OnlyOneSimulation) or ran its full combat order.
func postprocessPHostPlanet(setup *Setup) {
	if p := setup.Planet; p != nil {
		p.Defense = p.Defense * (100 - p.Damage) / 100
		if p.BaseBeamTech > 0 {
			baseDamage := p.BaseDamage + p.Damage
			if baseDamage >= 100 {
				p.BaseBeamTech = 0
			} else {
				p.BaseDamage = baseDamage
				p.BaseDefense = p.BaseDefense * (100 - p.Damage) / 100
				p.BaseBeamTech = getDamageTech(p.BaseBeamTech, p.Damage)
				p.BaseTorpedoTech = getDamageTech(p.BaseTorpedoTech, p.Damage)
			}
		}
	}
}
