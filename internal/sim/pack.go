package sim

import "math"

// plimit mirrors run.cpp's helper of the same name: the damage-scaled
// weapon-count cap used by the PHost-family proportional cap
// (SPEC_FULL.md §C). The Host/NuHost weapon limit does not use it.
func plimit(max, scale, d int) int {
	return max - (max*d)/scale
}

// getDamageTech mirrors run.cpp's helper of the same name: a tech level
// clamped by starbase damage, floored at 1.
func getDamageTech(tech, damage int) int {
	max := (100 - damage) / 10
	if tech > max {
		tech = max
	}
	if tech <= 0 {
		tech = 1
	}
	return tech
}

// packShip converts a Ship into the playback engine's neutral
// CombatObject, per SPEC_FULL.md §4.4.1. Carriers set FighterAmmo and
// clear the torpedo fields; torpedo ships set TorpedoAmmo and clear
// bays; pure-beam ships zero both.
func packShip(s *Ship, list ShipList, config HostConfiguration, opts Configuration) CombatObject {
	var obj CombatObject
	obj.Id = s.Id
	obj.Name = s.Name
	obj.Damage = s.Damage
	obj.Crew = s.Crew
	obj.Owner = s.Owner
	obj.Race = config.PlayerRaceNumber(s.Owner)
	obj.Shield = s.Shield
	obj.ExperienceLevel = s.ExperienceLevel
	if !opts.IsExperienceEnabled(config) {
		obj.ExperienceLevel = 0
	}

	if hull, ok := list.Hull(s.Hull); s.Hull != 0 && ok {
		obj.Mass = hull.Mass
		obj.Picture = hull.PictureNumber
	} else {
		obj.Mass = s.Mass
	}

	obj.BeamType = s.BeamType
	obj.NumBeams = s.NumBeams

	switch {
	case s.NumBays > 0:
		obj.NumBays = s.NumBays
		obj.FighterAmmo = s.Ammo
	case s.NumLaunchers > 0:
		obj.NumLaunchers = s.NumLaunchers
		obj.TorpedoType = s.TorpedoType
		obj.TorpedoAmmo = s.Ammo
	}

	if obj.Race == 5 {
		obj.BeamKillRate = 3
	} else {
		obj.BeamKillRate = 1
	}
	obj.BeamChargeRate = 1
	obj.TorpedoChargeRate = 1

	return obj
}

// ntxAmmoCap interprets an "NTx"-style friendly code, returning the
// ammunition cap it imposes and whether the code matched one.
func ntxAmmoCap(fc string) (cap int, ok bool) {
	switch fc {
	case "NTP":
		return 0, true
	case "NT0":
		return 100, true
	}
	if len(fc) == 3 && fc[0] == 'N' && fc[1] == 'T' && fc[2] >= '1' && fc[2] <= '9' {
		return 10 * int(fc[2]-'0'), true
	}
	return 0, false
}

// applyShipModifiers applies the order-sensitive side modifiers of
// SPEC_FULL.md §4.4.2 to a packed ship, recording the unused-ammo
// reserve the NTx cap set aside so unpackShip can restore it.
func applyShipModifiers(obj *CombatObject, s *Ship, helpers fightHelpers, mods GlobalModifiers,
	opts Configuration, list ShipList, config HostConfiguration, againstPlanet, first bool) (unusedFighters, unusedTorpedoes int) {

	race := obj.Race
	n := helpers.numShieldGenerators

	// 1. Engine-shield bonus. The shield-generator term always applies;
	// the flat opts.EngineShieldBonus term is withheld against a planet
	// unless the host family is PHost and AllowESBonusAgainstPlanets is
	// set; the experience term applies to every non-HOST/NuHost family.
	// The accumulated bonus is a percentage of the ship's engine cost,
	// not a flat mass addition.
	hosty := opts.Mode == VcrHost || opts.Mode == VcrNuHost
	bonus := 50 * n
	if !againstPlanet || (!hosty && config.AllowESBonusAgainstPlanets()) {
		bonus += opts.EngineShieldBonus
	}
	if !hosty {
		bonus += config.EModEngineShieldBonusRate(obj.ExperienceLevel)
	}
	if bonus != 0 {
		if engine, ok := list.Engine(s.Engine); ok {
			obj.Mass += bonus * engine.CostMoney / 100
		}
	}

	// 2. Fed Scotty bonus. HOST gives the shield bonus before every fight;
	// NuHost/PHost give it after, so it is withheld before the very first
	// fight to keep final stats realistic (it would otherwise inflate a
	// ship that never fights again).
	if race == 1 && opts.ScottyBonus {
		obj.Mass += 50
		if opts.Mode == VcrHost || opts.Mode == VcrNuHost {
			obj.NumBays += 3
		}
		if opts.Mode == VcrHost || !first {
			obj.Shield += 25
		}
	}

	// 3. Cloaked-bays donor.
	if helpers.cloakedBaysDonor != nil {
		obj.NumBays += helpers.cloakedBaysDonor.NumBays
		obj.FighterAmmo += helpers.cloakedBaysDonor.Ammo
	}

	// 4. Shield cap.
	maxShield := 100 + 50*n - obj.Damage
	newShield := obj.Shield + 25*n
	if newShield > maxShield {
		newShield = maxShield
	}
	obj.Shield = newShield

	// 5. Extra fighter bays.
	if opts.Mode != VcrHost && opts.Mode != VcrNuHost {
		obj.NumBays += config.ExtraFighterBays(obj.Owner) + config.EModExtraFighterBays(obj.ExperienceLevel)
	}

	// 6. Freighter override.
	if obj.NumBeams == 0 && obj.NumLaunchers == 0 && obj.NumBays == 0 {
		obj.Shield = 0
	}

	// 7. NTP-style ammunition cap.
	if cap, ok := ntxAmmoCap(s.FriendlyCode); ok {
		if obj.FighterAmmo > cap {
			unusedFighters = obj.FighterAmmo - cap
			obj.FighterAmmo = cap
		}
		if obj.TorpedoAmmo > cap {
			unusedTorpedoes = obj.TorpedoAmmo - cap
			obj.TorpedoAmmo = cap
		}
	}

	// 8. Damage-limited weapon caps.
	hasFullWeaponry := s.HasAbility(FullWeaponryAbility, list, config)
	scottyShip := race == 1 && opts.ScottyBonus
	cloakedBonus := 0
	if helpers.cloakedBaysDonor != nil {
		cloakedBonus = helpers.cloakedBaysDonor.NumBays
	}
	if !hasFullWeaponry && !scottyShip {
		switch opts.Mode {
		case VcrHost, VcrNuHost:
			limit := 10 - obj.Damage/10
			if race == 2 {
				limit += 5
			}
			if limit < 0 {
				limit = 0
			}
			if obj.NumLaunchers > limit {
				obj.NumLaunchers = limit
			}
			if obj.NumBeams > limit {
				obj.NumBeams = limit
			}
			if obj.NumBays-cloakedBonus > limit {
				obj.NumBays = limit + cloakedBonus
			}
		default:
			scale := 100
			if race == 2 {
				scale = 150
			}
			obj.NumLaunchers = plimit(obj.NumLaunchers, scale, obj.Damage)
			obj.NumBeams = plimit(obj.NumBeams, scale, obj.Damage)
			obj.NumBays = plimit(obj.NumBays-cloakedBonus, scale, obj.Damage) + cloakedBonus
		}
	}

	// 9. Simplifications.
	if obj.NumLaunchers == 0 {
		obj.TorpedoType = 0
	}
	if obj.NumBays == 0 {
		obj.FighterAmmo = 0
	}
	if obj.NumBeams == 0 {
		obj.BeamType = 0
	}

	// 10. Commander level propagation.
	if base, ok := mods.LevelBase[obj.Owner]; ok && obj.ExperienceLevel < base {
		obj.ExperienceLevel++
	}

	// 11. Ability-derived rates.
	if s.HasAbility(TripleBeamKillAbility, list, config) {
		obj.BeamKillRate *= 3
	}
	if s.HasAbility(DoubleBeamChargeAbility, list, config) {
		obj.BeamChargeRate *= 2
	}
	if s.HasAbility(DoubleTorpedoChargeAbility, list, config) {
		obj.TorpedoChargeRate *= 2
	}
	if s.HasAbility(SquadronAbility, list, config) {
		obj.CrewDefenseRate = 100
	}

	return unusedFighters, unusedTorpedoes
}

// applyOpponentModifiers applies §4.4.3: the opponent's Elusive ability
// sets this object's torpedo-miss rate to 90.
func applyOpponentModifiers(obj *CombatObject, opponent *Ship, list ShipList, config HostConfiguration) {
	if opponent.HasAbility(ElusiveAbility, list, config) {
		obj.TorpedoMissRate = 90
	}
}

// applyPlanetModifiers applies §4.4.5: Commander propagation and the
// ability-derived rate fields, the only modifiers that apply to planets.
func applyPlanetModifiers(obj *CombatObject, p *Planet, mods GlobalModifiers, opts Configuration, config HostConfiguration) {
	if base, ok := mods.LevelBase[obj.Owner]; ok && obj.ExperienceLevel < base {
		obj.ExperienceLevel++
	}
	if p.HasAbility(TripleBeamKillAbility, opts, config) {
		obj.BeamKillRate *= 3
	}
	if p.HasAbility(DoubleBeamChargeAbility, opts, config) {
		obj.BeamChargeRate *= 2
	}
}

// packPlanet converts a Planet into a CombatObject, per SPEC_FULL.md
// §4.4.4, branching on host family.
func packPlanet(p *Planet, list ShipList, config HostConfiguration, opts Configuration) CombatObject {
	var obj CombatObject
	obj.IsPlanetFlag = true
	obj.Id = p.Id
	obj.Name = p.Name
	obj.Damage = p.Damage
	obj.Owner = p.Owner
	obj.Race = config.PlayerRaceNumber(p.Owner)
	obj.ExperienceLevel = p.ExperienceLevel
	if !opts.IsExperienceEnabled(config) {
		obj.ExperienceLevel = 0
	}
	if obj.Race == 5 {
		obj.BeamKillRate = 3
	} else {
		obj.BeamKillRate = 1
	}
	obj.BeamChargeRate = 1
	obj.TorpedoChargeRate = 1

	weaponLimit := 10
	if config.AllowAlternativeCombat() {
		weaponLimit = 20
	}

	switch opts.Mode {
	case VcrHost, VcrNuHost:
		effDefense := float64(p.Defense)
		effBaseDefense := float64(p.BaseDefense)
		fighters := int(math.Round(math.Sqrt(effDefense))) + p.BaseFighters
		beams := int(math.Round(math.Sqrt((effDefense + effBaseDefense) / 3)))
		if beams > weaponLimit {
			beams = weaponLimit
		}
		beamType := int(math.Round(math.Sqrt(effDefense / 2)))
		if p.BaseBeamTech > beamType {
			beamType = p.BaseBeamTech
		}
		if beamType < 1 {
			beamType = 1
		}
		bays := fighters - p.BaseFighters
		if p.BaseDefense > 0 {
			bays += 5
		}

		obj.NumBays = bays
		obj.FighterAmmo = fighters
		obj.NumBeams = beams
		obj.BeamType = beamType
		obj.Mass = 100 + p.Defense + p.BaseDefense
		obj.Shield = p.Shield
		if p.Defense == 0 && p.BaseDefense == 0 {
			obj.Shield = 0
		}
		obj.Crew = fighters

	default: // PHost-family
		scale := float64(100-p.Damage) / 100
		effDefense := float64(p.Defense) * scale
		effBaseDefense := float64(p.BaseDefense) * scale
		fighters := int(math.Round(math.Sqrt(effDefense))) + p.BaseFighters
		beams := int(math.Round(math.Sqrt((effDefense + effBaseDefense) / 3)))
		if beams > weaponLimit {
			beams = weaponLimit
		}
		beamType := int(math.Round(math.Sqrt(effDefense / 2)))
		if bt := getDamageTech(p.BaseBeamTech, p.Damage); bt > beamType {
			beamType = bt
		}
		if beamType < 1 {
			beamType = 1
		}
		bays := fighters - p.BaseFighters
		if p.BaseDefense > 0 {
			bays += 5
		}

		obj.NumBays = bays
		obj.FighterAmmo = fighters
		obj.NumBeams = beams
		obj.BeamType = beamType
		obj.Mass = 100 + int(effDefense) + int(float64(p.BaseDefense)*scale)
		obj.Shield = p.Shield

		if config.PlanetsHaveTubes() {
			torpType := getDamageTech(p.BaseTorpedoTech, p.Damage)
			launchers := int(math.Round(math.Sqrt(effDefense / 2)))
			perTube := config.PlanetaryTorpsPerTube(p.Owner) + config.EModPlanetaryTorpsPerTube(obj.ExperienceLevel)
			ammo := launchers * perTube
			if config.UseBaseTorpsInCombat() {
				ammo += int(p.NumBaseTorpedoesAsType(torpType, list))
			}
			if ammo > 255 {
				ammo = 255
			}
			obj.TorpedoType = torpType
			obj.NumLaunchers = launchers
			obj.TorpedoAmmo = ammo
		}
	}

	return obj
}

// unpackShip writes a post-battle CombatObject back onto a Ship, per
// SPEC_FULL.md §4.4.6. unusedFighters/unusedTorpedoes is the reserve
// applyShipModifiers set aside under an NTx cap, restored here so the
// cap never artificially reduces the ship's stored ammunition.
func unpackShip(s *Ship, obj CombatObject, unusedFighters, unusedTorpedoes int) {
	s.Shield = obj.Shield
	s.Damage = obj.Damage
	s.Crew = obj.Crew
	switch {
	case s.NumBays > 0:
		s.Ammo = obj.FighterAmmo + unusedFighters
	case s.NumLaunchers > 0:
		s.Ammo = obj.TorpedoAmmo + unusedTorpedoes
	}
}

// unpackPlanet writes a post-battle CombatObject back onto a Planet,
// branching on host family per SPEC_FULL.md §4.4.6. preFighters/
// preTorpedoes are the FighterAmmo/TorpedoAmmo values packPlanet
// originally set, needed to compute the losses charged against the
// planet's stored base fighters and torpedoes in the PHost-family
// branch (a planet's combat ammunition is derived, not stored, so the
// loss must be applied to the underlying stock it was derived from).
func unpackPlanet(p *Planet, obj CombatObject, preFighters, preTorpedoes int, list ShipList, config HostConfiguration, opts Configuration) {
	switch opts.Mode {
	case VcrHost, VcrNuHost:
		scale := float64(100-obj.Damage) / 100
		p.Defense = int(math.Round(float64(p.Defense) * scale))
		p.BaseDefense = int(math.Round(float64(p.BaseDefense) * scale))
		if p.BaseBeamTech < 1 {
			p.BaseBeamTech = 1
		}
		if p.BaseTorpedoTech < 1 {
			p.BaseTorpedoTech = 1
		}
		if obj.Damage > 100 {
			p.BaseBeamTech = 0
		}
		p.Damage = obj.Damage

	default: // PHost-family
		p.Shield = obj.Shield
		p.Damage = obj.Damage

		fightersLost := preFighters - obj.FighterAmmo
		if fightersLost > 0 {
			p.BaseFighters -= fightersLost
			if p.BaseFighters < 0 {
				p.BaseFighters = 0
			}
		}

		if config.PlanetsHaveTubes() {
			torpedoesFired := preTorpedoes - obj.TorpedoAmmo
			if torpedoesFired > 0 {
				_, cost := torpedoCost(obj.TorpedoType, list)
				remaining := torpedoesFired * cost
				for kind := 1; kind <= NumTorpedoTypes && remaining > 0; kind++ {
					for p.NumBaseTorpedoes(kind) > 0 && remaining > 0 {
						p.SetNumBaseTorpedoes(kind, p.NumBaseTorpedoes(kind)-1)
						remaining--
					}
				}
			}
		}
	}
}

// torpedoCost looks up a launcher's per-torpedo cost, used to convert
// fired-torpedo counts into base-stock decrements. Defaults to 1 when
// the type is unknown so a loss is never silently dropped.
func torpedoCost(torpedoType int, list ShipList) (id, cost int) {
	if l, ok := list.Launcher(torpedoType); ok && l.Cost > 0 {
		return l.Id, l.Cost
	}
	return torpedoType, 1
}
