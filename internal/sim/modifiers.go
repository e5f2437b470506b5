package sim

// GlobalModifiers :
// Commander-level bases computed once per run, before any fight, per
// SPEC_FULL.md §4.5. Indexed by player Id.
type GlobalModifiers struct {
	LevelBase map[int]int
}

// ComputeCommanderLevels finds, per owner, the maximum experience level
// of any non-deactivated Commander ship in the whole Setup, then
// propagates that base to each player's allies (when honor-alliances is
// on) by taking the max over itself and its allies.
func ComputeCommanderLevels(setup *Setup, opts Configuration, list ShipList, config HostConfiguration) GlobalModifiers {
	own := make(map[int]int)
	for i := range setup.Ships {
		s := &setup.Ships[i]
		if s.IsDeactivated() || s.Owner == 0 {
			continue
		}
		if s.HasAbility(CommanderAbility, list, config) && s.ExperienceLevel > own[s.Owner] {
			own[s.Owner] = s.ExperienceLevel
		}
	}

	base := make(map[int]int, len(own))
	for player, lvl := range own {
		if lvl > base[player] {
			base[player] = lvl
		}
		if opts.HonorAlliances {
			for ally := 1; ally <= maxPlayers; ally++ {
				if ally != player && opts.Alliance(player, ally) && lvl > base[ally] {
					base[ally] = lvl
				}
			}
		}
	}
	return GlobalModifiers{LevelBase: base}
}

// fightHelpers carries the per-fight modifiers computed from every
// active ship in the Setup other than the two about to be paired.
type fightHelpers struct {
	numShieldGenerators int
	cloakedBaysDonor    *Ship
}

// computeFightHelpers scans the Setup excluding the two combatant Ids
// and returns, for `side` owner, the active shield-generator count
// (capped at 2) and the first cloaked-bays donor in battle order.
func computeFightHelpers(setup *Setup, side int, excludeA, excludeB int, list ShipList, config HostConfiguration) fightHelpers {
	var h fightHelpers
	// Ships compare the same way under every host family (battleOrderLess
	// does not look at the mode), so the Host ordering is the battle order.
	for _, s := range setup.HostBattleOrder(list, config, VcrHost) {
		if s.Id == excludeA || s.Id == excludeB {
			continue
		}
		if s.IsDeactivated() || s.Owner != side {
			continue
		}
		if s.HasAbility(ShieldGeneratorAbility, list, config) && h.numShieldGenerators < 2 {
			h.numShieldGenerators++
		}
		if h.cloakedBaysDonor == nil && s.IsCloaked() && s.NumBays > 0 &&
			s.HasAbility(CloakedBaysAbility, list, config) {
			h.cloakedBaysDonor = s
		}
	}
	return h
}
