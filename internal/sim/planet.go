package sim

// Planet :
// The single optional planet participant. Embeds the common Object
// header and adds the planet-only combat attributes of SPEC_FULL.md
// §3.1.
type Planet struct {
	Object

	Defense         int
	BaseDefense     int
	BaseDamage      int
	BaseBeamTech    int
	BaseTorpedoTech int
	BaseFighters    int
	baseTorpedoes   [NumTorpedoTypes]int
}

// NewPlanet returns a Planet with the source's default construction
// values.
func NewPlanet() Planet {
	p := Planet{Object: NewObject(), Defense: 10, BaseDefense: 10, BaseTorpedoTech: 1}
	return p
}

// NumBaseTorpedoes returns the base-stored torpedo count of the given
// type (1-based), or 0 for a type outside the table — an
// out-of-range read is a silent no-op per SPEC_FULL.md §A.3.
func (p Planet) NumBaseTorpedoes(kind int) int {
	if kind < 1 || kind > NumTorpedoTypes {
		return 0
	}
	return p.baseTorpedoes[kind-1]
}

// SetNumBaseTorpedoes sets the base-stored torpedo count of the given
// type. A type outside the table is a silent no-op.
func (p *Planet) SetNumBaseTorpedoes(kind, amount int) {
	if kind < 1 || kind > NumTorpedoTypes {
		return
	}
	if p.baseTorpedoes[kind-1] != amount {
		p.baseTorpedoes[kind-1] = amount
		p.markDirty()
	}
}

// NumBaseTorpedoesAsType converts the total base-stored torpedo stock
// (of every type) into an equivalent count of the given type by cost,
// as used when selecting a single torpedo system for a PHost-family
// planet's combat loadout (§4.4.4).
func (p Planet) NumBaseTorpedoesAsType(kind int, list ShipList) int32 {
	var totalCost int32
	for i := 1; i <= NumTorpedoTypes; i++ {
		if l, ok := list.Launcher(i); ok {
			totalCost += int32(p.NumBaseTorpedoes(i)) * int32(l.Cost)
		}
	}
	if l, ok := list.Launcher(kind); ok && l.Cost != 0 {
		totalCost /= int32(l.Cost)
	}
	return totalCost
}

// HasAbility reports whether the planet has ability a, deferring to the
// planet's implied-ability rules when unset.
func (p Planet) HasAbility(a Ability, opts Configuration, config HostConfiguration) bool {
	valid, set := abilityBits(a)
	if p.Flags&valid != 0 {
		return p.Flags&set != 0
	}
	return p.hasImpliedAbility(a, opts, config)
}

// hasImpliedAbility mirrors game::sim::Planet::hasImpliedAbility: race 5
// owners imply 3x beam kill; race 4 planets imply 2x beam charge under
// NuHost; every other planet ability defaults off.
func (p Planet) hasImpliedAbility(a Ability, opts Configuration, config HostConfiguration) bool {
	switch a {
	case TripleBeamKillAbility:
		return config.PlayerRaceNumber(p.Owner) == 5
	case DoubleBeamChargeAbility:
		return opts.Mode == VcrNuHost && config.PlayerRaceNumber(p.Owner) == 4
	default:
		return false
	}
}
