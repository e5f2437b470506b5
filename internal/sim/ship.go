package sim

// NumTorpedoTypes mirrors the fixed-length per-type base-torpedo array
// carried by every Planet (ten torpedo systems in the source data).
const NumTorpedoTypes = 10

// Ship :
// A ship participant. Embeds the common Object header and adds the
// ship-only combat attributes of SPEC_FULL.md §3.1.
type Ship struct {
	Object

	Hull             int
	Mass             int
	BeamType         int
	NumBeams         int
	TorpedoType      int
	NumLaunchers     int
	NumBays          int
	Ammo             int
	Engine           int
	Crew             int
	Aggressiveness   Aggressiveness
	InterceptId      int
}

// NewShip returns a Ship with the source's default construction values.
func NewShip() Ship {
	return Ship{Object: NewObject(), Crew: 10}
}

// IsArmed reports whether the ship carries any beams, launchers or bays.
func (s Ship) IsArmed() bool {
	return s.NumBeams > 0 || s.NumLaunchers > 0 || s.NumBays > 0
}

// IsCloaked reports the Cloaked state bit.
func (s Ship) IsCloaked() bool { return s.Flags&flCloaked != 0 }

// SetCloaked sets or clears the Cloaked bit. Setting it cancels Kill
// aggressiveness and any intercept target; the converse (setting an
// intercept target) cancels Cloaked — enforced by SetInterceptId.
func (s *Ship) SetCloaked(on bool) {
	if on {
		s.Flags |= flCloaked
		if s.Aggressiveness == AggressivenessKill {
			s.Aggressiveness = AggressivenessPassive
		}
		s.InterceptId = 0
	} else {
		s.Flags &^= flCloaked
	}
	s.markDirty()
}

// SetInterceptId sets the intercept target. A non-zero target cancels
// Cloaked. A target equal to the ship's own Id is ignored (§3.1
// boundary: "intercept target equal to self is ignored").
func (s *Ship) SetInterceptId(id int) {
	if id == s.Id {
		return
	}
	s.InterceptId = id
	if id != 0 {
		s.Flags &^= flCloaked
	}
	s.markDirty()
}

// IsDeactivated reports the Deactivated state bit.
func (s Ship) IsDeactivated() bool { return s.Flags&flDeactivated != 0 }

// HasAbility reports whether the ship has ability a, deferring to
// hasImpliedAbility when the corresponding set-bit is clear.
func (s Ship) HasAbility(a Ability, list ShipList, config HostConfiguration) bool {
	valid, set := abilityBits(a)
	if s.Flags&valid != 0 {
		return s.Flags&set != 0
	}
	return s.hasImpliedAbility(a, list, config)
}

// hasImpliedAbility derives a ship's ability from its hull's functions
// and per-owner host rules when no explicit flag is present. The hull
// function catalogue itself lives in the ship list (out of scope for
// this engine beyond the lookup), so only the per-owner/host pieces the
// spec actually enumerates are implemented; anything else defaults off,
// matching the source's fail-closed behaviour for unassigned functions.
func (s Ship) hasImpliedAbility(a Ability, list ShipList, config HostConfiguration) bool {
	switch a {
	case TripleBeamKillAbility:
		return config.PlayerRaceNumber(s.Owner) == 5
	default:
		return false
	}
}
