package sim

// Flag bits of the 32-bit ability/state word carried by every Object.
// The paired set/value scheme must be preserved exactly: saved setups
// persist these bits, so they are never split into separate booleans.
const (
	flRandomFC          int32 = 1
	flRandomFC1         int32 = 2
	flRandomFC2         int32 = 4
	flRandomFC3         int32 = 8
	flRatingOverride    int32 = 16
	flCloaked           int32 = 32
	flDeactivated       int32 = 64
	flPlanetImmunity    int32 = 128
	flPlanetImmunitySet int32 = 256
	flFullWeaponry      int32 = 512
	flFullWeaponrySet   int32 = 1024
	flCommander         int32 = 2048
	flCommanderSet      int32 = 4096

	flTripleBeamKill      int32 = 1 * 65536
	flTripleBeamKillSet   int32 = 2 * 65536
	flDoubleBeamCharge    int32 = 4 * 65536
	flDoubleBeamChargeSet int32 = 8 * 65536
	flDoubleTorpCharge    int32 = 16 * 65536
	flDoubleTorpChargeSet int32 = 32 * 65536
	flElusive             int32 = 64 * 65536
	flElusiveSet          int32 = 128 * 65536
	flSquadron            int32 = 256 * 65536
	flSquadronSet         int32 = 512 * 65536
	flShieldGenerator     int32 = 1024 * 65536
	flShieldGeneratorSet  int32 = 2048 * 65536
	flCloakedBays         int32 = 4096 * 65536
	flCloakedBaysSet      int32 = 8192 * 65536

	flRandomDigits    = flRandomFC1 | flRandomFC2 | flRandomFC3
	flFunctionSetBits = flPlanetImmunitySet | flCommanderSet | flFullWeaponrySet |
		flTripleBeamKillSet | flDoubleBeamChargeSet | flDoubleTorpChargeSet |
		flElusiveSet | flSquadronSet | flShieldGeneratorSet | flCloakedBaysSet
)

// abilityBits returns the (validBit, setBit) pair of an ability in the
// flag word. An unknown ability gets (0, 0), so hasAbility defers to
// hasImpliedAbility for it.
func abilityBits(a Ability) (valid, set int32) {
	switch a {
	case PlanetImmunityAbility:
		return flPlanetImmunitySet, flPlanetImmunity
	case FullWeaponryAbility:
		return flFullWeaponrySet, flFullWeaponry
	case CommanderAbility:
		return flCommanderSet, flCommander
	case TripleBeamKillAbility:
		return flTripleBeamKillSet, flTripleBeamKill
	case DoubleBeamChargeAbility:
		return flDoubleBeamChargeSet, flDoubleBeamCharge
	case DoubleTorpedoChargeAbility:
		return flDoubleTorpChargeSet, flDoubleTorpCharge
	case ElusiveAbility:
		return flElusiveSet, flElusive
	case SquadronAbility:
		return flSquadronSet, flSquadron
	case ShieldGeneratorAbility:
		return flShieldGeneratorSet, flShieldGenerator
	case CloakedBaysAbility:
		return flCloakedBaysSet, flCloakedBays
	default:
		return 0, 0
	}
}

// Aggressiveness :
// A ship's combat intent. Either one of the named states or a player Id
// meaning "primary enemy" — modelled the same way the source keeps it,
// as one small integer field rather than an enum plus a separate target.
type Aggressiveness int

const (
	AggressivenessPassive Aggressiveness = -1
	AggressivenessKill    Aggressiveness = -2
	AggressivenessNoFuel  Aggressiveness = -3
)

// IsPrimaryEnemy reports whether this aggressiveness names a specific
// opposing player rather than one of the fixed states.
func (a Aggressiveness) IsPrimaryEnemy() bool {
	return a >= 0
}

// Object :
// Common header shared by Ship and Planet: identity, editable combat
// attributes, the ability flag word, and FLAK rating overrides. Objects
// hold no reference to the ship list or host configuration — those are
// parameters to every operation that consults environment data, so a
// Setup can be serialised without capturing its environment.
type Object struct {
	Id                       int
	Name                     string
	FriendlyCode             string
	Damage                   int
	Shield                   int
	Owner                    int
	ExperienceLevel          int
	Flags                    int32
	FlakRatingOverride       int32
	FlakCompensationOverride int

	changed bool
}

// NewObject returns an Object with the source's default construction
// values (a generic, inert participant).
func NewObject() Object {
	return Object{
		Id:           1,
		Name:         "?",
		FriendlyCode: "???",
		Shield:       100,
		Owner:        12,
	}
}

func (o *Object) markDirty() { o.changed = true }

// MarkClean clears the dirty flag after a batch of edits has been
// observed by a caller (e.g. a UI layer watching for changes).
func (o *Object) MarkClean() { o.changed = false }

// IsDirty reports whether any setter has touched this object since the
// last MarkClean.
func (o Object) IsDirty() bool { return o.changed }

// SetId sets the identifier and marks the object dirty.
func (o *Object) SetId(id int) { o.Id = id; o.markDirty() }

// SetFriendlyCode sets the friendly code and marks the object dirty.
func (o *Object) SetFriendlyCode(fc string) { o.FriendlyCode = fc; o.markDirty() }

// SetDamage sets the damage level and marks the object dirty.
func (o *Object) SetDamage(d int) { o.Damage = d; o.markDirty() }

// SetShield sets the shield level and marks the object dirty.
func (o *Object) SetShield(s int) { o.Shield = s; o.markDirty() }

// SetOwner sets the owning player and marks the object dirty.
func (o *Object) SetOwner(owner int) { o.Owner = owner; o.markDirty() }

// SetFlags replaces the ability/state flag word and marks the object dirty.
func (o *Object) SetFlags(flags int32) { o.Flags = flags; o.markDirty() }

// HasAnyNonstandardAbility reports whether any ability-set bit is on.
func (o Object) HasAnyNonstandardAbility() bool {
	return o.Flags&flFunctionSetBits != 0
}

// SetRandomFriendlyCodeFlags scans the current friendly code, sets the
// RandomDigit bit for each position holding '#', and sets RandomFC iff
// any such position exists. Returns whether RandomFC is now on.
func (o *Object) SetRandomFriendlyCodeFlags() bool {
	newFlags := o.Flags &^ (flRandomFC | flRandomDigits)
	for i := 0; i < 3 && i < len(o.FriendlyCode); i++ {
		if o.FriendlyCode[i] == '#' {
			newFlags |= flRandomFC1 << uint(i)
		}
	}
	if newFlags&flRandomDigits != 0 {
		newFlags |= flRandomFC
	}
	o.SetFlags(newFlags)
	return newFlags&flRandomFC != 0
}

// SetRandomFriendlyCode replaces the friendly-code characters selected
// by the RandomDigit bits (all three if none selected) with uniformly
// random ASCII digits, drawn from rng. Untouched positions, and the
// call entirely, are no-ops when RandomFC is not set.
func (o *Object) SetRandomFriendlyCode(rng RandomNumberGenerator) {
	if o.Flags&flRandomFC == 0 {
		return
	}
	which := o.Flags & flRandomDigits
	if which == 0 {
		which = flRandomDigits
	}
	code := []byte(o.FriendlyCode)
	for i := 0; i < 3; i++ {
		for len(code) <= i {
			code = append(code, ' ')
		}
		if which&(flRandomFC1<<uint(i)) != 0 {
			code[i] = byte('0' + rng.Next(10))
		}
	}
	o.FriendlyCode = string(code)
	o.markDirty()
}
