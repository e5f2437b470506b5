package sim

// Ability :
// Enumerates the non-trivial capabilities a Unit can carry. Each one is
// represented in the flag word (see object.go) by a pair of bits: a
// "set" bit meaning an explicit value is present, and a "value" bit
// meaning that value is on. When the set bit is clear the effective
// state is derived from race/host rules instead of the flag word.
type Ability int

const (
	PlanetImmunityAbility Ability = iota
	FullWeaponryAbility
	CommanderAbility
	TripleBeamKillAbility
	DoubleBeamChargeAbility
	DoubleTorpedoChargeAbility
	ElusiveAbility
	SquadronAbility
	ShieldGeneratorAbility
	CloakedBaysAbility
)

const (
	firstAbility = PlanetImmunityAbility
	lastAbility  = CloakedBaysAbility
)

// String :
// Human-readable label, used by the results API to describe a unit's
// nonstandard abilities without exposing the raw flag word.
func (a Ability) String() string {
	switch a {
	case PlanetImmunityAbility:
		return "Planet Immunity"
	case FullWeaponryAbility:
		return "Full Weaponry"
	case CommanderAbility:
		return "Commander"
	case TripleBeamKillAbility:
		return "3x Beam Kill"
	case DoubleBeamChargeAbility:
		return "2x Beam Charge"
	case DoubleTorpedoChargeAbility:
		return "2x Torp Charge"
	case ElusiveAbility:
		return "Elusive"
	case SquadronAbility:
		return "Squadron"
	case ShieldGeneratorAbility:
		return "Shield Generator"
	case CloakedBaysAbility:
		return "Cloaked Fighter Bays"
	default:
		return ""
	}
}

// DescribeAbilities :
// Joins the labels of every ability present in the flag word, in
// declaration order, or "none" if none are set. Mirrors the original
// describeFunctions helper.
func DescribeAbilities(flags int32) string {
	result := ""
	for a := firstAbility; a <= lastAbility; a++ {
		if hasAbilityBitSet(flags, a) {
			if result != "" {
				result += ", "
			}
			result += a.String()
		}
	}
	if result == "" {
		result = "none"
	}
	return result
}

func hasAbilityBitSet(flags int32, a Ability) bool {
	validBit, setBit := abilityBits(a)
	return flags&validBit != 0 && flags&setBit != 0
}
