package sim

// Item :
// A min/max/weighted-total statistics counter, per SPEC_FULL.md §3.5.
// The specimen handles point at the run whose battle database produced
// the current extreme; they are shared references that keep that run's
// Database alive for later inspection (SPEC_FULL.md design note on
// battle-database handles).
type Item struct {
	Min, Max    int32
	TotalScaled int32
	MinSpecimen *Database
	MaxSpecimen *Database
}

// InvertItem produces the Item that would have resulted if every value
// x added to orig had instead been subtractFrom - x, given that orig
// was accumulated over a total weight of scale. Used to derive e.g.
// "fighters left" from an Item tracking "fighters lost".
func InvertItem(orig Item, subtractFrom, scale int32) Item {
	return Item{
		Min:         subtractFrom - orig.Max,
		Max:         subtractFrom - orig.Min,
		TotalScaled: subtractFrom*scale - orig.TotalScaled,
		MinSpecimen: orig.MaxSpecimen,
		MaxSpecimen: orig.MinSpecimen,
	}
}

func (it *Item) add(value int32, weight int32, seeding bool, db *Database) {
	if seeding {
		it.Min, it.Max = value, value
		it.MinSpecimen, it.MaxSpecimen = db, db
	} else {
		if value < it.Min {
			it.Min = value
			it.MinSpecimen = db
		}
		if value > it.Max {
			it.Max = value
			it.MaxSpecimen = db
		}
	}
	it.TotalScaled += value * weight
}

func changeItemWeight(it *Item, oldWeight, newWeight int32) {
	it.TotalScaled = it.TotalScaled * newWeight / oldWeight
}

// UnitResult :
// Per-slot accumulator across many runs, per SPEC_FULL.md §3.5/§4.9.
type UnitResult struct {
	NumFightsWon int
	NumFights    int
	NumCaptures  int

	NumTorpedoesFired Item
	NumFightersLost   Item
	Damage            Item
	Shield            Item
	CrewLeftOrDefenseLost Item
	NumTorpedoHits    Item
	MinFightersAboard Item
}

// ChangeWeight rescales every Item's TotalScaled by newWeight/oldWeight
// so partial sums remain comparable to the new reference weight. Min
// and max are never altered.
func (u *UnitResult) ChangeWeight(oldWeight, newWeight int32) {
	changeItemWeight(&u.NumTorpedoesFired, oldWeight, newWeight)
	changeItemWeight(&u.NumFightersLost, oldWeight, newWeight)
	changeItemWeight(&u.Damage, oldWeight, newWeight)
	changeItemWeight(&u.Shield, oldWeight, newWeight)
	changeItemWeight(&u.CrewLeftOrDefenseLost, oldWeight, newWeight)
	changeItemWeight(&u.NumTorpedoHits, oldWeight, newWeight)
	changeItemWeight(&u.MinFightersAboard, oldWeight, newWeight)
}

// AddShipResult folds one ship's before/after state into u, per
// SPEC_FULL.md §4.9. res.ThisBattleIndex == 0 is the seeding call.
func (u *UnitResult) AddShipResult(oldShip, newShip Ship, stat Statistic, res Result) {
	seeding := res.ThisBattleIndex == 0
	w := res.ThisBattleWeight
	db := res.Battles

	u.NumFights++
	if newShip.Owner == oldShip.Owner {
		u.NumFightsWon++
	} else if newShip.Owner != 0 {
		u.NumCaptures++
	}

	var torpedoesFired, fightersLost int32
	if oldShip.NumLaunchers > 0 {
		torpedoesFired = int32(oldShip.Ammo - newShip.Ammo)
	}
	if oldShip.NumBays > 0 {
		fightersLost = int32(oldShip.Ammo - newShip.Ammo)
	}

	u.NumTorpedoesFired.add(torpedoesFired, w, seeding, db)
	u.NumFightersLost.add(fightersLost, w, seeding, db)
	u.Damage.add(int32(newShip.Damage), w, seeding, db)
	u.Shield.add(int32(newShip.Shield), w, seeding, db)
	u.CrewLeftOrDefenseLost.add(int32(newShip.Crew), w, seeding, db)
	u.NumTorpedoHits.add(int32(stat.NumTorpedoHits), w, seeding, db)
	u.MinFightersAboard.add(int32(stat.MinFightersAboard), w, seeding, db)
}

// AddPlanetResult folds one planet's before/after state into u.
func (u *UnitResult) AddPlanetResult(oldPlanet, newPlanet Planet, stat Statistic, res Result) {
	seeding := res.ThisBattleIndex == 0
	w := res.ThisBattleWeight
	db := res.Battles

	u.NumFights++
	if newPlanet.Owner == oldPlanet.Owner {
		u.NumFightsWon++
	} else if newPlanet.Owner != 0 {
		u.NumCaptures++
	}

	fightersLost := int32(oldPlanet.BaseFighters - newPlanet.BaseFighters)
	defenseLost := int32(oldPlanet.Defense - newPlanet.Defense)

	u.NumTorpedoesFired.add(0, w, seeding, db)
	u.NumFightersLost.add(fightersLost, w, seeding, db)
	u.Damage.add(int32(newPlanet.Damage), w, seeding, db)
	u.Shield.add(int32(newPlanet.Shield), w, seeding, db)
	u.CrewLeftOrDefenseLost.add(defenseLost, w, seeding, db)
	u.NumTorpedoHits.add(int32(stat.NumTorpedoHits), w, seeding, db)
	u.MinFightersAboard.add(int32(stat.MinFightersAboard), w, seeding, db)
}
