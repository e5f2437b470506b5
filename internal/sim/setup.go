package sim

import "sort"

// SortKey selects the comparator used by Setup.Sort.
type SortKey int

const (
	SortById SortKey = iota
	SortByOwner
	SortByHull
	SortByBattleOrder
	SortByName
)

// Setup :
// An ordered sequence of ships plus at most one planet, per
// SPEC_FULL.md §3.2. The zero value is an empty Setup.
type Setup struct {
	Ships  []Ship
	Planet *Planet
}

// Clone returns a deep copy of s, independent of the receiver's
// backing arrays. Used by the run-series harness to hand each worker
// its own mutable Setup while a single template is shared read-only
// across the series (§4.9/C12).
func (s *Setup) Clone() *Setup {
	out := &Setup{Ships: make([]Ship, len(s.Ships))}
	copy(out.Ships, s.Ships)
	if s.Planet != nil {
		p := *s.Planet
		out.Planet = &p
	}
	return out
}

// AddShip appends a ship to the Setup.
func (s *Setup) AddShip(ship Ship) { s.Ships = append(s.Ships, ship) }

// SetPlanet installs or replaces the Setup's single planet.
func (s *Setup) SetPlanet(p Planet) { s.Planet = &p }

// RemovePlanet clears the Setup's planet, if any.
func (s *Setup) RemovePlanet() { s.Planet = nil }

// RemoveShip removes the ship at the given index. Out-of-range indices
// are a silent no-op per SPEC_FULL.md §A.3.
func (s *Setup) RemoveShip(index int) {
	if index < 0 || index >= len(s.Ships) {
		return
	}
	s.Ships = append(s.Ships[:index], s.Ships[index+1:]...)
}

// Swap exchanges two ships by index. Out-of-range indices are a no-op.
func (s *Setup) Swap(i, j int) {
	if i < 0 || i >= len(s.Ships) || j < 0 || j >= len(s.Ships) {
		return
	}
	s.Ships[i], s.Ships[j] = s.Ships[j], s.Ships[i]
}

// Duplicate appends a copy of the ship at index, with a new Id assigned
// by the caller via the returned pointer. Out-of-range indices return nil.
func (s *Setup) Duplicate(index int) *Ship {
	if index < 0 || index >= len(s.Ships) {
		return nil
	}
	clone := s.Ships[index]
	s.Ships = append(s.Ships, clone)
	return &s.Ships[len(s.Ships)-1]
}

// FindShipById returns the ship with the given Id, or nil if none.
func (s *Setup) FindShipById(id int) *Ship {
	for i := range s.Ships {
		if s.Ships[i].Id == id {
			return &s.Ships[i]
		}
	}
	return nil
}

// InvolvedPlayers returns the set of non-zero owners across every ship
// and the planet, if present.
func (s Setup) InvolvedPlayers() map[int]bool {
	players := make(map[int]bool)
	for _, sh := range s.Ships {
		if sh.Owner != 0 {
			players[sh.Owner] = true
		}
	}
	if s.Planet != nil && s.Planet.Owner != 0 {
		players[s.Planet.Owner] = true
	}
	return players
}

// InvolvedTeams maps InvolvedPlayers through a team table.
func (s Setup) InvolvedTeams(teams TeamSettings) map[int]bool {
	out := make(map[int]bool)
	for p := range s.InvolvedPlayers() {
		out[teams.PlayerTeam(p)] = true
	}
	return out
}

// Sort orders the ships by the chosen key. Sort is always stable, and
// always a permutation of the input (Go's sort.SliceStable guarantees
// both).
func (s *Setup) Sort(key SortKey, list ShipList, config HostConfiguration, mode VcrMode) {
	less := func(i, j int) bool {
		a, b := s.Ships[i], s.Ships[j]
		switch key {
		case SortByOwner:
			return a.Owner < b.Owner
		case SortByHull:
			return a.Hull < b.Hull
		case SortByName:
			return a.Name < b.Name
		case SortByBattleOrder:
			return battleOrderLess(&a, &b, mode, list, config)
		default:
			return a.Id < b.Id
		}
	}
	sort.SliceStable(s.Ships, less)
}

// BattleOrderEntry is one slot of a combined ship+planet battle order:
// exactly one of Ship/PlanetObj is non-nil.
type BattleOrderEntry struct {
	Obj      *Object
	Ship     *Ship
	PlanetObj *Planet
}

// BattleOrder returns the combined ship+planet battle-order list used
// by the PHost-family general pass (§4.8 step 5): ties on friendly-code
// value and Id are broken by putting ships before the planet. Deactivated
// ships are excluded, per §4.8.
func (s *Setup) BattleOrder(mode VcrMode) []BattleOrderEntry {
	entries := make([]BattleOrderEntry, 0, len(s.Ships)+1)
	for i := range s.Ships {
		if s.Ships[i].IsDeactivated() {
			continue
		}
		entries = append(entries, BattleOrderEntry{Obj: &s.Ships[i].Object, Ship: &s.Ships[i]})
	}
	if s.Planet != nil {
		entries = append(entries, BattleOrderEntry{Obj: &s.Planet.Object, PlanetObj: s.Planet})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		ao, bo := battleOrderValue(entries[i].Obj, mode), battleOrderValue(entries[j].Obj, mode)
		if ao != bo {
			return ao < bo
		}
		if entries[i].Obj.Id != entries[j].Obj.Id {
			return entries[i].Obj.Id < entries[j].Obj.Id
		}
		return entries[i].Ship != nil && entries[j].Ship == nil
	})
	return entries
}

// HostBattleOrder returns the active (non-deactivated) ships only,
// ordered by the Host/NuHost battle-order comparator (§4.8 step 1).
func (s *Setup) HostBattleOrder(list ShipList, config HostConfiguration, mode VcrMode) []*Ship {
	ships := make([]*Ship, 0, len(s.Ships))
	for i := range s.Ships {
		if !s.Ships[i].IsDeactivated() {
			ships = append(ships, &s.Ships[i])
		}
	}
	sort.SliceStable(ships, func(i, j int) bool {
		return battleOrderLess(ships[i], ships[j], mode, list, config)
	})
	return ships
}

// SetRandomFriendlyCodes re-rolls every digit of every participant's
// friendly code that carries a random-digit marker, per
// SPEC_FULL.md §4.1/Configuration.RandomizeFCodesOnEveryFight. A
// participant with no random-digit marker is left untouched.
func (s *Setup) SetRandomFriendlyCodes(rng RandomNumberGenerator) {
	for i := range s.Ships {
		s.Ships[i].SetRandomFriendlyCode(rng)
	}
	if s.Planet != nil {
		s.Planet.SetRandomFriendlyCode(rng)
	}
}

// InterceptOrder returns the active ships sorted by descending Id, the
// order the intercept-attack pre-pass scans in (§4.8 step 2).
func (s *Setup) InterceptOrder() []*Ship {
	ships := make([]*Ship, 0, len(s.Ships))
	for i := range s.Ships {
		if !s.Ships[i].IsDeactivated() {
			ships = append(ships, &s.Ships[i])
		}
	}
	sort.SliceStable(ships, func(i, j int) bool { return ships[i].Id > ships[j].Id })
	return ships
}
