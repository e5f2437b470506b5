package sim

import "github.com/google/uuid"

// Result :
// Per single-run metadata (SPEC_FULL.md §3.4). RunID is a spare
// google/uuid identity slot: Init leaves it zero, and the results API
// keys its lookups on a series id of its own, not on this field.
type Result struct {
	RunID             uuid.UUID
	ThisBattleWeight  int32
	TotalBattleWeight int32
	SeriesLength      int32
	ThisBattleIndex   int32
	Battles           *Database
}

// Init initialises a Result for the given battle index under config,
// per game::sim::Result::init. Series length starts at 118 for NuHost,
// 110 for every other classic/PHost family.
func (r *Result) Init(config Configuration, thisBattleIndex int32) {
	r.ThisBattleIndex = thisBattleIndex
	r.ThisBattleWeight = 1
	r.TotalBattleWeight = 1
	if config.Mode == VcrNuHost {
		r.SeriesLength = 118
	} else {
		r.SeriesLength = 110
	}
	r.Battles = &Database{}
}

// AddSeries records that a probabilistic branch with `length` distinct
// outcomes was taken, multiplies SeriesLength by length, and returns
// which of the `length` buckets this run's index falls into.
func (r *Result) AddSeries(length int32) int32 {
	result := r.ThisBattleIndex / r.SeriesLength
	r.SeriesLength *= length
	return result % length
}

// ChangeWeightTo rescales ThisBattleWeight so the new denominator is
// newWeight, preserving the run's relative probability.
func (r *Result) ChangeWeightTo(newWeight int32) {
	r.ThisBattleWeight = r.ThisBattleWeight * newWeight / r.TotalBattleWeight
	r.TotalBattleWeight = newWeight
}
