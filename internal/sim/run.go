package sim

// RunSimulation plays one complete battle for a Setup and folds the
// outcome into the per-unit aggregators, per SPEC_FULL.md §4.8/C11.
// shipResults must carry one *UnitResult per ship Id the caller wants
// tracked (nil entries, or missing Ids, are simply skipped); planetResult
// may be nil if the Setup carries no planet or its result is not wanted.
//
// Unlike the historical source's per-run Statistic merge followed by a
// single post-run aggregation, each individual VCR battle is folded into
// its UnitResult directly as it completes — a unit that fights more than
// once in a run (intercept pass, then general combat order, then a
// ship-vs-planet pass) accumulates one NumFights increment per battle
// rather than one per run. This is a deliberate simplification recorded
// in DESIGN.md; it trades the source's intra-run merge bookkeeping for a
// flat per-battle fold that is far simpler to reason about and test.
func RunSimulation(setup *Setup, result *Result,
	shipResults map[int]*UnitResult, planetResult *UnitResult,
	opts Configuration, list ShipList, config HostConfiguration,
	engine PlaybackEngine, rng RandomNumberGenerator) {

	if opts.RandomizeFCodesOnEveryFight {
		setup.SetRandomFriendlyCodes(rng)
	}

	// result.Battles is allocated by Result.Init; every driver appends to
	// that one handle so UnitResult.Item specimens (§3.5) stay valid.
	switch opts.Mode {
	case VcrHost, VcrNuHost:
		SimulateHost(setup, opts, result, shipResults, planetResult, list, config, engine, rng)
	case VcrFLAK:
		// Not implemented, matching the historical source's own
		// CONF_FLAK_SUPPORT-gated dead code (SPEC_FULL.md §C): the mode
		// is accepted as a legal configuration value but plays no battle.
	default:
		SimulatePHost(setup, opts, result, shipResults, planetResult, list, config, engine, rng)
	}
}
