package harness

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"battlesim/internal/locker"
	"battlesim/internal/sim"
	"battlesim/pkg/duration"
	"battlesim/pkg/logger"
)

// Options configures one run series, per SPEC_FULL.md §4.9/C12.
//
// NumRuns is the series length: under SeedControl this should equal
// the Configuration's implied seed-space size (110 or 118) so every
// weighted bucket is visited exactly once; otherwise it is simply how
// many independent random runs to play.
//
// Workers bounds how many runs execute concurrently. Zero or negative
// defaults to 1 (fully sequential).
type Options struct {
	NumRuns int
	Workers int
}

// SeriesResult is the aggregated outcome of a run series: one
// UnitResult per ship Id present in the template Setup, plus the
// planet's UnitResult if the template carries one.
type SeriesResult struct {
	ShipResults  map[int]*sim.UnitResult
	PlanetResult *sim.UnitResult
	Elapsed      duration.Duration
}

// RunSeries plays NumRuns independent battles from the same starting
// Setup and folds every battle's outcome into a shared per-unit
// aggregate, per SPEC_FULL.md §4.9. template is never mutated; each
// run clones it before playing.
//
// Runs execute across a worker pool sized by opts.Workers. Because a
// single run's battles touch every participant in the Setup, each
// worker claims a lock per participant slot (ship Id, or "planet")
// before folding its run's results into the shared aggregates, using
// the same per-resource locking pattern the teacher's upgrade-action
// update path uses to let concurrent callers share one table without
// serializing on a single table-wide mutex.
func RunSeries(template *sim.Setup, cfg sim.Configuration, list sim.ShipList,
	hostConfig sim.HostConfiguration, engine sim.PlaybackEngine,
	opts Options, log logger.Logger) (*SeriesResult, error) {

	if opts.NumRuns <= 0 {
		return nil, fmt.Errorf("run series requires NumRuns > 0, got %d", opts.NumRuns)
	}
	start := time.Now()
	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}

	series := &SeriesResult{ShipResults: make(map[int]*sim.UnitResult, len(template.Ships))}
	for i := range template.Ships {
		series.ShipResults[template.Ships[i].Id] = &sim.UnitResult{}
	}
	if template.Planet != nil {
		series.PlanetResult = &sim.UnitResult{}
	}

	locks := locker.NewConcurrentLocker(log)

	slots := make([]string, 0, len(template.Ships)+1)
	for i := range template.Ships {
		slots = append(slots, fmt.Sprintf("ship:%d", template.Ships[i].Id))
	}
	if template.Planet != nil {
		slots = append(slots, "planet")
	}
	sort.Strings(slots)

	indices := make(chan int32, opts.NumRuns)
	for i := int32(0); i < int32(opts.NumRuns); i++ {
		indices <- i
	}
	close(indices)

	var wg sync.WaitGroup
	var firstErr error
	var errMu sync.Mutex

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			rng := sim.NewRNG(uint32(workerID) + 1)
			for idx := range indices {
				if err := runOne(template, cfg, list, hostConfig, engine, rng, idx, series, locks, slots, log); err != nil {
					errMu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					errMu.Unlock()
				}
			}
		}(w)
	}
	wg.Wait()

	series.Elapsed = duration.NewDuration(time.Since(start))
	log.Trace(logger.Info, "harness", fmt.Sprintf("run series of %d runs completed in %s", opts.NumRuns, series.Elapsed))

	return series, firstErr
}

// runOne plays a single battle index against a fresh clone of template
// and folds it into the shared aggregates under the slots' locks.
func runOne(template *sim.Setup, cfg sim.Configuration, list sim.ShipList,
	hostConfig sim.HostConfiguration, engine sim.PlaybackEngine,
	rng sim.RandomNumberGenerator, idx int32, series *SeriesResult,
	locks *locker.ConcurrentLocker, slots []string, log logger.Logger) (err error) {

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("run %d panicked: %v", idx, r)
			log.Trace(logger.Error, "harness", err.Error())
		}
	}()

	acquired := make([]*locker.Lock, 0, len(slots))
	for _, slot := range slots {
		l := locks.Acquire(slot)
		l.Lock()
		acquired = append(acquired, l)
	}
	defer func() {
		for _, l := range acquired {
			l.Release()
			locks.Release(l)
		}
	}()

	setup := template.Clone()
	var result sim.Result
	result.Init(cfg, idx)

	sim.RunSimulation(setup, &result, series.ShipResults, series.PlanetResult, cfg, list, hostConfig, engine, rng)
	log.Trace(logger.Debug, "harness", fmt.Sprintf("run %d complete (seed series length %d)", idx, result.SeriesLength))
	return nil
}
