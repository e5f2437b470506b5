package locker

import (
	"fmt"
	"battlesim/pkg/logger"
	"sync"

	"github.com/spf13/viper"
)

// ConcurrentLocker hands out per-slot locks from a fixed pool, so
// RunSeries' workers (internal/harness) can fold concurrent battle
// results into the shared per-unit aggregates without serializing on
// one global mutex. A "slot" is a participant identifier — "ship:<id>"
// or "planet" — not a DB row, but the pooling trick is the same one
// the teacher uses for concurrent per-player upgrade-action updates:
// a small, configurable number of locks are multiplexed across an
// unbounded number of slot names, each slot mapped to at most one lock
// at a time.
//
// A worker that needs to fold its run's outcome into ship N's
// UnitResult calls Acquire("ship:N"); if another worker already holds
// a lock on that slot, Acquire returns the same *Lock (bumping its use
// count) instead of handing out a second one, so two workers never
// update the same aggregate concurrently. Acquire blocks only when
// every lock in the pool is already assigned to some *other* slot.
//
// The `locker` mutex guards locks/availableLocks/registered below
// against concurrent Acquire/Release calls.
//
// The `locks` slice is the fixed pool of *Lock instances multiplexed
// across slot names.
//
// The `availableLocks` channel holds the indices of pool entries not
// currently assigned to any slot; Acquire reads from it (blocking if
// empty) when a slot has no lock yet.
//
// The `registered` map tracks which pool index currently serves which
// slot name, so a second Acquire for an already-locked slot can find
// and reuse it instead of waiting on availableLocks.
//
// The `cout` logger reports acquisition/release churn at Debug level.
type ConcurrentLocker struct {
	locker         sync.Mutex
	locks          []*Lock
	availableLocks chan int
	registered     map[string]int
	cout           logger.Logger
}

// Lock guards one participant slot ("ship:<id>" or "planet") against
// concurrent aggregate folds: a worker calls Lock before writing into
// the slot's UnitResult and Release once done, serializing workers
// that landed on the same slot in the same RunSeries call.
//
// The `id` is this lock's index in the ConcurrentLocker's pool, or -1
// while the lock is not assigned to any slot.
//
// The `res` is the slot name currently assigned to this lock, cleared
// back to "" when the last user releases it.
//
// The `use` count is how many workers currently hold a reference to
// this lock (via ConcurrentLocker.Acquire); the lock only returns to
// the available pool once it drops to zero.
//
// The `waiter` channel is the actual mutual-exclusion primitive: it
// holds exactly one token, taken by Lock and put back by Release.
type Lock struct {
	id     int
	res    string
	use    int
	waiter chan struct{}
}

// lockPoolConfig holds the tunable size of a ConcurrentLocker's pool.
//
// The `LockCount` is how many distinct slots can be locked
// concurrently before Acquire starts blocking new slots on a release.
// Defaults to 10, generous for a single RunSeries call whose slot
// count is the participant count (rarely more than a few dozen ships
// plus one planet).
type lockPoolConfig struct {
	LockCount int
}

// parseLockPoolConfig reads Concurrent.LockCount from the process's
// viper configuration (pkg/arguments), falling back to the default
// when unset.
func parseLockPoolConfig() lockPoolConfig {
	config := lockPoolConfig{
		LockCount: 10,
	}

	if viper.IsSet("Concurrent.LockCount") {
		config.LockCount = viper.GetInt("Concurrent.LockCount")
	}

	return config
}

// NewConcurrentLocker builds a ConcurrentLocker sized from the
// process configuration, logging acquisition/release churn through
// log.
func NewConcurrentLocker(log logger.Logger) *ConcurrentLocker {
	config := parseLockPoolConfig()

	pool := make([]*Lock, config.LockCount)
	ids := make(chan int, config.LockCount)

	for id := range pool {
		pool[id] = &Lock{
			id:     -1,
			res:    "",
			use:    0,
			waiter: make(chan struct{}, 1),
		}
		pool[id].waiter <- struct{}{}

		ids <- id
	}

	return &ConcurrentLocker{
		locker:         sync.Mutex{},
		locks:          pool,
		availableLocks: ids,
		registered:     make(map[string]int),
		cout:           log,
	}
}

// Acquire returns the *Lock assigned to slot, registering a fresh one
// from the pool if none is assigned yet. Two calls with the same slot
// (from two workers racing to fold into the same ship's UnitResult)
// return the same *Lock, with its use count bumped, so a later
// Release only returns it to the pool once every holder is done with
// it. Acquire blocks only when slot has no lock yet and the pool is
// fully assigned to other slots.
func (cl *ConcurrentLocker) Acquire(resource string) *Lock {
	// Acquire the top level lock and make sure that we release
	// it whatever happens.
	var l *Lock

	// Check whether a lock already exists for this resource: if
	// this is the case we will increase its use count by one and
	// return it.
	func() {
		cl.locker.Lock()
		defer cl.locker.Unlock()

		// Check whether a lock already exists for this resource.
		id, ok := cl.registered[resource]
		if ok {
			// Return this lock and increase the use count.
			l = cl.locks[id]
			l.use++

			cl.cout.Trace(logger.Debug, "locker", fmt.Sprintf("Adding user to resource \"%s\" (id: %d, usage: %d, available: %d)", l.res, l.id, l.use, len(cl.availableLocks)))
		}
	}()

	if l != nil {
		return l
	}

	// No lock already exists for this locker, we need to create
	// a new one. To do so we will wait on the internal channel
	// containing available locks. This call will block until we
	// can access a locker. It will either return immediately if
	// some locks are still available and block until one current
	// user release one of the locks otherwise.
	id := <-cl.availableLocks

	// At this point we can register the lock for the specified
	// resource. We need to acquire the internal lock again.
	func() {
		cl.locker.Lock()
		defer cl.locker.Unlock()

		// Configure the lock to indicate that it is serving the
		// resource in input.
		cl.registered[resource] = id

		l = cl.locks[id]
		l.id = id
		l.res = resource
		l.use++

		cl.cout.Trace(logger.Debug, "locker", fmt.Sprintf("Creating locker on \"%s\" (id: %d, available: %d)", l.res, l.id, len(cl.availableLocks)))
	}()

	// We can return the lock we obtained.
	return l
}

// Release returns lock to the pool once its use count drops to zero;
// a lock still held by another worker on the same slot stays
// assigned. A nil lock is a no-op.
func (cl *ConcurrentLocker) Release(lock *Lock) {
	// Check consistency.
	if lock == nil {
		return
	}

	// Acquire the top level lock and make sure that we will
	// release it no matter what.
	cl.locker.Lock()
	defer cl.locker.Unlock()

	// Decrease the usage count for this locker.
	lock.use--

	// If some clients are still using it, do not put it back
	// in the list of available lockes.
	if lock.use > 0 {
		return
	}

	// Nobody is using this lock anymore, we can release it
	// and put it back in the pool of available locks. We
	// will also remove the reference to the resources in the
	// `registered` table so that if someone needs to lock it
	// again it will trigger the fetching of a new lock.
	delete(cl.registered, lock.res)
	cl.availableLocks <- lock.id

	cl.cout.Trace(logger.Debug, "locker", fmt.Sprintf("Releasing locker on \"%s\" at index %d (available: %d)", lock.res, lock.id, len(cl.availableLocks)))

	lock.id = -1
	lock.res = ""
}

// Lock blocks until no other worker holds exclusive access to this
// slot, then takes it. Must be paired with a Release once the
// caller's fold into the slot's UnitResult is done.
func (l *Lock) Lock() {
	<-l.waiter
}

// Release gives up exclusive access to this slot so the next waiting
// worker's Lock call can proceed. Returns an error if called without
// a matching Lock (or twice in a row), since that signals a bug in
// the caller rather than contention.
func (l *Lock) Release() error {
	if len(l.waiter) > 0 {
		return fmt.Errorf("cannot release lock on slot %q, already released", l.res)
	}

	l.waiter <- struct{}{}

	return nil
}
