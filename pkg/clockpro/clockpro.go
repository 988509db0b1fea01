// Package clockpro implements the CLOCK-Pro page-replacement policy as a
// fixed-capacity, key-only cache.
//
// Reference: Song Jiang, Feng Chen, Xiaodong Zhang, "CLOCK-Pro: An Effective
// Improvement of the CLOCK Replacement", USENIX 2005.
//
// Resident descriptors are split into a hot and a cold population; evicted
// cold descriptors linger as non-resident "ghosts" that preserve
// inter-reference-recency history. A re-fault on a ghost that is still in its
// test period widens the adaptive cold target and promotes the key to hot when
// the hot set can make room for it; a ghost whose test period expires narrows
// the target.
//
// The package ships two equivalent realisations:
//
//   - Cache — three separate rings (hot, cold, non-resident) with a
//     per-descriptor monotonic epoch standing in for the test hand. This is
//     the canonical engine.
//   - ThreeHand — the published formulation: one circular list scanned by
//     three hands, with an explicit in-test flag. See threehand.go.
//
// Both engines are single-threaded; the simulator drives each instance from
// exactly one goroutine. Hits only flip the descriptor's reference bit, which
// is what makes a lock-free read path possible should one ever be needed.

package clockpro

import (
	"github.com/nobletooth/clocklab/pkg/policy"
	"github.com/nobletooth/clocklab/pkg/utils"
)

// Name is the registry name of the epoch/list realisation.
const Name = "clockpro"

func init() {
	policy.Register(Name, func(opts policy.Options) (policy.KeyOnly, error) { return New(opts) })
}

// Cache is the epoch/list realisation of CLOCK-Pro. A descriptor's test
// period is not tracked with a flag: a descriptor is in its test period while
// its epoch is more recent than the oldest hot descriptor's epoch.
type Cache struct { // Implements policy.KeyOnly.
	opts  policy.Options
	stats *policy.Stats
	split *splitController
	data  map[uint64]*node // The descriptor store; descriptors outside it do not exist.
	hot   *ring
	cold  *ring
	test  *ring // Non-resident descriptors, newest first.

	sizeHot, sizeCold, sizeNR int
	clock                     uint64 // Monotonic epoch source, bumped on insertion and on every re-access re-link.
}

// New validates the configuration and returns an empty engine.
func New(opts policy.Options) (*Cache, error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}
	return &Cache{
		opts:  opts,
		stats: policy.NewStats(Name),
		split: newSplitController(opts),
		data:  make(map[uint64]*node, opts.MaximumSize),
		hot:   newRing(),
		cold:  newRing(),
		test:  newRing(),
	}, nil
}

func (c *Cache) Name() string { return Name }

// Stats returns a snapshot of the statistics sink.
func (c *Cache) Stats() policy.Snapshot { return c.stats.Snapshot() }

// nextEpoch returns a fresh epoch, strictly greater than every epoch issued
// before it.
func (c *Cache) nextEpoch() uint64 {
	c.clock++
	return c.clock
}

// inTestPeriod reports whether the descriptor is still on probation: its
// epoch must be more recent than the oldest hot descriptor's. With no
// hot descriptors every test period is open.
func (c *Cache) inTestPeriod(n *node) bool {
	if c.sizeHot == 0 {
		return true
	}
	return n.epoch > c.hot.tail().epoch
}

// Record applies a single access. It never fails; all invariants are
// restored before it returns.
func (c *Cache) Record(key uint64) {
	c.stats.RecordOperation()
	n, known := c.data[key]
	if known && n.status != statusNonResident {
		// The O(1) fast path: a hit only flips the reference bit.
		n.referenced = true
		c.stats.RecordHit()
		return
	}
	c.stats.RecordMiss()
	switch {
	case !known:
		if free := c.opts.MaximumSize - c.sizeHot - c.sizeCold; free > 0 {
			c.warmupMiss(key, free)
			return
		}
		c.fullMiss(key)
	default:
		c.refaultMiss(n)
	}
}

// warmupMiss fills the cache before it reaches capacity: the first
// maxSize-minCold distinct keys become hot, the remaining minCold become
// cold. No eviction pass runs.
func (c *Cache) warmupMiss(key uint64, free int) {
	n := &node{key: key, epoch: c.nextEpoch()}
	if free > c.split.minCold {
		n.status = statusHot
		c.hot.pushHead(n)
		c.sizeHot++
	} else {
		n.status = statusCold
		c.cold.pushHead(n)
		c.sizeCold++
	}
	c.data[key] = n
}

// fullMiss admits an unknown key into a full cache as a cold descriptor and
// runs the eviction pass.
func (c *Cache) fullMiss(key uint64) {
	n := &node{key: key, status: statusCold, epoch: c.nextEpoch()}
	c.cold.pushHead(n)
	c.sizeCold++
	c.data[key] = n
	c.evict()
}

// refaultMiss handles a miss on a non-resident descriptor. This is the
// re-fault that drives adaptation: the ghost re-enters as hot when canPromote
// grants it (its test period is open and the hot scan makes room), otherwise
// as cold.
func (c *Cache) refaultMiss(n *node) {
	c.test.remove(n)
	c.sizeNR--
	if c.canPromote(n) {
		n.status = statusHot
		c.hot.pushHead(n)
		c.sizeHot++
	} else {
		n.status = statusCold
		c.cold.pushHead(n)
		c.sizeCold++
	}
	n.epoch = c.nextEpoch()
	c.evict()
}

// evict shrinks the resident set back to capacity, then prunes expired
// ghosts. Counted as one eviction pass regardless of how many descriptors
// move.
func (c *Cache) evict() {
	c.stats.RecordEviction()
	for c.sizeHot+c.sizeCold > c.opts.MaximumSize {
		if c.sizeCold > 0 {
			c.scanCold()
		} else {
			c.scanHot(c.clock)
		}
	}
	c.prune()
}

// scanCold examines the oldest cold descriptor. A referenced victim gets a
// second chance (promotion to hot if its test period grants it, otherwise a
// fresh slot at the cold head); an unreferenced one leaves the resident set,
// surviving as a ghost only while its test period is open.
func (c *Cache) scanCold() {
	victim := c.cold.tail()
	if victim == nil {
		utils.RaiseInvariant("clockpro", "cold_scan_empty",
			"Cold scan entered with an empty cold list.", "sizeCold", c.sizeCold)
		return
	}
	if victim.referenced {
		victim.referenced = false
		if c.canPromote(victim) {
			c.cold.remove(victim)
			c.sizeCold--
			victim.status = statusHot
			c.hot.pushHead(victim)
			c.sizeHot++
		} else {
			c.cold.remove(victim)
			c.cold.pushHead(victim)
		}
		// Either branch is a re-access for epoch accounting.
		victim.epoch = c.nextEpoch()
		return
	}
	c.cold.remove(victim)
	c.sizeCold--
	if c.inTestPeriod(victim) {
		victim.status = statusNonResident
		c.test.pushHead(victim)
		c.sizeNR++
		for c.sizeNR > c.opts.MaximumSize {
			c.scanNonResident()
		}
	} else {
		delete(c.data, victim.key)
	}
}

// scanHot walks the hot ring from its tail toward the head, never past a
// descriptor whose epoch exceeds epochBound. Referenced descriptors get their
// bit cleared and a fresh slot at the hot head; the first unreferenced one is
// demoted to the cold head. Reports whether a demotion happened.
func (c *Cache) scanHot(epochBound uint64) bool {
	for candidate := c.hot.tail(); candidate != nil && candidate.epoch <= epochBound; candidate = c.hot.tail() {
		if candidate.referenced {
			candidate.referenced = false
			c.hot.remove(candidate)
			c.hot.pushHead(candidate)
			candidate.epoch = c.nextEpoch()
			continue
		}
		c.hot.remove(candidate)
		c.sizeHot--
		candidate.status = statusCold
		c.cold.pushHead(candidate)
		c.sizeCold++
		return true
	}
	return false
}

// canPromote decides whether a descriptor re-accessed during its test period
// may enter the hot set. The attempt itself widens the cold target; the hot
// set is scanned down to make room, bounded by the candidate's own epoch. The
// scan can close the candidate's test period, hence the final recheck.
func (c *Cache) canPromote(candidate *node) bool {
	if !c.inTestPeriod(candidate) {
		return false
	}
	c.split.adjust(+1)
	for c.sizeHot > 0 && c.sizeHot >= c.opts.MaximumSize-c.split.coldTarget {
		if !c.scanHot(candidate.epoch) {
			return false
		}
	}
	return c.inTestPeriod(candidate)
}

// scanNonResident destroys the oldest ghost and narrows the cold target.
func (c *Cache) scanNonResident() {
	victim := c.test.tail()
	if victim == nil {
		utils.RaiseInvariant("clockpro", "ghost_scan_empty",
			"Ghost scan entered with an empty non-resident list.", "sizeNR", c.sizeNR)
		return
	}
	c.test.remove(victim)
	delete(c.data, victim.key)
	c.sizeNR--
	c.split.adjust(-1)
}

// prune eagerly removes ghosts whose test period has expired, keeping every
// surviving non-resident descriptor on probation.
func (c *Cache) prune() {
	for victim := c.test.tail(); victim != nil && !c.inTestPeriod(victim); victim = c.test.tail() {
		c.scanNonResident()
	}
}

// Finished runs the integrity assertions once the trace ends.
func (c *Cache) Finished() {
	for _, problem := range c.integrityProblems() {
		utils.RaiseInvariant("clockpro", "integrity", problem)
	}
}

// integrityProblems re-derives the structural state and reports every
// divergence from the engine's counters and status invariants. An empty
// result means the engine is consistent.
func (c *Cache) integrityProblems() []string {
	var problems []string
	countList := func(r *ring, want residency) int {
		count := 0
		for n := r.head.next; n != &r.head; n = n.next {
			if n.status != want {
				problems = append(problems, "descriptor with status "+n.status.String()+" linked in the "+want.String()+" list")
			}
			count++
		}
		return count
	}
	countHot := countList(c.hot, statusHot)
	countCold := countList(c.cold, statusCold)
	countNR := countList(c.test, statusNonResident)
	if countHot != c.sizeHot {
		problems = append(problems, "hot count diverged from sizeHot")
	}
	if countCold != c.sizeCold {
		problems = append(problems, "cold count diverged from sizeCold")
	}
	if countNR != c.sizeNR {
		problems = append(problems, "non-resident count diverged from sizeNR")
	}
	if c.sizeHot+c.sizeCold > c.opts.MaximumSize {
		problems = append(problems, "resident population exceeds the maximum size")
	}
	if c.sizeNR > c.opts.MaximumSize {
		problems = append(problems, "non-resident population exceeds the maximum size")
	}
	for n := c.test.head.next; n != &c.test.head; n = n.next {
		if !c.inTestPeriod(n) {
			problems = append(problems, "non-resident descriptor outside its test period")
		}
	}
	if len(c.data) != countHot+countCold+countNR {
		problems = append(problems, "descriptor store size diverged from the linked descriptors")
	}
	if !c.split.inBounds() {
		problems = append(problems, "cold target left its clamp")
	}
	return problems
}
