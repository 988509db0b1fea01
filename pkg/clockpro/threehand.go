// The three-hand realisation of CLOCK-Pro: one circular list of descriptors
// scanned by three hands, with an explicit in-test flag on cold descriptors
// instead of the epoch ordering. handCold plays the role of "tail of cold",
// handHot of "tail of hot", and handTest of "tail of non-resident"; the test
// hand additionally terminates the test period of every cold descriptor it
// passes. A hand is never left on a descriptor about to be unlinked; it is
// advanced to the descriptor's predecessor first.

package clockpro

import (
	"github.com/nobletooth/clocklab/pkg/policy"
	"github.com/nobletooth/clocklab/pkg/utils"
)

// ThreeHandName is the registry name of the three-hand realisation.
const ThreeHandName = "clockpro-threehand"

func init() {
	policy.Register(ThreeHandName, func(opts policy.Options) (policy.KeyOnly, error) { return NewThreeHand(opts) })
}

// ThreeHand drives the published CLOCK-Pro formulation. The single clock is
// ordered newest to oldest; advancing a hand steps to the descriptor's
// predecessor, i.e. the next sweep target.
type ThreeHand struct { // Implements policy.KeyOnly.
	opts  policy.Options
	stats *policy.Stats
	split *splitController
	data  map[uint64]*node
	head  *node // The most recently linked descriptor; nil while the clock is empty.

	handHot, handCold, handTest *node
	sizeHot, sizeCold, sizeNR   int
}

// NewThreeHand validates the configuration and returns an empty engine.
func NewThreeHand(opts policy.Options) (*ThreeHand, error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}
	return &ThreeHand{
		opts:  opts,
		stats: policy.NewStats(ThreeHandName),
		split: newSplitController(opts),
		data:  make(map[uint64]*node, opts.MaximumSize),
	}, nil
}

func (c *ThreeHand) Name() string { return ThreeHandName }

// Stats returns a snapshot of the statistics sink.
func (c *ThreeHand) Stats() policy.Snapshot { return c.stats.Snapshot() }

// insertHead links n as the newest descriptor of the clock. The first
// descriptor also seeds all three hands.
func (c *ThreeHand) insertHead(n *node) {
	if c.head == nil {
		n.prev, n.next = n, n
		c.head = n
		c.handHot, c.handCold, c.handTest = n, n, n
		return
	}
	oldest := c.head.prev
	n.next = c.head
	n.prev = oldest
	c.head.prev = n
	oldest.next = n
	c.head = n
}

// unlink removes n from the clock. Hands sitting on n are advanced to its
// predecessor first so they continue their sweep on the next-newer
// descriptor; removing the last descriptor clears the clock entirely.
func (c *ThreeHand) unlink(n *node) {
	if n.next == n {
		c.head = nil
		c.handHot, c.handCold, c.handTest = nil, nil, nil
		n.prev, n.next = nil, nil
		return
	}
	if c.handHot == n {
		c.handHot = n.prev
	}
	if c.handCold == n {
		c.handCold = n.prev
	}
	if c.handTest == n {
		c.handTest = n.prev
	}
	if c.head == n {
		c.head = n.next
	}
	n.prev.next = n.next
	n.next.prev = n.prev
	n.prev, n.next = nil, nil
}

// moveToHead re-links n as the newest descriptor.
func (c *ThreeHand) moveToHead(n *node) {
	c.unlink(n)
	c.insertHead(n)
}

// Record applies a single access. It never fails; all invariants are
// restored before it returns.
func (c *ThreeHand) Record(key uint64) {
	c.stats.RecordOperation()
	n, known := c.data[key]
	if known && n.status != statusNonResident {
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

// warmupMiss fills the cache before it reaches capacity, hot first, the
// final minCold slots cold. No eviction pass runs.
func (c *ThreeHand) warmupMiss(key uint64, free int) {
	n := &node{key: key}
	if free > c.split.minCold {
		n.status = statusHot
		c.sizeHot++
	} else {
		n.status = statusCold
		n.inTest = true
		c.sizeCold++
	}
	c.insertHead(n)
	c.data[key] = n
}

// fullMiss admits an unknown key into a full cache as an in-test cold
// descriptor and runs the eviction pass.
func (c *ThreeHand) fullMiss(key uint64) {
	n := &node{key: key, status: statusCold, inTest: true}
	c.insertHead(n)
	c.sizeCold++
	c.data[key] = n
	c.evict()
}

// refaultMiss handles a miss on a non-resident descriptor; the ghost leaves
// the clock before the promotion attempt so the test hand cannot reach it.
func (c *ThreeHand) refaultMiss(n *node) {
	c.unlink(n)
	c.sizeNR--
	if c.canPromote(n) {
		n.status = statusHot
		n.inTest = false
		c.insertHead(n)
		c.sizeHot++
	} else {
		n.status = statusCold
		n.inTest = true
		c.insertHead(n)
		c.sizeCold++
	}
	c.evict()
}

// evict shrinks the resident set back to capacity, then enforces the ghost
// cap. Counted as one eviction pass regardless of how many descriptors move.
func (c *ThreeHand) evict() {
	c.stats.RecordEviction()
	for c.sizeHot+c.sizeCold > c.opts.MaximumSize {
		if c.sizeCold > 0 {
			c.runHandCold()
		} else if !c.runHandHot() {
			utils.RaiseInvariant("clockpro", "hot_scan_stalled",
				"Hot hand could not demote while over capacity.", "sizeHot", c.sizeHot)
			break
		}
	}
	for c.sizeNR > c.opts.MaximumSize {
		c.runHandTest()
	}
}

// runHandCold sweeps the cold hand to the next cold descriptor and processes
// it: a referenced one gets a second chance (promotion if its test period
// grants it, otherwise a renewed test period at the head), an unreferenced
// one leaves the resident set, surviving in place as a ghost only while its
// test period is open.
func (c *ThreeHand) runHandCold() {
	for {
		e := c.handCold
		if e.status != statusCold {
			c.handCold = e.prev
			continue
		}
		if e.referenced {
			e.referenced = false
			if c.canPromote(e) {
				c.moveToHead(e)
				e.status = statusHot
				e.inTest = false
				c.sizeCold--
				c.sizeHot++
			} else {
				c.moveToHead(e)
				e.inTest = true
			}
			return
		}
		c.sizeCold--
		if e.inTest {
			// The ghost keeps its place in the clock.
			e.status = statusNonResident
			c.sizeNR++
			if c.handCold == e {
				c.handCold = e.prev
			}
			for c.sizeNR > c.opts.MaximumSize {
				c.runHandTest()
			}
		} else {
			c.unlink(e)
			delete(c.data, e.key)
		}
		return
	}
}

// runHandHot sweeps the hot hand until it demotes one hot descriptor,
// clearing reference bits on the way. When the hot hand catches up with the
// test hand while ghosts exist, the test hand runs first so the hot hand does
// not pass it; with no ghosts left the hot hand sweeps past the test hand.
// Reports whether a demotion happened.
func (c *ThreeHand) runHandHot() bool {
	if c.sizeHot == 0 {
		return false
	}
	for {
		if c.handHot == c.handTest && c.sizeNR > 0 {
			c.runHandTest()
		}
		e := c.handHot
		if e.status != statusHot {
			c.handHot = e.prev
			continue
		}
		if e.referenced {
			e.referenced = false
			c.handHot = e.prev
			continue
		}
		e.status = statusCold
		e.inTest = false
		c.sizeHot--
		c.sizeCold++
		c.handHot = e.prev
		return true
	}
}

// runHandTest sweeps the test hand to the next non-resident descriptor and
// destroys it, narrowing the cold target. Every cold descriptor passed on
// the way has its test period terminated.
func (c *ThreeHand) runHandTest() {
	if c.sizeNR == 0 {
		utils.RaiseInvariant("clockpro", "ghost_scan_empty",
			"Test hand ran with no non-resident descriptors.", "sizeNR", c.sizeNR)
		return
	}
	for {
		e := c.handTest
		if e.status == statusNonResident {
			c.unlink(e)
			delete(c.data, e.key)
			c.sizeNR--
			c.split.adjust(-1)
			return
		}
		if e.status == statusCold {
			e.inTest = false
		}
		c.handTest = e.prev
	}
}

// canPromote decides whether a descriptor re-accessed during its test period
// may enter the hot set. The attempt widens the cold target; the hot hand
// then demotes until the hot set fits under its target. The lock-step test
// hand can terminate the candidate's test period meanwhile, hence the final
// recheck.
func (c *ThreeHand) canPromote(candidate *node) bool {
	if !candidate.inTest {
		return false
	}
	c.split.adjust(+1)
	for c.sizeHot > 0 && c.sizeHot >= c.opts.MaximumSize-c.split.coldTarget {
		if !c.runHandHot() {
			return false
		}
	}
	return candidate.inTest
}

// Finished runs the integrity assertions once the trace ends.
func (c *ThreeHand) Finished() {
	for _, problem := range c.integrityProblems() {
		utils.RaiseInvariant("clockpro", "integrity", problem)
	}
}

// integrityProblems re-derives the structural state from one full sweep of
// the clock and reports every divergence. An empty result means the engine
// is consistent.
func (c *ThreeHand) integrityProblems() []string {
	var problems []string
	var countHot, countCold, countNR int
	if c.head != nil {
		for n := c.head; ; {
			switch n.status {
			case statusHot:
				countHot++
			case statusCold:
				countCold++
			case statusNonResident:
				countNR++
				if !n.inTest {
					problems = append(problems, "non-resident descriptor outside its test period")
				}
			}
			n = n.next
			if n == c.head {
				break
			}
		}
		if c.handHot == nil || c.handCold == nil || c.handTest == nil {
			problems = append(problems, "a hand is unset while the clock is non-empty")
		}
	}
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
	if len(c.data) != countHot+countCold+countNR {
		problems = append(problems, "descriptor store size diverged from the linked descriptors")
	}
	if !c.split.inBounds() {
		problems = append(problems, "cold target left its clamp")
	}
	return problems
}
