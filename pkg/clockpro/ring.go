// The descriptor and list machinery shared by both realisations. A descriptor
// lives in exactly one list (or is transiently unlinked while it moves); the
// engines own their descriptors exclusively, so no locking happens here.

package clockpro

// residency classifies a descriptor. Hot and cold descriptors are resident;
// non-resident ("ghost") descriptors keep only access history.
type residency uint8

const (
	statusHot residency = iota
	statusCold
	statusNonResident
)

func (s residency) String() string {
	switch s {
	case statusHot:
		return "hot"
	case statusCold:
		return "cold"
	case statusNonResident:
		return "non-resident"
	default:
		return "invalid"
	}
}

// node is the descriptor of a single key. The epoch field orders link events
// for the epoch realisation; the inTest flag carries the explicit test-period
// state of the three-hand realisation. Each realisation ignores the other's
// field.
type node struct {
	key        uint64
	status     residency
	referenced bool   // Set on every hit, cleared when a hand or scan inspects the node.
	inTest     bool   // Three-hand realisation only.
	epoch      uint64 // Epoch realisation only; assigned at insertion and at every re-access re-link, kept on demotion and ghosting.
	prev       *node  // The next-newer descriptor.
	next       *node  // The next-older descriptor.
}

// ring is a circular doubly-linked list with a sentinel head that is never
// part of the descriptor store. head.next is the most recently linked
// descriptor; head.prev is the tail, i.e. the oldest one.
type ring struct {
	head   node
	length int
}

func newRing() *ring {
	r := new(ring)
	r.head.prev = &r.head
	r.head.next = &r.head
	return r
}

// pushHead links n as the most recent descriptor of the ring.
func (r *ring) pushHead(n *node) {
	n.prev = &r.head
	n.next = r.head.next
	r.head.next.prev = n
	r.head.next = n
	r.length++
}

// remove unlinks n from the ring. n must be linked in this ring.
func (r *ring) remove(n *node) {
	n.prev.next = n.next
	n.next.prev = n.prev
	n.prev, n.next = nil, nil
	r.length--
}

// tail returns the oldest descriptor, or nil if the ring is empty.
func (r *ring) tail() *node {
	if r.head.prev == &r.head {
		return nil
	}
	return r.head.prev
}

// len returns the number of linked descriptors.
func (r *ring) len() int { return r.length }
