package runtime

import "fmt"

// Heap is the per-interpreter object store. Cells are reference counted,
// reclaimed slots are reused through a free list, and each reclamation bumps
// the slot's generation so stale handles are caught instead of aliasing a
// recycled object. Reference cycles are never reclaimed by this mechanism.
//
// Ownership discipline: arguments passed into heap or Context APIs are
// borrowed and retained on store; every Ref returned by any API is owned by
// the caller, who must Release it.
//
// The heap is confined to one goroutine per interpreter instance. There are
// no locks; the only synchronization discipline is the exclusive-or-shared
// borrow rule enforced by View and Update.
type Heap struct {
	cells     []heapCell
	free      []int
	live      int
	allocated int
}

type heapCell struct {
	obj     *Object
	refs    int
	gen     uint32
	readers int
	writing bool
	inUse   bool
}

// Ref is a shared ownership handle to exactly one heap cell. Copying a Ref
// does not retain; call Retain for a new owned handle.
type Ref struct {
	heap *Heap
	slot int
	gen  uint32
}

// NewHeap constructs an empty object store.
func NewHeap() *Heap {
	return &Heap{}
}

// Live reports the number of objects currently held by at least one Ref.
func (h *Heap) Live() int { return h.live }

// Allocated reports the total number of objects ever allocated.
func (h *Heap) Allocated() int { return h.allocated }

// alloc stores obj in a fresh or recycled cell and returns the first owned
// handle (refcount 1).
func (h *Heap) alloc(obj *Object) Ref {
	h.allocated++
	h.live++
	if n := len(h.free); n > 0 {
		slot := h.free[n-1]
		h.free = h.free[:n-1]
		cell := &h.cells[slot]
		cell.obj = obj
		cell.refs = 1
		cell.inUse = true
		return Ref{heap: h, slot: slot, gen: cell.gen}
	}
	h.cells = append(h.cells, heapCell{obj: obj, refs: 1, inUse: true})
	return Ref{heap: h, slot: len(h.cells) - 1, gen: 0}
}

func (r Ref) cell() *heapCell {
	if r.heap == nil {
		panic("runtime: use of zero Ref")
	}
	if r.slot < 0 || r.slot >= len(r.heap.cells) {
		panic(fmt.Sprintf("runtime: Ref slot %d out of range", r.slot))
	}
	cell := &r.heap.cells[r.slot]
	if !cell.inUse || cell.gen != r.gen {
		panic(fmt.Sprintf("runtime: stale Ref (slot %d generation %d)", r.slot, r.gen))
	}
	return cell
}

// Valid reports whether the handle points at anything. The zero Ref is the
// "absent" handle used for the root type object during bootstrap.
func (r Ref) Valid() bool { return r.heap != nil }

// Retain returns a new owned handle to the same object.
func (r Ref) Retain() Ref {
	cell := r.cell()
	cell.refs++
	return r
}

// Release drops an owned handle. When the last handle is released the object
// is reclaimed: its type link, attribute references, and payload references
// are released recursively, the cell's generation is bumped, and the slot is
// returned to the free list. Releasing a cell that is still borrowed, or
// releasing the same handle twice, is a contract violation and panics.
func (r Ref) Release() {
	cell := r.cell()
	if cell.refs <= 0 {
		panic(fmt.Sprintf("runtime: double release (slot %d)", r.slot))
	}
	cell.refs--
	if cell.refs > 0 {
		return
	}
	if cell.readers > 0 || cell.writing {
		panic(fmt.Sprintf("runtime: released last Ref to a borrowed object (slot %d)", r.slot))
	}
	obj := cell.obj
	cell.obj = nil
	cell.inUse = false
	cell.gen++
	r.heap.live--
	r.heap.free = append(r.heap.free, r.slot)

	// Children are released after the cell is poisoned; a cycle back into
	// this slot cannot occur because such a ref would have kept refs > 0.
	if obj.typ.Valid() {
		obj.typ.Release()
	}
	for _, attr := range obj.attrs {
		attr.Release()
	}
	for _, ref := range payloadRefs(obj.value) {
		ref.Release()
	}
}

// View runs fn with shared read access. Any number of Views may overlap;
// overlapping an Update is a contract violation and panics.
//
// fn may allocate, which can grow the cell slice and move its backing array,
// so the borrow flag is cleared by re-resolving the cell through its slot
// rather than through a pointer captured before fn ran.
func (r Ref) View(fn func(obj *Object) error) error {
	cell := r.cell()
	if cell.writing {
		panic(fmt.Sprintf("runtime: View during active Update (slot %d)", r.slot))
	}
	cell.readers++
	obj := cell.obj
	defer func() { r.heap.cells[r.slot].readers-- }()
	return fn(obj)
}

// Update runs fn with exclusive write access. Overlapping any other borrow
// is a contract violation and panics. The borrow flag is cleared by slot for
// the same reason as in View.
func (r Ref) Update(fn func(obj *Object) error) error {
	cell := r.cell()
	if cell.writing || cell.readers > 0 {
		panic(fmt.Sprintf("runtime: Update during active borrow (slot %d)", r.slot))
	}
	cell.writing = true
	obj := cell.obj
	defer func() { r.heap.cells[r.slot].writing = false }()
	return fn(obj)
}

// Kind reports the kind of the referenced object.
func (r Ref) Kind() Kind {
	var k Kind
	_ = r.View(func(obj *Object) error {
		k = obj.value.Kind()
		return nil
	})
	return k
}

// refKey identifies an object by slot and generation. It is the identity
// used to detect revisits while walking reference graphs.
type refKey struct {
	slot int
	gen  uint32
}

func (r Ref) key() refKey { return refKey{slot: r.slot, gen: r.gen} }

// Render produces the universal text rendering of the referenced object.
// Self-referential containers render the revisited object as an elision
// marker instead of recursing forever.
func (r Ref) Render() string {
	return r.renderSeen(make(map[refKey]struct{}))
}

func (r Ref) renderSeen(seen map[refKey]struct{}) string {
	key := r.key()
	if _, ok := seen[key]; ok {
		return renderCycle(r.Kind())
	}
	seen[key] = struct{}{}
	defer delete(seen, key)
	var text string
	_ = r.View(func(obj *Object) error {
		text = obj.value.render(seen)
		return nil
	})
	return text
}

func renderCycle(k Kind) string {
	switch k {
	case KindList:
		return "[...]"
	case KindTuple, KindDict:
		return "{...}"
	default:
		return "..."
	}
}
