package unmanaged

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/cespare/xxhash/v2"

	"github.com/joshuapare/memkit/mem"
	"github.com/joshuapare/memkit/rtype"
)

// Slot occupancy markers. Empty must be zero so a freshly zeroed marker
// region reads as an empty table.
const (
	slotEmpty byte = 0
	slotFull  byte = 1
	slotDead  byte = 2 // tombstone: removed, but probe chains continue past it
)

const minSlots = 8

// Dictionary is an open-addressing hash map over manually-managed memory.
// Keys, values, and occupancy markers live in three parallel regions; the
// slot count is always a power of two and the load factor (including
// tombstones) is kept at or below 3/4.
//
// Keys are hashed over their raw bytes, so key types should not contain
// padding: two equal struct values with different padding bytes can land in
// different probe chains. Key equality on probe hits always uses ==, so a
// lookup can never return another key's value.
type Dictionary[K comparable, V any] struct {
	keys  mem.Address
	vals  mem.Address
	marks mem.Address

	slots int // power of two
	count int // full slots
	used  int // full + tombstone slots, governs rehash

	ktype rtype.Type
	vtype rtype.Type
}

// NewDictionary allocates a dictionary sized to hold capacity entries
// without rehashing.
func NewDictionary[K comparable, V any](capacity int) (*Dictionary[K, V], error) {
	if capacity < 0 {
		return nil, fmt.Errorf("unmanaged: dictionary capacity %d: %w", capacity, ErrNegativeLength)
	}
	slots := minSlots
	for slots*3 < capacity*4 {
		slots <<= 1
	}
	d := &Dictionary[K, V]{
		slots: slots,
		ktype: rtype.Of[K](),
		vtype: rtype.Of[V](),
	}
	if err := d.allocStorage(slots); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Dictionary[K, V]) allocStorage(slots int) error {
	keys, err := mem.Alloc(slots * d.ktype.Size())
	if err != nil {
		return err
	}
	vals, err := mem.Alloc(slots * d.vtype.Size())
	if err != nil {
		err = errors.Join(err, mem.Free(keys))
		return err
	}
	// Markers must start zeroed (= all empty).
	marks, err := mem.AllocZeroed(slots)
	if err != nil {
		err = errors.Join(err, mem.Free(keys), mem.Free(vals))
		return err
	}
	d.keys, d.vals, d.marks = keys, vals, marks
	return nil
}

func (d *Dictionary[K, V]) hash(k K) uint64 {
	if d.ktype.Size() == 0 {
		return 0
	}
	return xxhash.Sum64(unsafe.Slice((*byte)(unsafe.Pointer(&k)), d.ktype.Size()))
}

// findSlot probes for k. When found is true, slot holds the key. When
// found is false, slot is where an insert of k should land (the first
// tombstone on the chain, or the terminating empty slot).
func (d *Dictionary[K, V]) findSlot(k K) (slot int, found bool) {
	marks := mem.Span[byte](d.marks, 0, d.slots)
	keys := mem.Span[K](d.keys, 0, d.slots)
	mask := d.slots - 1
	h := int(d.hash(k)) & mask
	firstDead := -1
	for i := 0; i <= mask; i++ {
		s := (h + i) & mask
		switch marks[s] {
		case slotEmpty:
			if firstDead >= 0 {
				return firstDead, false
			}
			return s, false
		case slotDead:
			if firstDead < 0 {
				firstDead = s
			}
		case slotFull:
			if keys[s] == k {
				return s, true
			}
		}
	}
	// Load factor accounting guarantees an empty slot exists, so the probe
	// loop always terminates through the empty case above.
	return firstDead, false
}

// Count returns the number of entries.
func (d *Dictionary[K, V]) Count() int { return d.count }

// Add inserts k → v. Fails with ErrDuplicateKey when k is already present.
func (d *Dictionary[K, V]) Add(k K, v V) error {
	if (d.used+1)*4 > d.slots*3 {
		if err := d.rehash(d.slots * 2); err != nil {
			return err
		}
	}
	slot, found := d.findSlot(k)
	if found {
		return fmt.Errorf("unmanaged: add: %w", ErrDuplicateKey)
	}
	marks := mem.Span[byte](d.marks, 0, d.slots)
	reusedTombstone := marks[slot] == slotDead
	mem.Span[K](d.keys, 0, d.slots)[slot] = k
	mem.Span[V](d.vals, 0, d.slots)[slot] = v
	marks[slot] = slotFull
	d.count++
	if !reusedTombstone {
		d.used++
	}
	return nil
}

// At returns a pointer to the value stored under k. Fails with
// ErrKeyNotFound when absent. The pointer aliases the dictionary's storage
// and must not be used after a mutation that can rehash, or after Free.
func (d *Dictionary[K, V]) At(k K) (*V, error) {
	slot, found := d.findSlot(k)
	if !found {
		return nil, fmt.Errorf("unmanaged: lookup: %w", ErrKeyNotFound)
	}
	return &mem.Span[V](d.vals, 0, d.slots)[slot], nil
}

// Get returns the value stored under k.
func (d *Dictionary[K, V]) Get(k K) (V, error) {
	p, err := d.At(k)
	if err != nil {
		var zero V
		return zero, err
	}
	return *p, nil
}

// ContainsKey reports whether k is present.
func (d *Dictionary[K, V]) ContainsKey(k K) bool {
	_, found := d.findSlot(k)
	return found
}

// Remove deletes the entry for k. Fails with ErrKeyNotFound when absent.
// The slot becomes a tombstone so longer probe chains stay intact.
func (d *Dictionary[K, V]) Remove(k K) error {
	slot, found := d.findSlot(k)
	if !found {
		return fmt.Errorf("unmanaged: remove: %w", ErrKeyNotFound)
	}
	mem.Span[byte](d.marks, 0, d.slots)[slot] = slotDead
	d.count--
	return nil
}

// Each calls fn for every entry until fn returns false. Iteration order is
// unspecified. The dictionary must not be mutated during iteration.
func (d *Dictionary[K, V]) Each(fn func(k K, v V) bool) {
	marks := mem.Span[byte](d.marks, 0, d.slots)
	keys := mem.Span[K](d.keys, 0, d.slots)
	vals := mem.Span[V](d.vals, 0, d.slots)
	for s, m := range marks {
		if m != slotFull {
			continue
		}
		if !fn(keys[s], vals[s]) {
			return
		}
	}
}

// Clear removes every entry without shrinking the table.
func (d *Dictionary[K, V]) Clear() {
	mem.Clear(d.marks)
	d.count = 0
	d.used = 0
}

// rehash moves every live entry into a fresh table of newSlots slots,
// dropping tombstones, then frees the old storage.
func (d *Dictionary[K, V]) rehash(newSlots int) error {
	oldKeys, oldVals, oldMarks := d.keys, d.vals, d.marks
	oldSlots := d.slots

	if err := d.allocStorage(newSlots); err != nil {
		return err
	}
	d.slots = newSlots

	marks := mem.Span[byte](oldMarks, 0, oldSlots)
	keys := mem.Span[K](oldKeys, 0, oldSlots)
	vals := mem.Span[V](oldVals, 0, oldSlots)

	newMarks := mem.Span[byte](d.marks, 0, d.slots)
	newKeys := mem.Span[K](d.keys, 0, d.slots)
	newVals := mem.Span[V](d.vals, 0, d.slots)
	mask := d.slots - 1

	for s, m := range marks {
		if m != slotFull {
			continue
		}
		k := keys[s]
		// Fresh table: no duplicates and no tombstones, the first empty
		// slot on the chain is the insert point.
		h := int(d.hash(k)) & mask
		for i := 0; ; i++ {
			t := (h + i) & mask
			if newMarks[t] != slotEmpty {
				continue
			}
			newKeys[t] = k
			newVals[t] = vals[s]
			newMarks[t] = slotFull
			break
		}
	}
	d.used = d.count

	return errors.Join(mem.Free(oldKeys), mem.Free(oldVals), mem.Free(oldMarks))
}

// Free releases all three backing regions. The dictionary becomes invalid.
func (d *Dictionary[K, V]) Free() error {
	return errors.Join(mem.Free(d.keys), mem.Free(d.vals), mem.Free(d.marks))
}
