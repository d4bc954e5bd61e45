package models

// IDList is an ordered collection of entity reference identifiers stored as
// a JSON array column. Add and Remove give it the set semantics the friend
// and thought reference lists rely on: adding an existing identifier or
// removing a missing one is a no-op, so repeated cross-entity writes are
// idempotent.
type IDList []uint

// Contains reports whether id is present in the list.
func (l IDList) Contains(id uint) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

// Add appends id unless it is already present and returns the resulting list.
func (l IDList) Add(id uint) IDList {
	if l.Contains(id) {
		return l
	}
	return append(l, id)
}

// Remove deletes id from the list if present, preserving the order of the
// remaining elements, and returns the resulting list.
func (l IDList) Remove(id uint) IDList {
	for i, v := range l {
		if v == id {
			return append(l[:i], l[i+1:]...)
		}
	}
	return l
}
