package game

// TrailStore keeps a sampled path per unit for renderers. Units append a
// point every recordInterval ticks.
type TrailStore struct {
	paths map[UnitID][]Vector
}

// NewTrailStore creates an empty store.
func NewTrailStore() *TrailStore {
	return &TrailStore{paths: make(map[UnitID][]Vector)}
}

// Record appends p to the unit's trail.
func (ts *TrailStore) Record(id UnitID, p Vector) {
	ts.paths[id] = append(ts.paths[id], p)
}

// Path returns the unit's trail. The slice must not be modified.
func (ts *TrailStore) Path(id UnitID) []Vector {
	return ts.paths[id]
}

// Remove drops the unit's trail entirely.
func (ts *TrailStore) Remove(id UnitID) {
	delete(ts.paths, id)
}

// Optimize halves every trail by dropping each odd-indexed point, keeping
// the first. It returns the number of points removed.
func (ts *TrailStore) Optimize() int {
	removed := 0
	for id, path := range ts.paths {
		kept := path[:0]
		for i, p := range path {
			if i%2 == 0 {
				kept = append(kept, p)
			}
		}
		removed += len(path) - len(kept)
		ts.paths[id] = kept
	}
	return removed
}

// Clear empties every trail but keeps the units registered.
func (ts *TrailStore) Clear() {
	for id := range ts.paths {
		ts.paths[id] = nil
	}
}

// Points returns the total number of stored points.
func (ts *TrailStore) Points() int {
	n := 0
	for _, p := range ts.paths {
		n += len(p)
	}
	return n
}
