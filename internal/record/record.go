package record

import (
	"maps"
	"slices"
)

// Record is an untyped, column-keyed row payload.
type Record map[string]any

// Keys returns the record's keys in sorted order.
func (r Record) Keys() []string {
	return slices.Sorted(maps.Keys(r))
}

// Clone returns a shallow copy of r.
func (r Record) Clone() Record {
	return maps.Clone(r)
}

// Merge overlays update on base. Only base keys are considered: a key present in both takes the update's value,
// and keys that exist only in update are dropped.
func Merge(base, update Record) Record {
	out := make(Record, len(base))
	for k, v := range base {
		if uv, ok := update[k]; ok {
			out[k] = uv
			continue
		}
		out[k] = v
	}
	return out
}

// Patch applies upd onto obj by merging their records and rebuilding a T.
func Patch[T, U any](ts Schema[T], obj T, us Schema[U], upd U) (T, error) {
	merged := Merge(ts.ToRecord(obj), us.ToRecord(upd))
	return ts.ToObject(merged)
}
