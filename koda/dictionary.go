package koda

import "sort"

// dictionary is the sorted set of every distinct Object key appearing
// anywhere in a value tree, plus O(1) key<->index lookups. It is built
// fresh per encode call and ordered ascending by raw key bytes rather
// than by first-sighting order, so that two values differing only in
// Object insertion order produce the identical dictionary.
type dictionary struct {
	keys    []string
	indexOf map[string]uint32
}

// buildDictionary collects every Object key in v and sorts them
// ascending by raw byte comparison.
func buildDictionary(v Value) *dictionary {
	set := make(map[string]struct{})
	collectKeys(v, set)

	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	indexOf := make(map[string]uint32, len(keys))
	for i, k := range keys {
		indexOf[k] = uint32(i)
	}
	return &dictionary{keys: keys, indexOf: indexOf}
}

func collectKeys(v Value, out map[string]struct{}) {
	switch v.kind {
	case KindArray:
		for _, e := range v.arrayVal {
			collectKeys(e, out)
		}
	case KindObject:
		for _, e := range v.objectVal {
			out[e.Key] = struct{}{}
			collectKeys(e.Value, out)
		}
	}
}

// indexOfKey returns the dictionary index of key, and whether it was
// present. Every key that appears in the encoded value is present by
// construction; a lookup miss during encoding is an internal error.
func (d *dictionary) indexOfKey(key string) (uint32, bool) {
	idx, ok := d.indexOf[key]
	return idx, ok
}

// keyAt returns the key at index i, and whether i is in range.
func (d *dictionary) keyAt(i uint32) (string, bool) {
	if int(i) >= len(d.keys) {
		return "", false
	}
	return d.keys[i], true
}
