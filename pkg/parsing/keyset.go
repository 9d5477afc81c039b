package parsing

// keySet is an insertion-ordered collection of keys indexed by name.
// Replacing a key tombstones the old slot and appends the new key, so the
// order always follows the arrival of each surviving key.
type keySet struct {
	slots []*Key
	index map[string]int
	live  int
}

func newKeySet() *keySet {
	return &keySet{index: make(map[string]int)}
}

// put stores k and reports whether a key with the same name was replaced.
func (s *keySet) put(k Key) bool {
	i, replaced := s.index[k.Name]
	if replaced {
		s.slots[i] = nil
		s.live--
	}
	s.index[k.Name] = len(s.slots)
	s.slots = append(s.slots, &k)
	s.live++
	return replaced
}

// list returns the live keys in order.
func (s *keySet) list() []Key {
	keys := make([]Key, 0, s.live)
	for _, k := range s.slots {
		if k != nil {
			keys = append(keys, *k)
		}
	}
	return keys
}
