package atom

// orderedSet keeps attached values in insertion order. Membership is by
// pointer identity: two distinct values with equal fields are both kept.
type orderedSet[T any] struct {
	items []*T
	index map[*T]struct{}
}

// add appends v unless it is nil or already present.
func (s *orderedSet[T]) add(v *T) bool {
	if v == nil {
		return false
	}
	if _, ok := s.index[v]; ok {
		return false
	}
	if s.index == nil {
		s.index = make(map[*T]struct{})
	}
	s.index[v] = struct{}{}
	s.items = append(s.items, v)
	return true
}

func (s *orderedSet[T]) remove(v *T) bool {
	if _, ok := s.index[v]; !ok {
		return false
	}
	delete(s.index, v)
	for i, item := range s.items {
		if item == v {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	return true
}

func (s *orderedSet[T]) contains(v *T) bool {
	_, ok := s.index[v]
	return ok
}

func (s *orderedSet[T]) len() int { return len(s.items) }

// all returns a copy of the members; mutating the slice does not affect the set.
func (s *orderedSet[T]) all() []*T {
	out := make([]*T, len(s.items))
	copy(out, s.items)
	return out
}
