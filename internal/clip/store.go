package clip

import "fmt"

// Store is the ordered clip collection owned by the hosting page.
//
// Mutations are copy-on-write at the granularity of one clip: Update
// replaces only the matching record, so records returned by an earlier
// Items call stay valid and unchanged. Store is not safe for concurrent
// use; the host mutates it from its event loop only. The zero value is an
// empty store.
type Store struct {
	items []*Clip
	index map[string]int
}

// NewStore creates a store holding copies of the given clips.
// Clips without an id are assigned one.
func NewStore(clips ...Clip) (*Store, error) {
	s := &Store{index: make(map[string]int, len(clips))}
	for _, c := range clips {
		if err := s.Append(c); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Len returns the number of clips.
func (s *Store) Len() int {
	return len(s.items)
}

// Items returns the current clip sequence. The returned slice must not be
// modified; it is replaced, not mutated, by later writes.
func (s *Store) Items() []*Clip {
	return s.items
}

// Get returns the clip with the given id.
func (s *Store) Get(id string) (*Clip, bool) {
	i, ok := s.index[id]
	if !ok {
		return nil, false
	}
	return s.items[i], true
}

// Append adds a clip at the end of the sequence.
func (s *Store) Append(c Clip) error {
	if c.ID == "" {
		c.ID = NewID()
	}
	if _, exists := s.index[c.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateID, c.ID)
	}
	if s.index == nil {
		s.index = make(map[string]int)
	}
	next := make([]*Clip, len(s.items), len(s.items)+1)
	copy(next, s.items)
	s.items = append(next, &c)
	s.index[c.ID] = len(s.items) - 1
	return nil
}

// Update applies a patch to the clip with the given id and returns the
// new record. All other records keep their identity.
func (s *Store) Update(id string, p Patch) (*Clip, error) {
	i, ok := s.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	updated := p.Apply(*s.items[i])
	next := make([]*Clip, len(s.items))
	copy(next, s.items)
	next[i] = &updated
	s.items = next
	return &updated, nil
}

// Delete removes the clip with the given id.
func (s *Store) Delete(id string) error {
	i, ok := s.index[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	next := make([]*Clip, 0, len(s.items)-1)
	next = append(next, s.items[:i]...)
	next = append(next, s.items[i+1:]...)
	s.items = next
	s.reindex()
	return nil
}

func (s *Store) reindex() {
	s.index = make(map[string]int, len(s.items))
	for i, c := range s.items {
		s.index[c.ID] = i
	}
}
