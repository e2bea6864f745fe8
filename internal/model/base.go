package model

// Sequence hands out monotonically increasing integer IDs.
// It never rewinds, so IDs freed by a delete are never reused.
type Sequence struct {
	next int
}

// NewSequence starts a sequence at next. Values below 1 start it at 1.
func NewSequence(next int) *Sequence {
	if next < 1 {
		next = 1
	}
	return &Sequence{next: next}
}

// Next returns the current value and advances the counter.
func (s *Sequence) Next() int {
	id := s.next
	s.next++
	return id
}

// Peek returns the value the next call to Next will hand out.
func (s *Sequence) Peek() int {
	return s.next
}

// Observe moves the counter past id if it is not already.
func (s *Sequence) Observe(id int) {
	if id >= s.next {
		s.next = id + 1
	}
}
