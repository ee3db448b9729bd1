package store

// Resource wraps one query's last-known response lifecycle: created
// empty, Loading while a fetch is in flight, then either a wholesale
// Result replacement or an Err with the previous Result kept.
type Resource[T any] struct {
	Loading bool
	Result  T
	Err     error
}

// slice pairs a Resource with its generation counter. A generation is
// stamped at dispatch; unless the store runs in last-response-wins mode,
// only a response carrying the current generation may mutate the slice.
type slice[T any] struct {
	res Resource[T]
	gen uint64
}

// begin marks the slice loading and returns the dispatch generation.
// Caller holds the store lock.
func (s *slice[T]) begin() uint64 {
	s.gen++
	s.res.Loading = true
	return s.gen
}

// current reports whether a response generation is still the live one.
func (s *slice[T]) current(gen uint64, lastWins bool) bool {
	return lastWins || gen == s.gen
}

// succeed lands a response. Caller holds the store lock and has checked
// current.
func (s *slice[T]) succeed(result T) {
	s.res = Resource[T]{Result: result}
}

// fail lands an error, keeping the previous result.
func (s *slice[T]) fail(err error) {
	s.res.Loading = false
	s.res.Err = err
}

// reset returns the slice to its initial empty state and invalidates any
// in-flight response.
func (s *slice[T]) reset() {
	s.gen++
	s.res = Resource[T]{}
}
