package main

// BufferedStream is a generic rewindable lookahead decorator over a
// monotonic, effectively infinite source sequence (the source itself is
// responsible for yielding a sentinel once exhausted — see SourceChar and
// Token's EndOfFile kind). It supports exactly one outstanding checkpoint,
// per the single-checkpoint design note in SPEC_FULL.md §9.
type BufferedStream[T any] struct {
	pull          func() T
	lookahead     []T
	acceptHistory []T
	checkpointLen int
}

// NewBufferedStream builds a stream that pulls fresh elements from src on
// demand, lazily, as peek/next calls require them.
func NewBufferedStream[T any](src func() T) *BufferedStream[T] {
	return &BufferedStream[T]{pull: src}
}

// fill ensures the lookahead buffer holds at least n elements.
func (s *BufferedStream[T]) fill(n int) {
	for len(s.lookahead) < n {
		s.lookahead = append(s.lookahead, s.pull())
	}
}

// Peek returns the element at the current position plus offset, without
// consuming it. offset=0 is the next element that Next() would return.
func (s *BufferedStream[T]) Peek(offset int) T {
	s.fill(offset + 1)
	return s.lookahead[offset]
}

// Next returns and consumes the current element, pulling from the
// underlying source if the lookahead buffer is empty.
func (s *BufferedStream[T]) Next() T {
	s.fill(1)
	v := s.lookahead[0]
	s.lookahead = s.lookahead[1:]
	return v
}

// Accept consumes the current element and records it in the accept
// history, so a later Rewind() can replay it.
func (s *BufferedStream[T]) Accept() T {
	v := s.Next()
	s.acceptHistory = append(s.acceptHistory, v)
	return v
}

// Discard consumes the current element without recording it in history.
func (s *BufferedStream[T]) Discard() {
	s.Next()
}

// MarkCheckpoint records the current accept-history length; a subsequent
// Rewind() restores the stream to exactly this point.
func (s *BufferedStream[T]) MarkCheckpoint() {
	s.checkpointLen = len(s.acceptHistory)
}

// Rewind moves every element accepted since the last MarkCheckpoint back
// into the lookahead buffer, in original order, so the next Next() replays
// exactly the element that was current when the checkpoint was taken. The
// checkpoint resets to 0 afterward.
func (s *BufferedStream[T]) Rewind() {
	tail := s.acceptHistory[s.checkpointLen:]
	restored := make([]T, len(tail))
	copy(restored, tail)
	s.lookahead = append(restored, s.lookahead...)
	s.acceptHistory = s.acceptHistory[:s.checkpointLen]
	s.checkpointLen = 0
}

// ClearHistory drops all accept history and resets the checkpoint.
func (s *BufferedStream[T]) ClearHistory() {
	s.acceptHistory = s.acceptHistory[:0]
	s.checkpointLen = 0
}
