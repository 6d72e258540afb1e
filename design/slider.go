package design

// Slider is the rotation state of the design carousel.
//
// Index stays in [0, Len) whenever Len > 0 and is 0 when the list is empty.
// Every change of index or length bumps Generation; autoplay ticks carry the
// generation they were scheduled for and are ignored once it moved on, which
// restarts the interval on any manual navigation.
type Slider struct {
	index      int
	length     int
	generation uint64
}

func (s *Slider) Index() int { return s.index }

func (s *Slider) Len() int { return s.length }

func (s *Slider) Generation() uint64 { return s.generation }

// Autoplay reports whether the carousel should advance on its own.
func (s *Slider) Autoplay() bool { return s.length > 1 }

// OffsetPercent is the horizontal track offset of the current slide.
func (s *Slider) OffsetPercent() int { return -s.index * 100 }

func (s *Slider) set(index, length int) {
	if index == s.index && length == s.length {
		return
	}
	s.index, s.length = index, length
	s.generation++
}

// Reset replaces the list length and shows the first slide.
func (s *Slider) Reset(length int) {
	if length < 0 {
		length = 0
	}
	s.set(0, length)
	// a fresh list always restarts the interval
	s.generation++
}

// Resize changes the list length and keeps the index, clamped into range.
func (s *Slider) Resize(length int) {
	if length < 0 {
		length = 0
	}
	idx := s.index
	if idx >= length {
		idx = length - 1
	}
	if idx < 0 {
		idx = 0
	}
	s.set(idx, length)
}

// Next advances circularly. It is a no-op on an empty list.
func (s *Slider) Next() {
	if s.length == 0 {
		return
	}
	s.set((s.index+1)%s.length, s.length)
}

// Prev steps back circularly. It is a no-op on an empty list.
func (s *Slider) Prev() {
	if s.length == 0 {
		return
	}
	s.set((s.index-1+s.length)%s.length, s.length)
}

// Goto jumps to slide i. Out of range indexes are rejected.
func (s *Slider) Goto(i int) bool {
	if i < 0 || i >= s.length {
		return false
	}
	s.set(i, s.length)
	return true
}

// Advance handles an autoplay tick scheduled at generation gen. It returns
// false for stale ticks and when autoplay is off.
func (s *Slider) Advance(gen uint64) bool {
	if gen != s.generation || !s.Autoplay() {
		return false
	}
	s.Next()
	return true
}
