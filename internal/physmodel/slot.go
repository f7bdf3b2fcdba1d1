package physmodel

// Slot holds the model governing a simulation. An empty slot yields its own
// Null model, built on first use, so Get never returns nil and no two slots
// share an instance.
type Slot struct {
	impl Impl
}

func (s *Slot) Get() Impl {
	if s.impl == nil {
		s.impl = NewNull(NullName)
	}
	return s.impl
}

// Set installs m; a nil m resets the slot to Null.
func (s *Slot) Set(m Impl) {
	s.impl = m
}

// IsNull reports whether the slot currently yields a Null model.
func (s *Slot) IsNull() bool {
	_, ok := s.Get().(*Null)
	return ok
}
