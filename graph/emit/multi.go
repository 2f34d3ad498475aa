package emit

// MultiEmitter fans every event out to a fixed list of emitters, in order.
type MultiEmitter struct {
	emitters []Emitter
}

// NewMultiEmitter returns an emitter that forwards to each non-nil emitter.
func NewMultiEmitter(emitters ...Emitter) *MultiEmitter {
	m := &MultiEmitter{}
	for _, e := range emitters {
		if e != nil {
			m.emitters = append(m.emitters, e)
		}
	}
	return m
}

// Emit forwards event to every wrapped emitter.
func (m *MultiEmitter) Emit(event Event) {
	for _, e := range m.emitters {
		e.Emit(event)
	}
}
