package domain

// WithBeforeEmit installs a callback that runs in the merge loop before each
// target event is sent.
func WithBeforeEmit(fn func(StreamEvent)) MultiplexerOption {
	return func(m *Multiplexer) {
		m.beforeEmit = fn
	}
}
