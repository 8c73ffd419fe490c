package shelf

// Pending is the completion of one persist. It resolves exactly once.
// Callers may wait on it, poll it, or drop it.
type Pending struct {
	done chan struct{}
	err  error
}

func newPending() *Pending {
	return &Pending{done: make(chan struct{})}
}

// resolved returns a Pending that has already completed with err.
func resolved(err error) *Pending {
	p := newPending()
	p.resolve(err)
	return p
}

func (p *Pending) resolve(err error) {
	p.err = err
	close(p.done)
}

// Done is closed when the persist has finished.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the persist has finished and returns its error.
func (p *Pending) Wait() error {
	<-p.done
	return p.err
}

// Err returns the persist error, or nil if it succeeded or is still in
// flight.
func (p *Pending) Err() error {
	select {
	case <-p.done:
		return p.err
	default:
		return nil
	}
}
