package resilience

import "sync"

type flightResult struct {
	val any
	err error
}

type flight struct {
	done chan struct{}
	res  flightResult
}

// SingleFlight collapses concurrent calls with the same key into one
// execution; followers block until the leader finishes and share its
// result. The third return value reports whether the caller was a
// follower.
type SingleFlight struct {
	mu       sync.Mutex
	inFlight map[string]*flight
}

func (g *SingleFlight) Do(key string, fn func() (any, error)) (any, error, bool) {
	g.mu.Lock()
	if g.inFlight == nil {
		g.inFlight = make(map[string]*flight)
	}
	if f, ok := g.inFlight[key]; ok {
		g.mu.Unlock()
		<-f.done
		return f.res.val, f.res.err, true
	}

	f := &flight{done: make(chan struct{})}
	g.inFlight[key] = f
	g.mu.Unlock()

	f.res.val, f.res.err = fn()

	g.mu.Lock()
	delete(g.inFlight, key)
	g.mu.Unlock()
	close(f.done)

	return f.res.val, f.res.err, false
}
