package identity

import "sync"

type registry struct {
	mu     sync.Mutex
	nextID int
	fns    map[int]Listener
}

func (r *registry) add(fn Listener) func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fns == nil {
		r.fns = make(map[int]Listener)
	}
	id := r.nextID
	r.nextID++
	r.fns[id] = fn

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.fns, id)
	}
}

func (r *registry) snapshot() []Listener {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Listener, 0, len(r.fns))
	for _, fn := range r.fns {
		out = append(out, fn)
	}
	return out
}
