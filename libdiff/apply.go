package libdiff

import (
	"github.com/bitmk2/flocker/debug"
	"github.com/bitmk2/flocker/tree"
)

type proxyState int

const (
	idle proxyState = iota
	batching
)

// transformProxy accumulates changes against one container at a time.
//
// In the batching state it holds an evolver for the container at target.
// A change for a different container first commits the open batch: the
// evolver is made persistent (running record validation once) and the
// result is spliced into current. The proxy is local to one Apply call.
type transformProxy struct {
	state   proxyState
	current tree.Value
	target  tree.Path
	ev      *tree.Evolver
	pending int
	batches int
}

func newTransformProxy(original tree.Value) *transformProxy {
	return &transformProxy{current: original}
}

func (p *transformProxy) transform(c Change) error {
	target := c.container()
	if p.state == batching && !p.target.Equal(target) {
		if _, err := p.commit(); err != nil {
			return err
		}
	}
	if p.state == idle {
		if err := p.open(target); err != nil {
			return err
		}
	}
	if err := c.mutate(p.ev); err != nil {
		return &tree.PathResolutionError{Path: c.Location(), Index: -1, Reason: err.Error()}
	}
	p.pending++
	return nil
}

func (p *transformProxy) open(target tree.Path) error {
	v, err := p.current.Get(target)
	if err != nil {
		return err
	}
	ev, err := v.Evolver()
	if err != nil {
		return &tree.PathResolutionError{Path: target, Index: -1, Reason: err.Error()}
	}
	p.state = batching
	p.target = target
	p.ev = ev
	p.pending = 0
	p.batches++
	return nil
}

// replaced returns the value the Set c would overwrite, as c sees the
// tree: staged entries of the open batch take precedence over current.
func (p *transformProxy) replaced(c Set) (tree.Value, bool, error) {
	if p.state == batching && !p.target.Equal(c.container()) {
		if _, err := p.commit(); err != nil {
			return tree.Value{}, false, err
		}
	}
	if p.state == idle {
		v, err := p.current.Get(c.Path)
		return v, err == nil, nil
	}
	v, ok := p.ev.Lookup(c.Path[len(c.Path)-1].Item())
	return v, ok, nil
}

// commit flushes the open batch, if any, and returns the accumulated tree.
func (p *transformProxy) commit() (tree.Value, error) {
	if p.state == idle {
		return p.current, nil
	}
	if debug.Apply() {
		debug.Logf("apply: commit batch %d, %d changes at %s\n", p.batches, p.pending, p.target)
	}
	nv, err := p.ev.Persistent()
	if err != nil {
		return tree.Value{}, err
	}
	res, err := p.current.With(p.target, nv)
	if err != nil {
		return tree.Value{}, err
	}
	p.current = res
	p.state = idle
	p.target = nil
	p.ev = nil
	p.pending = 0
	return p.current, nil
}
