// Package bridge adapts host-supplied completion sources into the
// candidate-at-a-time pull protocol the line editor expects.
//
// A host supplies completions either as a generator callable (invoked once per
// word prefix, returning an iterator of candidates), as an ordered collection
// of strings, or not at all. The editor pulls candidates one at a time; each
// pull sequence for a single prefix is one Generation.
package bridge

import (
	"strings"

	"github.com/motoprogger/lua-readline/internal/rerrors"
)

// Iterator produces successive completion candidates for one generation.
// ok is false once the iterator is exhausted.
type Iterator func() (candidate string, ok bool, err error)

// GeneratorFunc is a host completion generator. It is invoked once per
// generation with the word prefix already typed and returns the iterator that
// produces the candidates. A nil iterator means no candidates. The generator
// is trusted to filter its own output; the bridge does not re-filter it.
type GeneratorFunc func(prefix string) (Iterator, error)

type sourceKind int

const (
	kindAbsent sourceKind = iota
	kindStatic
	kindCallable
)

// Source describes where completion candidates come from. The zero value is
// the absent source. The variant is resolved once when a generation begins.
type Source struct {
	kind  sourceKind
	gen   GeneratorFunc
	items []string
}

// Callable builds a source backed by a host generator callable.
func Callable(gen GeneratorFunc) Source {
	if gen == nil {
		return Absent()
	}
	return Source{kind: kindCallable, gen: gen}
}

// Static builds a source backed by an ordered collection of strings.
// Candidates are filtered to entries starting with the generation prefix,
// case-sensitively, in collection order.
func Static(items []string) Source {
	return Source{kind: kindStatic, items: items}
}

// Absent builds the empty source. It is exhausted on the first pull.
func Absent() Source {
	return Source{kind: kindAbsent}
}

// Generation is one pull sequence of candidates for a single prefix within a
// single read. It is created by Begin and discarded when the read completes.
// Exhaustion latches: once a pull reports no candidate, the host is never
// called again for this generation.
type Generation struct {
	prefix string
	src    Source
	next   Iterator
	opened bool
	done   bool
	err    error
}

// Begin binds a source and a prefix into a fresh generation, resolving the
// source variant. It replaces whatever generation the caller held before.
// The host generator, if any, is not invoked until the first pull.
func Begin(src Source, prefix string) *Generation {
	return &Generation{prefix: prefix, src: src}
}

// Prefix returns the word prefix this generation was begun with.
func (g *Generation) Prefix() string {
	return g.prefix
}

// Next advances the generation by one candidate. ok is false once the
// generation is exhausted. Each returned candidate is an owned copy; the
// bridge retains no reference to it.
func (g *Generation) Next() (string, bool) {
	if g.done {
		return "", false
	}
	if !g.opened {
		g.open()
		if g.done {
			return "", false
		}
	}
	cand, ok, err := g.next()
	if err != nil {
		g.done = true
		g.err = rerrors.NewCallbackError(g.prefix, "completion iterator failed", err)
		return "", false
	}
	if !ok {
		g.done = true
		return "", false
	}
	return cand, true
}

// Err returns the host callable error that terminated this generation, if
// any. A generation that merely ran out of candidates has a nil Err.
func (g *Generation) Err() error {
	return g.err
}

func (g *Generation) open() {
	g.opened = true
	switch g.src.kind {
	case kindCallable:
		it, err := g.src.gen(g.prefix)
		if err != nil {
			g.done = true
			g.err = rerrors.NewCallbackError(g.prefix, "completion generator failed", err)
			return
		}
		if it == nil {
			g.done = true
			return
		}
		g.next = it
	case kindStatic:
		g.next = staticIterator(g.src.items, g.prefix)
	default:
		g.done = true
	}
}

// staticIterator walks the collection in order, skipping entries that do not
// start with the prefix. The cursor survives across pulls within a generation.
func staticIterator(items []string, prefix string) Iterator {
	idx := 0
	return func() (string, bool, error) {
		for idx < len(items) {
			cand := items[idx]
			idx++
			if strings.HasPrefix(cand, prefix) {
				return cand, true, nil
			}
		}
		return "", false, nil
	}
}
