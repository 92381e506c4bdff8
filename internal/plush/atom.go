package plush

import (
	"errors"
	"strconv"

	apperrors "github.com/louisbranch/plush/internal/platform/errors"
	"github.com/louisbranch/plush/internal/random"
)

// MaxAtomResolveDepth is how many generator calls Resolve makes before
// giving up on an atom that keeps producing generators.
const MaxAtomResolveDepth = 2

// AtomFunc produces an atom, possibly another generator. It draws any
// randomness it needs from src.
type AtomFunc func(src random.Source) (Atom, error)

// Atom is one element of an atom-generator pool: either a literal value
// (an instruction symbol or a constant) or a generator of atoms.
type Atom struct {
	value any
	fn    AtomFunc
}

// Literal returns an atom that resolves to v.
func Literal(v any) Atom {
	return Atom{value: v}
}

// Gen returns an atom that resolves by calling fn.
func Gen(fn AtomFunc) Atom {
	if fn == nil {
		fn = func(random.Source) (Atom, error) {
			return Atom{}, errors.New("nil atom generator")
		}
	}
	return Atom{fn: fn}
}

// Literals wraps each value as a literal atom.
func Literals(values ...any) []Atom {
	atoms := make([]Atom, len(values))
	for i, v := range values {
		atoms[i] = Literal(v)
	}
	return atoms
}

// IsGenerator reports whether the atom must be called to get a value.
func (a Atom) IsGenerator() bool {
	return a.fn != nil
}

// Value returns the literal value; it is nil for generators.
func (a Atom) Value() any {
	return a.value
}

// Resolve calls generators until a literal comes out.
func (a Atom) Resolve(src random.Source) (any, error) {
	for calls := 0; a.fn != nil; calls++ {
		if calls == MaxAtomResolveDepth {
			return nil, apperrors.WithMetadata(apperrors.CodeMalformedGenerator,
				"atom generator still yields a generator after "+strconv.Itoa(calls)+" calls",
				map[string]string{"Depth": strconv.Itoa(calls)})
		}
		next, err := a.fn(src)
		if err != nil {
			return nil, apperrors.WrapWithMetadata(apperrors.CodeMalformedGenerator, "call atom generator",
				map[string]string{"Depth": strconv.Itoa(calls + 1)}, err)
		}
		a = next
	}
	return a.value, nil
}
