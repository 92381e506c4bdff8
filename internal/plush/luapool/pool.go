// Package luapool loads atom-generator pools from Lua scripts.
//
// A script returns an array table. Strings, numbers and booleans become
// literal atoms; functions become atom generators and may return further
// functions. Inside generators the script draws randomness with rand.int(n),
// rand.float() or math.random, all bound to the random.Source the generator
// is called with.
//
//	return {
//	  "integer_add", "exec_dup", true,
//	  function() return rand.int(100) end,
//	  function() return function() return math.random(-10, 10) end end,
//	}
package luapool

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/Shopify/go-lua"
	apperrors "github.com/louisbranch/plush/internal/platform/errors"
	"github.com/louisbranch/plush/internal/plush"
	"github.com/louisbranch/plush/internal/random"
)

// functionsKey names the registry table holding generator functions.
const functionsKey = "plush.atom_functions"

// maxExactInteger is the largest float64 magnitude below which every
// integral value is exact.
const maxExactInteger = 1 << 53

var errClosed = errors.New("lua atom pool is closed")

// Pool is an atom pool backed by a Lua state. Calls into the state are
// serialized, so its generators may be used from several goroutines.
type Pool struct {
	mu    sync.Mutex
	state *lua.State
	src   random.Source
	atoms []plush.Atom
	next  int
}

// LoadFile runs the script at path and builds a pool from its result.
func LoadFile(path string) (*Pool, error) {
	return load(path, func(state *lua.State) error {
		return lua.LoadFile(state, path, "")
	})
}

// LoadString runs script, reported as name in Lua errors.
func LoadString(name, script string) (*Pool, error) {
	return load(name, func(state *lua.State) error {
		return lua.LoadBuffer(state, script, name, "")
	})
}

func load(name string, loader func(*lua.State) error) (*Pool, error) {
	state := lua.NewState()
	lua.OpenLibraries(state)

	p := &Pool{state: state}
	p.registerRandom()
	state.NewTable()
	state.SetField(lua.RegistryIndex, functionsKey)

	if err := loader(state); err != nil {
		return nil, fmt.Errorf("load lua %s: %w", name, err)
	}
	if err := state.ProtectedCall(0, 1, 0); err != nil {
		return nil, fmt.Errorf("run lua %s: %w", name, err)
	}
	if state.TypeOf(-1) != lua.TypeTable {
		state.Pop(1)
		return nil, apperrors.WithMetadata(apperrors.CodeInvalidArgument,
			"atom script "+name+" must return a table",
			map[string]string{"Argument": "atom script", "Reason": "must return a table"})
	}

	n := state.RawLength(-1)
	if n == 0 {
		state.Pop(1)
		return nil, apperrors.WithMetadata(apperrors.CodeInvalidArgument,
			"atom script "+name+" returned no atoms",
			map[string]string{"Argument": "atom script", "Reason": "returned no atoms"})
	}
	atoms := make([]plush.Atom, 0, n)
	for i := 1; i <= n; i++ {
		state.RawGetInt(-1, i)
		atom, err := p.atomAt(-1, 0)
		state.Pop(1)
		if err != nil {
			state.Pop(1)
			return nil, fmt.Errorf("atom script %s, element %d: %w", name, i, err)
		}
		atoms = append(atoms, atom)
	}
	state.Pop(1)

	p.atoms = atoms
	return p, nil
}

// Atoms returns the pool's atoms in script order.
func (p *Pool) Atoms() []plush.Atom {
	return append([]plush.Atom(nil), p.atoms...)
}

// Close releases the Lua state. Generators called afterwards fail.
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = nil
	return nil
}

// atomAt converts the value at index, which took depth generator calls to
// produce. Script-level functions stay in the registry for the life of the
// pool. Functions returned by a generator are stored one-shot and dropped
// when called. A function at plush.MaxAtomResolveDepth is never stored:
// Resolve gives up on it without calling it.
func (p *Pool) atomAt(index int, depth int) (plush.Atom, error) {
	state := p.state
	switch state.TypeOf(index) {
	case lua.TypeString:
		s, _ := state.ToString(index)
		return plush.Literal(s), nil
	case lua.TypeNumber:
		f, _ := state.ToNumber(index)
		if f == math.Trunc(f) && math.Abs(f) < maxExactInteger {
			return plush.Literal(int(f)), nil
		}
		return plush.Literal(f), nil
	case lua.TypeBoolean:
		return plush.Literal(state.ToBoolean(index)), nil
	case lua.TypeFunction:
		if depth >= plush.MaxAtomResolveDepth {
			return plush.Gen(exhausted(depth)), nil
		}
		key := p.storeFunction(index)
		return plush.Gen(p.generator(key, depth+1)), nil
	default:
		return plush.Atom{}, fmt.Errorf("unsupported atom type %s", lua.TypeNameOf(state, index))
	}
}

func (p *Pool) storeFunction(index int) int {
	state := p.state
	index = state.AbsIndex(index)
	state.Field(lua.RegistryIndex, functionsKey)
	p.next++
	state.PushValue(index)
	state.RawSetInt(-2, p.next)
	state.Pop(1)
	return p.next
}

func exhausted(depth int) plush.AtomFunc {
	return func(random.Source) (plush.Atom, error) {
		return plush.Atom{}, fmt.Errorf("atom generator nested past %d calls", depth)
	}
}

// generator calls the stored function key; depth counts this call.
func (p *Pool) generator(key int, depth int) plush.AtomFunc {
	oneShot := depth > 1
	return func(src random.Source) (plush.Atom, error) {
		p.mu.Lock()
		defer p.mu.Unlock()
		if p.state == nil {
			return plush.Atom{}, errClosed
		}

		state := p.state
		top := state.Top()
		defer state.SetTop(top)
		p.src = src
		defer func() { p.src = nil }()

		state.Field(lua.RegistryIndex, functionsKey)
		state.RawGetInt(-1, key)
		if state.TypeOf(-1) != lua.TypeFunction {
			return plush.Atom{}, fmt.Errorf("atom generator %d was already used", key)
		}
		if oneShot {
			state.PushNil()
			state.RawSetInt(-3, key)
		}
		if err := state.ProtectedCall(0, 1, 0); err != nil {
			return plush.Atom{}, fmt.Errorf("call lua atom generator: %w", err)
		}
		return p.atomAt(-1, depth)
	}
}
