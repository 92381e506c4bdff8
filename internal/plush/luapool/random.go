package luapool

import (
	"github.com/Shopify/go-lua"
	"github.com/louisbranch/plush/internal/random"
)

func (p *Pool) registerRandom() {
	state := p.state

	state.NewTable()
	lua.SetFunctions(state, []lua.RegistryFunction{
		{Name: "int", Function: p.randInt},
		{Name: "float", Function: p.randFloat},
	}, 0)
	state.SetGlobal("rand")

	// math.random would otherwise draw from the interpreter's own generator.
	state.Global("math")
	state.PushGoFunction(p.mathRandom)
	state.SetField(-2, "random")
	state.Pop(1)
}

func (p *Pool) source(state *lua.State) random.Source {
	if p.src == nil {
		lua.Errorf(state, "random draws are only available inside atom generators")
		return nil
	}
	return p.src
}

// randInt implements rand.int(n): uniform in [0, n).
func (p *Pool) randInt(state *lua.State) int {
	n := lua.CheckInteger(state, 1)
	src := p.source(state)
	v, err := src.Intn(n)
	if err != nil {
		lua.Errorf(state, "rand.int: %s", err.Error())
		return 0
	}
	state.PushInteger(v)
	return 1
}

// randFloat implements rand.float(): uniform in [0, 1).
func (p *Pool) randFloat(state *lua.State) int {
	state.PushNumber(p.source(state).Float64())
	return 1
}

// mathRandom follows Lua's math.random: no arguments gives [0, 1), one
// argument m gives [1, m], two give [m, n].
func (p *Pool) mathRandom(state *lua.State) int {
	src := p.source(state)
	var lo, hi int
	switch state.Top() {
	case 0:
		state.PushNumber(src.Float64())
		return 1
	case 1:
		lo, hi = 1, lua.CheckInteger(state, 1)
	case 2:
		lo, hi = lua.CheckInteger(state, 1), lua.CheckInteger(state, 2)
	default:
		lua.Errorf(state, "wrong number of arguments")
		return 0
	}
	if lo > hi {
		lua.Errorf(state, "interval is empty")
		return 0
	}
	v, err := src.Intn(hi - lo + 1)
	if err != nil {
		lua.Errorf(state, "math.random: %s", err.Error())
		return 0
	}
	state.PushInteger(lo + v)
	return 1
}
