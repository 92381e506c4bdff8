package luapool

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Shopify/go-lua"
	apperrors "github.com/louisbranch/plush/internal/platform/errors"
	"github.com/louisbranch/plush/internal/plush"
	"github.com/louisbranch/plush/internal/random"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const vocabulary = `
return {
  "integer_add",
  3,
  2.5,
  true,
  function() return rand.int(10) end,
  function() return function() return "nested" end end,
  function() return math.random(-5, 5) end,
}
`

func loadVocabulary(t *testing.T) *Pool {
	t.Helper()
	pool, err := LoadString("vocabulary", vocabulary)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pool.Close() })
	return pool
}

func TestLoadStringLiterals(t *testing.T) {
	atoms := loadVocabulary(t).Atoms()
	require.Len(t, atoms, 7)

	src := random.New(1)
	want := []any{"integer_add", 3, 2.5, true}
	for i, w := range want {
		require.False(t, atoms[i].IsGenerator(), "atom %d", i)
		v, err := atoms[i].Resolve(src)
		require.NoError(t, err)
		assert.Equal(t, w, v, "atom %d", i)
	}
	for _, a := range atoms[4:] {
		assert.True(t, a.IsGenerator())
	}
}

func TestGeneratorsDrawFromSource(t *testing.T) {
	atoms := loadVocabulary(t).Atoms()

	v, err := atoms[4].Resolve(&fixedSource{n: 7})
	require.NoError(t, err)
	assert.Equal(t, 7, v)

	v, err = atoms[6].Resolve(&fixedSource{n: 0})
	require.NoError(t, err)
	assert.Equal(t, -5, v)

	src := random.New(2)
	for i := 0; i < 200; i++ {
		v, err := atoms[6].Resolve(src)
		require.NoError(t, err)
		n := v.(int)
		require.True(t, n >= -5 && n <= 5, "math.random(-5, 5) = %d", n)
	}
}

func TestNestedGenerator(t *testing.T) {
	atoms := loadVocabulary(t).Atoms()
	for i := 0; i < 3; i++ {
		v, err := atoms[5].Resolve(random.New(1))
		require.NoError(t, err)
		assert.Equal(t, "nested", v)
	}
}

func TestGenomesReproducible(t *testing.T) {
	pool := loadVocabulary(t)
	g, err := plush.New(pool.Atoms(), plush.Config{EpigeneticMarkers: []plush.Marker{plush.MarkerClose}})
	require.NoError(t, err)

	a, err := g.Genome(random.New(99), 60)
	require.NoError(t, err)
	b, err := g.Genome(random.New(99), 60)
	require.NoError(t, err)
	for i := range a {
		assert.Equal(t, a[i].Instruction, b[i].Instruction, "entry %d", i)
		assert.Equal(t, a[i].Close, b[i].Close, "entry %d", i)
	}
}

func TestPoolSafeForPopulation(t *testing.T) {
	pool := loadVocabulary(t)
	g, err := plush.New(pool.Atoms(), plush.Config{})
	require.NoError(t, err)

	cfg := plush.PopulationConfig{Size: 20, MaxGenomeSize: 30, Seed: 5, Workers: 4}
	first, err := plush.Population(context.Background(), g, cfg)
	require.NoError(t, err)
	cfg.Workers = 1
	second, err := plush.Population(context.Background(), g, cfg)
	require.NoError(t, err)
	for i := range first {
		require.Len(t, second[i], len(first[i]))
		for j := range first[i] {
			assert.Equal(t, first[i][j].Instruction, second[i][j].Instruction)
		}
	}
}

func TestRunawayGeneratorIsMalformed(t *testing.T) {
	pool, err := LoadString("runaway", `
local function forever() return forever end
return { forever }
`)
	require.NoError(t, err)
	_, err = pool.Atoms()[0].Resolve(random.New(1))
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeMalformedGenerator, apperrors.GetCode(err))
}

func TestRunawayGeneratorReleasesFunctions(t *testing.T) {
	pool, err := LoadString("runaway", `
local function forever() return forever end
return { forever, function() return function() return "inner" end end }
`)
	require.NoError(t, err)
	atoms := pool.Atoms()
	require.Equal(t, 2, pendingFunctions(pool))

	src := random.New(1)
	for i := 0; i < 1000; i++ {
		_, err := atoms[0].Resolve(src)
		require.Error(t, err)
		v, err := atoms[1].Resolve(src)
		require.NoError(t, err)
		require.Equal(t, "inner", v)
	}
	assert.Equal(t, 2, pendingFunctions(pool))
}

func TestGeneratorRuntimeError(t *testing.T) {
	pool, err := LoadString("broken", `return { function() error("bad atom") end, function() return {} end }`)
	require.NoError(t, err)

	_, err = pool.Atoms()[0].Resolve(random.New(1))
	assert.Equal(t, apperrors.CodeMalformedGenerator, apperrors.GetCode(err))
	_, err = pool.Atoms()[1].Resolve(random.New(1))
	assert.Equal(t, apperrors.CodeMalformedGenerator, apperrors.GetCode(err))
}

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		name   string
		script string
		code   apperrors.Code
	}{
		{"Syntax", `return {`, apperrors.CodeUnknown},
		{"NotATable", `return "integer_add"`, apperrors.CodeInvalidArgument},
		{"Empty", `return {}`, apperrors.CodeInvalidArgument},
		{"UnsupportedElement", `return { {1, 2} }`, apperrors.CodeUnknown},
		{"RandomAtLoad", `local n = rand.int(3) return { n }`, apperrors.CodeUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadString(tc.name, tc.script)
			require.Error(t, err)
			assert.Equal(t, tc.code, apperrors.GetCode(err))
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "atoms.lua")
	require.NoError(t, os.WriteFile(path, []byte(`return { "exec_dup", function() return rand.float() end }`), 0o600))

	pool, err := LoadFile(path)
	require.NoError(t, err)
	atoms := pool.Atoms()
	require.Len(t, atoms, 2)

	v, err := atoms[1].Resolve(random.New(4))
	require.NoError(t, err)
	f := v.(float64)
	assert.True(t, f >= 0 && f < 1)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.lua"))
	assert.Error(t, err)
}

func TestClosedPool(t *testing.T) {
	pool, err := LoadString("closed", `return { function() return 1 end }`)
	require.NoError(t, err)
	atom := pool.Atoms()[0]
	require.NoError(t, pool.Close())

	_, err = atom.Resolve(random.New(1))
	assert.ErrorIs(t, err, errClosed)
}

// pendingFunctions counts the generator functions held in the registry.
func pendingFunctions(p *Pool) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == nil {
		return 0
	}
	state := p.state
	top := state.Top()
	defer state.SetTop(top)

	state.Field(lua.RegistryIndex, functionsKey)
	count := 0
	state.PushNil()
	for state.Next(-2) {
		count++
		state.Pop(1)
	}
	return count
}

// fixedSource returns n from every Intn call.
type fixedSource struct{ n int }

func (s *fixedSource) Float64() float64 { return 0 }

func (s *fixedSource) Intn(n int) (int, error) { return s.n % n, nil }
