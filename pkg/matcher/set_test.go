package matcher

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Veraticus/partial-match/pkg/types"
)

func colorPatterns() []types.Pattern {
	return []types.Pattern{
		{Name: "3hex", Expr: "#[0-9a-fA-F]{3}"},
		{Name: "6hex", Expr: "#[0-9a-fA-F]{6}"},
	}
}

func TestSet_Match(t *testing.T) {
	set, err := NewSet(colorPatterns())
	require.NoError(t, err)

	tests := []struct {
		name      string
		input     string
		complete  map[string]string
		partial   map[string]string
		remainder map[string]string
		best      string
	}{
		{
			name:      "short complete long partial",
			input:     "#1234",
			complete:  map[string]string{"3hex": "#123"},
			partial:   map[string]string{"6hex": "#1234"},
			remainder: map[string]string{"3hex": "4"},
			best:      "3hex",
		},
		{
			name:      "both partial",
			input:     "#12",
			complete:  map[string]string{},
			partial:   map[string]string{"3hex": "#12", "6hex": "#12"},
			remainder: map[string]string{},
		},
		{
			name:      "both complete prefers empty remainder",
			input:     "#123456",
			complete:  map[string]string{"3hex": "#123", "6hex": "#123456"},
			partial:   map[string]string{},
			remainder: map[string]string{"3hex": "456", "6hex": ""},
			best:      "6hex",
		},
		{
			name:      "no match",
			input:     "xyz",
			complete:  map[string]string{},
			partial:   map[string]string{},
			remainder: map[string]string{},
		},
		{
			name:      "empty input",
			input:     "",
			complete:  map[string]string{},
			partial:   map[string]string{},
			remainder: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := set.Match(tt.input)
			assert.Equal(t, tt.complete, res.Complete)
			assert.Equal(t, tt.partial, res.Partial)
			assert.Equal(t, tt.remainder, res.Remainder)
			assert.Equal(t, tt.best, res.BestMatch)

			best, ok := res.Best()
			assert.Equal(t, tt.best != "", ok)
			assert.Equal(t, tt.best, best)

			for name := range res.Complete {
				assert.NotContains(t, res.Partial, name)
			}
		})
	}
}

func TestSet_BestMatchTieUsesInsertionOrder(t *testing.T) {
	defs := []types.Pattern{
		{Name: "zeta", Expr: "ab"},
		{Name: "alpha", Expr: "a."},
		{Name: "exact", Expr: "abc"},
	}
	set, err := NewSet(defs)
	require.NoError(t, err)

	res := set.Match("abx")
	assert.Equal(t, "zeta", res.BestMatch, "equal remainders go to the first pattern")
	assert.Equal(t, []string{"zeta", "alpha"}, res.CompleteNames())

	res = set.Match("abc")
	assert.Equal(t, "exact", res.BestMatch, "empty remainder wins over non-empty")
}

func TestSet_MatchIsIdempotent(t *testing.T) {
	set, err := NewSet(colorPatterns())
	require.NoError(t, err)

	first := set.Match("#1234")
	second := set.Match("#1234")
	assert.Equal(t, first, second)
}

func TestSet_ConcurrentMatch(t *testing.T) {
	set, err := NewSet(colorPatterns())
	require.NoError(t, err)
	want := set.Match("#1234")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				assert.Equal(t, want, set.Match("#1234"))
			}
		}()
	}
	wg.Wait()
}

func TestSet_Status(t *testing.T) {
	set, err := NewSet(colorPatterns())
	require.NoError(t, err)

	res := set.Match("#1234")
	assert.Equal(t, Complete, res.Status("3hex"))
	assert.Equal(t, Partial, res.Status("6hex"))
	assert.Equal(t, NoMatch, res.Status("missing"))
	assert.False(t, res.Empty())
	assert.Equal(t, []string{"6hex"}, res.PartialNames())

	assert.True(t, set.Match("nope").Empty())
}

func TestSet_SkipsDisabled(t *testing.T) {
	defs := append(colorPatterns(), types.Pattern{Name: "off", Expr: "#", Disabled: true})
	set, err := NewSet(defs)
	require.NoError(t, err)

	assert.Equal(t, []string{"3hex", "6hex"}, set.Names())
	assert.Equal(t, 2, set.Len())
	_, ok := set.Pattern("off")
	assert.False(t, ok)
}

func TestSet_NameErrors(t *testing.T) {
	_, err := NewSet([]types.Pattern{{Name: "", Expr: "a"}})
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = NewSet([]types.Pattern{{Name: "a", Expr: "a"}, {Name: "a", Expr: "b"}})
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestSet_CompileDiagnostics(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	defs := []types.Pattern{
		{Name: "broken", Expr: "ab[0-9"},
		{Name: "fine", Expr: "abc"},
	}

	set, err := NewSet(defs, WithLogger(zap.New(core)))
	require.NoError(t, err)

	diags := set.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, "broken", diags[0].Name)
	assert.Equal(t, 2, diags[0].Err.Offset)
	assert.Contains(t, diags[0].String(), "broken")

	entries := logs.FilterMessage("unable to parse pattern").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "broken", entries[0].ContextMap()["name"])
	assert.Equal(t, "[0-9", entries[0].ContextMap()["remaining"])

	// The truncated pattern keeps working with the atoms it has.
	res := set.Match("abz")
	assert.Equal(t, "ab", res.Complete["broken"])
	assert.Equal(t, "z", res.Remainder["broken"])
	assert.Equal(t, NoMatch, res.Status("fine"))
}

func TestSet_Strict(t *testing.T) {
	_, err := NewSet([]types.Pattern{{Name: "broken", Expr: "+"}}, WithStrict())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"broken"`)
}

func TestSet_MatchOne(t *testing.T) {
	set, err := NewSet(colorPatterns())
	require.NoError(t, err)

	out, ok := set.MatchOne("6hex", "#1234")
	require.True(t, ok)
	assert.Equal(t, Partial, out.Kind)

	_, ok = set.MatchOne("missing", "#1234")
	assert.False(t, ok)
}

func TestFromMap(t *testing.T) {
	set, err := FromMap(map[string]string{
		"6hex": "#[0-9a-fA-F]{6}",
		"3hex": "#[0-9a-fA-F]{3}",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"3hex", "6hex"}, set.Names())
	assert.Equal(t, "3hex", set.Match("#1234").BestMatch)
}

func TestNewSet_Empty(t *testing.T) {
	set, err := NewSet(nil)
	require.NoError(t, err)
	res := set.Match("anything")
	assert.True(t, res.Empty())
	_, ok := res.Best()
	assert.False(t, ok)
}
