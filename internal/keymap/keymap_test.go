package keymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := map[string]Binding{
		"ctrl+z":         {Key: "Z", Ctrl: true},
		"Ctrl + Shift+Z": {Key: "Z", Ctrl: true, Shift: true},
		"cmd+y":          {Key: "Y", Super: true},
		"alt+f4":         {Key: "F4", Alt: true},
		"esc":            {Key: "Escape"},
		"control+1":      {Key: "1", Ctrl: true},
	}
	for in, want := range cases {
		got, err := Parse(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{"", "ctrl+", "ctrl+ "} {
		_, err := Parse(in)
		assert.ErrorIs(t, err, ErrEmptyBinding, in)
	}

	_, err := Parse("hyper+z")
	assert.Error(t, err)
	_, err = Parse("ctrl+pagedown")
	assert.Error(t, err)
}

func TestStringRoundTrip(t *testing.T) {
	for _, in := range []string{"ctrl+z", "ctrl+shift+z", "alt+super+f12", "space"} {
		b, err := Parse(in)
		require.NoError(t, err)
		again, err := Parse(b.String())
		require.NoError(t, err)
		assert.Equal(t, b, again)
	}
	assert.Equal(t, "ctrl+shift+z", MustParse("shift+ctrl+Z").String())
}

func TestMatchesIgnoresShiftWhenUnbound(t *testing.T) {
	undo := MustParse("ctrl+z")
	assert.True(t, undo.Matches(Stroke{Key: "Z", Ctrl: true}))
	assert.True(t, undo.Matches(Stroke{Key: "z", Ctrl: true, Shift: true}))
	assert.False(t, undo.Matches(Stroke{Key: "Z"}))
	assert.False(t, undo.Matches(Stroke{Key: "Z", Ctrl: true, Alt: true}))
	assert.False(t, undo.Matches(Stroke{Key: "X", Ctrl: true}))

	redo := MustParse("ctrl+shift+z")
	assert.False(t, redo.Matches(Stroke{Key: "Z", Ctrl: true}))
	assert.True(t, redo.Matches(Stroke{Key: "Z", Ctrl: true, Shift: true}))
}

func TestLookupDefault(t *testing.T) {
	km := Default()

	a, ok := km.Lookup(Stroke{Key: "Z", Ctrl: true})
	require.True(t, ok)
	assert.Equal(t, ActionUndo, a)

	a, ok = km.Lookup(Stroke{Key: "Z", Ctrl: true, Shift: true})
	require.True(t, ok)
	assert.Equal(t, ActionUndo, a)

	a, ok = km.Lookup(Stroke{Key: "Y", Ctrl: true})
	require.True(t, ok)
	assert.Equal(t, ActionRedo, a)

	_, ok = km.Lookup(Stroke{Key: "Z"})
	assert.False(t, ok)
}

func TestLookupPrefersExact(t *testing.T) {
	km, err := New(map[Action]string{
		ActionUndo: "ctrl+z",
		ActionRedo: "ctrl+shift+z",
	})
	require.NoError(t, err)

	a, ok := km.Lookup(Stroke{Key: "Z", Ctrl: true, Shift: true})
	require.True(t, ok)
	assert.Equal(t, ActionRedo, a)

	a, ok = km.Lookup(Stroke{Key: "Z", Ctrl: true})
	require.True(t, ok)
	assert.Equal(t, ActionUndo, a)

	_, err = New(map[Action]string{ActionUndo: "ctrl+"})
	assert.ErrorIs(t, err, ErrEmptyBinding)
}

func TestBindingsIsCopy(t *testing.T) {
	km := Default()
	all := km.Bindings()
	require.Len(t, all, 2)
	delete(all, ActionUndo)

	_, ok := km.Binding(ActionUndo)
	assert.True(t, ok)
}
