package lobby

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func players(n int) []Player {
	out := make([]Player, n)
	for i := range out {
		out[i] = Player{UserID: fmt.Sprint(i), Name: fmt.Sprintf("p%d", i), Ready: true}
	}
	return out
}

func entries(n int, ready bool) []Entry {
	out := make([]Entry, n)
	for i := range out {
		out[i] = Entry{UserID: fmt.Sprint(i), Ready: ready}
	}
	return out
}

func TestDraftEligible(t *testing.T) {
	tests := []struct {
		name string
		in   []Entry
		want bool
	}{
		{"empty", nil, false},
		{"one ready", entries(1, true), false},
		{"two ready", entries(2, true), true},
		{"ten ready", entries(10, true), true},
		{"eleven ready", entries(11, true), false},
		{"one not ready", append(entries(3, true), Entry{UserID: "x"}), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DraftEligible(tt.in))
		})
	}
}

func TestNewDraft_CaptainsDistinctAndRestLabelled(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		ps := players(7)
		d, ok := NewDraft(ps, rand.New(rand.NewSource(seed)))
		require.True(t, ok)

		assert.NotEqual(t, d.Captains[0].UserID, d.Captains[1].UserID)
		assert.Equal(t, d.Captains[0], d.Picking)
		require.Len(t, d.Available, 5)

		seen := map[string]bool{d.Captains[0].UserID: true, d.Captains[1].UserID: true}
		for i, pk := range d.Available {
			assert.Equal(t, Palette[i], pk.Symbol)
			assert.False(t, seen[pk.Player.UserID], "player listed twice")
			seen[pk.Player.UserID] = true
		}
		assert.Len(t, seen, 7)
	}
}

func TestNewDraft_TooFewPlayers(t *testing.T) {
	_, ok := NewDraft(players(1), rand.New(rand.NewSource(1)))
	assert.False(t, ok)
}

func TestNewDraft_CapsAtPalette(t *testing.T) {
	d, ok := NewDraft(players(len(Palette)+4), rand.New(rand.NewSource(3)))
	require.True(t, ok)
	assert.Len(t, d.Available, len(Palette))
}

func TestDraftMessage(t *testing.T) {
	d, ok := NewDraft(players(3), rand.New(rand.NewSource(5)))
	require.True(t, ok)

	m := d.Message()
	require.NotNil(t, m.Embed)
	assert.Empty(t, m.Content)
	assert.NotContains(t, m.Embed.Description, "react")
	require.Len(t, m.Embed.Fields, 4)
	assert.Equal(t, "Team "+d.Captains[0].Name, m.Embed.Fields[0].Name)
	assert.Equal(t, "Team "+d.Captains[1].Name, m.Embed.Fields[1].Name)
	assert.Equal(t, Palette[0]+" "+d.Available[0].Player.Name, m.Embed.Fields[2].Value)
	assert.Equal(t, d.Captains[0].Name, m.Embed.Fields[3].Value)
}
