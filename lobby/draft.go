package lobby

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/bwmarrin/discordgo"
)

const (
	DraftMinPlayers = 2
	DraftMaxPlayers = 10
)

// Palette labels the selectable players, in order.
var Palette = []string{"🐸", "🦊", "🐼", "🐙", "🦄", "🐢", "🦉", "🐝", "🦀", "🐳"}

type Pick struct {
	Symbol string
	Player Player
}

// Draft is the team selection view. It is display only: nothing consumes
// picks made after it is shown.
type Draft struct {
	Captains  [2]Player
	Available []Pick
	Picking   Player
}

// DraftEligible reports whether every entry is ready and the headcount is in range.
func DraftEligible(entries []Entry) bool {
	n := len(entries)
	return n >= DraftMinPlayers && n <= DraftMaxPlayers && AllReady(entries)
}

// NewDraft picks two distinct captains at random and labels the rest from
// Palette. It fails with fewer than two players.
func NewDraft(players []Player, rng *rand.Rand) (Draft, bool) {
	if len(players) < DraftMinPlayers {
		return Draft{}, false
	}

	order := rng.Perm(len(players))
	d := Draft{Captains: [2]Player{players[order[0]], players[order[1]]}}
	d.Picking = d.Captains[0]

	// keep the remaining players in lobby order
	rest := make([]Player, 0, len(players)-2)
	for i, p := range players {
		if i != order[0] && i != order[1] {
			rest = append(rest, p)
		}
	}
	for i, p := range rest {
		if i >= len(Palette) {
			break
		}
		d.Available = append(d.Available, Pick{Symbol: Palette[i], Player: p})
	}
	return d, true
}

func (d Draft) Message() Message {
	available := "No players left to pick"
	if len(d.Available) > 0 {
		lines := make([]string, 0, len(d.Available))
		for _, pk := range d.Available {
			lines = append(lines, fmt.Sprintf("%s %s", pk.Symbol, pk.Player.Name))
		}
		available = strings.Join(lines, "\n")
	}

	return Message{Embed: &discordgo.MessageEmbed{
		Title:       "Team Selection",
		Description: "Everyone is ready. Captains pick in this order.",
		Color:       colorDraft,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Team " + d.Captains[0].Name, Value: d.Captains[0].Name, Inline: true},
			{Name: "Team " + d.Captains[1].Name, Value: d.Captains[1].Name, Inline: true},
			{Name: "Available Players", Value: available},
			{Name: "Currently Picking", Value: d.Picking.Name},
		},
	}}
}
