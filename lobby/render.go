package lobby

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

const (
	colorWaiting = 0xE67E22
	colorDraft   = 0x2ECC71
)

// Player is a live lobby occupant with a resolved display name.
type Player struct {
	UserID string
	Name   string
	Ready  bool
}

func statusText(ready bool) string {
	if ready {
		return "READY"
	}
	return "NOT READY"
}

// StatusMessage renders the lobby summary. With rich set the summary is
// carried as an embed instead of plain content.
func StatusMessage(game string, minPlayers int, players []Player, rich bool) Message {
	title := fmt.Sprintf("**%s Lobby Status**", game)
	count := fmt.Sprintf("**%d user(s) in lobby, need at least %d users**", len(players), minPlayers)
	hint := fmt.Sprintf("React with %s below to ready up", ReadyEmoji)

	lines := make([]string, 0, len(players))
	for _, p := range players {
		lines = append(lines, fmt.Sprintf("%s - %s", p.Name, statusText(p.Ready)))
	}
	list := fmt.Sprintf("```yaml\nPlayers:\n%s\n```", strings.Join(lines, "\n"))

	if !rich {
		return Message{Content: title + "\n\n" + count + "\n" + hint + "\n\n" + list}
	}
	return Message{Embed: &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s Lobby Status", game),
		Description: count + "\n" + hint + "\n\n" + list,
		Color:       colorWaiting,
	}}
}
