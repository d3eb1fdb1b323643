package discord

import (
	"github.com/bwmarrin/discordgo"

	"github.com/TKYcraft/lobby-run/lobby"
)

func (b *Bot) OnMessageReactionAdd(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	b.submit(reactionEvent(s, r.MessageReaction, r.Member, true))
}

func (b *Bot) OnMessageReactionRemove(s *discordgo.Session, r *discordgo.MessageReactionRemove) {
	b.submit(reactionEvent(s, r.MessageReaction, nil, false))
}

func reactionEvent(s *discordgo.Session, r *discordgo.MessageReaction, member *discordgo.Member, added bool) lobby.ReactionUpdate {
	return lobby.ReactionUpdate{
		UserID:    r.UserID,
		Bot:       isBot(s, r.GuildID, r.UserID, member),
		ChannelID: r.ChannelID,
		MessageID: r.MessageID,
		Emoji:     r.Emoji.Name,
		Added:     added,
	}
}
