package discord

import (
	"context"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/TKYcraft/lobby-run/lobby"
)

// Bot routes gateway events into the lobby session.
type Bot struct {
	ctx   context.Context
	lobby *lobby.Session
}

func NewBot(ctx context.Context, l *lobby.Session) *Bot {
	return &Bot{ctx: ctx, lobby: l}
}

func (b *Bot) submit(ev lobby.Event) {
	if err := b.lobby.Submit(b.ctx, ev); err != nil {
		slog.Warn("dropped lobby event", "err", err)
	}
}

func (b *Bot) OnReady(s *discordgo.Session, event *discordgo.Ready) {
	if err := s.UpdateGameStatus(0, Conf.Game+" lobby"); err != nil {
		slog.Error("cannot update game status", "err", err)
	}
	slog.Info("logged in", "user", event.User.Username)
	b.submit(lobby.Ready{})
}

// OnGuildCreate hands the guild's live voice states to the lobby so it can
// rebuild membership after a restart.
func (b *Bot) OnGuildCreate(s *discordgo.Session, event *discordgo.GuildCreate) {
	if event.Guild.Unavailable {
		return
	}

	voice := make([]lobby.VoiceMember, 0, len(event.Guild.VoiceStates))
	for _, vs := range event.Guild.VoiceStates {
		voice = append(voice, lobby.VoiceMember{
			UserID:    vs.UserID,
			ChannelID: vs.ChannelID,
			Bot:       isBot(s, event.Guild.ID, vs.UserID, vs.Member),
		})
	}
	b.submit(lobby.GuildAvailable{GuildID: event.Guild.ID, Voice: voice})
}
