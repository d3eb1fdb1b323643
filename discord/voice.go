package discord

import (
	"context"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/TKYcraft/lobby-run/lobby"
)

func (b *Bot) OnVoiceStateUpdate(s *discordgo.Session, vs *discordgo.VoiceStateUpdate) {
	ev := lobby.VoiceUpdate{
		UserID: vs.UserID,
		Bot:    isBot(s, vs.GuildID, vs.UserID, vs.Member),
		After:  vs.ChannelID,
	}
	if vs.BeforeUpdate != nil {
		ev.BeforeKnown = true
		ev.Before = vs.BeforeUpdate.ChannelID
	}

	slog.Debug("voice state update", "user", vs.UserID, "before", ev.Before, "after", ev.After)
	b.submit(ev)
}

// セッションを利用し、チャンネルIDに沿ったチャンネルを取得する。
func findChannel(s *discordgo.Session, channelID string) (*discordgo.Channel, error) {
	c, err := s.State.Channel(channelID)
	if err == nil {
		return c, nil
	}

	// stateに無ければAPIから取得
	c, err = s.Channel(channelID)
	if err != nil {
		slog.Error("could not find channel.", "channel", channelID, "err", err)
		return nil, err
	}
	return c, nil
}

// セッションを利用し、ギルドIDに沿ったギルドを取得する。
func findGuild(s *discordgo.Session, guildID string) (*discordgo.Guild, error) {
	g, err := s.State.Guild(guildID)
	if err != nil {
		slog.Error("could not find guild.", "guild", guildID, "err", err)
		return nil, err
	}

	slog.Debug("find guild", "guild", g.ID)
	return g, nil
}

// ギルド内のチャンネルを名前の完全一致で探す。
func findChannelByName(s *discordgo.Session, guildID string, name string) (*discordgo.Channel, bool) {
	var channels []*discordgo.Channel
	if g, err := findGuild(s, guildID); err == nil {
		channels = g.Channels
	}
	if len(channels) == 0 {
		var err error
		if channels, err = s.GuildChannels(guildID); err != nil {
			slog.Error("cannot list guild channels", "guild", guildID, "err", err)
			return nil, false
		}
	}

	for _, c := range channels {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

func findMember(ctx context.Context, s *discordgo.Session, guildID, userID string) (*discordgo.Member, error) {
	if m, err := s.State.Member(guildID, userID); err == nil {
		return m, nil
	}
	return s.GuildMember(guildID, userID, discordgo.WithContext(ctx))
}

func memberName(m *discordgo.Member) string {
	if m.Nick != "" {
		return m.Nick
	}
	if m.User != nil {
		return m.User.Username
	}
	return ""
}

// isBot reports whether userID is this bot or any bot account. member may be nil.
func isBot(s *discordgo.Session, guildID, userID string, member *discordgo.Member) bool {
	if s.State != nil && s.State.User != nil && s.State.User.ID == userID {
		return true
	}
	if member == nil && s.State != nil {
		member, _ = s.State.Member(guildID, userID)
	}
	return member != nil && member.User != nil && member.User.Bot
}
