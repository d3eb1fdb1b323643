package discord

import (
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/TKYcraft/lobby-run/lobby"
)

func PingPong(s *discordgo.Session, m *discordgo.MessageCreate) {
	sendReply(s, "pong", m.Reference())
}

func (b *Bot) SetMonitorChannel(s *discordgo.Session, m *discordgo.MessageCreate, name string) {
	b.setChannel(s, m, name, lobby.RoleMonitor, "CS monitoring channel set to: %s")
}

func (b *Bot) SetTextChannel(s *discordgo.Session, m *discordgo.MessageCreate, name string) {
	b.setChannel(s, m, name, lobby.RoleText, "CS text channel set to: %s")
}

func (b *Bot) setChannel(s *discordgo.Session, m *discordgo.MessageCreate, name string, role lobby.ChannelRole, confirm string) {
	if name == "" {
		sendMessage(s, m.ChannelID, "Usage: "+Conf.Prefix+"cs_mon_channel <name> / "+Conf.Prefix+"cs_text_channel <name>")
		return
	}

	c, ok := findChannelByName(s, m.GuildID, name)
	if !ok {
		sendMessage(s, m.ChannelID, "Channel not found.")
		return
	}

	done := make(chan error, 1)
	b.submit(lobby.SetChannel{Role: role, ChannelID: c.ID, Done: done})
	select {
	case err := <-done:
		if err != nil {
			slog.Error("cannot save channels", "err", err)
		}
	case <-b.ctx.Done():
		return
	}
	sendMessage(s, m.ChannelID, fmt.Sprintf(confirm, c.Name))
}
