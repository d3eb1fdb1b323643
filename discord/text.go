package discord

import (
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"
)

func (b *Bot) OnMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.ID == s.State.User.ID {
		return
	}

	slog.Debug("receive message", "content", m.Content)

	command, arg, ok := parseCommand(m.Content, Conf.Prefix)
	if !ok {
		return
	}
	slog.Info("receive command", "command", command, "arg", arg)
	switch command {
	case "ping":
		PingPong(s, m)
	case "cs_mon_channel":
		b.SetMonitorChannel(s, m, arg)
	case "cs_text_channel":
		b.SetTextChannel(s, m, arg)
	}
}

// プレフィックス付きのメッセージをコマンド名と引数に分ける。
func parseCommand(content, prefix string) (string, string, bool) {
	if prefix == "" || !strings.HasPrefix(content, prefix) {
		return "", "", false
	}
	fields := strings.Fields(strings.TrimPrefix(content, prefix))
	if len(fields) == 0 {
		return "", "", false
	}
	if len(fields) == 1 {
		return fields[0], "", true
	}
	return fields[0], fields[1], true
}

// セッションを利用し、指定のチャンネルに指定のメッセージを送信する。
func sendMessage(s *discordgo.Session, channelID string, msg string) {
	slog.Info("send message", "content", msg)
	if _, err := s.ChannelMessageSend(channelID, msg); err != nil {
		slog.Error("cannot sending message", "err", err)
	}
}

// セッションを利用し、ユーザのメッセージ(reference)に指定のメッセージ(msg)でリプライを送信する。
func sendReply(s *discordgo.Session, msg string, ref *discordgo.MessageReference) {
	slog.Info("send reply", "content", msg)
	_, err := s.ChannelMessageSendReply(ref.ChannelID, msg, ref)
	if err != nil {
		slog.Error("cannot sending reply message", "err", err)
		return
	}
}
