package discord

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/bwmarrin/discordgo"

	"github.com/TKYcraft/lobby-run/lobby"
)

// client implements lobby.Client over a discordgo session.
type client struct {
	s *discordgo.Session
}

func NewClient(s *discordgo.Session) lobby.Client {
	return &client{s: s}
}

// notFound wraps err with lobby.ErrNotFound when Discord reports the
// message or channel as gone.
func notFound(err error) error {
	var rest *discordgo.RESTError
	if !errors.As(err, &rest) {
		return err
	}
	if rest.Response != nil && rest.Response.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %v", lobby.ErrNotFound, err)
	}
	if rest.Message != nil {
		switch rest.Message.Code {
		case discordgo.ErrCodeUnknownMessage, discordgo.ErrCodeUnknownChannel:
			return fmt.Errorf("%w: %v", lobby.ErrNotFound, err)
		}
	}
	return err
}

func (c *client) BotUserID() string {
	if c.s.State == nil || c.s.State.User == nil {
		return ""
	}
	return c.s.State.User.ID
}

func (c *client) VoiceMembers(ctx context.Context, channelID string) ([]string, error) {
	ch, err := findChannel(c.s, channelID)
	if err != nil {
		return nil, notFound(err)
	}
	g, err := findGuild(c.s, ch.GuildID)
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, vs := range g.VoiceStates {
		if vs.ChannelID == channelID {
			ids = append(ids, vs.UserID)
		}
	}
	return ids, nil
}

func (c *client) DisplayName(ctx context.Context, channelID, userID string) string {
	ch, err := findChannel(c.s, channelID)
	if err != nil {
		return userID
	}
	m, err := findMember(ctx, c.s, ch.GuildID, userID)
	if err != nil {
		return userID
	}
	return memberName(m)
}

func (c *client) FetchMessage(ctx context.Context, channelID, messageID string) error {
	_, err := c.s.ChannelMessage(channelID, messageID, discordgo.WithContext(ctx))
	return notFound(err)
}

func (c *client) SendMessage(ctx context.Context, channelID string, m lobby.Message) (string, error) {
	data := &discordgo.MessageSend{Content: m.Content}
	if m.Embed != nil {
		data.Embeds = []*discordgo.MessageEmbed{m.Embed}
	}

	msg, err := c.s.ChannelMessageSendComplex(channelID, data, discordgo.WithContext(ctx))
	if err != nil {
		return "", notFound(err)
	}
	return msg.ID, nil
}

func (c *client) EditMessage(ctx context.Context, channelID, messageID string, m lobby.Message) error {
	edit := discordgo.NewMessageEdit(channelID, messageID).SetContent(m.Content)
	if m.Embed != nil {
		edit.Embeds = []*discordgo.MessageEmbed{m.Embed}
	}

	_, err := c.s.ChannelMessageEditComplex(edit, discordgo.WithContext(ctx))
	return notFound(err)
}

func (c *client) AddReaction(ctx context.Context, channelID, messageID, emoji string) error {
	return notFound(c.s.MessageReactionAdd(channelID, messageID, emoji, discordgo.WithContext(ctx)))
}

func (c *client) RemoveReaction(ctx context.Context, channelID, messageID, emoji, userID string) error {
	return notFound(c.s.MessageReactionRemove(channelID, messageID, emoji, userID, discordgo.WithContext(ctx)))
}

func (c *client) ClearReactions(ctx context.Context, channelID, messageID string) error {
	return notFound(c.s.MessageReactionsRemoveAll(channelID, messageID, discordgo.WithContext(ctx)))
}
