package lobby

import (
	"context"
	"errors"

	"github.com/bwmarrin/discordgo"

	"github.com/TKYcraft/lobby-run/store"
)

// ReadyEmoji is the single reaction users toggle to ready up.
const ReadyEmoji = "✅"

// ErrNotFound marks a message or channel that no longer exists on the platform.
var ErrNotFound = errors.New("not found")

// Message is the rendered body of the status message.
type Message struct {
	Content string
	Embed   *discordgo.MessageEmbed
}

// Client is the slice of the chat platform the lobby talks to. Implementations
// wrap not-found responses with ErrNotFound.
type Client interface {
	BotUserID() string
	// VoiceMembers returns the IDs of users currently in the voice channel.
	VoiceMembers(ctx context.Context, channelID string) ([]string, error)
	// DisplayName resolves the name of a user in the guild owning channelID,
	// falling back to something printable.
	DisplayName(ctx context.Context, channelID, userID string) string

	FetchMessage(ctx context.Context, channelID, messageID string) error
	SendMessage(ctx context.Context, channelID string, m Message) (string, error)
	EditMessage(ctx context.Context, channelID, messageID string, m Message) error

	AddReaction(ctx context.Context, channelID, messageID, emoji string) error
	RemoveReaction(ctx context.Context, channelID, messageID, emoji, userID string) error
	ClearReactions(ctx context.Context, channelID, messageID string) error
}

// Store persists the channel selection and status message ID.
type Store interface {
	LoadChannels() (store.ChannelConfig, error)
	SaveChannels(store.ChannelConfig) error
	LoadMessageID() (string, error)
	SaveMessageID(id string) error
}
