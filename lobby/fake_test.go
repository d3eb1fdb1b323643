package lobby

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/TKYcraft/lobby-run/store"
)

const (
	voiceID = "100"
	textID  = "200"
	botID   = "999"
)

type sentMessage struct {
	ChannelID string
	Message   Message
}

// fakeClient records calls and holds messages in memory.
type fakeClient struct {
	voice    map[string][]string
	names    map[string]string
	messages map[string]sentMessage
	nextID   int

	reactions map[string][]string // messageID -> "emoji:user"
	removed   []string
	cleared   []string

	editErr   error
	fetchErr  error
	removeErr error
	sends     int
	edits     int
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		voice:     map[string][]string{},
		names:     map[string]string{},
		messages:  map[string]sentMessage{},
		nextID:    500,
		reactions: map[string][]string{},
	}
}

func (f *fakeClient) BotUserID() string { return botID }

func (f *fakeClient) VoiceMembers(_ context.Context, channelID string) ([]string, error) {
	return f.voice[channelID], nil
}

func (f *fakeClient) DisplayName(_ context.Context, _, userID string) string {
	if n, ok := f.names[userID]; ok {
		return n
	}
	return userID
}

func (f *fakeClient) FetchMessage(_ context.Context, _, messageID string) error {
	if f.fetchErr != nil {
		return f.fetchErr
	}
	if _, ok := f.messages[messageID]; !ok {
		return fmt.Errorf("fetch %s: %w", messageID, ErrNotFound)
	}
	return nil
}

func (f *fakeClient) SendMessage(_ context.Context, channelID string, m Message) (string, error) {
	f.sends++
	f.nextID++
	id := fmt.Sprint(f.nextID)
	f.messages[id] = sentMessage{ChannelID: channelID, Message: m}
	return id, nil
}

func (f *fakeClient) EditMessage(_ context.Context, channelID, messageID string, m Message) error {
	f.edits++
	if f.editErr != nil {
		return f.editErr
	}
	if _, ok := f.messages[messageID]; !ok {
		return fmt.Errorf("edit %s: %w", messageID, ErrNotFound)
	}
	f.messages[messageID] = sentMessage{ChannelID: channelID, Message: m}
	return nil
}

func (f *fakeClient) AddReaction(_ context.Context, _, messageID, emoji string) error {
	f.reactions[messageID] = append(f.reactions[messageID], emoji+":"+botID)
	return nil
}

func (f *fakeClient) RemoveReaction(_ context.Context, _, messageID, emoji, userID string) error {
	f.removed = append(f.removed, messageID+":"+emoji+":"+userID)
	return f.removeErr
}

func (f *fakeClient) ClearReactions(_ context.Context, _, messageID string) error {
	f.cleared = append(f.cleared, messageID)
	delete(f.reactions, messageID)
	return nil
}

// content returns the text of the message, or its embed description and fields.
func (f *fakeClient) content(id string) string {
	m := f.messages[id].Message
	if m.Embed == nil {
		return m.Content
	}
	var b strings.Builder
	b.WriteString(m.Embed.Title + "\n" + m.Embed.Description)
	for _, fl := range m.Embed.Fields {
		b.WriteString("\n" + fl.Name + ": " + fl.Value)
	}
	return b.String()
}

func newTestSession(t *testing.T, opts Options) (*Session, *fakeClient, *store.Files) {
	t.Helper()
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(1))
	}
	fc := newFakeClient()
	st := store.New(t.TempDir())
	s := NewSession(fc, st, opts)
	s.channels = store.ChannelConfig{Monitor: voiceID, Text: textID}
	return s, fc, st
}

func join(userID string) VoiceUpdate {
	return VoiceUpdate{UserID: userID, BeforeKnown: true, After: voiceID}
}

func leave(userID string) VoiceUpdate {
	return VoiceUpdate{UserID: userID, BeforeKnown: true, Before: voiceID}
}

func react(userID, messageID string, added bool) ReactionUpdate {
	return ReactionUpdate{UserID: userID, ChannelID: textID, MessageID: messageID, Emoji: ReadyEmoji, Added: added}
}
