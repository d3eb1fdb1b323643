package lobby

import "github.com/TKYcraft/lobby-run/store"

type Event interface{ kind() string }

// VoiceUpdate is a member's voice state change. BeforeKnown is false when the
// previous channel was not cached.
type VoiceUpdate struct {
	UserID      string
	Bot         bool
	Before      string
	BeforeKnown bool
	After       string
}

func (VoiceUpdate) kind() string { return "voice" }

type ReactionUpdate struct {
	UserID    string
	Bot       bool
	ChannelID string
	MessageID string
	Emoji     string
	Added     bool
}

func (r ReactionUpdate) kind() string {
	if r.Added {
		return "reaction_add"
	}
	return "reaction_remove"
}

// Ready runs the startup reconciliation.
type Ready struct{}

func (Ready) kind() string { return "ready" }

type VoiceMember struct {
	UserID    string
	ChannelID string
	Bot       bool
}

// GuildAvailable carries the live voice states of a guild that came online.
type GuildAvailable struct {
	GuildID string
	Voice   []VoiceMember
}

func (GuildAvailable) kind() string { return "guild_available" }

type ChannelRole int

const (
	RoleMonitor ChannelRole = iota
	RoleText
)

// SetChannel selects a channel for a role and persists it. Done, if set,
// receives the outcome.
type SetChannel struct {
	Role      ChannelRole
	ChannelID string
	Done      chan error
}

func (SetChannel) kind() string { return "set_channel" }

type View struct {
	Channels  store.ChannelConfig
	MessageID string
	Roster    []Entry
}

// GetState reflects the session state without racing the loop.
type GetState struct {
	Reply chan View
}

func (GetState) kind() string { return "get_state" }
