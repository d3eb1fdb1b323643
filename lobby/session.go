// Package lobby tracks who is in the monitored voice channel, their ready
// state, and keeps a single status message in the text channel up to date.
package lobby

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"math/rand"
	"time"

	"github.com/TKYcraft/lobby-run/store"
	"github.com/TKYcraft/lobby-run/telemetry"
)

type Options struct {
	Game       string
	MinPlayers int
	// TeamSelect renders the status as an embed and shows the team
	// selection once everyone present is ready.
	TeamSelect bool
	Rand       *rand.Rand
}

// Session owns all lobby state. Events are applied one at a time by Run.
type Session struct {
	client Client
	store  Store
	opts   Options
	rng    *rand.Rand

	inbox     chan Event
	roster    *Roster
	channels  store.ChannelConfig
	messageID string

	// voice states seen on GUILD_CREATE, kept until Ready has loaded the channels
	guildVoice map[string][]VoiceMember
}

func NewSession(client Client, st Store, opts Options) *Session {
	if opts.Game == "" {
		opts.Game = "CS2"
	}
	if opts.MinPlayers <= 0 {
		opts.MinPlayers = 6
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &Session{
		client: client,
		store:  st,
		opts:   opts,
		rng:    rng,
		inbox:  make(chan Event, 64),
		roster: NewRoster(),

		guildVoice: map[string][]VoiceMember{},
	}
}

// Submit queues ev for the loop.
func (s *Session) Submit(ctx context.Context, ev Event) error {
	select {
	case s.inbox <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run applies queued events until ctx is done.
func (s *Session) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-s.inbox:
			s.Handle(ctx, ev)
		}
	}
}

// Handle applies one event to completion.
func (s *Session) Handle(ctx context.Context, ev Event) {
	ctx = telemetry.WithCorrelation(ctx)
	telemetry.CountEvent(ev.kind())
	telemetry.Logger(ctx).Debug("handle event", "kind", ev.kind())

	switch e := ev.(type) {
	case VoiceUpdate:
		s.onVoice(ctx, e)
	case ReactionUpdate:
		s.onReaction(ctx, e)
	case Ready:
		s.onReady(ctx)
	case GuildAvailable:
		s.onGuildAvailable(ctx, e)
	case SetChannel:
		err := s.setChannel(ctx, e)
		if e.Done != nil {
			e.Done <- err
		}
	case GetState:
		select {
		case e.Reply <- View{Channels: s.channels, MessageID: s.messageID, Roster: s.roster.Entries()}:
		case <-ctx.Done():
		}
	}
	telemetry.SetRosterSize(s.roster.Len())
}

func (s *Session) onVoice(ctx context.Context, e VoiceUpdate) {
	monitor := s.channels.Monitor
	if monitor == "" {
		return
	}

	if e.After == monitor {
		if e.Bot {
			return
		}
		// mute and deafen keep the ready flag of a tracked user
		if e.BeforeKnown && e.Before == monitor && s.roster.Has(e.UserID) {
			return
		}
		s.roster.Join(e.UserID)
		telemetry.Logger(ctx).Info("user joined lobby", "user", e.UserID)
		s.render(ctx)
		return
	}

	leaving := (e.BeforeKnown && e.Before == monitor) || (!e.BeforeKnown && s.roster.Has(e.UserID))
	if !leaving {
		return
	}

	if s.roster.Leave(e.UserID) {
		telemetry.Logger(ctx).Info("user left lobby", "user", e.UserID)
	} else {
		telemetry.Logger(ctx).Debug("untracked user left lobby", "user", e.UserID)
	}
	if s.messageID != "" && s.channels.Text != "" {
		if err := s.client.RemoveReaction(ctx, s.channels.Text, s.messageID, ReadyEmoji, e.UserID); err != nil {
			s.fail(ctx, "remove_reaction", err)
		}
	}
	s.render(ctx)
}

func (s *Session) onReaction(ctx context.Context, e ReactionUpdate) {
	if e.Bot || e.UserID == s.client.BotUserID() {
		return
	}
	if s.channels.Text == "" || e.ChannelID != s.channels.Text {
		return
	}
	if s.messageID != "" && e.MessageID != s.messageID {
		return
	}
	if e.Emoji != ReadyEmoji {
		return
	}
	if !s.roster.SetReady(e.UserID, e.Added) {
		return
	}

	telemetry.Logger(ctx).Info("ready changed", "user", e.UserID, "ready", e.Added)
	s.render(ctx)
}

func (s *Session) onReady(ctx context.Context) {
	log := telemetry.Logger(ctx)

	channels, err := s.store.LoadChannels()
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Info("channels file not found, skipping load")
	case err != nil:
		s.fail(ctx, "load_channels", err)
	default:
		s.channels = channels
	}

	id, err := s.store.LoadMessageID()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.fail(ctx, "load_message_id", err)
	}
	s.messageID = id

	// guilds may have come online before the channels were known
	seeded := 0
	for guildID, voice := range s.guildVoice {
		seeded += s.seed(voice)
		delete(s.guildVoice, guildID)
	}
	if seeded > 0 {
		log.Info("seeded lobby from voice channel", "users", seeded)
	}

	if s.channels.Text == "" {
		log.Warn("text channel not set")
		return
	}

	if s.messageID != "" {
		err := s.client.FetchMessage(ctx, s.channels.Text, s.messageID)
		switch {
		case errors.Is(err, ErrNotFound):
			log.Info("lobby message not found, creating a new one", "message", s.messageID)
			s.forgetMessage(ctx)
			s.render(ctx)
			return
		case err != nil:
			s.fail(ctx, "fetch_message", err)
			return
		}
		s.resetReactions(ctx)
	}

	if seeded > 0 {
		s.render(ctx)
	}
}

func (s *Session) resetReactions(ctx context.Context) {
	if err := s.client.ClearReactions(ctx, s.channels.Text, s.messageID); err != nil {
		s.fail(ctx, "clear_reactions", err)
		return
	}
	if err := s.client.AddReaction(ctx, s.channels.Text, s.messageID, ReadyEmoji); err != nil {
		s.fail(ctx, "add_reaction", err)
	}
}

// onGuildAvailable rebuilds membership from the live voice channel, since the
// roster does not survive a restart.
func (s *Session) onGuildAvailable(ctx context.Context, e GuildAvailable) {
	if s.channels.Monitor == "" {
		s.guildVoice[e.GuildID] = e.Voice
		return
	}

	seeded := s.seed(e.Voice)
	if seeded == 0 {
		return
	}

	telemetry.Logger(ctx).Info("seeded lobby from voice channel", "guild", e.GuildID, "users", seeded)
	s.render(ctx)
}

// seed tracks the users of voice that sit in the monitored channel, returning
// how many were added.
func (s *Session) seed(voice []VoiceMember) int {
	seeded := 0
	for _, vm := range voice {
		if vm.ChannelID != s.channels.Monitor || vm.Bot || s.roster.Has(vm.UserID) {
			continue
		}
		s.roster.Join(vm.UserID)
		seeded++
	}
	return seeded
}

func (s *Session) setChannel(ctx context.Context, e SetChannel) error {
	switch e.Role {
	case RoleMonitor:
		s.channels.Monitor = e.ChannelID
	case RoleText:
		s.channels.Text = e.ChannelID
	}

	if err := s.store.SaveChannels(s.channels); err != nil {
		s.fail(ctx, "save_channels", err)
		return err
	}
	return nil
}

// render rebuilds the status for the live occupants and publishes it.
func (s *Session) render(ctx context.Context) {
	log := telemetry.Logger(ctx)
	if !s.channels.Ready() {
		log.Warn("text channel not set")
		telemetry.CountRender("skipped")
		return
	}

	live, err := s.client.VoiceMembers(ctx, s.channels.Monitor)
	if err != nil {
		s.fail(ctx, "voice_members", err)
		return
	}

	entries := s.roster.Filter(live)
	players := make([]Player, 0, len(entries))
	for _, e := range entries {
		players = append(players, Player{
			UserID: e.UserID,
			Name:   s.client.DisplayName(ctx, s.channels.Monitor, e.UserID),
			Ready:  e.Ready,
		})
	}

	if s.opts.TeamSelect && DraftEligible(entries) {
		if d, ok := NewDraft(players, s.rng); ok {
			log.Info("starting team selection", "captain1", d.Captains[0].UserID, "captain2", d.Captains[1].UserID)
			s.publish(ctx, d.Message(), "draft")
			return
		}
	}
	s.publish(ctx, StatusMessage(s.opts.Game, s.opts.MinPlayers, players, s.opts.TeamSelect), "status")
}

func (s *Session) publish(ctx context.Context, m Message, outcome string) {
	if s.messageID != "" {
		err := s.client.EditMessage(ctx, s.channels.Text, s.messageID, m)
		if err == nil {
			telemetry.CountRender(outcome + "_edited")
			return
		}
		if !errors.Is(err, ErrNotFound) {
			s.fail(ctx, "edit_message", err)
			return
		}
		telemetry.Logger(ctx).Info("lobby message gone, sending a new one", "message", s.messageID)
		s.messageID = ""
	}

	id, err := s.client.SendMessage(ctx, s.channels.Text, m)
	if err != nil {
		s.fail(ctx, "send_message", err)
		return
	}
	s.messageID = id
	if err := s.store.SaveMessageID(id); err != nil {
		s.fail(ctx, "save_message_id", err)
	}
	if err := s.client.AddReaction(ctx, s.channels.Text, id, ReadyEmoji); err != nil {
		s.fail(ctx, "add_reaction", err)
	}
	telemetry.CountRender(outcome + "_created")
}

func (s *Session) forgetMessage(ctx context.Context) {
	s.messageID = ""
	if err := s.store.SaveMessageID(""); err != nil {
		s.fail(ctx, "save_message_id", err)
	}
}

// fail logs and counts a failure. The loop always carries on.
func (s *Session) fail(ctx context.Context, op string, err error) {
	kind := "delivery"
	switch {
	case errors.Is(err, ErrNotFound):
		kind = "not_found"
	case errors.Is(err, fs.ErrNotExist):
		kind = "file"
	}
	telemetry.CountFailure(op, kind)
	telemetry.Logger(ctx).Error("lobby operation failed", slog.String("op", op), slog.String("kind", kind), slog.Any("err", err))
}
