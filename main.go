package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/TKYcraft/lobby-run/discord"
	"github.com/TKYcraft/lobby-run/lobby"
	"github.com/TKYcraft/lobby-run/store"
	"github.com/TKYcraft/lobby-run/telemetry"
	"github.com/bwmarrin/discordgo"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.Parse()
	if configPath == "" {
		configPath = os.Getenv("CONFIG_PATH")
	}
	if configPath == "" {
		configPath = "./config.json"
	}

	conf, err := discord.LoadConfig(configPath)
	if err != nil {
		slog.Error("cannot load config", "err", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if conf.DebugLog {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	telemetry.Init()
	if conf.MetricsAddr != "" {
		go func() {
			if err := telemetry.Serve(ctx, conf.MetricsAddr); err != nil {
				slog.Error("metrics listener stopped", "err", err)
			}
		}()
	}

	s, err := discordgo.New("Bot " + conf.Token)
	if err != nil {
		slog.Error("cannot creating Discord session", "err", err)
		os.Exit(1)
	}

	session := lobby.NewSession(discord.NewClient(s), store.New(conf.DataDir), lobby.Options{
		Game:       conf.Game,
		MinPlayers: conf.MinPlayers,
		TeamSelect: conf.TeamSelect,
	})
	go session.Run(ctx)

	bot := discord.NewBot(ctx, session)
	s.AddHandler(bot.OnReady)
	s.AddHandler(bot.OnGuildCreate)
	s.AddHandler(bot.OnVoiceStateUpdate)
	s.AddHandler(bot.OnMessageReactionAdd)
	s.AddHandler(bot.OnMessageReactionRemove)
	s.AddHandler(bot.OnMessageCreate)

	s.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMessageReactions |
		discordgo.IntentsGuildVoiceStates |
		discordgo.IntentsMessageContent

	// handlers only queue lobby events; keep gateway order
	s.SyncEvents = true

	if err = s.Open(); err != nil {
		slog.Error("cannot opening Discord session", "err", err)
		os.Exit(1)
	}

	// Ctrl+Cで終了する様にシグナルの取得
	slog.Info("lobby bot is now running.  Press CTRL-C to exit.")
	<-ctx.Done()

	slog.Info("Graceful shutdown")
	s.Close()
}
