package main

import (
	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"guildPointsBot/config"
	"guildPointsBot/scheduler"
	"guildPointsBot/services"
	"guildPointsBot/services/common"
	"guildPointsBot/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Invalid LOG_LEVEL %q: %v", cfg.LogLevel, err)
	}
	log.SetLevel(level)

	st, err := buildStore(cfg)
	if err != nil {
		log.Fatalf("Error setting up document store: %v", err)
	}

	dg, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		log.Fatalf("Error creating Discord session: %v", err)
	}

	bundle := services.NewBundle(st, &common.Directory{Session: dg})

	dg.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		if i.Type == discordgo.InteractionApplicationCommand {
			services.HandleSlashCommand(s, i, bundle)
		}
	})
	dg.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		err := s.UpdateGameStatus(0, "Tracking points!")
		if err != nil {
			return
		}
	})

	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildVoiceStates | discordgo.IntentsGuildMembers

	err = dg.Open()
	if err != nil {
		log.Fatalf("Error opening Discord session: %v", err)
	}
	defer func(dg *discordgo.Session) {
		err := dg.Close()
		if err != nil {

		}
	}(dg)

	err = services.RegisterCommands(dg)
	if err != nil {
		log.Fatalf("Error registering commands: %v", err)
	}

	_, err = scheduler.SetupCron(dg, bundle, cfg.AccrualCron)
	if err != nil {
		log.Fatalf("Error starting accrual scheduler: %v", err)
	}

	log.Info("Bot is running. Press CTRL+C to exit.")
	select {}
}

func buildStore(cfg *config.Config) (store.Store, error) {
	switch cfg.StoreBackend {
	case "redis":
		client, err := store.ConnectRedis(cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		return store.NewRedisStore(client), nil
	case "memory":
		return store.NewMemoryStore(), nil
	default:
		db, err := store.OpenDatabase(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return store.NewGormStore(db), nil
	}
}
