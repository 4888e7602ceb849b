// Package main is the entry point for the PancyGuard Go application.
// It initializes all systems and starts the Discord moderation bot.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/PancyStudios/PancyGuardGo/internal/commands"
	"github.com/PancyStudios/PancyGuardGo/internal/events"
	"github.com/PancyStudios/PancyGuardGo/pkg/config"
	"github.com/PancyStudios/PancyGuardGo/pkg/database"
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/errors"
	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/PancyStudios/PancyGuardGo/pkg/models"
	"github.com/PancyStudios/PancyGuardGo/pkg/moderation"
	"github.com/PancyStudios/PancyGuardGo/pkg/mqtt"
	"github.com/PancyStudios/PancyGuardGo/pkg/web"
	"github.com/bwmarrin/discordgo"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.Init(cfg.ErrorWebhook, cfg.LogsWebhook)
	defer log.Close()

	logger.System("Iniciando PancyGuard Go...", "Main")
	logger.Info(fmt.Sprintf("Directorio de trabajo: %s", getCurrentDir()), "Main")

	if cfg.GuildID == "" {
		logger.Critical("Falta guildId en la configuración: el bot modera un único servidor", "Main")
		os.Exit(1)
	}

	// Initialize error handler
	var discordClient *discord.ExtendedClient
	errors.Init(cfg.ErrorWebhook, func() {
		if svc := moderation.Get(); svc != nil {
			svc.Stop()
		}
		if discordClient != nil {
			if err := discordClient.Stop(); err != nil {
				return
			}
		}
	})

	// Initialize database
	db, err := database.Init(cfg.MongoDBURL, cfg.DBName)
	if err != nil {
		logger.Error(fmt.Sprintf("Error connecting to database: %v", err), "Main")
		// Continue without database - it will attempt to reconnect
	}
	defer func() {
		if db != nil {
			if err := db.Disconnect(); err != nil {
				return
			}
		}
	}()

	// Pick the moderation store: Mongo when available, memory as last resort
	var store moderation.Store
	if db != nil && db.Connected() {
		store = database.NewGuildStore(db, cfg.GuildID)
	} else {
		logger.Warn("Sin base de datos: los casos NO sobrevivirán un reinicio", "Main")
		store = moderation.NewMemoryStore()
	}

	// Initialize MQTT
	mqttClientID := "pancyguard"
	if !cfg.IsProd() {
		mqttClientID = "pancyguard_canary"
	}

	mqttClient := mqtt.Init(
		cfg.MQTTHost,
		cfg.MQTTPort,
		cfg.MQTTUser,
		cfg.MQTTPassword,
		mqttClientID,
	)
	defer mqttClient.Destroy()

	// Initialize web server
	webServer := web.Init(cfg.LogsWebServerHook)
	web.SetupAPIRoutes(webServer)
	webServer.StartAsync(cfg.Port)

	// Initialize Discord client
	discordClient, err = discord.Init(cfg.BotToken)
	if err != nil {
		logger.Critical(fmt.Sprintf("Error creating Discord client: %v", err), "Main")
		os.Exit(1)
	}

	// Register commands using the commands package
	commands.RegisterAll(discordClient)

	// Register events using the events package
	events.RegisterAll(discordClient)

	// Start the bot
	if err := discordClient.Start(); err != nil {
		logger.Critical(fmt.Sprintf("Error starting Discord client: %v", err), "Main")
		os.Exit(1)
	}
	defer func(discordClient *discord.ExtendedClient) {
		if err := discordClient.Stop(); err != nil {
			return
		}
	}(discordClient)

	// Wire the moderation core now that the session is open
	effector := discord.NewSessionEffector(discordClient.Session, cfg.GuildID, cfg.AckCategoryID)
	discord.InitEffector(effector)

	svc, err := moderation.Init(store, effector, moderation.Options{
		BotID:            discordClient.Session.State.User.ID,
		Ladder:           moderation.Ladder(cfg.TierRoles[:]),
		WarnMuteDuration: time.Duration(cfg.WarnMuteMinutes) * time.Minute,
		AckMaxAge:        time.Duration(cfg.AckExpiryMinutes) * time.Minute,
	})
	if err != nil {
		logger.Critical(fmt.Sprintf("Error inicializando el núcleo de moderación: %v", err), "Main")
		os.Exit(1)
	}

	// Every opened case goes to the mod-log channel and to MQTT
	svc.OnCase(func(c models.Case) {
		publishCaseToModLog(discordClient, cfg.ModLogChannelID, c)
		mqttClient.PublishCase(cfg.Environment, c)
	})

	// Re-arm pending unbans and start the ack expiry sweep
	svc.Start()
	defer svc.Stop()

	logger.Success("PancyGuard Go iniciado correctamente!", "Main")

	// Wait for interrupt signal
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	logger.System("Apagando PancyGuard Go...", "Main")
}

// publishCaseToModLog mirrors an opened case into the mod-log channel
func publishCaseToModLog(client *discord.ExtendedClient, channelID string, c models.Case) {
	if channelID == "" {
		return
	}

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("📋 Caso #%d — %s", c.ID, c.Action),
		Color: 0x3498DB,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Moderador", Value: fmt.Sprintf("<@%s>", c.Moderator), Inline: true},
			{Name: "Razón", Value: c.Reason, Inline: false},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: "🛡️ PancyGuard Go",
		},
		Timestamp: time.Unix(c.Timestamp, 0).Format(time.RFC3339),
	}
	if c.Target != "" {
		embed.Fields = append([]*discordgo.MessageEmbedField{
			{Name: "Usuario", Value: fmt.Sprintf("<@%s>", c.Target), Inline: true},
		}, embed.Fields...)
	}

	if _, err := client.Session.ChannelMessageSendEmbed(channelID, embed); err != nil {
		logger.Error(fmt.Sprintf("Error publicando el caso %d en el mod-log: %v", c.ID, err), "Main")
	}
}

// getCurrentDir returns the current working directory
func getCurrentDir() string {
	dir, err := os.Getwd()
	if err != nil {
		return "unknown"
	}
	return dir
}
