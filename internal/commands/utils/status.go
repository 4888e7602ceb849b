package utils

import (
	"fmt"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/database"
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/errors"
	"github.com/PancyStudios/PancyGuardGo/pkg/moderation"
)

// createStatusCommand creates the /utils status subcommand
func createStatusCommand() *discord.Command {
	return discord.NewCommand(
		"status",
		"Muestra el estado del bot",
		"utils",
		statusHandler,
	)
}

// statusHandler handles the /utils status command
func statusHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()
		db := database.Get()
		dbStatus, _ := db.GetStatus()

		svc := moderation.Get()
		uptime := time.Since(ctx.Client.StartTime).Round(time.Second)

		ctx.Reply(fmt.Sprintf(
			"📊 **Estado del Bot**\n"+
				"• Bot: 🟢 Online\n"+
				"• Base de datos: %s\n"+
				"• Tiempo en línea: %s\n"+
				"• Casos registrados: %d\n"+
				"• Confirmaciones pendientes: %d\n"+
				"• Unbans programados: %d",
			dbStatus,
			uptime,
			svc.Ledger().Count(),
			svc.Acks().OpenCount(),
			len(svc.Unbans().Pending()),
		))
	}()
	return nil
}
