// Package web provides API routes for the web server.
package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/PancyStudios/PancyGuardGo/pkg/database"
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/moderation"
	"github.com/gin-gonic/gin"
)

// SetupAPIRoutes sets up the API routes. Everything is read-only: the
// moderation actions only happen through Discord.
func SetupAPIRoutes(s *Server) {
	api := s.Group("/api")
	{
		api.GET("/status", statusHandler)
		api.GET("/health", healthHandler)
		api.GET("/cases", casesHandler)
		api.GET("/cases/:id", caseHandler)
		api.GET("/warnings/:userId", warningsHandler)
	}
}

// statusHandler returns the bot and database status
func statusHandler(c *gin.Context) {
	db := database.Get()
	client := discord.Get()

	dbStatus, dbOnline := db.GetStatus()

	botOnline := false
	if client != nil {
		botOnline = client.IsReady()
	}

	payload := gin.H{
		"status": "ok",
		"database": gin.H{
			"status":   dbStatus,
			"isOnline": dbOnline,
		},
		"bot": gin.H{
			"isOnline": botOnline,
		},
	}

	if svc := moderation.Get(); svc != nil {
		payload["moderation"] = gin.H{
			"cases":           svc.Ledger().Count(),
			"pendingAcks":     svc.Acks().OpenCount(),
			"scheduledUnbans": len(svc.Unbans().Pending()),
		}
	}

	c.JSON(http.StatusOK, payload)
}

// healthHandler returns a simple health check response
func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "PancyGuard Go is running",
	})
}

// casesHandler returns the full case ledger, newest first
func casesHandler(c *gin.Context) {
	svc := moderation.Get()
	if svc == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Moderation Offline"})
		return
	}

	cases := svc.Ledger().All()
	// Más recientes primero
	for i, j := 0, len(cases)-1; i < j; i, j = i+1, j-1 {
		cases[i], cases[j] = cases[j], cases[i]
	}

	c.JSON(http.StatusOK, gin.H{
		"total": len(cases),
		"cases": cases,
	})
}

// caseHandler returns a single case by its number
func caseHandler(c *gin.Context) {
	svc := moderation.Get()
	if svc == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Moderation Offline"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "El id del caso debe ser un entero positivo."})
		return
	}

	found, err := svc.Ledger().Find(id)
	if err != nil {
		if errors.Is(err, moderation.ErrCaseNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Caso no encontrado."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno."})
		return
	}

	c.JSON(http.StatusOK, found)
}

// warningsHandler returns the warnings of a user
func warningsHandler(c *gin.Context) {
	svc := moderation.Get()
	if svc == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Moderation Offline"})
		return
	}

	userID := c.Param("userId")
	warnings := svc.Warnings().ListFor(userID)

	c.JSON(http.StatusOK, gin.H{
		"userId":   userID,
		"total":    len(warnings),
		"warnings": warnings,
	})
}
