package config

import (
	"os"
	"testing"
)

func TestLoad(t *testing.T) {
	os.Setenv("botToken", "test-token")
	os.Setenv("guildId", "guild-1")
	os.Setenv("PORT", "3001")
	os.Setenv("enviroment", "test")
	defer func() {
		os.Unsetenv("botToken")
		os.Unsetenv("guildId")
		os.Unsetenv("PORT")
		os.Unsetenv("enviroment")
	}()

	resetForTesting()

	config, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if config.BotToken != "test-token" {
		t.Errorf("BotToken = %v, want %v", config.BotToken, "test-token")
	}

	if config.GuildID != "guild-1" {
		t.Errorf("GuildID = %v, want %v", config.GuildID, "guild-1")
	}

	if config.Port != "3001" {
		t.Errorf("Port = %v, want %v", config.Port, "3001")
	}

	if config.Environment != "test" {
		t.Errorf("Environment = %v, want %v", config.Environment, "test")
	}
}

func TestTierRoles(t *testing.T) {
	os.Setenv("tier1RoleId", "r1")
	os.Setenv("tier4RoleId", "r4")
	defer func() {
		os.Unsetenv("tier1RoleId")
		os.Unsetenv("tier4RoleId")
	}()

	resetForTesting()
	config, _ := Load()

	if config.TierRoles[0] != "r1" {
		t.Errorf("TierRoles[0] = %v, want r1", config.TierRoles[0])
	}
	if config.TierRoles[1] != "" {
		t.Errorf("TierRoles[1] = %v, want vacío", config.TierRoles[1])
	}
	if config.TierRoles[3] != "r4" {
		t.Errorf("TierRoles[3] = %v, want r4", config.TierRoles[3])
	}
}

func TestGetEnvInt(t *testing.T) {
	os.Setenv("warnMuteMinutes", "25")
	defer os.Unsetenv("warnMuteMinutes")

	resetForTesting()
	config, _ := Load()

	if config.WarnMuteMinutes != 25 {
		t.Errorf("WarnMuteMinutes = %v, want 25", config.WarnMuteMinutes)
	}

	// Valores no numéricos caen al valor por defecto.
	os.Setenv("warnMuteMinutes", "muchos")
	resetForTesting()
	config, _ = Load()
	if config.WarnMuteMinutes != 10 {
		t.Errorf("WarnMuteMinutes = %v, want 10 (default)", config.WarnMuteMinutes)
	}
}

func TestIsProd(t *testing.T) {
	resetForTesting()
	os.Setenv("enviroment", "prod")
	config, _ := Load()

	if !config.IsProd() {
		t.Error("IsProd() should return true when environment is 'prod'")
	}

	resetForTesting()
	os.Setenv("enviroment", "dev")
	config, _ = Load()

	if config.IsProd() {
		t.Error("IsProd() should return false when environment is not 'prod'")
	}

	os.Unsetenv("enviroment")
}

func TestDefaultValues(t *testing.T) {
	os.Unsetenv("botToken")
	os.Unsetenv("guildId")
	os.Unsetenv("mongodbUrl")
	os.Unsetenv("dbName")
	os.Unsetenv("PORT")
	os.Unsetenv("enviroment")
	os.Unsetenv("warnMuteMinutes")
	os.Unsetenv("ackExpiryMinutes")

	resetForTesting()
	config, _ := Load()

	if config.MongoDBURL != "mongodb://localhost:27017" {
		t.Errorf("MongoDBURL default = %v", config.MongoDBURL)
	}

	if config.DBName != "PancyGuard" {
		t.Errorf("DBName default = %v, want PancyGuard", config.DBName)
	}

	if config.Port != "3000" {
		t.Errorf("Port default = %v, want 3000", config.Port)
	}

	if config.WarnMuteMinutes != 10 {
		t.Errorf("WarnMuteMinutes default = %v, want 10", config.WarnMuteMinutes)
	}

	// Por defecto las confirmaciones no expiran.
	if config.AckExpiryMinutes != 0 {
		t.Errorf("AckExpiryMinutes default = %v, want 0", config.AckExpiryMinutes)
	}
}
