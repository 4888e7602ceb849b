package database

import (
	"context"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/models"
	"github.com/PancyStudios/PancyGuardGo/pkg/moderation"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	casesCollection    = "mod_cases"
	warningsCollection = "mod_warnings"
	unbansCollection   = "mod_unbans"

	storeTimeout = 5 * time.Second
)

// GuildStore implements moderation.Store on top of MongoDB. Each collection
// holds a single document per guild that is replaced wholesale on every
// mutation, so a write either lands complete or not at all.
type GuildStore struct {
	db      *Database
	guildID string
}

// NewGuildStore creates a store bound to a single guild.
func NewGuildStore(db *Database, guildID string) *GuildStore {
	return &GuildStore{db: db, guildID: guildID}
}

func (s *GuildStore) filter() bson.M {
	return bson.M{"guildId": s.guildID}
}

func storeContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), storeTimeout)
}

// LoadLedger reads the full case ledger document for the guild.
// A missing document means a fresh guild: the counter starts at 1.
func (s *GuildStore) LoadLedger() (moderation.LedgerState, error) {
	ctx, cancel := storeContext()
	defer cancel()

	var doc models.CaseLedgerDocument
	err := s.db.GetCollection(casesCollection).FindOne(ctx, s.filter()).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return moderation.LedgerState{NextCaseID: 1}, nil
	}
	if err != nil {
		return moderation.LedgerState{}, err
	}

	return moderation.LedgerState{
		NextCaseID: doc.NextCaseID,
		Cases:      doc.Cases,
	}, nil
}

// SaveLedger replaces the guild's ledger document with the given state.
func (s *GuildStore) SaveLedger(state moderation.LedgerState) error {
	ctx, cancel := storeContext()
	defer cancel()

	doc := models.CaseLedgerDocument{
		GuildID:    s.guildID,
		NextCaseID: state.NextCaseID,
		Cases:      state.Cases,
	}

	_, err := s.db.GetCollection(casesCollection).ReplaceOne(
		ctx, s.filter(), doc, options.Replace().SetUpsert(true))
	return err
}

// LoadWarnings reads the guild's warning document.
func (s *GuildStore) LoadWarnings() ([]models.Warning, error) {
	ctx, cancel := storeContext()
	defer cancel()

	var doc models.WarningsDocument
	err := s.db.GetCollection(warningsCollection).FindOne(ctx, s.filter()).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return doc.Warnings, nil
}

// SaveWarnings replaces the guild's warning document.
func (s *GuildStore) SaveWarnings(warnings []models.Warning) error {
	ctx, cancel := storeContext()
	defer cancel()

	doc := models.WarningsDocument{GuildID: s.guildID, Warnings: warnings}
	_, err := s.db.GetCollection(warningsCollection).ReplaceOne(
		ctx, s.filter(), doc, options.Replace().SetUpsert(true))
	return err
}

// LoadPendingUnbans reads the guild's pending unban document.
func (s *GuildStore) LoadPendingUnbans() ([]models.PendingUnban, error) {
	ctx, cancel := storeContext()
	defer cancel()

	var doc models.PendingUnbansDocument
	err := s.db.GetCollection(unbansCollection).FindOne(ctx, s.filter()).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return doc.Unbans, nil
}

// SavePendingUnbans replaces the guild's pending unban document.
func (s *GuildStore) SavePendingUnbans(unbans []models.PendingUnban) error {
	ctx, cancel := storeContext()
	defer cancel()

	doc := models.PendingUnbansDocument{GuildID: s.guildID, Unbans: unbans}
	_, err := s.db.GetCollection(unbansCollection).ReplaceOne(
		ctx, s.filter(), doc, options.Replace().SetUpsert(true))
	return err
}
