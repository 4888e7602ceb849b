package models

// CaseAction identifica el tipo de acción registrada en un caso de moderación.
type CaseAction string

const (
	ActionWarn       CaseAction = "WARN"
	ActionKick       CaseAction = "KICK"
	ActionBan        CaseAction = "BAN"
	ActionTempBan    CaseAction = "TEMPBAN"
	ActionTimeout    CaseAction = "TIMEOUT"
	ActionUntimeout  CaseAction = "UNTIMEOUT"
	ActionClearWarns CaseAction = "CLEARWARNS"
	ActionPurge      CaseAction = "PURGE"
	ActionAck        CaseAction = "ACK"
	ActionAutoUnban  CaseAction = "AUTOUNBAN"
)

// Case es el registro inmutable de una acción de moderación.
// Una vez escrito en el ledger nunca se modifica ni se elimina.
type Case struct {
	ID        int               `bson:"caseId" json:"caseId"`
	Action    CaseAction        `bson:"action" json:"action"`
	Moderator string            `bson:"moderatorId" json:"moderatorId"`
	Target    string            `bson:"targetId" json:"targetId"`
	Reason    string            `bson:"reason" json:"reason"`
	Timestamp int64             `bson:"timestamp" json:"timestamp"`
	Extra     map[string]string `bson:"extra,omitempty" json:"extra,omitempty"`
}

// Warning representa una advertencia individual de un usuario.
type Warning struct {
	ID        int    `bson:"id" json:"id"`
	UserID    string `bson:"userId" json:"userId"`
	Moderator string `bson:"moderator" json:"moderator"`
	Reason    string `bson:"reason" json:"reason"`
	Timestamp int64  `bson:"timestamp" json:"timestamp"`
}

// PendingUnban es un unban programado que debe sobrevivir reinicios.
type PendingUnban struct {
	CaseID    int    `bson:"caseId" json:"caseId"`
	UserID    string `bson:"userId" json:"userId"`
	ExpiresAt int64  `bson:"expiresAt" json:"expiresAt"`
}

// CaseLedgerDocument es el documento completo de la colección "mod_cases".
// Se reescribe entero en cada mutación: el contador y los casos viajan juntos.
type CaseLedgerDocument struct {
	GuildID    string `bson:"guildId" json:"guildId"`
	NextCaseID int    `bson:"nextCaseId" json:"nextCaseId"`
	Cases      []Case `bson:"cases" json:"cases"`
}

// WarningsDocument es el documento completo de la colección "mod_warnings".
type WarningsDocument struct {
	GuildID  string    `bson:"guildId" json:"guildId"`
	Warnings []Warning `bson:"warnings" json:"warnings"`
}

// PendingUnbansDocument es el documento completo de la colección "mod_unbans".
type PendingUnbansDocument struct {
	GuildID string         `bson:"guildId" json:"guildId"`
	Unbans  []PendingUnban `bson:"unbans" json:"unbans"`
}
