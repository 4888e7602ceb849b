package moderation

import (
	"sync"

	"github.com/PancyStudios/PancyGuardGo/pkg/models"
)

// LedgerState es el estado completo del ledger de casos: el contador y los
// registros viajan siempre juntos en una sola escritura durable, de modo que
// un fallo no puede dejar el contador avanzado sin su caso ni al revés.
type LedgerState struct {
	NextCaseID int
	Cases      []models.Case
}

// Store es el almacenamiento durable del núcleo de moderación. Cada Save
// reescribe la colección completa de forma síncrona respecto al llamador.
type Store interface {
	LoadLedger() (LedgerState, error)
	SaveLedger(state LedgerState) error

	LoadWarnings() ([]models.Warning, error)
	SaveWarnings(warnings []models.Warning) error

	LoadPendingUnbans() ([]models.PendingUnban, error)
	SavePendingUnbans(unbans []models.PendingUnban) error
}

// MemoryStore es un Store volátil. Se usa en tests y como último recurso
// cuando la base de datos no está disponible al arrancar.
type MemoryStore struct {
	mu     sync.Mutex
	ledger LedgerState
	warns  []models.Warning
	unbans []models.PendingUnban
}

// NewMemoryStore crea un MemoryStore vacío.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{ledger: LedgerState{NextCaseID: 1}}
}

// LoadLedger devuelve una copia del estado del ledger.
func (s *MemoryStore) LoadLedger() (LedgerState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return LedgerState{
		NextCaseID: s.ledger.NextCaseID,
		Cases:      append([]models.Case(nil), s.ledger.Cases...),
	}, nil
}

// SaveLedger guarda el estado completo del ledger.
func (s *MemoryStore) SaveLedger(state LedgerState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledger = LedgerState{
		NextCaseID: state.NextCaseID,
		Cases:      append([]models.Case(nil), state.Cases...),
	}
	return nil
}

// LoadWarnings devuelve una copia de las advertencias.
func (s *MemoryStore) LoadWarnings() ([]models.Warning, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Warning(nil), s.warns...), nil
}

// SaveWarnings guarda la colección completa de advertencias.
func (s *MemoryStore) SaveWarnings(warnings []models.Warning) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.warns = append([]models.Warning(nil), warnings...)
	return nil
}

// LoadPendingUnbans devuelve una copia de los unbans pendientes.
func (s *MemoryStore) LoadPendingUnbans() ([]models.PendingUnban, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.PendingUnban(nil), s.unbans...), nil
}

// SavePendingUnbans guarda la colección completa de unbans pendientes.
func (s *MemoryStore) SavePendingUnbans(unbans []models.PendingUnban) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unbans = append([]models.PendingUnban(nil), unbans...)
	return nil
}
