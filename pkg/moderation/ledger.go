package moderation

import (
	"sync"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/models"
)

// DefaultReason se usa cuando el moderador no especifica una razón.
const DefaultReason = "Sin razón especificada"

// CaseLedger asigna ids de caso monótonamente crecientes y mantiene el
// historial append-only de acciones de moderación. No existe operación de
// borrado: el historial es el registro de auditoría.
type CaseLedger struct {
	mu    sync.Mutex
	store Store
	state LedgerState
}

// NewCaseLedger carga el estado durable del ledger. El contador nunca
// retrocede: si el store está vacío arranca en 1.
func NewCaseLedger(store Store) (*CaseLedger, error) {
	state, err := store.LoadLedger()
	if err != nil {
		return nil, err
	}
	if state.NextCaseID < 1 {
		state.NextCaseID = 1
	}
	return &CaseLedger{store: store, state: state}, nil
}

// Open asigna el siguiente id, construye el caso y persiste contador y
// registro en una única escritura. Si la escritura falla el contador no
// avanza y el caso no se entrega: un id repartido siempre está respaldado
// por su registro durable.
func (l *CaseLedger) Open(action models.CaseAction, moderatorID, targetID, reason string, extra map[string]string) (models.Case, error) {
	if reason == "" {
		reason = DefaultReason
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	c := models.Case{
		ID:        l.state.NextCaseID,
		Action:    action,
		Moderator: moderatorID,
		Target:    targetID,
		Reason:    reason,
		Timestamp: time.Now().Unix(),
		Extra:     extra,
	}

	next := LedgerState{
		NextCaseID: c.ID + 1,
		Cases:      append(append([]models.Case(nil), l.state.Cases...), c),
	}
	if err := l.store.SaveLedger(next); err != nil {
		return models.Case{}, err
	}

	l.state = next
	return c, nil
}

// Find busca un caso por id.
func (l *CaseLedger) Find(caseID int) (models.Case, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, c := range l.state.Cases {
		if c.ID == caseID {
			return c, nil
		}
	}
	return models.Case{}, ErrCaseNotFound
}

// All devuelve los casos en orden de inserción.
func (l *CaseLedger) All() []models.Case {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]models.Case(nil), l.state.Cases...)
}

// Count devuelve el número de casos registrados.
func (l *CaseLedger) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.state.Cases)
}

// NextID devuelve el próximo id que se asignará.
func (l *CaseLedger) NextID() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.NextCaseID
}
