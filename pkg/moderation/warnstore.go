package moderation

import (
	"sync"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/models"
)

// WarningStore es el almacén de advertencias. Las advertencias nunca se
// editan; solo se crean o se eliminan en bloque por usuario.
type WarningStore struct {
	mu    sync.Mutex
	store Store
	warns []models.Warning
}

// NewWarningStore carga las advertencias persistidas.
func NewWarningStore(store Store) (*WarningStore, error) {
	warns, err := store.LoadWarnings()
	if err != nil {
		return nil, err
	}
	return &WarningStore{store: store, warns: warns}, nil
}

// Add crea una advertencia. El id es max(id existente)+1, o 1 si la
// colección está vacía; no se usa la longitud para tolerar borrados previos
// sin colisiones de id.
func (w *WarningStore) Add(userID, moderatorID, reason string) (models.Warning, error) {
	if reason == "" {
		reason = DefaultReason
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	id := 1
	for _, warn := range w.warns {
		if warn.ID >= id {
			id = warn.ID + 1
		}
	}

	warning := models.Warning{
		ID:        id,
		UserID:    userID,
		Moderator: moderatorID,
		Reason:    reason,
		Timestamp: time.Now().Unix(),
	}

	next := append(append([]models.Warning(nil), w.warns...), warning)
	if err := w.store.SaveWarnings(next); err != nil {
		return models.Warning{}, err
	}

	w.warns = next
	return warning, nil
}

// ListFor devuelve las advertencias del usuario en orden de inserción.
func (w *WarningStore) ListFor(userID string) []models.Warning {
	w.mu.Lock()
	defer w.mu.Unlock()

	var result []models.Warning
	for _, warn := range w.warns {
		if warn.UserID == userID {
			result = append(result, warn)
		}
	}
	return result
}

// ClearFor elimina todas las advertencias del usuario y devuelve cuántas
// se eliminaron. Si no había ninguna no se toca el almacenamiento.
func (w *WarningStore) ClearFor(userID string) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	kept := make([]models.Warning, 0, len(w.warns))
	for _, warn := range w.warns {
		if warn.UserID != userID {
			kept = append(kept, warn)
		}
	}

	removed := len(w.warns) - len(kept)
	if removed == 0 {
		return 0, nil
	}

	if err := w.store.SaveWarnings(kept); err != nil {
		return 0, err
	}

	w.warns = kept
	return removed, nil
}
