package moderation

import (
	"fmt"
	"sync"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/PancyStudios/PancyGuardGo/pkg/models"
)

// UnbanFunc aplica el unban de plataforma y registra el caso AUTOUNBAN.
type UnbanFunc func(p models.PendingUnban)

// UnbanScheduler gestiona los unbans diferidos de los tempbans. Las entradas
// se persisten como datos con su fecha de expiración y se rearman en el
// arranque, de modo que un reinicio del proceso no pierde ningún unban.
type UnbanScheduler struct {
	mu      sync.Mutex
	store   Store
	pending []models.PendingUnban
	timers  map[int]*time.Timer
	unban   UnbanFunc
}

// NewUnbanScheduler carga las entradas persistidas sin armarlas todavía;
// Recover se encarga de eso cuando el resto del sistema está listo.
func NewUnbanScheduler(store Store, unban UnbanFunc) (*UnbanScheduler, error) {
	pending, err := store.LoadPendingUnbans()
	if err != nil {
		return nil, err
	}
	return &UnbanScheduler{
		store:   store,
		pending: pending,
		timers:  make(map[int]*time.Timer),
		unban:   unban,
	}, nil
}

// Recover arma un timer por cada entrada cargada. Las que vencieron mientras
// el proceso estaba apagado disparan inmediatamente.
func (s *UnbanScheduler) Recover() {
	s.mu.Lock()
	pending := append([]models.PendingUnban(nil), s.pending...)
	s.mu.Unlock()

	if len(pending) > 0 {
		logger.System(fmt.Sprintf("Rearmando %d unban(s) pendientes...", len(pending)), "UnbanScheduler")
	}
	for _, p := range pending {
		s.arm(p)
	}
}

// Schedule persiste la entrada y arma su timer. La persistencia va primero:
// un unban prometido nunca debe depender solo de la memoria.
func (s *UnbanScheduler) Schedule(p models.PendingUnban) error {
	s.mu.Lock()
	next := append(append([]models.PendingUnban(nil), s.pending...), p)
	if err := s.store.SavePendingUnbans(next); err != nil {
		s.mu.Unlock()
		return err
	}
	s.pending = next
	s.mu.Unlock()

	s.arm(p)
	return nil
}

// Cancel desarma y elimina el unban programado del caso indicado.
func (s *UnbanScheduler) Cancel(caseID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.timers[caseID]; ok {
		t.Stop()
		delete(s.timers, caseID)
	}

	kept := make([]models.PendingUnban, 0, len(s.pending))
	found := false
	for _, p := range s.pending {
		if p.CaseID == caseID {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		return ErrCaseNotFound
	}

	if err := s.store.SavePendingUnbans(kept); err != nil {
		return err
	}
	s.pending = kept
	return nil
}

// Pending devuelve las entradas pendientes.
func (s *UnbanScheduler) Pending() []models.PendingUnban {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.PendingUnban(nil), s.pending...)
}

// Stop desarma todos los timers. Las entradas persistidas quedan intactas
// para el próximo arranque.
func (s *UnbanScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}

func (s *UnbanScheduler) arm(p models.PendingUnban) {
	delay := time.Until(time.Unix(p.ExpiresAt, 0))
	s.mu.Lock()
	s.timers[p.CaseID] = time.AfterFunc(delay, func() { s.fire(p) })
	s.mu.Unlock()
}

// fire elimina la entrada durable y aplica el unban. El timer no retiene
// ningún lock mientras espera.
func (s *UnbanScheduler) fire(p models.PendingUnban) {
	s.mu.Lock()
	delete(s.timers, p.CaseID)
	kept := make([]models.PendingUnban, 0, len(s.pending))
	for _, entry := range s.pending {
		if entry.CaseID != p.CaseID {
			kept = append(kept, entry)
		}
	}
	if err := s.store.SavePendingUnbans(kept); err != nil {
		logger.Error(fmt.Sprintf("No se pudo persistir la eliminación del unban pendiente (caso %d): %v", p.CaseID, err), "UnbanScheduler")
	} else {
		s.pending = kept
	}
	s.mu.Unlock()

	if s.unban != nil {
		s.unban(p)
	}
}
