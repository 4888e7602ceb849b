package moderation

import (
	"errors"
	"testing"

	"github.com/PancyStudios/PancyGuardGo/pkg/models"
)

func TestLedgerIDsStrictlyIncreasing(t *testing.T) {
	store := NewMemoryStore()
	ledger, err := NewCaseLedger(store)
	if err != nil {
		t.Fatalf("NewCaseLedger: %v", err)
	}

	for i := 1; i <= 5; i++ {
		c, err := ledger.Open(models.ActionWarn, "mod", "user", "spam", nil)
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		if c.ID != i {
			t.Errorf("caso %d: ID = %d, want %d", i, c.ID, i)
		}
	}
}

func TestLedgerIDsSurviveRestart(t *testing.T) {
	store := NewMemoryStore()

	ledger, err := NewCaseLedger(store)
	if err != nil {
		t.Fatalf("NewCaseLedger: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := ledger.Open(models.ActionBan, "mod", "user", "", nil); err != nil {
			t.Fatalf("Open: %v", err)
		}
	}

	// Reinicio simulado: nuevo ledger sobre el mismo store.
	reloaded, err := NewCaseLedger(store)
	if err != nil {
		t.Fatalf("NewCaseLedger (reload): %v", err)
	}

	c, err := reloaded.Open(models.ActionKick, "mod", "user", "", nil)
	if err != nil {
		t.Fatalf("Open tras recarga: %v", err)
	}
	if c.ID != 4 {
		t.Errorf("ID tras reinicio = %d, want 4", c.ID)
	}
	if reloaded.Count() != 4 {
		t.Errorf("Count() = %d, want 4", reloaded.Count())
	}
}

func TestLedgerDefaultReason(t *testing.T) {
	ledger, _ := NewCaseLedger(NewMemoryStore())

	c, err := ledger.Open(models.ActionKick, "mod", "user", "", nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if c.Reason != DefaultReason {
		t.Errorf("Reason = %q, want %q", c.Reason, DefaultReason)
	}
}

func TestLedgerFind(t *testing.T) {
	ledger, _ := NewCaseLedger(NewMemoryStore())
	opened, _ := ledger.Open(models.ActionTimeout, "mod", "user", "flood", map[string]string{"minutes": "60"})

	found, err := ledger.Find(opened.ID)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if found.Action != models.ActionTimeout || found.Extra["minutes"] != "60" {
		t.Errorf("Find() = %+v", found)
	}

	if _, err := ledger.Find(999); !errors.Is(err, ErrCaseNotFound) {
		t.Errorf("Find(999) err = %v, want ErrCaseNotFound", err)
	}
}

func TestLedgerAllInsertionOrder(t *testing.T) {
	ledger, _ := NewCaseLedger(NewMemoryStore())
	actions := []models.CaseAction{models.ActionWarn, models.ActionBan, models.ActionPurge}
	for _, a := range actions {
		ledger.Open(a, "mod", "user", "", nil)
	}

	all := ledger.All()
	if len(all) != len(actions) {
		t.Fatalf("All() len = %d, want %d", len(all), len(actions))
	}
	for i, a := range actions {
		if all[i].Action != a {
			t.Errorf("All()[%d].Action = %s, want %s", i, all[i].Action, a)
		}
	}
}

// failingStore falla siempre al guardar el ledger.
type failingStore struct{ *MemoryStore }

func (f *failingStore) SaveLedger(LedgerState) error {
	return errors.New("disco lleno")
}

func TestLedgerCounterDoesNotAdvanceOnPersistFailure(t *testing.T) {
	ledger, _ := NewCaseLedger(&failingStore{NewMemoryStore()})

	if _, err := ledger.Open(models.ActionWarn, "mod", "user", "", nil); err == nil {
		t.Fatal("Open debería fallar si la persistencia falla")
	}
	if ledger.NextID() != 1 {
		t.Errorf("NextID() = %d tras fallo de persistencia, want 1", ledger.NextID())
	}
	if ledger.Count() != 0 {
		t.Errorf("Count() = %d tras fallo de persistencia, want 0", ledger.Count())
	}
}
