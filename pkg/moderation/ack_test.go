package moderation

import (
	"errors"
	"testing"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/models"
)

func TestAckCustomIDRoundTrip(t *testing.T) {
	id := AckCustomID(42, true)
	caseID, releases, ok := ParseAckCustomID(id)
	if !ok || caseID != 42 || !releases {
		t.Errorf("ParseAckCustomID(%q) = %d, %v, %v", id, caseID, releases, ok)
	}

	id = AckCustomID(7, false)
	caseID, releases, ok = ParseAckCustomID(id)
	if !ok || caseID != 7 || releases {
		t.Errorf("ParseAckCustomID(%q) = %d, %v, %v", id, caseID, releases, ok)
	}
}

func TestParseAckCustomIDRejectsForeignIDs(t *testing.T) {
	for _, s := range []string{"", "button_accept", "modack:abc:1", "modack:1", "otro:5:1", "modack:0:1"} {
		if _, _, ok := ParseAckCustomID(s); ok {
			t.Errorf("ParseAckCustomID(%q) ok = true, want false", s)
		}
	}
}

func TestResolveOnlyTargetUser(t *testing.T) {
	m := NewAckManager(0)
	m.Open(Workflow{CaseID: 1, TargetID: "victima", Action: models.ActionWarn, ReleasesRestriction: true})

	// Otro actor: rechazado sin cambio de estado.
	if _, err := m.Resolve(1, "intruso"); !errors.Is(err, ErrWorkflowAccessDenied) {
		t.Errorf("Resolve(intruso) err = %v, want ErrWorkflowAccessDenied", err)
	}
	if m.OpenCount() != 1 {
		t.Errorf("OpenCount() = %d tras intento ajeno, want 1", m.OpenCount())
	}

	// El sancionado sí puede.
	w, err := m.Resolve(1, "victima")
	if err != nil {
		t.Fatalf("Resolve(victima): %v", err)
	}
	if !w.ReleasesRestriction {
		t.Error("ReleasesRestriction perdido al resolver")
	}
	if m.OpenCount() != 0 {
		t.Errorf("OpenCount() = %d tras resolver, want 0", m.OpenCount())
	}
}

func TestResolveTwiceRejected(t *testing.T) {
	m := NewAckManager(0)
	m.Open(Workflow{CaseID: 3, TargetID: "victima"})

	if _, err := m.Resolve(3, "victima"); err != nil {
		t.Fatalf("primer Resolve: %v", err)
	}
	if _, err := m.Resolve(3, "victima"); !errors.Is(err, ErrWorkflowNotFound) {
		t.Errorf("segundo Resolve err = %v, want ErrWorkflowNotFound", err)
	}
}

func TestSetChannel(t *testing.T) {
	m := NewAckManager(0)
	m.Open(Workflow{CaseID: 9, TargetID: "u"})
	m.SetChannel(9, "canal-123")

	w, ok := m.Get(9)
	if !ok || w.ChannelID != "canal-123" {
		t.Errorf("Get(9) = %+v, %v", w, ok)
	}
}

func TestExpireStale(t *testing.T) {
	m := NewAckManager(time.Minute)
	var expired []Workflow
	m.OnExpire(func(w Workflow) { expired = append(expired, w) })

	old := time.Now().Add(-2 * time.Minute)
	m.Open(Workflow{CaseID: 1, TargetID: "a", CreatedAt: old})
	m.Open(Workflow{CaseID: 2, TargetID: "b", CreatedAt: time.Now()})

	m.expireStale(time.Now())

	if len(expired) != 1 || expired[0].CaseID != 1 {
		t.Errorf("expirados = %+v, want solo el caso 1", expired)
	}
	if m.OpenCount() != 1 {
		t.Errorf("OpenCount() = %d, want 1", m.OpenCount())
	}
}

func TestNoExpiryByDefault(t *testing.T) {
	m := NewAckManager(0)
	m.Open(Workflow{CaseID: 1, TargetID: "a", CreatedAt: time.Now().Add(-24 * time.Hour)})

	// Con maxAge 0 el barrido no arranca; una llamada directa tampoco debe
	// expirar nada porque maxAge <= 0 nunca supera la edad.
	m.StartExpirySweep(time.Millisecond)
	if m.OpenCount() != 1 {
		t.Errorf("OpenCount() = %d, want 1 (sin expiración por defecto)", m.OpenCount())
	}
}
