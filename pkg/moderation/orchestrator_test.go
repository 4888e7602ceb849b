package moderation

import (
	"errors"
	"testing"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/models"
)

// fakeEffector simula la plataforma para probar el orquestador sin Discord.
type fakeEffector struct {
	members map[string]*MemberSnapshot

	timeouts      map[string]time.Time
	untimeouts    []string
	kicked        []string
	banned        []string
	unbanned      chan string
	notified      []string
	purgedAmounts []int
	openChannels  []string
	closedIDs     []string

	banErr    error
	notifyErr error
}

func newFakeEffector() *fakeEffector {
	return &fakeEffector{
		members:  make(map[string]*MemberSnapshot),
		timeouts: make(map[string]time.Time),
		unbanned: make(chan string, 8),
	}
}

func (f *fakeEffector) ResolveMember(userID string) (*MemberSnapshot, error) {
	if m, ok := f.members[userID]; ok {
		return m, nil
	}
	return nil, ErrTargetNotFound
}

func (f *fakeEffector) Timeout(userID string, until time.Time, reason string) error {
	f.timeouts[userID] = until
	return nil
}

func (f *fakeEffector) RemoveTimeout(userID string) error {
	f.untimeouts = append(f.untimeouts, userID)
	delete(f.timeouts, userID)
	return nil
}

func (f *fakeEffector) Kick(userID, reason string) error {
	f.kicked = append(f.kicked, userID)
	return nil
}

func (f *fakeEffector) Ban(userID, reason string) error {
	if f.banErr != nil {
		return f.banErr
	}
	f.banned = append(f.banned, userID)
	return nil
}

func (f *fakeEffector) Unban(userID string) error {
	f.unbanned <- userID
	return nil
}

func (f *fakeEffector) Purge(channelID string, amount int) (int, error) {
	f.purgedAmounts = append(f.purgedAmounts, amount)
	return amount, nil
}

func (f *fakeEffector) Notify(userID, message string) error {
	if f.notifyErr != nil {
		return f.notifyErr
	}
	f.notified = append(f.notified, userID)
	return nil
}

func (f *fakeEffector) OpenAckChannel(w Workflow, c models.Case) (string, error) {
	id := "canal-ack"
	f.openChannels = append(f.openChannels, id)
	return id, nil
}

func (f *fakeEffector) CloseAckChannel(channelID string) error {
	f.closedIDs = append(f.closedIDs, channelID)
	return nil
}

func newTestService(t *testing.T, eff *fakeEffector) (*Service, *MemoryStore) {
	t.Helper()
	store := NewMemoryStore()
	svc, err := NewService(store, eff, Options{
		BotID:            "bot",
		Ladder:           testLadder(),
		WarnMuteDuration: 10 * time.Minute,
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, store
}

func adminIssuer() MemberSnapshot {
	return MemberSnapshot{UserID: "mod", RoleIDs: []string{"role-admin"}, TopRolePosition: 10}
}

func TestWarnScenario(t *testing.T) {
	eff := newFakeEffector()
	eff.members["victima"] = &MemberSnapshot{UserID: "victima", TopRolePosition: 1}
	svc, _ := newTestService(t, eff)

	c, warning, err := svc.Warn(adminIssuer(), "victima", "spam")
	if err != nil {
		t.Fatalf("Warn: %v", err)
	}

	if warning.ID != 1 || warning.UserID != "victima" {
		t.Errorf("warning = %+v", warning)
	}
	if c.Action != models.ActionWarn || c.Target != "victima" {
		t.Errorf("case = %+v", c)
	}
	if _, muted := eff.timeouts["victima"]; !muted {
		t.Error("el warn debe aplicar la restricción temporal")
	}

	w, ok := svc.Acks().Get(c.ID)
	if !ok || !w.ReleasesRestriction {
		t.Fatalf("workflow = %+v, %v; want abierto con ReleasesRestriction", w, ok)
	}

	// Confirmación del propio sancionado: levanta la restricción, cierra el
	// canal y abre un caso ACK que referencia al original.
	ackCase, err := svc.Acknowledge("victima", c.ID)
	if err != nil {
		t.Fatalf("Acknowledge: %v", err)
	}
	if ackCase.Action != models.ActionAck || ackCase.Moderator != "bot" {
		t.Errorf("ackCase = %+v", ackCase)
	}
	if ackCase.Extra["acknowledgedCase"] != "1" {
		t.Errorf("extra = %+v", ackCase.Extra)
	}
	if len(eff.untimeouts) != 1 || eff.untimeouts[0] != "victima" {
		t.Errorf("untimeouts = %v, want [victima]", eff.untimeouts)
	}
	if len(eff.closedIDs) != 1 {
		t.Errorf("el canal de confirmación no se cerró: %v", eff.closedIDs)
	}
	if svc.Acks().OpenCount() != 0 {
		t.Error("el workflow debe quedar resuelto")
	}
}

func TestTimeoutAckDoesNotRelease(t *testing.T) {
	eff := newFakeEffector()
	eff.members["victima"] = &MemberSnapshot{UserID: "victima", TopRolePosition: 1}
	svc, _ := newTestService(t, eff)

	c, err := svc.Timeout(adminIssuer(), "victima", 60, "flood")
	if err != nil {
		t.Fatalf("Timeout: %v", err)
	}
	if c.Extra["minutes"] != "60" {
		t.Errorf("extra = %+v", c.Extra)
	}

	w, ok := svc.Acks().Get(c.ID)
	if !ok || w.ReleasesRestriction {
		t.Fatalf("workflow = %+v; la confirmación de un timeout no libera", w)
	}

	if _, err := svc.Acknowledge("victima", c.ID); err != nil {
		t.Fatalf("Acknowledge: %v", err)
	}
	if len(eff.untimeouts) != 0 {
		t.Errorf("la confirmación no debe levantar el timeout: %v", eff.untimeouts)
	}
}

func TestAcknowledgeWrongUser(t *testing.T) {
	eff := newFakeEffector()
	eff.members["victima"] = &MemberSnapshot{UserID: "victima", TopRolePosition: 1}
	svc, _ := newTestService(t, eff)

	c, _, err := svc.Warn(adminIssuer(), "victima", "spam")
	if err != nil {
		t.Fatalf("Warn: %v", err)
	}

	before := svc.Ledger().Count()
	if _, err := svc.Acknowledge("intruso", c.ID); !errors.Is(err, ErrWorkflowAccessDenied) {
		t.Errorf("Acknowledge(intruso) err = %v, want ErrWorkflowAccessDenied", err)
	}
	if svc.Ledger().Count() != before {
		t.Error("un intento ajeno no debe escribir casos")
	}
	if svc.Acks().OpenCount() != 1 {
		t.Error("el workflow debe seguir abierto")
	}
}

func TestTimeoutInvalidMinutes(t *testing.T) {
	eff := newFakeEffector()
	eff.members["victima"] = &MemberSnapshot{UserID: "victima"}
	svc, _ := newTestService(t, eff)

	for _, minutes := range []int{0, -5, MaxTimeoutMinutes + 1} {
		_, err := svc.Timeout(adminIssuer(), "victima", minutes, "")
		var invalid *InvalidParameterError
		if !errors.As(err, &invalid) {
			t.Errorf("Timeout(%d) err = %v, want InvalidParameterError", minutes, err)
		}
	}
	if len(eff.timeouts) != 0 || svc.Ledger().Count() != 0 {
		t.Error("parámetros inválidos no deben producir efectos ni casos")
	}
}

func TestPurgeInvalidAmount(t *testing.T) {
	eff := newFakeEffector()
	svc, _ := newTestService(t, eff)

	_, _, err := svc.Purge(adminIssuer(), "canal", 150)
	var invalid *InvalidParameterError
	if !errors.As(err, &invalid) {
		t.Fatalf("Purge(150) err = %v, want InvalidParameterError", err)
	}
	if len(eff.purgedAmounts) != 0 || svc.Ledger().Count() != 0 {
		t.Error("un purge inválido no debe borrar nada ni escribir casos")
	}
}

func TestPurgeManageMessagesCapability(t *testing.T) {
	eff := newFakeEffector()
	svc, _ := newTestService(t, eff)

	// Sin nivel 4 pero con capacidad de gestionar mensajes.
	issuer := MemberSnapshot{UserID: "mod", RoleIDs: []string{"role-helper"}, CanManageMessages: true}
	deleted, c, err := svc.Purge(issuer, "canal", 10)
	if err != nil {
		t.Fatalf("Purge: %v", err)
	}
	if deleted != 10 || c.Action != models.ActionPurge {
		t.Errorf("deleted = %d, case = %+v", deleted, c)
	}
}

func TestPermissionDeniedWritesNothing(t *testing.T) {
	eff := newFakeEffector()
	eff.members["victima"] = &MemberSnapshot{UserID: "victima", TopRolePosition: 1}
	svc, _ := newTestService(t, eff)

	issuer := MemberSnapshot{UserID: "novato", RoleIDs: []string{"role-helper"}, TopRolePosition: 2}
	_, err := svc.Ban(issuer, "victima", "")
	var denied *PermissionDeniedError
	if !errors.As(err, &denied) || denied.Reason != DenyInsufficientLevel {
		t.Fatalf("Ban err = %v, want PermissionDenied(%s)", err, DenyInsufficientLevel)
	}
	if len(eff.banned) != 0 || svc.Ledger().Count() != 0 {
		t.Error("una denegación no debe producir efectos ni casos")
	}
}

func TestEffectFailureWritesNoCase(t *testing.T) {
	eff := newFakeEffector()
	eff.banErr = errors.New("missing permissions")
	svc, _ := newTestService(t, eff)

	_, err := svc.Ban(adminIssuer(), "fantasma", "raid")
	var effect *EffectFailedError
	if !errors.As(err, &effect) || effect.Action != models.ActionBan {
		t.Fatalf("Ban err = %v, want EffectFailedError", err)
	}
	if svc.Ledger().Count() != 0 {
		t.Error("un efecto fallido no debe registrar caso")
	}
}

func TestBanTargetNotInGuildSkipsHierarchy(t *testing.T) {
	eff := newFakeEffector()
	svc, _ := newTestService(t, eff)

	// El objetivo no es miembro: se banea por id y no hay comparación de rangos.
	issuer := MemberSnapshot{UserID: "mod", RoleIDs: []string{"role-mod"}, TopRolePosition: 1}
	c, err := svc.Ban(issuer, "fantasma", "ban evasion")
	if err != nil {
		t.Fatalf("Ban: %v", err)
	}
	if c.Action != models.ActionBan || c.Target != "fantasma" {
		t.Errorf("case = %+v", c)
	}
}

func TestTempBanSchedulesAndRecovers(t *testing.T) {
	eff := newFakeEffector()
	svc, store := newTestService(t, eff)

	c, err := svc.TempBan(adminIssuer(), "fantasma", 60, "raid")
	if err != nil {
		t.Fatalf("TempBan: %v", err)
	}

	pending := svc.Unbans().Pending()
	if len(pending) != 1 || pending[0].CaseID != c.ID || pending[0].UserID != "fantasma" {
		t.Fatalf("pending = %+v", pending)
	}
	svc.Stop()

	// Reinicio simulado con la entrada ya vencida: Recover debe disparar el
	// unban y registrar el caso AUTOUNBAN.
	expired := pending[0]
	expired.ExpiresAt = time.Now().Add(-time.Minute).Unix()
	if err := store.SavePendingUnbans([]models.PendingUnban{expired}); err != nil {
		t.Fatalf("SavePendingUnbans: %v", err)
	}

	eff2 := newFakeEffector()
	svc2, err := NewService(store, eff2, Options{BotID: "bot", Ladder: testLadder()})
	if err != nil {
		t.Fatalf("NewService (reload): %v", err)
	}
	done := make(chan models.Case, 1)
	svc2.OnCase(func(c models.Case) {
		if c.Action == models.ActionAutoUnban {
			done <- c
		}
	})
	svc2.Start()
	defer svc2.Stop()

	select {
	case <-eff2.unbanned:
	case <-time.After(2 * time.Second):
		t.Fatal("el unban pendiente no se disparó tras el reinicio")
	}

	select {
	case autoCase := <-done:
		if autoCase.Moderator != "bot" || autoCase.Extra["tempbanCase"] == "" {
			t.Errorf("autoCase = %+v", autoCase)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no se registró el caso AUTOUNBAN")
	}

	if got := len(svc2.Unbans().Pending()); got != 0 {
		t.Errorf("Pending() len = %d tras disparar, want 0", got)
	}
}

func TestCancelScheduledUnban(t *testing.T) {
	eff := newFakeEffector()
	svc, _ := newTestService(t, eff)
	defer svc.Stop()

	c, err := svc.TempBan(adminIssuer(), "fantasma", 120, "")
	if err != nil {
		t.Fatalf("TempBan: %v", err)
	}

	if err := svc.CancelScheduledUnban(c.ID); err != nil {
		t.Fatalf("CancelScheduledUnban: %v", err)
	}
	if len(svc.Unbans().Pending()) != 0 {
		t.Error("la entrada debe desaparecer al cancelar")
	}
	if err := svc.CancelScheduledUnban(c.ID); !errors.Is(err, ErrCaseNotFound) {
		t.Errorf("segunda cancelación err = %v, want ErrCaseNotFound", err)
	}
}

func TestClearWarnsCountsAndCases(t *testing.T) {
	eff := newFakeEffector()
	eff.members["victima"] = &MemberSnapshot{UserID: "victima", TopRolePosition: 1}
	svc, _ := newTestService(t, eff)

	svc.Warn(adminIssuer(), "victima", "a")
	svc.Warn(adminIssuer(), "victima", "b")

	removed, c, err := svc.ClearWarns(adminIssuer(), "victima")
	if err != nil {
		t.Fatalf("ClearWarns: %v", err)
	}
	if removed != 2 || c.Extra["removed"] != "2" {
		t.Errorf("removed = %d, case = %+v", removed, c)
	}
	if len(svc.Warnings().ListFor("victima")) != 0 {
		t.Error("las advertencias deben quedar vacías")
	}
}

func TestWarnTargetNotFound(t *testing.T) {
	eff := newFakeEffector()
	svc, _ := newTestService(t, eff)

	_, _, err := svc.Warn(adminIssuer(), "desconocido", "spam")
	if !errors.Is(err, ErrTargetNotFound) {
		t.Errorf("Warn err = %v, want ErrTargetNotFound", err)
	}
	if svc.Ledger().Count() != 0 {
		t.Error("sin objetivo no hay caso")
	}
}

func TestNotificationFailureIsSwallowed(t *testing.T) {
	eff := newFakeEffector()
	eff.members["victima"] = &MemberSnapshot{UserID: "victima", TopRolePosition: 1}
	eff.notifyErr = errors.New("cannot send messages to this user")
	svc, _ := newTestService(t, eff)

	c, err := svc.Kick(adminIssuer(), "victima", "spam")
	if err != nil {
		t.Fatalf("Kick: %v (el fallo de notificación no debe propagarse)", err)
	}
	if c.Action != models.ActionKick {
		t.Errorf("case = %+v", c)
	}
	if len(eff.kicked) != 1 {
		t.Errorf("kicked = %v", eff.kicked)
	}
}
