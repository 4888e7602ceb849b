package moderation

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/PancyStudios/PancyGuardGo/pkg/models"
)

// Effector realiza los efectos de plataforma de una acción de moderación.
// La implementación real vive en pkg/discord; el núcleo solo conoce esta
// interfaz.
type Effector interface {
	// ResolveMember devuelve la instantánea del miembro o ErrTargetNotFound.
	ResolveMember(userID string) (*MemberSnapshot, error)

	Timeout(userID string, until time.Time, reason string) error
	RemoveTimeout(userID string) error
	Kick(userID, reason string) error
	Ban(userID, reason string) error
	Unban(userID string) error
	Purge(channelID string, amount int) (int, error)

	// Notify envía un aviso privado best-effort al usuario.
	Notify(userID, message string) error

	// OpenAckChannel crea el canal privado de confirmación con su botón y
	// devuelve el id del canal.
	OpenAckChannel(w Workflow, c models.Case) (string, error)
	CloseAckChannel(channelID string) error
}

// RequiredTier es el nivel mínimo de autoridad por acción. Purge admite
// además la capacidad de gestionar mensajes como alternativa al nivel.
var RequiredTier = map[models.CaseAction]Tier{
	models.ActionWarn:       TierHelper,
	models.ActionClearWarns: TierAdmin,
	models.ActionKick:       TierSeniorMod,
	models.ActionBan:        TierMod,
	models.ActionTempBan:    TierMod,
	models.ActionTimeout:    TierSeniorMod,
	models.ActionUntimeout:  TierSeniorMod,
	models.ActionPurge:      TierAdmin,
}

// Límites de parámetros por acción.
const (
	MaxTimeoutMinutes = 40320 // 28 días, límite de Discord
	MinPurgeAmount    = 2
	MaxPurgeAmount    = 100
)

// Options configura el orquestador.
type Options struct {
	// BotID es la identidad del bot, usada como moderador en los casos que
	// abre el propio sistema (ACK, AUTOUNBAN).
	BotID string

	// Ladder es la escalera de roles de autoridad.
	Ladder Ladder

	// WarnMuteDuration es la restricción temporal fija que aplica un warn
	// hasta que el usuario confirma.
	WarnMuteDuration time.Duration

	// AckMaxAge limita la vida de una confirmación pendiente. 0 (el valor
	// por defecto) significa que nunca expira.
	AckMaxAge time.Duration
}

// Service es el orquestador de acciones: comprueba permisos, ejecuta el
// efecto de plataforma, escribe el caso y abre la confirmación cuando la
// acción lo requiere. Si el efecto falla no se escribe ningún caso.
type Service struct {
	opts     Options
	ledger   *CaseLedger
	warnings *WarningStore
	acks     *AckManager
	unbans   *UnbanScheduler
	effector Effector
	onCase   func(models.Case)
}

var (
	service     *Service
	serviceOnce sync.Once
)

// Init inicializa el servicio global de moderación.
func Init(store Store, effector Effector, opts Options) (*Service, error) {
	var err error
	serviceOnce.Do(func() {
		service, err = NewService(store, effector, opts)
	})
	return service, err
}

// Get devuelve el servicio global de moderación.
func Get() *Service {
	return service
}

// NewService construye el servicio cargando todo el estado durable.
func NewService(store Store, effector Effector, opts Options) (*Service, error) {
	if opts.WarnMuteDuration <= 0 {
		opts.WarnMuteDuration = 10 * time.Minute
	}

	ledger, err := NewCaseLedger(store)
	if err != nil {
		return nil, err
	}
	warnings, err := NewWarningStore(store)
	if err != nil {
		return nil, err
	}

	s := &Service{
		opts:     opts,
		ledger:   ledger,
		warnings: warnings,
		acks:     NewAckManager(opts.AckMaxAge),
		effector: effector,
	}

	s.unbans, err = NewUnbanScheduler(store, s.autoUnban)
	if err != nil {
		return nil, err
	}

	s.acks.OnExpire(func(w Workflow) {
		logger.Info(fmt.Sprintf("Confirmación del caso %d expirada sin respuesta", w.CaseID), "Moderation")
		if w.ChannelID != "" {
			if err := s.effector.CloseAckChannel(w.ChannelID); err != nil {
				logger.Warn(fmt.Sprintf("No se pudo cerrar el canal de confirmación %s: %v", w.ChannelID, err), "Moderation")
			}
		}
	})

	return s, nil
}

// Start rearma los unbans pendientes y, si hay expiración configurada,
// arranca el barrido de confirmaciones.
func (s *Service) Start() {
	s.unbans.Recover()
	s.acks.StartExpirySweep(time.Minute)
}

// Stop detiene timers y barridos. El estado durable queda intacto.
func (s *Service) Stop() {
	s.unbans.Stop()
	s.acks.Stop()
}

// OnCase registra un hook que recibe cada caso abierto (mod-log, MQTT...).
func (s *Service) OnCase(fn func(models.Case)) {
	s.onCase = fn
}

// Ledger expone el ledger de casos (solo lectura para los comandos y la API).
func (s *Service) Ledger() *CaseLedger { return s.ledger }

// Ladder expone la escalera de autoridad configurada.
func (s *Service) Ladder() Ladder { return s.opts.Ladder }

// Warnings expone el almacén de advertencias.
func (s *Service) Warnings() *WarningStore { return s.warnings }

// Acks expone el gestor de confirmaciones.
func (s *Service) Acks() *AckManager { return s.acks }

// Unbans expone el planificador de unbans.
func (s *Service) Unbans() *UnbanScheduler { return s.unbans }

// Warn advierte a un usuario: aplica la restricción temporal fija, crea la
// advertencia, abre el caso y levanta la confirmación que, al resolverse,
// libera la restricción.
func (s *Service) Warn(issuer MemberSnapshot, targetID, reason string) (models.Case, models.Warning, error) {
	target, err := s.effector.ResolveMember(targetID)
	if err != nil {
		return models.Case{}, models.Warning{}, ErrTargetNotFound
	}
	if d := Authorize(s.opts.Ladder, &issuer, target, RequiredTier[models.ActionWarn]); !d.Allowed {
		return models.Case{}, models.Warning{}, &PermissionDeniedError{Reason: d.Reason}
	}

	until := time.Now().Add(s.opts.WarnMuteDuration)
	if err := s.effector.Timeout(targetID, until, reason); err != nil {
		return models.Case{}, models.Warning{}, &EffectFailedError{Action: models.ActionWarn, Err: err}
	}

	warning, err := s.warnings.Add(targetID, issuer.UserID, reason)
	if err != nil {
		return models.Case{}, models.Warning{}, err
	}

	c, err := s.openCase(models.ActionWarn, issuer.UserID, targetID, reason, map[string]string{
		"warnId":      strconv.Itoa(warning.ID),
		"muteMinutes": strconv.Itoa(int(s.opts.WarnMuteDuration / time.Minute)),
	})
	if err != nil {
		return models.Case{}, warning, err
	}

	s.openAck(c, targetID, models.ActionWarn, true)
	return c, warning, nil
}

// Timeout silencia a un usuario entre 1 y 40320 minutos. La confirmación que
// abre no levanta la restricción: el timeout vence por su cuenta.
func (s *Service) Timeout(issuer MemberSnapshot, targetID string, minutes int, reason string) (models.Case, error) {
	if minutes < 1 || minutes > MaxTimeoutMinutes {
		return models.Case{}, &InvalidParameterError{Field: "minutos"}
	}
	target, err := s.effector.ResolveMember(targetID)
	if err != nil {
		return models.Case{}, ErrTargetNotFound
	}
	if d := Authorize(s.opts.Ladder, &issuer, target, RequiredTier[models.ActionTimeout]); !d.Allowed {
		return models.Case{}, &PermissionDeniedError{Reason: d.Reason}
	}

	until := time.Now().Add(time.Duration(minutes) * time.Minute)
	if err := s.effector.Timeout(targetID, until, reason); err != nil {
		return models.Case{}, &EffectFailedError{Action: models.ActionTimeout, Err: err}
	}

	c, err := s.openCase(models.ActionTimeout, issuer.UserID, targetID, reason, map[string]string{
		"minutes": strconv.Itoa(minutes),
	})
	if err != nil {
		return models.Case{}, err
	}

	s.openAck(c, targetID, models.ActionTimeout, false)
	return c, nil
}

// Untimeout retira la restricción activa de un usuario y le avisa por
// privado (best-effort).
func (s *Service) Untimeout(issuer MemberSnapshot, targetID string) (models.Case, error) {
	target, err := s.effector.ResolveMember(targetID)
	if err != nil {
		return models.Case{}, ErrTargetNotFound
	}
	if d := Authorize(s.opts.Ladder, &issuer, target, RequiredTier[models.ActionUntimeout]); !d.Allowed {
		return models.Case{}, &PermissionDeniedError{Reason: d.Reason}
	}

	if err := s.effector.RemoveTimeout(targetID); err != nil {
		return models.Case{}, &EffectFailedError{Action: models.ActionUntimeout, Err: err}
	}

	s.notify(targetID, "🔊 Tu silencio ha sido retirado por un moderador.")
	return s.openCase(models.ActionUntimeout, issuer.UserID, targetID, "", nil)
}

// Kick expulsa a un usuario. El aviso privado sale antes de la expulsión
// porque después ya no compartirá servidor con el bot.
func (s *Service) Kick(issuer MemberSnapshot, targetID, reason string) (models.Case, error) {
	target, err := s.effector.ResolveMember(targetID)
	if err != nil {
		return models.Case{}, ErrTargetNotFound
	}
	if d := Authorize(s.opts.Ladder, &issuer, target, RequiredTier[models.ActionKick]); !d.Allowed {
		return models.Case{}, &PermissionDeniedError{Reason: d.Reason}
	}

	s.notify(targetID, fmt.Sprintf("👢 Has sido expulsado del servidor.\n**Razón:** %s", reasonOrDefault(reason)))
	if err := s.effector.Kick(targetID, reason); err != nil {
		return models.Case{}, &EffectFailedError{Action: models.ActionKick, Err: err}
	}

	return s.openCase(models.ActionKick, issuer.UserID, targetID, reason, nil)
}

// Ban banea a un usuario. Un objetivo que ya no está en el servidor se
// permite (ban por id) y no tiene rango que comparar.
func (s *Service) Ban(issuer MemberSnapshot, targetID, reason string) (models.Case, error) {
	target, _ := s.effector.ResolveMember(targetID)
	if d := Authorize(s.opts.Ladder, &issuer, target, RequiredTier[models.ActionBan]); !d.Allowed {
		return models.Case{}, &PermissionDeniedError{Reason: d.Reason}
	}

	s.notify(targetID, fmt.Sprintf("🔨 Has sido baneado del servidor.\n**Razón:** %s", reasonOrDefault(reason)))
	if err := s.effector.Ban(targetID, reason); err != nil {
		return models.Case{}, &EffectFailedError{Action: models.ActionBan, Err: err}
	}

	return s.openCase(models.ActionBan, issuer.UserID, targetID, reason, nil)
}

// TempBan banea y programa el unban automático. La entrada se persiste antes
// de armar el timer: un reinicio rearma lo pendiente en Start.
func (s *Service) TempBan(issuer MemberSnapshot, targetID string, minutes int, reason string) (models.Case, error) {
	if minutes < 1 {
		return models.Case{}, &InvalidParameterError{Field: "minutos"}
	}
	target, _ := s.effector.ResolveMember(targetID)
	if d := Authorize(s.opts.Ladder, &issuer, target, RequiredTier[models.ActionTempBan]); !d.Allowed {
		return models.Case{}, &PermissionDeniedError{Reason: d.Reason}
	}

	s.notify(targetID, fmt.Sprintf("⏳ Has sido baneado temporalmente por %d minutos.\n**Razón:** %s", minutes, reasonOrDefault(reason)))
	if err := s.effector.Ban(targetID, reason); err != nil {
		return models.Case{}, &EffectFailedError{Action: models.ActionTempBan, Err: err}
	}

	c, err := s.openCase(models.ActionTempBan, issuer.UserID, targetID, reason, map[string]string{
		"minutes": strconv.Itoa(minutes),
	})
	if err != nil {
		return models.Case{}, err
	}

	pending := models.PendingUnban{
		CaseID:    c.ID,
		UserID:    targetID,
		ExpiresAt: time.Now().Add(time.Duration(minutes) * time.Minute).Unix(),
	}
	if err := s.unbans.Schedule(pending); err != nil {
		// El ban ya está aplicado y el caso escrito; sin entrada durable el
		// unban no ocurrirá solo. Esto debe llegar a los operadores.
		logger.Critical(fmt.Sprintf("No se pudo persistir el unban pendiente del caso %d: %v", c.ID, err), "Moderation")
	}
	return c, nil
}

// CancelScheduledUnban cancela el unban automático de un tempban. El ban
// pasa a ser permanente hasta que alguien lo quite a mano.
func (s *Service) CancelScheduledUnban(caseID int) error {
	return s.unbans.Cancel(caseID)
}

// autoUnban es el callback del planificador: quita el ban y registra el caso
// AUTOUNBAN atribuido al bot. Si Discord rechaza el unban (p. ej. alguien lo
// quitó a mano) no se escribe caso.
func (s *Service) autoUnban(p models.PendingUnban) {
	if err := s.effector.Unban(p.UserID); err != nil {
		logger.Error(fmt.Sprintf("No se pudo aplicar el unban automático del caso %d: %v", p.CaseID, err), "Moderation")
		return
	}
	if _, err := s.openCase(models.ActionAutoUnban, s.opts.BotID, p.UserID, "Ban temporal expirado", map[string]string{
		"tempbanCase": strconv.Itoa(p.CaseID),
	}); err != nil {
		return
	}
}

// ClearWarns elimina todas las advertencias de un usuario. Funciona también
// para usuarios que ya no están en el servidor.
func (s *Service) ClearWarns(issuer MemberSnapshot, targetID string) (int, models.Case, error) {
	target, _ := s.effector.ResolveMember(targetID)
	if d := Authorize(s.opts.Ladder, &issuer, target, RequiredTier[models.ActionClearWarns]); !d.Allowed {
		return 0, models.Case{}, &PermissionDeniedError{Reason: d.Reason}
	}

	removed, err := s.warnings.ClearFor(targetID)
	if err != nil {
		return 0, models.Case{}, err
	}

	c, err := s.openCase(models.ActionClearWarns, issuer.UserID, targetID, "", map[string]string{
		"removed": strconv.Itoa(removed),
	})
	return removed, c, err
}

// Purge borra entre 2 y 100 mensajes recientes del canal. Lo permite el
// nivel 4 o, como alternativa, la capacidad de gestionar mensajes.
func (s *Service) Purge(issuer MemberSnapshot, channelID string, amount int) (int, models.Case, error) {
	if amount < MinPurgeAmount || amount > MaxPurgeAmount {
		return 0, models.Case{}, &InvalidParameterError{Field: "cantidad"}
	}
	d := Authorize(s.opts.Ladder, &issuer, nil, RequiredTier[models.ActionPurge])
	if !d.Allowed && !issuer.CanManageMessages {
		return 0, models.Case{}, &PermissionDeniedError{Reason: d.Reason}
	}

	deleted, err := s.effector.Purge(channelID, amount)
	if err != nil {
		return 0, models.Case{}, &EffectFailedError{Action: models.ActionPurge, Err: err}
	}

	c, err := s.openCase(models.ActionPurge, issuer.UserID, "", "", map[string]string{
		"channelId": channelID,
		"requested": strconv.Itoa(amount),
		"deleted":   strconv.Itoa(deleted),
	})
	return deleted, c, err
}

// Acknowledge resuelve la confirmación de un caso. Solo el sancionado puede
// hacerlo; si la confirmación liberaba la restricción, se levanta (operación
// idempotente: un mute ya vencido no es un error). El canal se desmonta y se
// abre un caso ACK atribuido al bot.
func (s *Service) Acknowledge(actorID string, caseID int) (models.Case, error) {
	w, err := s.acks.Resolve(caseID, actorID)
	if err != nil {
		return models.Case{}, err
	}

	if w.ReleasesRestriction {
		if err := s.effector.RemoveTimeout(w.TargetID); err != nil {
			// El mute pudo expirar o retirarse a mano; la confirmación sigue
			// siendo válida.
			logger.Warn(fmt.Sprintf("No se pudo levantar la restricción del caso %d: %v", caseID, err), "Moderation")
		}
	}

	if w.ChannelID != "" {
		if err := s.effector.CloseAckChannel(w.ChannelID); err != nil {
			logger.Warn(fmt.Sprintf("No se pudo cerrar el canal de confirmación %s: %v", w.ChannelID, err), "Moderation")
		}
	}

	extra := map[string]string{"acknowledgedCase": strconv.Itoa(caseID)}
	if w.ReleasesRestriction {
		extra["released"] = "true"
	}
	return s.openCase(models.ActionAck, s.opts.BotID, w.TargetID, "Sanción confirmada por el usuario", extra)
}

// openCase escribe el caso y dispara el hook. Un fallo de persistencia aquí
// es un error operativo grave: se eleva al llamador y se registra como
// crítico.
func (s *Service) openCase(action models.CaseAction, moderatorID, targetID, reason string, extra map[string]string) (models.Case, error) {
	c, err := s.ledger.Open(action, moderatorID, targetID, reason, extra)
	if err != nil {
		logger.Critical(fmt.Sprintf("No se pudo persistir el caso (%s sobre %s): %v", action, targetID, err), "Moderation")
		return models.Case{}, err
	}
	if s.onCase != nil {
		s.onCase(c)
	}
	return c, nil
}

// openAck registra el workflow y crea su canal interactivo. El workflow se
// registra primero: aunque el canal falle, la confirmación existe y puede
// resolverse por otros medios.
func (s *Service) openAck(c models.Case, targetID string, action models.CaseAction, releases bool) {
	w := Workflow{
		CaseID:              c.ID,
		TargetID:            targetID,
		Action:              action,
		ReleasesRestriction: releases,
		CreatedAt:           time.Now(),
	}
	s.acks.Open(w)

	channelID, err := s.effector.OpenAckChannel(w, c)
	if err != nil {
		logger.Warn(fmt.Sprintf("No se pudo crear el canal de confirmación del caso %d: %v", c.ID, err), "Moderation")
		return
	}
	s.acks.SetChannel(c.ID, channelID)
}

// notify envía un aviso privado best-effort. Los fallos se tragan: el
// usuario puede tener los MD cerrados.
func (s *Service) notify(userID, message string) {
	if err := s.effector.Notify(userID, message); err != nil {
		logger.Debug(fmt.Sprintf("No se pudo notificar a %s (MD cerrados?)", userID), "Moderation")
	}
}

func reasonOrDefault(reason string) string {
	if reason == "" {
		return DefaultReason
	}
	return reason
}
