// Package moderation implements the moderation core of PancyGuard:
// permission evaluation, the case ledger, the warning store, acknowledgement
// workflows and the action orchestrator. Platform side effects live behind
// the Effector interface so the core stays testable without Discord.
package moderation

import (
	"errors"
	"fmt"

	"github.com/PancyStudios/PancyGuardGo/pkg/models"
)

// Razones de denegación devueltas por Authorize.
const (
	DenyInsufficientLevel = "insufficient_level"
	DenyRoleHierarchy     = "role_hierarchy"
	DenyNoIssuer          = "no_issuer"
)

// PermissionDeniedError indica que el emisor no puede ejecutar la acción.
// No se produce ningún efecto ni se escribe ningún caso.
type PermissionDeniedError struct {
	Reason string
}

func (e *PermissionDeniedError) Error() string {
	return "permiso denegado: " + e.Reason
}

// InvalidParameterError indica un parámetro fuera de rango. Se rechaza antes
// de cualquier efecto.
type InvalidParameterError struct {
	Field string
}

func (e *InvalidParameterError) Error() string {
	return "parámetro inválido: " + e.Field
}

// EffectFailedError indica que el efecto de plataforma (mute, kick, ban...)
// falló. La acción no queda registrada como caso.
type EffectFailedError struct {
	Action models.CaseAction
	Err    error
}

func (e *EffectFailedError) Error() string {
	return fmt.Sprintf("el efecto de la acción %s falló: %v", e.Action, e.Err)
}

func (e *EffectFailedError) Unwrap() error { return e.Err }

var (
	// ErrTargetNotFound indica que el usuario objetivo no pudo resolverse.
	ErrTargetNotFound = errors.New("usuario objetivo no encontrado")

	// ErrCaseNotFound indica que no existe un caso con ese id.
	ErrCaseNotFound = errors.New("caso no encontrado")

	// ErrWorkflowNotFound indica que no hay confirmación pendiente para el
	// caso (nunca existió o ya fue resuelta).
	ErrWorkflowNotFound = errors.New("no hay confirmación pendiente para ese caso")

	// ErrWorkflowAccessDenied indica que alguien distinto al sancionado
	// intentó confirmar. No cambia ningún estado.
	ErrWorkflowAccessDenied = errors.New("la confirmación pertenece a otro usuario")
)
