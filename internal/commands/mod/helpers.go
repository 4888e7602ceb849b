// Package mod - shared helpers for the /mod subcommands
package mod

import (
	"errors"
	"fmt"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/moderation"
)

// issuerSnapshot resolves the permission snapshot of the member who ran the
// command.
func issuerSnapshot(ctx *discord.CommandContext) (moderation.MemberSnapshot, error) {
	snapshot, err := discord.Effector().ResolveMember(ctx.User().ID)
	if err != nil {
		return moderation.MemberSnapshot{}, err
	}
	return *snapshot, nil
}

// replyModError translates core errors into user-facing replies. Unknown
// errors bubble up to the command handler, which logs them.
func replyModError(ctx *discord.CommandContext, err error) error {
	var denied *moderation.PermissionDeniedError
	if errors.As(err, &denied) {
		switch denied.Reason {
		case moderation.DenyInsufficientLevel:
			return ctx.ReplyEphemeral("❌ No tienes el nivel de autoridad necesario para esta acción.")
		case moderation.DenyRoleHierarchy:
			return ctx.ReplyEphemeral("❌ No puedes sancionar a alguien con un rango igual o superior al tuyo.")
		default:
			return ctx.ReplyEphemeral("❌ Permiso denegado.")
		}
	}

	var invalid *moderation.InvalidParameterError
	if errors.As(err, &invalid) {
		return ctx.ReplyEphemeral(fmt.Sprintf("❌ Parámetro inválido: %s.", invalid.Field))
	}

	var failed *moderation.EffectFailedError
	if errors.As(err, &failed) {
		return ctx.ReplyEphemeral("❌ Discord rechazó la acción. No se ha registrado ningún caso.")
	}

	if errors.Is(err, moderation.ErrTargetNotFound) {
		return ctx.ReplyEphemeral("❌ Ese usuario no está en el servidor.")
	}

	return err
}
