package moderation

// Tier es el nivel de autoridad de un miembro, derivado del rol más alto de
// la escalera que posee. Un nivel N implica las capacidades de los niveles
// inferiores, pero la pertenencia no es acumulativa: cuenta solo el rol más
// alto que coincida.
type Tier int

const (
	TierNone Tier = iota
	TierHelper
	TierMod
	TierSeniorMod
	TierAdmin
)

// Ladder es la escalera de roles de autoridad, ordenada de menor a mayor.
// El índice i corresponde al nivel i+1. Entradas vacías se ignoran.
type Ladder []string

// Level devuelve el nivel de autoridad del miembro según la escalera.
func (l Ladder) Level(m MemberSnapshot) Tier {
	level := TierNone
	for i, ladderRole := range l {
		if ladderRole == "" {
			continue
		}
		for _, role := range m.RoleIDs {
			if role == ladderRole && Tier(i+1) > level {
				level = Tier(i + 1)
			}
		}
	}
	return level
}

// MemberSnapshot es una instantánea inmutable de un miembro en el momento de
// la evaluación. Authorize opera únicamente sobre estos datos, sin consultar
// Discord, para que la evaluación sea una función pura.
type MemberSnapshot struct {
	UserID            string
	RoleIDs           []string
	TopRolePosition   int
	IsOwner           bool
	CanManageMessages bool
}

// Decision es el resultado de una evaluación de permisos.
type Decision struct {
	Allowed bool
	Reason  string
}

// Authorize decide si el emisor puede ejecutar una acción de nivel mínimo
// min contra el objetivo:
//   - el dueño del servidor siempre puede (bypass);
//   - el nivel del emisor debe alcanzar el mínimo de la acción;
//   - si hay un objetivo resoluble, el rol más alto del emisor debe estar
//     estrictamente por encima del rol más alto del objetivo. Un objetivo que
//     ya no está en el servidor no tiene rango, así que esa comprobación se
//     omite (target == nil).
func Authorize(ladder Ladder, issuer *MemberSnapshot, target *MemberSnapshot, min Tier) Decision {
	if issuer == nil {
		return Decision{Reason: DenyNoIssuer}
	}
	if issuer.IsOwner {
		return Decision{Allowed: true}
	}
	if ladder.Level(*issuer) < min {
		return Decision{Reason: DenyInsufficientLevel}
	}
	if target != nil && issuer.TopRolePosition <= target.TopRolePosition {
		return Decision{Reason: DenyRoleHierarchy}
	}
	return Decision{Allowed: true}
}
