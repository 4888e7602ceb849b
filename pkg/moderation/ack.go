package moderation

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/models"
)

// ackCustomIDPrefix identifica los botones de confirmación en los custom ids
// de los componentes de Discord.
const ackCustomIDPrefix = "modack"

// AckCustomID codifica el id de caso y si la confirmación levanta la
// restricción, para que el workflow pueda reconstruirse desde el componente.
func AckCustomID(caseID int, releases bool) string {
	flag := "0"
	if releases {
		flag = "1"
	}
	return fmt.Sprintf("%s:%d:%s", ackCustomIDPrefix, caseID, flag)
}

// ParseAckCustomID deshace AckCustomID. ok es false si el custom id no es de
// un botón de confirmación.
func ParseAckCustomID(customID string) (caseID int, releases bool, ok bool) {
	parts := strings.Split(customID, ":")
	if len(parts) != 3 || parts[0] != ackCustomIDPrefix {
		return 0, false, false
	}
	id, err := strconv.Atoi(parts[1])
	if err != nil || id < 1 {
		return 0, false, false
	}
	return id, parts[2] == "1", true
}

// Workflow es una confirmación pendiente: un canal privado con un botón que
// solo el usuario sancionado puede pulsar. No se persiste; vive en memoria
// hasta que el usuario confirma (o hasta que expira, si hay expiración
// configurada).
type Workflow struct {
	CaseID              int
	TargetID            string
	Action              models.CaseAction
	ReleasesRestriction bool
	ChannelID           string
	CreatedAt           time.Time
}

// AckManager mantiene las confirmaciones abiertas, indexadas por caso.
type AckManager struct {
	mu       sync.Mutex
	open     map[int]*Workflow
	maxAge   time.Duration // 0 = las confirmaciones no expiran nunca
	onExpire func(Workflow)
	stop     chan struct{}
	stopOnce sync.Once
}

// NewAckManager crea el gestor. maxAge 0 desactiva la expiración.
func NewAckManager(maxAge time.Duration) *AckManager {
	return &AckManager{
		open:   make(map[int]*Workflow),
		maxAge: maxAge,
		stop:   make(chan struct{}),
	}
}

// Open registra una confirmación pendiente para un caso.
func (m *AckManager) Open(w Workflow) {
	if w.CreatedAt.IsZero() {
		w.CreatedAt = time.Now()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.open[w.CaseID] = &w
}

// SetChannel asocia el canal interactivo una vez creado.
func (m *AckManager) SetChannel(caseID int, channelID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if w, ok := m.open[caseID]; ok {
		w.ChannelID = channelID
	}
}

// Get devuelve la confirmación pendiente del caso, si existe.
func (m *AckManager) Get(caseID int) (Workflow, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.open[caseID]
	if !ok {
		return Workflow{}, false
	}
	return *w, true
}

// OpenCount devuelve cuántas confirmaciones siguen pendientes.
func (m *AckManager) OpenCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.open)
}

// Resolve pasa la confirmación a resuelta. Solo el usuario sancionado puede
// resolverla; cualquier otro actor recibe ErrWorkflowAccessDenied sin cambio
// de estado. Resolver dos veces devuelve ErrWorkflowNotFound: un caso nunca
// genera dos confirmaciones.
func (m *AckManager) Resolve(caseID int, actorID string) (Workflow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.open[caseID]
	if !ok {
		return Workflow{}, ErrWorkflowNotFound
	}
	if w.TargetID != actorID {
		return Workflow{}, ErrWorkflowAccessDenied
	}

	delete(m.open, caseID)
	return *w, nil
}

// OnExpire registra el hook llamado por el barrido de expiración.
func (m *AckManager) OnExpire(fn func(Workflow)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onExpire = fn
}

// StartExpirySweep arranca el barrido periódico de confirmaciones caducadas.
// Sin maxAge configurado no hace nada: por defecto una sanción espera su
// confirmación indefinidamente.
func (m *AckManager) StartExpirySweep(interval time.Duration) {
	if m.maxAge <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m.expireStale(time.Now())
			case <-m.stop:
				return
			}
		}
	}()
}

// Stop detiene el barrido de expiración.
func (m *AckManager) Stop() {
	m.stopOnce.Do(func() { close(m.stop) })
}

// expireStale retira las confirmaciones más viejas que maxAge y notifica el
// hook por cada una.
func (m *AckManager) expireStale(now time.Time) []Workflow {
	m.mu.Lock()
	var expired []Workflow
	for id, w := range m.open {
		if now.Sub(w.CreatedAt) > m.maxAge {
			expired = append(expired, *w)
			delete(m.open, id)
		}
	}
	fn := m.onExpire
	m.mu.Unlock()

	if fn != nil {
		for _, w := range expired {
			fn(w)
		}
	}
	return expired
}
