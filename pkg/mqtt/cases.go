package mqtt

import (
	"fmt"

	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/PancyStudios/PancyGuardGo/pkg/models"
)

// PublishCase publishes an opened moderation case so external tooling
// (dashboards, audit collectors) can consume it. Best-effort: a broker
// outage never blocks moderation.
func (mc *MqttCommunicator) PublishCase(environment string, c models.Case) {
	if !mc.IsConnected() {
		return
	}

	topic := fmt.Sprintf("pancyguard/%s/cases", environment)
	if err := mc.Publish(topic, c); err != nil {
		logger.Warn(fmt.Sprintf("No se pudo publicar el caso %d en MQTT: %v", c.ID, err), "MQTT")
	}
}
