package rabbitmq

import (
	"fmt"

	"github.com/streadway/amqp"
)

// Топология шины аудита: обменник направляет события административных
// действий в очередь журнала.
const (
	AuditExchange   = "audit"
	AuditQueue      = "audit.actions"
	AuditRoutingKey = "admin.action"
)

// SetupChannel открывает канал и объявляет топологию шины аудита.
func SetupChannel(conn *amqp.Connection) (*amqp.Channel, error) {
	const op = "rabbitmq.SetupChannel"

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := ch.Qos(10, 0, false); err != nil {
		return nil, fmt.Errorf("failed to set QoS: %w", err)
	}

	err = ch.ExchangeDeclare(
		AuditExchange,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	_, err = ch.QueueDeclare(
		AuditQueue,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to declare queue %s: %w", op, AuditQueue, err)
	}

	err = ch.QueueBind(AuditQueue, AuditRoutingKey, AuditExchange, false, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to bind queue %s: %w", op, AuditQueue, err)
	}

	return ch, nil
}
