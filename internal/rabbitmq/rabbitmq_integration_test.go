package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/chops-club/membership-dashboard/internal/models"
)

func setupRabbitMQContainer(ctx context.Context, t *testing.T) (testcontainers.Container, func()) {
	req := testcontainers.ContainerRequest{
		Image:        "rabbitmq:3-management",
		ExposedPorts: []string{"5672/tcp"},
		Env: map[string]string{
			"RABBITMQ_DEFAULT_USER":   "guest",
			"RABBITMQ_DEFAULT_PASS":   "guest",
			"RABBITMQ_DEFAULT_VHOST":  "/",
			"RABBITMQ_LOOPBACK_USERS": "",
		},
		WaitingFor: wait.ForListeningPort("5672/tcp").
			WithStartupTimeout(2 * time.Minute),
	}

	rmqContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	cleanup := func() {
		if err := rmqContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate rabbitmq container: %v", err)
		}
	}
	return rmqContainer, cleanup
}

func amqpURI(ctx context.Context, t *testing.T) (string, func()) {
	if testURL := os.Getenv("TEST_RABBITMQ_URL"); testURL != "" {
		return testURL, func() {}
	}

	container, cleanup := setupRabbitMQContainer(ctx, t)
	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5672/tcp")
	require.NoError(t, err)

	return fmt.Sprintf("amqp://guest:guest@%s:%s/", host, port.Port()), cleanup
}

func TestAuditBus_PublishAndConsume(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test, skipped in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	uri, cleanup := amqpURI(ctx, t)
	defer cleanup()

	conn, err := Connect(uri, 3, time.Second)
	require.NoError(t, err)
	defer func() {
		if err := conn.Close(); err != nil {
			t.Errorf("failed to close connection: %v", err)
		}
	}()

	ch, err := SetupChannel(conn)
	require.NoError(t, err)
	defer func() {
		if err := ch.Close(); err != nil {
			t.Errorf("failed to close channel: %v", err)
		}
	}()

	received := make(chan models.AuditEvent, 1)
	err = ConsumerMessage(ctx, ch, AuditQueue, func(body []byte) error {
		var event models.AuditEvent
		if err := json.Unmarshal(body, &event); err != nil {
			return err
		}
		received <- event
		return nil
	})
	require.NoError(t, err)

	sent := models.AuditEvent{
		ID:         "evt-1",
		Action:     models.AuditActionMarkPaid,
		TargetID:   "pur-1",
		AdminUID:   "admin-1",
		OccurredAt: time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, NewPublisher(ch).Publish(AuditRoutingKey, sent))

	select {
	case got := <-received:
		assert.Equal(t, sent, got)
	case <-time.After(15 * time.Second):
		t.Fatal("audit event was not delivered")
	}
}
