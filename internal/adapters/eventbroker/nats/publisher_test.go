package nats_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	natspub "media-vault/internal/adapters/eventbroker/nats"
	"media-vault/internal/config"
	"media-vault/internal/core/domain"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupNATSContainer(t *testing.T) (string, func()) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "nats:2.10-alpine",
		ExposedPorts: []string{"4222/tcp"},
		Cmd:          []string{"-js"},
		WaitingFor:   wait.ForLog("Server is ready"),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "4222")
	require.NoError(t, err)

	cleanup := func() {
		_ = container.Terminate(ctx)
	}

	return "nats://" + host + ":" + port.Port(), cleanup
}

func TestPublisher_PublishAssetStored(t *testing.T) {
	// Arrange
	natsURL, cleanup := setupNATSContainer(t)
	defer cleanup()
	ctx := context.Background()

	cfg := config.NATSConfig{
		URL:        natsURL,
		StreamName: "UPLOADS-TEST",
		Subject:    "uploads.asset.stored",
	}
	discardLogger := slog.New(slog.NewTextHandler(io.Discard, nil))

	publisher, err := natspub.NewPublisher(ctx, cfg, discardLogger)
	require.NoError(t, err)
	defer publisher.Close()

	nc, err := nats.Connect(natsURL)
	require.NoError(t, err)
	defer nc.Close()

	js, err := nc.JetStream()
	require.NoError(t, err)

	received := make(chan *nats.Msg, 1)
	sub, err := js.Subscribe(cfg.Subject, func(msg *nats.Msg) {
		received <- msg
	})
	require.NoError(t, err)
	defer sub.Unsubscribe()

	event := domain.AssetStoredEvent{
		AssetID:    uuid.New(),
		OwnerID:    uuid.New(),
		StorageKey: "public/avatar/owner/1-me.png",
		Category:   domain.CategoryAvatar,
		MimeType:   "image/png",
		SizeBytes:  2048,
		StoredAt:   time.Now(),
	}

	// Act
	err = publisher.PublishAssetStored(ctx, event)

	// Assert
	require.NoError(t, err)
	select {
	case msg := <-received:
		var got domain.AssetStoredEvent
		require.NoError(t, json.Unmarshal(msg.Data, &got))
		assert.Equal(t, event.AssetID, got.AssetID)
		assert.Equal(t, event.StorageKey, got.StorageKey)
		assert.Equal(t, event.SizeBytes, got.SizeBytes)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for published event")
	}
}

func TestNewPublisher_UnreachableServer(t *testing.T) {
	// Arrange
	cfg := config.NATSConfig{
		URL:        "nats://127.0.0.1:1",
		StreamName: "UPLOADS-TEST",
		Subject:    "uploads.asset.stored",
	}
	discardLogger := slog.New(slog.NewTextHandler(io.Discard, nil))

	// Act
	publisher, err := natspub.NewPublisher(context.Background(), cfg, discardLogger)

	// Assert
	require.Error(t, err)
	assert.Nil(t, publisher)
}
