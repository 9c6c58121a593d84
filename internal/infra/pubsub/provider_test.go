package pubsub

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"medico/config"
	"medico/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPublisher(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name    string
		cfg     *config.PubSubConfig
		wantErr bool
		check   func(t *testing.T, p service.EventPublisher)
	}{
		{
			name:  "missing section falls back to no-op",
			cfg:   nil,
			check: func(t *testing.T, p service.EventPublisher) { assert.IsType(t, &noopPublisher{}, p) },
		},
		{
			name:  "none",
			cfg:   &config.PubSubConfig{Provider: ProviderNone},
			check: func(t *testing.T, p service.EventPublisher) { assert.IsType(t, &noopPublisher{}, p) },
		},
		{
			name:  "local",
			cfg:   &config.PubSubConfig{Provider: ProviderLocal, LocalEndpoint: "http://localhost:8090/events"},
			check: func(t *testing.T, p service.EventPublisher) { assert.IsType(t, &localHTTPPublisher{}, p) },
		},
		{name: "local without endpoint", cfg: &config.PubSubConfig{Provider: ProviderLocal}, wantErr: true},
		{name: "google without topic", cfg: &config.PubSubConfig{Provider: ProviderGoogle, ProjectID: "medico"}, wantErr: true},
		{name: "unknown provider", cfg: &config.PubSubConfig{Provider: "kafka"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			publisher, err := newPublisher(context.Background(), tt.cfg, logger)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}
			require.NoError(t, err)
			tt.check(t, publisher)
			assert.NoError(t, publisher.Close())
		})
	}
}

func TestNoopPublisher_DropsEvents(t *testing.T) {
	p := &noopPublisher{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

	err := p.PublishOrderEvent(context.Background(), &service.OrderEvent{Type: service.EventOrderCreated, OrderID: 1})

	assert.NoError(t, err)
}
