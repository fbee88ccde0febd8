package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"

	eventpkg "github.com/adopour/backend/internal/event"
)

func TestKafkaPublisherNeverConsumes(t *testing.T) {
	t.Setenv("KAFKA_TOPIC", "events")

	lifecycle := fxtest.NewLifecycle(t)
	publisher, err := newKafkaPublisher(lifecycle)
	require.NoError(t, err)

	_, consumes := any(publisher).(eventpkg.Consumer)
	assert.False(t, consumes)

	lifecycle.RequireStart().RequireStop()
}
