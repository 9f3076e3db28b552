package metrics_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/vireline/mailbox/metrics"
)

func TestNewCreatesAllInstruments(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	rec, err := metrics.New(meter, "tid-1")
	require.NoError(t, err)
	assert.NotNil(t, rec)
}

func TestRegisterCallbackSucceeds(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	rec, err := metrics.New(meter, "tid-1")
	require.NoError(t, err)

	err = rec.RegisterCallback(func() int { return 3 })
	assert.NoError(t, err)
}

func TestRecordDeliveryDoesNotPanic(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	rec, err := metrics.New(meter, "tid-1")
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		rec.RecordDelivery(context.Background(), 5*time.Millisecond)
	})
}
