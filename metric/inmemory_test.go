package metric_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/stephanfeb/dactor/metric"
)

func TestInMemorySink(t *testing.T) {
	sink := metric.NewInMemory()

	sink.Increment(metric.ActorsSpawned, 1, nil)
	sink.Increment(metric.ActorsSpawned, 2, nil)
	assert.Equal(t, int64(3), sink.Counter(metric.ActorsSpawned))

	sink.Decrement(metric.ActorsActive, 1, nil)
	assert.Equal(t, int64(-1), sink.Counter(metric.ActorsActive))

	sink.Gauge(metric.MailboxSize, 5, metric.Tags{"actorId": "a1"})
	assert.Equal(t, float64(5), sink.GaugeValue(metric.MailboxSize))

	sink.Timing(metric.MessagesProcessingTime, 10*time.Millisecond, nil)
	sink.Timing(metric.MessagesProcessingTime, 20*time.Millisecond, nil)
	assert.Len(t, sink.Timings(metric.MessagesProcessingTime), 2)
}

func TestInMemoryIncrementDefaultsToOne(t *testing.T) {
	sink := metric.NewInMemory()
	sink.Increment(metric.DeadLetters, 0, nil)
	assert.Equal(t, int64(1), sink.Counter(metric.DeadLetters))
}
