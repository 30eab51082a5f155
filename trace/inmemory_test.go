package trace_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/stephanfeb/dactor/trace"
)

func TestInMemoryRecordsInOrder(t *testing.T) {
	buf := trace.NewInMemory(3)
	buf.Record(trace.Event{Name: trace.EventSent, CorrelationID: "1", Timestamp: time.Now()})
	buf.Record(trace.Event{Name: trace.EventProcessed, CorrelationID: "2", Timestamp: time.Now()})

	events := buf.Events()
	assert.Len(t, events, 2)
	assert.Equal(t, trace.EventSent, events[0].Name)
	assert.Equal(t, trace.EventProcessed, events[1].Name)
	assert.Equal(t, int64(0), buf.Dropped())
}

func TestInMemoryEvictsOldestOnOverflow(t *testing.T) {
	buf := trace.NewInMemory(2)
	buf.Record(trace.Event{CorrelationID: "1"})
	buf.Record(trace.Event{CorrelationID: "2"})
	buf.Record(trace.Event{CorrelationID: "3"})

	events := buf.Events()
	assert.Len(t, events, 2)
	assert.Equal(t, "2", events[0].CorrelationID)
	assert.Equal(t, "3", events[1].CorrelationID)
	assert.Equal(t, int64(1), buf.Dropped())
}

func TestNewInMemoryClampsNonPositiveCapacity(t *testing.T) {
	buf := trace.NewInMemory(0)
	buf.Record(trace.Event{CorrelationID: "1"})
	buf.Record(trace.Event{CorrelationID: "2"})
	assert.Len(t, buf.Events(), 1)
	assert.Equal(t, "2", buf.Events()[0].CorrelationID)
}
