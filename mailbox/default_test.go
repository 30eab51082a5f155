package mailbox_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stephanfeb/dactor/envelope"
	"github.com/stephanfeb/dactor/mailbox"
)

func TestDefaultFIFOOrdering(t *testing.T) {
	m := mailbox.NewDefault()
	for i := 0; i < 5; i++ {
		require.NoError(t, m.Enqueue(envelope.New(i)))
	}
	for i := 0; i < 5; i++ {
		e := m.Dequeue()
		require.NotNil(t, e)
		assert.Equal(t, i, e.Payload())
	}
	assert.True(t, m.IsEmpty())
	assert.Nil(t, m.Dequeue())
}

func TestDefaultIsEmptyAndLen(t *testing.T) {
	m := mailbox.NewDefault()
	assert.True(t, m.IsEmpty())
	assert.Equal(t, int64(0), m.Len())

	require.NoError(t, m.Enqueue(envelope.New("a")))
	assert.False(t, m.IsEmpty())
	assert.Equal(t, int64(1), m.Len())
}

func TestDefaultConcurrentProducers(t *testing.T) {
	m := mailbox.NewDefault()
	const producers = 20
	const perProducer = 50

	var wg sync.WaitGroup
	wg.Add(producers)
	for p := 0; p < producers; p++ {
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				_ = m.Enqueue(envelope.New(i))
			}
		}()
	}
	wg.Wait()

	count := 0
	for m.Dequeue() != nil {
		count++
	}
	assert.Equal(t, producers*perProducer, count)
}

func TestDefaultDisposeRejectsEnqueue(t *testing.T) {
	m := mailbox.NewDefault()
	m.Dispose()
	err := m.Enqueue(envelope.New("x"))
	assert.Error(t, err)
}

func TestDefaultDisposeDiscardsPendingOnDequeue(t *testing.T) {
	m := mailbox.NewDefault()
	require.NoError(t, m.Enqueue(envelope.New("a")))
	require.NoError(t, m.Enqueue(envelope.New("b")))

	m.Dispose()

	assert.Nil(t, m.Dequeue())
}
