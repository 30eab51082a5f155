package mailbox_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stephanfeb/dactor/envelope"
	"github.com/stephanfeb/dactor/mailbox"
)

func TestBoundedFIFOOrdering(t *testing.T) {
	m := mailbox.NewBounded(4)
	for i := 0; i < 3; i++ {
		require.NoError(t, m.Enqueue(envelope.New(i)))
	}
	for i := 0; i < 3; i++ {
		e := m.Dequeue()
		require.NotNil(t, e)
		assert.Equal(t, i, e.Payload())
	}
	assert.True(t, m.IsEmpty())
}

func TestBoundedReturnsErrorWhenFull(t *testing.T) {
	m := mailbox.NewBounded(2)
	require.NoError(t, m.Enqueue(envelope.New(1)))
	require.NoError(t, m.Enqueue(envelope.New(2)))

	err := m.Enqueue(envelope.New(3))
	assert.Error(t, err)
	assert.Equal(t, int64(2), m.Len())
}

func TestBoundedDisposeRejectsEnqueue(t *testing.T) {
	m := mailbox.NewBounded(2)
	m.Dispose()
	err := m.Enqueue(envelope.New("x"))
	assert.Error(t, err)
}
