package envelope_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stephanfeb/dactor/envelope"
)

type fakeRef struct{ name string }

func (f *fakeRef) Tell(any, envelope.Ref) error { return nil }
func (f *fakeRef) Name() string                 { return f.name }

func TestNewFillsCorrelationIDAndTimestamp(t *testing.T) {
	e := envelope.New("hello")
	require.NotEmpty(t, e.CorrelationID())
	assert.False(t, e.CreatedAt().IsZero())
	assert.Equal(t, "hello", e.Payload())
}

func TestCorrelationIDStableAcrossReads(t *testing.T) {
	e := envelope.New(42)
	id1 := e.CorrelationID()
	id2 := e.CorrelationID()
	assert.Equal(t, id1, id2)
}

func TestRewriteSenderPreservesCorrelationID(t *testing.T) {
	sender1 := &fakeRef{name: "sender-1"}
	sender2 := &fakeRef{name: "sender-2"}

	original := envelope.New("payload", envelope.WithSender(sender1))
	rewritten := original.RewriteSender(sender2)

	assert.Equal(t, original.CorrelationID(), rewritten.CorrelationID())
	assert.Equal(t, original.CreatedAt(), rewritten.CreatedAt())
	assert.Same(t, sender2, rewritten.Sender().(*fakeRef))
	assert.Same(t, sender1, original.Sender().(*fakeRef))
}

func TestFromPayloadPreservesExistingEnvelopeIdentity(t *testing.T) {
	sender1 := &fakeRef{name: "sender-1"}
	sender2 := &fakeRef{name: "sender-2"}

	wrapped := envelope.New("inner", envelope.WithSender(sender1))
	rewrapped := envelope.FromPayload(wrapped, sender2)

	assert.Equal(t, wrapped.CorrelationID(), rewrapped.CorrelationID())
	assert.Equal(t, "inner", rewrapped.Payload())
	assert.Same(t, sender2, rewrapped.Sender().(*fakeRef))
}

func TestFromPayloadWrapsRawMessage(t *testing.T) {
	sender := &fakeRef{name: "sender-1"}
	e := envelope.FromPayload("raw", sender)
	assert.Equal(t, "raw", e.Payload())
	assert.Same(t, sender, e.Sender().(*fakeRef))
	assert.NotEmpty(t, e.CorrelationID())
}

func TestWithMetadataCopiesDefensively(t *testing.T) {
	md := map[string]any{"k": "v"}
	e := envelope.New("x", envelope.WithMetadata(md))
	md["k"] = "mutated"
	assert.Equal(t, "v", e.Metadata()["k"])
}

func TestWithCorrelationIDAndCreatedAtOverride(t *testing.T) {
	ts := time.Unix(1000, 0)
	e := envelope.New("x", envelope.WithCorrelationID("fixed-id"), envelope.WithCreatedAt(ts))
	assert.Equal(t, "fixed-id", e.CorrelationID())
	assert.Equal(t, ts, e.CreatedAt())
}
