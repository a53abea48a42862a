package scarlett

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Testable invariant 1: sequence numbers start at 1 and increment
// monotonically across exchanges within a session.
func TestSequenceStartsAtOneAndIncrements(t *testing.T) {
	ft := newFakeTransport()
	ft.on(opGetSync, func(req []byte) ([]byte, uint32) {
		return []byte{1, 0, 0, 0}, 0
	})
	c := newWireCodec(ft)

	resp := make([]byte, 4)
	require.NoError(t, c.exchange(opGetSync, nil, resp))
	assert.Equal(t, uint16(1), ft.lastSeq)

	require.NoError(t, c.exchange(opGetSync, nil, resp))
	assert.Equal(t, uint16(2), ft.lastSeq)

	require.NoError(t, c.exchange(opGetSync, nil, resp))
	assert.Equal(t, uint16(3), ft.lastSeq)
}

// Testable invariant 1 (continued): a response carrying seq=0 is only
// accepted in reply to the session's first request (seq=1); at any
// later point it is a protocol error.
func TestSeqZeroOnlyLegalForFirstExchange(t *testing.T) {
	ft := newFakeTransport()
	ft.on(opGetSync, func(req []byte) ([]byte, uint32) { return []byte{0, 0, 0, 0}, 0 })
	zero := uint16(0)
	ft.forceSeq = &zero

	c := newWireCodec(ft)
	resp := make([]byte, 4)
	assert.NoError(t, c.exchange(opGetSync, nil, resp), "first exchange may echo seq=0")
	assert.Error(t, c.exchange(opGetSync, nil, resp), "later exchange must not accept seq=0")
}

func TestExchangeRejectsCommandMismatch(t *testing.T) {
	ft := newFakeTransport()
	ft.on(opGetSync, func(req []byte) ([]byte, uint32) { return []byte{0, 0, 0, 0}, 0 })
	wrong := opGetMeter
	ft.forceCmd = &wrong

	c := newWireCodec(ft)
	resp := make([]byte, 4)
	err := c.exchange(opGetSync, nil, resp)
	require.Error(t, err)
	se, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, Protocol, se.Kind)
}

func TestExchangeRejectsNonzeroErrorField(t *testing.T) {
	ft := newFakeTransport()
	ft.on(opGetSync, func(req []byte) ([]byte, uint32) { return []byte{0, 0, 0, 0}, 7 })

	c := newWireCodec(ft)
	resp := make([]byte, 4)
	err := c.exchange(opGetSync, nil, resp)
	require.Error(t, err)
	assert.Equal(t, Protocol, err.(*Error).Kind)
}

func TestInitHandshakeResetsSeqEachStep(t *testing.T) {
	ft := newFakeTransport()
	ft.on(opInit1, func(req []byte) ([]byte, uint32) { return nil, 0 })
	ft.on(opInit2, func(req []byte) ([]byte, uint32) { return make([]byte, 84), 0 })

	c := newWireCodec(ft)
	require.NoError(t, c.initHandshake())
	// After two resets-then-single-exchange steps, the codec's running
	// counter sits at 2 (each step reset to 1 then consumed it).
	assert.Equal(t, uint16(2), c.seq)
}
