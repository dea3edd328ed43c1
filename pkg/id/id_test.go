package id

import (
	"testing"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
)

func TestTraceIDFrom(t *testing.T) {
	a := TraceIDFrom("deposit", "alice", "1")
	b := TraceIDFrom("deposit", "alice", "1")
	c := TraceIDFrom("deposit", "alice", "2")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)

	u, err := uuid.FromString(a)
	assert.NoError(t, err)
	assert.Equal(t, byte(3), u.Version())
}

func TestGenTraceID(t *testing.T) {
	assert.NotEqual(t, GenTraceID(), GenTraceID())

	u, err := uuid.FromString(GenTraceID())
	assert.NoError(t, err)
	assert.Equal(t, byte(4), u.Version())
}
