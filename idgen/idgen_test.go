package idgen_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/seb7887/gofw/fetchx/idgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUID(t *testing.T) {
	id := idgen.UUID()

	parsed, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(4), parsed.Version())
	assert.NotEqual(t, id, idgen.UUID())
}

func TestULID(t *testing.T) {
	id := idgen.ULID()

	_, err := ulid.ParseStrict(id)
	require.NoError(t, err)
	assert.Len(t, id, 26)
}

func TestSequence(t *testing.T) {
	next := idgen.Sequence("req-")

	assert.Equal(t, "req-1", next())
	assert.Equal(t, "req-2", next())
	assert.Equal(t, "req-3", next())
}
