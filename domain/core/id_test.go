package core

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIDIsUniqueAndParseable(t *testing.T) {
	first := NewID()
	second := NewID()

	assert.NotEqual(t, first, second)
	assert.False(t, first.IsEmpty())

	_, err := uuid.Parse(first.String())
	require.NoError(t, err)
}

func TestDomainIDConversions(t *testing.T) {
	id := NewID()

	session := SessionID(id)
	report := ReportID(id)

	assert.Equal(t, id.String(), session.String())
	assert.Equal(t, id.String(), report.String())
	assert.True(t, ID("").IsEmpty())
}
