package ident_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/mononote/internal/ident"
)

func TestUUID_NewID(t *testing.T) {
	g := ident.NewUUID()

	id := g.NewID()
	_, err := uuid.Parse(id)
	require.NoError(t, err)
}

func TestUUID_Unique(t *testing.T) {
	g := ident.NewUUID()

	seen := make(map[string]bool)
	for range 1000 {
		id := g.NewID()
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestFunc(t *testing.T) {
	g := ident.Func(func() string { return "fixed" })
	assert.Equal(t, "fixed", g.NewID())
}
