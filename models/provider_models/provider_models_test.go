package provider_models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProviderSetsOwner(t *testing.T) {
	ownerID := uuid.New()
	provider, err := NewProvider(ownerID, "Altai Tours", "ops@altai.example", "+976 1234")
	require.NoError(t, err)

	assert.Equal(t, ownerID, provider.OwnerUserID)
	assert.Equal(t, "Altai Tours", provider.Name)
	assert.NotEqual(t, uuid.Nil, provider.ID)
}

func TestIsOwnedBy(t *testing.T) {
	ownerID := uuid.New()
	provider, err := NewProvider(ownerID, "Altai Tours", "", "")
	require.NoError(t, err)

	assert.True(t, provider.IsOwnedBy(ownerID))
	assert.False(t, provider.IsOwnedBy(uuid.New()))
	assert.False(t, provider.IsOwnedBy(uuid.Nil))
}
