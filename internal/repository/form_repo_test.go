package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormRepo_GetByID_MalformedID(t *testing.T) {
	// Invalid hex never reaches the collection, so no connection is needed.
	repo := &formRepo{}

	form, err := repo.GetByID(context.Background(), "not-a-hex-object-id")

	require.NoError(t, err, "garbage ids are not found, not errors")
	assert.Nil(t, form)
}
