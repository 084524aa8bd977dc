package pagination_test

import (
	"testing"
	"time"

	"github.com/ldmoraes/contas_app/internal/utils/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	dueDate := time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC)
	id := "b7a9f3e2-0c4d-4b1a-9f3e-2c4d5b1a9f3e"

	token := pagination.EncodeToken(dueDate, id)
	gotDate, gotID, err := pagination.DecodeToken(token)

	require.NoError(t, err)
	assert.True(t, dueDate.Equal(gotDate))
	assert.Equal(t, id, gotID)
}

func TestDecodeTokenInvalid(t *testing.T) {
	_, _, err := pagination.DecodeToken("not-base64!!!")
	assert.Error(t, err)

	// Valid base64 but missing the separator.
	_, _, err = pagination.DecodeToken("aGVsbG8=")
	assert.Error(t, err)
}
