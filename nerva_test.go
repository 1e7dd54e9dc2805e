package nerva_test

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	nerva "github.com/nerva-project/go-nerva"
)

func TestNewPaymentID(t *testing.T) {
	id := nerva.NewPaymentID()
	assert.Len(t, id, 64)
	_, err := hex.DecodeString(id)
	require.NoError(t, err)

	assert.NotEqual(t, id, nerva.NewPaymentID())
}
