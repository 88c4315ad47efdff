package anchor

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chain-labs/simplr-events-server-v2/pkg/crypto"
)

func Test_EncodeLeaf(t *testing.T) {
	leaf, err := EncodeLeaf("ada@example.com", "Lovelace", "Ada", 7, "devcon-2026")
	require.NoError(t, err)

	expected := crypto.Keccak256([]byte("ada@example.com-Lovelace-Ada-7-devcon-2026"))
	require.Equal(t, expected, leaf)

	// Same identity, same hash.
	again, err := EncodeLeaf("ada@example.com", "Lovelace", "Ada", 7, "devcon-2026")
	require.NoError(t, err)
	require.Equal(t, leaf, again)

	// Any changed field gives another hash.
	other, err := EncodeLeaf("ada@example.com", "Lovelace", "Ada", 8, "devcon-2026")
	require.NoError(t, err)
	require.NotEqual(t, leaf, other)

	other, err = EncodeLeaf("ada@example.com", "Lovelace", "Ada", 7, "another-event")
	require.NoError(t, err)
	require.NotEqual(t, leaf, other)
}

func Test_EncodeLeaf_invalidInput(t *testing.T) {
	_, err := EncodeLeaf("", "Lovelace", "Ada", 1, "devcon-2026")
	require.ErrorIs(t, err, ErrEmptyField)

	_, err = EncodeLeaf("ada@example.com", "", "Ada", 1, "devcon-2026")
	require.ErrorIs(t, err, ErrEmptyField)

	_, err = EncodeLeaf("ada@example.com", "Lovelace", "", 1, "devcon-2026")
	require.ErrorIs(t, err, ErrEmptyField)

	_, err = EncodeLeaf("ada@example.com", "Lovelace", "Ada", 1, "")
	require.ErrorIs(t, err, ErrEmptyField)

	_, err = EncodeLeaf("ada@example.com", "Lovelace", "Ada", -1, "devcon-2026")
	require.Error(t, err)
}

func Test_EncodeLeaves_preservesOrder(t *testing.T) {
	inputs := []LeafInput{
		{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", EventName: "devcon-2026"},
		{FirstName: "Grace", LastName: "Hopper", Email: "grace@example.com", EventName: "devcon-2026"},
		{FirstName: "Edsger", LastName: "Dijkstra", Email: "edsger@example.com", EventName: "devcon-2026"},
	}

	leaves, err := EncodeLeaves(inputs, 3)
	require.NoError(t, err)
	require.Len(t, leaves, 3)

	for i, input := range inputs {
		expected, err := EncodeLeaf(input.Email, input.LastName, input.FirstName, 3, input.EventName)
		require.NoError(t, err)
		require.Equal(t, expected, leaves[i])
	}
}
