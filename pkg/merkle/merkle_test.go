package merkle

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
)

func sampleLeaves(n int) []common.Hash {
	leaves := make([]common.Hash, n)
	for i := range leaves {
		leaves[i] = common.BytesToHash(ethcrypto.Keccak256([]byte(fmt.Sprintf("leaf-%d", i))))
	}

	return leaves
}

func TestNewTreeEmpty(t *testing.T) {
	_, err := NewTree(nil)
	require.ErrorIs(t, err, ErrNoLeaves)
}

func TestSingleLeafRootIsLeaf(t *testing.T) {
	leaves := sampleLeaves(1)
	tree, err := NewTree(leaves)
	require.NoError(t, err)
	require.Equal(t, leaves[0], tree.Root())
}

func TestTwoLeavesRootIsSortedPairHash(t *testing.T) {
	leaves := sampleLeaves(2)
	tree, err := NewTree(leaves)
	require.NoError(t, err)

	reversed, err := NewTree([]common.Hash{leaves[1], leaves[0]})
	require.NoError(t, err)
	require.Equal(t, tree.Root(), reversed.Root())
}

func TestRootInvariantUnderShuffle(t *testing.T) {
	for _, n := range []int{2, 3, 5, 8, 13, 100} {
		leaves := sampleLeaves(n)
		tree, err := NewTree(leaves)
		require.NoError(t, err)
		want := tree.Root()

		rng := rand.New(rand.NewSource(int64(n)))
		for trial := 0; trial < 10; trial++ {
			shuffled := append([]common.Hash{}, leaves...)
			rng.Shuffle(len(shuffled), func(i, j int) {
				shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
			})

			shuffledTree, err := NewTree(shuffled)
			require.NoError(t, err)
			require.Equal(t, want, shuffledTree.Root(), "n=%d trial=%d", n, trial)
		}
	}
}

func TestRootChangesWithLeafSet(t *testing.T) {
	leaves := sampleLeaves(4)
	tree, err := NewTree(leaves)
	require.NoError(t, err)

	mutated := append([]common.Hash{}, leaves...)
	mutated[2] = common.BytesToHash(ethcrypto.Keccak256([]byte("other")))
	mutatedTree, err := NewTree(mutated)
	require.NoError(t, err)

	require.NotEqual(t, tree.Root(), mutatedTree.Root())
}

func TestProofVerifies(t *testing.T) {
	for _, n := range []int{1, 2, 3, 4, 5, 7, 16, 33} {
		leaves := sampleLeaves(n)
		tree, err := NewTree(leaves)
		require.NoError(t, err)

		for i, leaf := range leaves {
			proof, err := tree.Proof(i)
			require.NoError(t, err)
			require.True(t, Verify(tree.Root(), leaf, proof), "n=%d leaf=%d", n, i)
		}

		// A proof must not verify a leaf outside the set.
		outsider := common.BytesToHash(ethcrypto.Keccak256([]byte("outsider")))
		proof, err := tree.Proof(0)
		require.NoError(t, err)
		if n > 1 {
			require.False(t, Verify(tree.Root(), outsider, proof))
		}
	}
}

func TestProofIndexOutOfRange(t *testing.T) {
	tree, err := NewTree(sampleLeaves(3))
	require.NoError(t, err)

	_, err = tree.Proof(-1)
	require.Error(t, err)
	_, err = tree.Proof(3)
	require.Error(t, err)
}
