package merkle

import (
	"bytes"
	"errors"
	"fmt"
	"sort"

	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

var ErrNoLeaves = errors.New("cannot build a merkle tree without leaves")

// Tree is a binary keccak256 merkle tree. Leaves are sorted bytewise before
// the tree is built and sibling pairs are sorted again before hashing, so
// the root depends on the leaf multiset rather than on the insertion order.
// A level with an odd number of nodes carries its last node up unhashed.
// All three rules must match the on-chain verifier.
type Tree struct {
	levels [][]common.Hash

	// positions maps the caller's leaf index to the leaf's slot in the
	// sorted base level.
	positions []int
}

func NewTree(leaves []common.Hash) (*Tree, error) {
	if len(leaves) == 0 {
		return nil, ErrNoLeaves
	}

	order := make([]int, len(leaves))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return bytes.Compare(leaves[order[i]][:], leaves[order[j]][:]) < 0
	})

	base := make([]common.Hash, len(leaves))
	positions := make([]int, len(leaves))
	for slot, origin := range order {
		base[slot] = leaves[origin]
		positions[origin] = slot
	}

	levels := [][]common.Hash{base}
	for current := base; len(current) > 1; {
		next := make([]common.Hash, 0, (len(current)+1)/2)
		for i := 0; i < len(current); i += 2 {
			if i+1 == len(current) {
				next = append(next, current[i])
				break
			}

			next = append(next, hashPair(current[i], current[i+1]))
		}

		levels = append(levels, next)
		current = next
	}

	return &Tree{levels: levels, positions: positions}, nil
}

// Root returns the commitment over all leaves. A single-leaf tree returns the
// leaf itself.
func (t *Tree) Root() common.Hash {
	top := t.levels[len(t.levels)-1]
	return top[0]
}

// Proof returns the sibling path for the leaf at the given index of the
// original leaf slice. Together with Verify it re-derives the root without
// the other leaves.
func (t *Tree) Proof(index int) ([]common.Hash, error) {
	if index < 0 || index >= len(t.positions) {
		return nil, fmt.Errorf("leaf index %d out of range", index)
	}

	slot := t.positions[index]
	var proof []common.Hash
	for _, level := range t.levels[:len(t.levels)-1] {
		sibling := slot ^ 1
		if sibling < len(level) {
			proof = append(proof, level[sibling])
		}

		slot /= 2
	}

	return proof, nil
}

func Verify(root, leaf common.Hash, proof []common.Hash) bool {
	computed := leaf
	for _, sibling := range proof {
		computed = hashPair(computed, sibling)
	}

	return computed == root
}

func hashPair(a, b common.Hash) common.Hash {
	if bytes.Compare(a[:], b[:]) > 0 {
		a, b = b, a
	}

	return common.BytesToHash(ethcrypto.Keccak256(a[:], b[:]))
}
