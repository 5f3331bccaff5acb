package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// PickWinners draws min(count, len(pool)) distinct members uniformly at random
// without replacement. The input slice is not mutated, so repeated draws from
// the same pool are independent. An empty pool yields an empty selection.
func PickWinners(pool []int64, count int) ([]int64, error) {
	if count < 0 {
		count = 0
	}
	if count > len(pool) {
		count = len(pool)
	}
	if count == 0 {
		return []int64{}, nil
	}

	candidates := make([]int64, len(pool))
	copy(candidates, pool)

	// Partial Fisher-Yates: only the first count positions need shuffling.
	for i := 0; i < count; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(candidates)-i)))
		if err != nil {
			return nil, fmt.Errorf("random generation failed: %w", err)
		}
		j := i + int(n.Int64())
		candidates[i], candidates[j] = candidates[j], candidates[i]
	}

	return candidates[:count], nil
}
