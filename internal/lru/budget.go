package lru

import "github.com/pbnjay/memory"

const (
	MinBudget uint64 = 1 << 20
	MaxBudget uint64 = 64 << 20
)

// Budget returns configured when it is set. Otherwise it takes 1/1024 of the
// system memory, kept within [MinBudget, MaxBudget].
func Budget(configured uint64) uint64 {
	if configured > 0 {
		return configured
	}

	return clampBudget(memory.TotalMemory() / 1024)
}

func clampBudget(b uint64) uint64 {
	if b < MinBudget {
		return MinBudget
	}
	if b > MaxBudget {
		return MaxBudget
	}
	return b
}
