package domain

import (
	"log/slog"

	"github.com/google/uuid"
)

// MaxSubsetIterations is the hard enumeration cap: callers must treat "cap
// exceeded" as "no subset found" (§4.7, §5).
const MaxSubsetIterations = 10000

// ForEachSubset lexicographically enumerates k-subsets of resources,
// preserving input order, invoking callback on each and stopping at the
// first true. If C(n,k) exceeds maxIterations it refuses to enumerate,
// logs, and returns (nil, false): a hard correctness boundary, not an
// optimization. Returns the winning subset and whether one was found.
func ForEachSubset(resources []uuid.UUID, k int, maxIterations int, logger *slog.Logger, callback func([]uuid.UUID) (bool, error)) ([]uuid.UUID, bool, error) {
	if logger == nil {
		logger = slog.Default()
	}
	n := len(resources)
	if k <= 0 || k > n {
		return nil, false, nil
	}

	combos := binomial(n, k)
	if combos > maxIterations {
		logger.Warn("subset enumeration cap exceeded",
			"resources", n, "k", k, "combinations", combos, "cap", maxIterations,
		)
		return nil, false, nil
	}

	indices := make([]int, k)
	for i := range indices {
		indices[i] = i
	}

	for {
		subset := make([]uuid.UUID, k)
		for i, idx := range indices {
			subset[i] = resources[idx]
		}
		ok, err := callback(subset)
		if err != nil {
			return nil, false, err
		}
		if ok {
			return subset, true, nil
		}
		if !nextCombination(indices, n) {
			return nil, false, nil
		}
	}
}

// nextCombination advances indices to the next lexicographic k-combination
// of [0,n), returning false when the combinations are exhausted.
func nextCombination(indices []int, n int) bool {
	k := len(indices)
	i := k - 1
	for i >= 0 && indices[i] == n-k+i {
		i--
	}
	if i < 0 {
		return false
	}
	indices[i]++
	for j := i + 1; j < k; j++ {
		indices[j] = indices[j-1] + 1
	}
	return true
}

// binomial computes C(n,k) with overflow saturating to MaxInt so callers
// comparing against a cap never wrap around.
func binomial(n, k int) int {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	result := 1
	for i := 0; i < k; i++ {
		result = result * (n - i) / (i + 1)
		if result < 0 {
			return int(^uint(0) >> 1)
		}
	}
	return result
}

// FindFirstEligibleSubsetForHours is the hours-window caller: it requires
// the subset's execution-window overlap percentage (§4.8) to meet
// requiredOverlap, and, when buffer is present, additionally requires every
// subset member to have no personal-range overlap with the buffer interval.
func FindFirstEligibleSubsetForHours(
	resources []uuid.UUID,
	minResources int,
	requiredOverlap int,
	perResource PerResourceBlocks,
	executionWindow Range,
	bufferWindow *Range,
	availability CompanyAvailability,
	zone string,
	logger *slog.Logger,
) ([]uuid.UUID, bool, error) {
	return ForEachSubset(resources, minResources, MaxSubsetIterations, logger, func(subset []uuid.UUID) (bool, error) {
		result, err := HoursOverlap(perResource, subset, executionWindow, availability, zone)
		if err != nil {
			return false, err
		}
		if result.OverlapPercentage < float64(requiredOverlap) {
			return false, nil
		}
		if bufferWindow != nil {
			for _, id := range subset {
				set := perResource[id]
				if AnyOverlaps(set.PlainRanges(), *bufferWindow) {
					return false, nil
				}
			}
		}
		return true, nil
	})
}

// FindFirstEligibleSubsetForDays is the days-window caller: it computes
// days overlap with maxThroughputDays = 2*executionDays, requires
// canComplete && overlap >= requiredOverlap, and returns the first
// satisfying subset.
func FindFirstEligibleSubsetForDays(
	resources []uuid.UUID,
	minResources int,
	requiredOverlap int,
	perResource PerResourceBlocks,
	availability CompanyAvailability,
	zone string,
	candidateDay Zoned,
	executionDays int,
	logger *slog.Logger,
) ([]uuid.UUID, bool, error) {
	maxThroughputDays := 2 * executionDays
	return ForEachSubset(resources, minResources, MaxSubsetIterations, logger, func(subset []uuid.UUID) (bool, error) {
		result, err := DaysOverlap(perResource, subset, availability, zone, candidateDay, executionDays, maxThroughputDays)
		if err != nil {
			return false, err
		}
		return result.CanComplete && result.OverlapPercentage >= float64(requiredOverlap), nil
	})
}
