package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/shridmishra/fixera-scheduling/internal/scheduling/domain"
	"github.com/shridmishra/fixera-scheduling/pkg/observability"
)

// ProposalCacheTTL bounds how long a ProposalSet stays cached. Kept short
// since a booking created elsewhere in the same window invalidates it.
const ProposalCacheTTL = 2 * time.Minute

// ProposalCache caches build_proposals results, keyed on the project, the
// subproject index and the UTC calendar date of Now. Bookings and time of day
// are not part of the key; staleness is bounded by ProposalCacheTTL, and
// BuildProposalsHandler does not cache requests that carry customer blocks.
// A Redis outage degrades to always-miss rather than failing the request: a
// cache is an optimization, not a dependency.
type ProposalCache struct {
	client  *redis.Client
	logger  *slog.Logger
	metrics observability.Metrics
}

// NewProposalCache wraps a Redis client. Pass nil to get a cache that always
// misses, for local/offline mode. Pass nil metrics to disable cache hit/miss
// recording.
func NewProposalCache(client *redis.Client, logger *slog.Logger, metrics observability.Metrics) *ProposalCache {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	return &ProposalCache{client: client, logger: logger, metrics: metrics}
}

// proposalCacheKey hashes the project, the subproject index, and the UTC
// calendar date Now falls on; no other input is part of the key.
func proposalCacheKey(projectID uuid.UUID, subprojectIndex *int, now time.Time) string {
	idx := -1
	if subprojectIndex != nil {
		idx = *subprojectIndex
	}
	raw := fmt.Sprintf("%s|%d|%s", projectID, idx, now.UTC().Format("2006-01-02"))
	sum := sha256.Sum256([]byte(raw))
	return "scheduling:proposals:" + hex.EncodeToString(sum[:])
}

// Get returns a cached ProposalSet, or nil with no error on a cache miss or
// a degraded Redis.
func (c *ProposalCache) Get(ctx context.Context, projectID uuid.UUID, subprojectIndex *int, now time.Time) *domain.ProposalSet {
	if c.client == nil {
		return nil
	}
	key := proposalCacheKey(projectID, subprojectIndex, now)
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("proposal cache read failed, falling back to live computation", "error", err)
		}
		c.metrics.Counter(observability.MetricProposalCacheMisses, 1)
		return nil
	}
	var set domain.ProposalSet
	if err := json.Unmarshal(raw, &set); err != nil {
		c.logger.Warn("proposal cache entry corrupt, ignoring", "error", err)
		c.metrics.Counter(observability.MetricProposalCacheMisses, 1)
		return nil
	}
	c.metrics.Counter(observability.MetricProposalCacheHits, 1)
	return &set
}

// Set stores a ProposalSet. Failures are logged, not propagated: a write
// that fails just means the next request recomputes.
func (c *ProposalCache) Set(ctx context.Context, projectID uuid.UUID, subprojectIndex *int, now time.Time, set *domain.ProposalSet) {
	if c.client == nil || set == nil {
		return
	}
	key := proposalCacheKey(projectID, subprojectIndex, now)
	raw, err := json.Marshal(set)
	if err != nil {
		c.logger.Warn("proposal cache encode failed", "error", err)
		return
	}
	if err := c.client.Set(ctx, key, raw, ProposalCacheTTL).Err(); err != nil {
		c.logger.Warn("proposal cache write failed", "error", err)
	}
}

// Invalidate drops a project's cached proposals; ValidateSelectionHandler
// calls it after a selection validates.
func (c *ProposalCache) Invalidate(ctx context.Context, projectID uuid.UUID, subprojectIndex *int, now time.Time) {
	if c.client == nil {
		return
	}
	key := proposalCacheKey(projectID, subprojectIndex, now)
	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.logger.Warn("proposal cache invalidate failed", "error", err)
	}
}
