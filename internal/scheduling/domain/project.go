package domain

import "github.com/google/uuid"

// Subproject carries its own execution/preparation/buffer overrides for a
// project with multiple deliverable phases.
type Subproject struct {
	ExecutionDuration    Duration
	PreparationDuration  *Duration
	BufferDuration       *Duration
}

// Project is the plain record the engine schedules against. It is never
// mutated by the engine and carries no domain events: the engine consumes
// plain records and returns plain records.
type Project struct {
	ID             uuid.UUID
	ProfessionalID uuid.UUID

	ExecutionDuration   Duration
	PreparationDuration *Duration
	BufferDuration      *Duration

	// Resources is the ordered, de-duplicated sequence of assignable resource
	// IDs. Use NewProject to apply the dedup/clamp rules; this field is
	// exported for callers building fixtures directly.
	Resources []uuid.UUID

	MinResources         int
	MinOverlapPercentage int

	Subprojects []Subproject
}

// NewProject applies the Data Model invariants: duplicate resource IDs are
// dropped preserving first occurrence, MinResources is clamped to
// [1, len(resources)], and MinOverlapPercentage is clamped to [10, 100] and
// forced to 100 when MinResources <= 1.
func NewProject(id, professionalID uuid.UUID, execution Duration, resources []uuid.UUID, minResources, minOverlapPercentage int) *Project {
	deduped := dedupePreserveOrder(resources)

	if minResources < 1 {
		minResources = 1
	}
	if len(deduped) > 0 && minResources > len(deduped) {
		minResources = len(deduped)
	}

	overlap := minOverlapPercentage
	if overlap == 0 {
		overlap = 90
	}
	if overlap < 10 {
		overlap = 10
	}
	if overlap > 100 {
		overlap = 100
	}
	if minResources <= 1 {
		overlap = 100
	}

	return &Project{
		ID:                   id,
		ProfessionalID:       professionalID,
		ExecutionDuration:    execution,
		Resources:            deduped,
		MinResources:         minResources,
		MinOverlapPercentage: overlap,
	}
}

func dedupePreserveOrder(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// RequiredOverlap returns the overlap percentage a subset search must meet:
// 100 when MinResources <= 1, else MinOverlapPercentage.
func (p *Project) RequiredOverlap() int {
	if p.MinResources <= 1 {
		return 100
	}
	return p.MinOverlapPercentage
}

// IsMultiResource reports whether the project lists any resources at all;
// per-resource block sets and subset search only apply when it does.
func (p *Project) IsMultiResource() bool {
	return len(p.Resources) > 0
}

// ForSubproject resolves the effective execution/preparation/buffer
// durations for an optional subproject index. A nil or out-of-range index
// returns the project's own durations.
func (p *Project) ForSubproject(index *int) (execution Duration, preparation, buffer *Duration) {
	if index == nil || *index < 0 || *index >= len(p.Subprojects) {
		return p.ExecutionDuration, p.PreparationDuration, p.BufferDuration
	}
	sub := p.Subprojects[*index]
	execution = sub.ExecutionDuration
	preparation = sub.PreparationDuration
	buffer = sub.BufferDuration
	if preparation == nil {
		preparation = p.PreparationDuration
	}
	if buffer == nil {
		buffer = p.BufferDuration
	}
	return execution, preparation, buffer
}
