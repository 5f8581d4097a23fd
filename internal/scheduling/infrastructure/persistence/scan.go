package persistence

import (
	"database/sql"

	"github.com/google/uuid"

	"github.com/shridmishra/fixera-scheduling/internal/scheduling/domain"
	"github.com/shridmishra/fixera-scheduling/internal/shared/infrastructure/database"
)

// scanProject and its siblings are shared by the PostgreSQL and SQLite
// adapters: both select the same column order from equivalently shaped
// tables, so only the placeholder syntax in the surrounding query differs.

func scanProject(row database.Row) (*domain.Project, error) {
	var (
		id, professionalID                            uuid.UUID
		executionValue                                 float64
		executionUnit                                  string
		preparationValue, bufferValue                  sql.NullFloat64
		preparationUnit, bufferUnit                     sql.NullString
		resourcesRaw, subprojectsRaw                   []byte
		minResources, minOverlapPercentage             int
	)
	err := row.Scan(&id, &professionalID, &executionValue, &executionUnit,
		&preparationValue, &preparationUnit, &bufferValue, &bufferUnit,
		&resourcesRaw, &minResources, &minOverlapPercentage, &subprojectsRaw)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, err
	}

	resources, err := decodeUUIDs(resourcesRaw)
	if err != nil {
		return nil, err
	}
	subprojects, err := decodeSubprojects(subprojectsRaw)
	if err != nil {
		return nil, err
	}

	project := &domain.Project{
		ID:                   id,
		ProfessionalID:       professionalID,
		ExecutionDuration:    domain.Duration{Value: executionValue, Unit: domain.DurationUnit(executionUnit)},
		Resources:            resources,
		MinResources:         minResources,
		MinOverlapPercentage: minOverlapPercentage,
		Subprojects:          subprojects,
	}
	if preparationValue.Valid {
		project.PreparationDuration = &domain.Duration{Value: preparationValue.Float64, Unit: domain.DurationUnit(preparationUnit.String)}
	}
	if bufferValue.Valid {
		project.BufferDuration = &domain.Duration{Value: bufferValue.Float64, Unit: domain.DurationUnit(bufferUnit.String)}
	}
	return project, nil
}

func scanProfessional(row database.Row) (*domain.Professional, error) {
	var (
		id                                                                   uuid.UUID
		timeZone                                                             string
		availabilityRaw, blockedDatesRaw, blockedRangesRaw, holidayRulesRaw []byte
	)
	err := row.Scan(&id, &timeZone, &availabilityRaw, &blockedDatesRaw, &blockedRangesRaw, &holidayRulesRaw)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, domain.ErrProfessionalNotFound
		}
		return nil, err
	}

	availability, err := decodeCompanyAvailability(availabilityRaw)
	if err != nil {
		return nil, err
	}
	blockedDates, err := decodeBlockedDates(blockedDatesRaw)
	if err != nil {
		return nil, err
	}
	blockedRanges, err := decodeBlockedRanges(blockedRangesRaw)
	if err != nil {
		return nil, err
	}
	holidayRules, err := decodeHolidayRules(holidayRulesRaw)
	if err != nil {
		return nil, err
	}

	return &domain.Professional{
		ID:                   id,
		TimeZone:             timeZone,
		CompanyAvailability:  availability,
		CompanyBlockedDates:  blockedDates,
		CompanyBlockedRanges: blockedRanges,
		HolidayRules:         holidayRules,
	}, nil
}

func scanResource(row database.Row) (*domain.Resource, error) {
	var (
		id, professionalID                uuid.UUID
		blockedDatesRaw, blockedRangesRaw []byte
	)
	err := row.Scan(&id, &professionalID, &blockedDatesRaw, &blockedRangesRaw)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return resourceFromRaw(id, professionalID, blockedDatesRaw, blockedRangesRaw)
}

func resourceFromRaw(id, professionalID uuid.UUID, blockedDatesRaw, blockedRangesRaw []byte) (*domain.Resource, error) {
	blockedDates, err := decodeBlockedDates(blockedDatesRaw)
	if err != nil {
		return nil, err
	}
	blockedRanges, err := decodeBlockedRanges(blockedRangesRaw)
	if err != nil {
		return nil, err
	}
	return &domain.Resource{
		ID:             id,
		ProfessionalID: professionalID,
		BlockedDates:   blockedDates,
		BlockedRanges:  blockedRanges,
	}, nil
}

func scanResources(rows database.Rows) ([]*domain.Resource, error) {
	var out []*domain.Resource
	for rows.Next() {
		var (
			id, professionalID                uuid.UUID
			blockedDatesRaw, blockedRangesRaw []byte
		)
		if err := rows.Scan(&id, &professionalID, &blockedDatesRaw, &blockedRangesRaw); err != nil {
			return nil, err
		}
		resource, err := resourceFromRaw(id, professionalID, blockedDatesRaw, blockedRangesRaw)
		if err != nil {
			return nil, err
		}
		out = append(out, resource)
	}
	return out, rows.Err()
}

func scanBookings(rows database.Rows) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for rows.Next() {
		var (
			id, projectID, professionalID      uuid.UUID
			status                             string
			start, executionEnd, bufferEnd     sql.NullTime
			assignedTeamMembersRaw             []byte
		)
		if err := rows.Scan(&id, &projectID, &professionalID, &status, &start, &executionEnd, &bufferEnd, &assignedTeamMembersRaw); err != nil {
			return nil, err
		}
		assigned, err := decodeUUIDs(assignedTeamMembersRaw)
		if err != nil {
			return nil, err
		}
		booking := &domain.Booking{
			ID:                  id,
			ProjectID:           projectID,
			ProfessionalID:      professionalID,
			Status:              status,
			AssignedTeamMembers: assigned,
		}
		if start.Valid {
			booking.Start = &start.Time
		}
		if executionEnd.Valid {
			booking.ExecutionEnd = &executionEnd.Time
		}
		if bufferEnd.Valid {
			booking.BufferEnd = &bufferEnd.Time
		}
		out = append(out, booking)
	}
	return out, rows.Err()
}
