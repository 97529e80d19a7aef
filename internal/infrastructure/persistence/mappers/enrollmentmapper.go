package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"coursekit/internal/domain/enrollment"
	"coursekit/internal/infrastructure/persistence/models"
)

// EnrollmentMapper handles conversion between Enrollment domain and model.
// Metadata round-trips through the JSON column.
type EnrollmentMapper interface {
	ToModel(e *enrollment.Enrollment) (*models.EnrollmentModel, error)
	ToDomain(model *models.EnrollmentModel) (*enrollment.Enrollment, error)
}

type EnrollmentMapperImpl struct{}

// NewEnrollmentMapper creates a new EnrollmentMapper.
func NewEnrollmentMapper() EnrollmentMapper {
	return &EnrollmentMapperImpl{}
}

func (m *EnrollmentMapperImpl) ToModel(e *enrollment.Enrollment) (*models.EnrollmentModel, error) {
	var metadata datatypes.JSON
	if len(e.Metadata) > 0 {
		data, err := json.Marshal(e.Metadata)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal enrollment metadata: %w", err)
		}
		metadata = datatypes.JSON(data)
	}

	return &models.EnrollmentModel{
		ID:          e.ID,
		UserID:      e.UserID,
		CourseID:    e.CourseID,
		Status:      string(e.Status),
		CompletedAt: e.CompletedAt,
		Metadata:    metadata,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}, nil
}

func (m *EnrollmentMapperImpl) ToDomain(model *models.EnrollmentModel) (*enrollment.Enrollment, error) {
	metadata := make(map[string]any)
	if len(model.Metadata) > 0 {
		if err := json.Unmarshal(model.Metadata, &metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal enrollment metadata: %w", err)
		}
	}

	return &enrollment.Enrollment{
		ID:          model.ID,
		UserID:      model.UserID,
		CourseID:    model.CourseID,
		Status:      enrollment.Status(model.Status),
		CompletedAt: model.CompletedAt,
		Metadata:    metadata,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}, nil
}
