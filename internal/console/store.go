package console

import (
	"eventflow/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DBStore — реализация Store поверх gorm.
type DBStore struct {
	DB *gorm.DB
}

func (s DBStore) ListParticipants(eventID uint) ([]models.Participant, error) {
	var list []models.Participant
	err := s.DB.
		Where("event_id = ?", eventID).
		Order("full_name ASC").
		Find(&list).Error
	return list, err
}

// UpdateAttendance пишет статус и полный журнал одним UPDATE:
// статус и журнал меняются только вместе.
func (s DBStore) UpdateAttendance(participantID uint, status models.Status, logs []models.LogEntry) error {
	return s.DB.Model(&models.Participant{}).
		Where("id = ?", participantID).
		Updates(map[string]interface{}{
			"status": status,
			"logs":   datatypes.NewJSONSlice(logs),
		}).Error
}
