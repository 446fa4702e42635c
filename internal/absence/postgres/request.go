package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/frahmantamala/absence-request/internal/absence"
	absenceDatamodel "github.com/frahmantamala/absence-request/internal/core/datamodel/absence"
	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
)

const (
	listAllQuery = `
		SELECT r.student_id, r.id, r.status, r.created_at,
		       u.student_number, u.department, u.grade, u."class", u.name AS student_name
		FROM registration_details r
		JOIN users u ON r.student_id = u.id
		ORDER BY r.id`

	listByStudentQuery = `
		SELECT r.id, r.status,
		       u.student_number, u.department, u.grade, u."class", u.name AS student_name
		FROM registration_details r
		JOIN users u ON r.student_id = u.id
		WHERE r.student_id = ?
		ORDER BY r.id`
)

// RequestRepository writes through gorm and reads the joined listings with sqlx.
// Both handles share one connection pool.
type RequestRepository struct {
	db     *gorm.DB
	reader *sqlx.DB
}

func NewRequestRepository(db *gorm.DB, reader *sqlx.DB) *RequestRepository {
	return &RequestRepository{db: db, reader: reader}
}

func (r *RequestRepository) Create(ctx context.Context, req *absenceDatamodel.Request) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *RequestRepository) GetDetail(ctx context.Context, key absence.RequestKey) (*absenceDatamodel.Request, error) {
	var req absenceDatamodel.Request
	err := r.db.WithContext(ctx).
		Where("id = ? AND student_id = ?", key.ID, key.StudentID).
		First(&req).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, absence.ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *RequestRepository) ListAll(ctx context.Context) ([]absenceDatamodel.StaffListRow, error) {
	rows := make([]absenceDatamodel.StaffListRow, 0)
	if err := r.reader.SelectContext(ctx, &rows, r.reader.Rebind(listAllQuery)); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *RequestRepository) ListByStudent(ctx context.Context, studentID int64) ([]absenceDatamodel.StudentListRow, error) {
	rows := make([]absenceDatamodel.StudentListRow, 0)
	if err := r.reader.SelectContext(ctx, &rows, r.reader.Rebind(listByStudentQuery), studentID); err != nil {
		return nil, err
	}
	return rows, nil
}

// UpdateStatus overwrites the status of the matching row whatever its current state.
func (r *RequestRepository) UpdateStatus(ctx context.Context, key absence.RequestKey, status absence.Status) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&absenceDatamodel.Request{}).
		Where("id = ? AND student_id = ?", key.ID, key.StudentID).
		Updates(map[string]interface{}{
			"status":     string(status),
			"updated_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}

func (r *RequestRepository) UpdateStatusIfPending(ctx context.Context, key absence.RequestKey, status absence.Status) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&absenceDatamodel.Request{}).
		Where("id = ? AND student_id = ? AND status = ?", key.ID, key.StudentID, string(absence.StatusPending)).
		Updates(map[string]interface{}{
			"status":     string(status),
			"updated_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}

func (r *RequestRepository) Exists(ctx context.Context, key absence.RequestKey) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&absenceDatamodel.Request{}).
		Where("id = ? AND student_id = ?", key.ID, key.StudentID).
		Count(&count).Error
	return count > 0, err
}
