package repo

import (
	"MachineCatalog/internal/model"
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MachineRepository контракт доступа к станкам для слоя сервиса.
// Каждый метод — один запрос (или пара запросов) без транзакций; параллельные
// обновления одной записи — last-write-wins.
type MachineRepository interface {
	ListAll(ctx context.Context) ([]model.Machine, error)
	GetByID(ctx context.Context, id string) (*model.Machine, error)
	Create(ctx context.Context, m *model.Machine) error
	// UpdateByID обновляет title/description и возвращает запись после обновления.
	UpdateByID(ctx context.Context, id string, fields model.MachineFields) (*model.Machine, error)
	// SetImage выставляет (или сбрасывает, если оба nil) поля картинки.
	SetImage(ctx context.Context, id string, url, assetID *string) error
	// DeleteByID удаляет запись и возвращает её последнее состояние.
	DeleteByID(ctx context.Context, id string) (*model.Machine, error)
}

type machineRepo struct {
	db *gorm.DB
}

// NewMachineRepository создаёт gorm-реализацию MachineRepository.
func NewMachineRepository(db *gorm.DB) MachineRepository {
	return &machineRepo{db: db}
}

func (r *machineRepo) ListAll(ctx context.Context) ([]model.Machine, error) {
	var out []model.Machine
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *machineRepo) GetByID(ctx context.Context, id string) (*model.Machine, error) {
	var m model.Machine
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &m, nil
}

func (r *machineRepo) Create(ctx context.Context, m *model.Machine) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *machineRepo) UpdateByID(ctx context.Context, id string, fields model.MachineFields) (*model.Machine, error) {
	tx := r.db.WithContext(ctx).Model(&model.Machine{}).Where("id = ?", id).Updates(map[string]any{
		"title":       fields.Title,
		"description": fields.Description,
	})
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *machineRepo) SetImage(ctx context.Context, id string, url, assetID *string) error {
	tx := r.db.WithContext(ctx).Model(&model.Machine{}).Where("id = ?", id).Updates(map[string]any{
		"image_url":      url,
		"image_asset_id": assetID,
	})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *machineRepo) DeleteByID(ctx context.Context, id string) (*model.Machine, error) {
	m, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	tx := r.db.WithContext(ctx).Delete(&model.Machine{}, "id = ?", id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	// удалили между выборкой и удалением
	if tx.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return m, nil
}
