package model

import "time"

// Machine — карточка станка в каталоге.
type Machine struct {
	ID string `gorm:"primaryKey;type:uuid"`

	Title       string `gorm:"not null"`
	Description string `gorm:"type:text"`

	// Картинка: оба поля заданы или оба nil
	ImageURL     *string
	ImageAssetID *string

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// HasImage сообщает, привязана ли к станку картинка в хранилище.
func (m *Machine) HasImage() bool {
	return m.ImageAssetID != nil && *m.ImageAssetID != ""
}

// MachineFields — редактируемые пользователем поля.
type MachineFields struct {
	Title       string
	Description string
}
