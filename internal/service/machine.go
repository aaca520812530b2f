package service

import (
	"MachineCatalog/internal/blob"
	"MachineCatalog/internal/model"
	"MachineCatalog/internal/repo"
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.uber.org/zap"
)

// ErrInvalidImage загруженный файл не картинка или слишком большой.
var ErrInvalidImage = errors.New("invalid image")

// ErrImageTooLarge картинка больше лимита; errors.Is(err, ErrInvalidImage) тоже истинно.
var ErrImageTooLarge = fmt.Errorf("%w: file too large", ErrInvalidImage)

var imageNameRe = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|gif)$`)

// MachineService инкапсулирует бизнес-логику работы со станками:
// порядок обращений к БД и хранилищу картинок.
type MachineService struct {
	repo          repo.MachineRepository
	blobs         blob.Storage
	logger        *zap.SugaredLogger
	maxImageBytes int64
}

func NewMachineService(r repo.MachineRepository, blobs blob.Storage, logger *zap.SugaredLogger, maxImageBytes int64) *MachineService {
	return &MachineService{repo: r, blobs: blobs, logger: logger, maxImageBytes: maxImageBytes}
}

// ValidateImage проверяет имя файла (.jpg .jpeg .png .gif, без учёта регистра) и размер.
func (s *MachineService) ValidateImage(img *blob.Object) error {
	if img == nil {
		return nil
	}
	if !imageNameRe.MatchString(img.Name) {
		return fmt.Errorf("%w: only .jpg, .jpeg, .png and .gif files are allowed", ErrInvalidImage)
	}
	if s.maxImageBytes > 0 && img.Size > s.maxImageBytes {
		return fmt.Errorf("%w: file exceeds %d bytes", ErrImageTooLarge, s.maxImageBytes)
	}
	return nil
}

func (s *MachineService) List(ctx context.Context) ([]model.Machine, error) {
	return s.repo.ListAll(ctx)
}

func (s *MachineService) Get(ctx context.Context, id string) (*model.Machine, error) {
	return s.repo.GetByID(ctx, id)
}

// Create сначала загружает картинку (если есть), затем сохраняет запись.
func (s *MachineService) Create(ctx context.Context, fields model.MachineFields, img *blob.Object) (*model.Machine, error) {
	if err := s.ValidateImage(img); err != nil {
		return nil, err
	}

	m := &model.Machine{Title: fields.Title, Description: fields.Description}
	if img != nil {
		asset, err := s.blobs.Upload(ctx, *img)
		if err != nil {
			return nil, fmt.Errorf("upload image: %w", err)
		}
		m.ImageURL = &asset.URL
		m.ImageAssetID = &asset.AssetID
	}

	if err := s.repo.Create(ctx, m); err != nil {
		if m.HasImage() {
			s.dropAsset(ctx, *m.ImageAssetID)
		}
		return nil, fmt.Errorf("create machine: %w", err)
	}
	return m, nil
}

// Update сохраняет поля; при новой картинке удаляет старую из хранилища,
// загружает новую и сохраняет её URL/ID. Строго в этом порядке.
func (s *MachineService) Update(ctx context.Context, id string, fields model.MachineFields, img *blob.Object) (*model.Machine, error) {
	if err := s.ValidateImage(img); err != nil {
		return nil, err
	}

	m, err := s.repo.UpdateByID(ctx, id, fields)
	if err != nil {
		return nil, fmt.Errorf("update machine %s: %w", id, err)
	}
	if img == nil {
		return m, nil
	}

	if m.HasImage() {
		if err := s.blobs.Delete(ctx, *m.ImageAssetID); err != nil {
			return nil, fmt.Errorf("delete old image: %w", err)
		}
	}

	asset, err := s.blobs.Upload(ctx, *img)
	if err != nil {
		s.clearImage(ctx, m)
		return nil, fmt.Errorf("upload image: %w", err)
	}

	if err := s.repo.SetImage(ctx, id, &asset.URL, &asset.AssetID); err != nil {
		s.dropAsset(ctx, asset.AssetID)
		s.clearImage(ctx, m)
		return nil, fmt.Errorf("save image: %w", err)
	}
	m.ImageURL = &asset.URL
	m.ImageAssetID = &asset.AssetID
	return m, nil
}

// Delete удаляет запись и, если была, её картинку. Ошибка удаления картинки
// только логируется: запись уже удалена.
func (s *MachineService) Delete(ctx context.Context, id string) (*model.Machine, error) {
	m, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("delete machine %s: %w", id, err)
	}
	if m.HasImage() {
		s.dropAsset(ctx, *m.ImageAssetID)
	}
	return m, nil
}

// clearImage обнуляет поля картинки, если старая уже удалена из хранилища:
// запись не должна ссылаться на удалённый объект.
func (s *MachineService) clearImage(ctx context.Context, m *model.Machine) {
	if !m.HasImage() {
		return
	}
	if err := s.repo.SetImage(ctx, m.ID, nil, nil); err != nil {
		s.logger.Errorw("Update: failed to clear image fields", "id", m.ID, "error", err)
	}
}

func (s *MachineService) dropAsset(ctx context.Context, assetID string) {
	if err := s.blobs.Delete(ctx, assetID); err != nil {
		s.logger.Errorw("failed to delete image asset", "asset_id", assetID, "error", err)
	}
}
