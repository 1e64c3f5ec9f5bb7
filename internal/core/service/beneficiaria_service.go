package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dmm-municipal/dmm-api/internal/core/domain"
	"github.com/dmm-municipal/dmm-api/internal/core/ports"
)

// MaxImageSize is the largest accepted identity-document image.
const MaxImageSize = 10 << 20

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type BeneficiariaService struct {
	repo  ports.BeneficiariaRepository
	docs  ports.DocumentStore
	audit ports.AuditRecorder
	log   zerolog.Logger
}

func NewBeneficiariaService(repo ports.BeneficiariaRepository, docs ports.DocumentStore, audit ports.AuditRecorder, log zerolog.Logger) *BeneficiariaService {
	return &BeneficiariaService{repo: repo, docs: docs, audit: orNop(audit), log: log}
}

func (s *BeneficiariaService) List(ctx context.Context) ([]domain.Beneficiaria, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		list[i].LinkImages()
	}
	return list, nil
}

func (s *BeneficiariaService) ListRecent(ctx context.Context) ([]domain.Beneficiaria, error) {
	return s.repo.ListRecent(ctx)
}

func (s *BeneficiariaService) Get(ctx context.Context, id int64) (*domain.Beneficiaria, error) {
	b, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	b.LinkImages()
	return b, nil
}

// Create uploads the images first so the stored keys exist before the row does.
// Uploaded objects are removed again if the insert fails.
func (s *BeneficiariaService) Create(ctx context.Context, actor *domain.User, in ports.BeneficiariaInput, images []ports.ImageUpload) error {
	if err := validateImages(images); err != nil {
		return err
	}

	uploaded, err := s.upload(ctx, in.DPI, images)
	if err != nil {
		return err
	}
	if key, ok := uploaded[domain.ImageFront]; ok {
		in.DPIFront = key
	}
	if key, ok := uploaded[domain.ImageBack]; ok {
		in.DPIBack = key
	}

	if err := s.repo.Create(ctx, in); err != nil {
		s.discard(ctx, uploaded)
		return dpiConflict(err)
	}

	s.audit.Record(auditEntry(actor, domain.AuditCreated, "beneficiaria", 0))
	s.log.Info().Str("dpi", in.DPI).Int64("actor_id", actorID(actor)).Msg("beneficiaria created")
	return nil
}

// Update keeps the stored image keys unless a new image is uploaded for that
// side; the replaced object is deleted best-effort.
func (s *BeneficiariaService) Update(ctx context.Context, actor *domain.User, id int64, in ports.BeneficiariaInput, images []ports.ImageUpload) error {
	if err := validateImages(images); err != nil {
		return err
	}
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	in.DPIFront, in.DPIBack = current.DPIFront, current.DPIBack

	uploaded, err := s.upload(ctx, in.DPI, images)
	if err != nil {
		return err
	}
	var replaced []string
	if key, ok := uploaded[domain.ImageFront]; ok {
		if in.DPIFront != "" {
			replaced = append(replaced, in.DPIFront)
		}
		in.DPIFront = key
	}
	if key, ok := uploaded[domain.ImageBack]; ok {
		if in.DPIBack != "" {
			replaced = append(replaced, in.DPIBack)
		}
		in.DPIBack = key
	}

	if err := s.repo.Update(ctx, id, in); err != nil {
		s.discard(ctx, uploaded)
		return dpiConflict(err)
	}
	for _, key := range replaced {
		s.deleteObject(ctx, key)
	}

	s.audit.Record(auditEntry(actor, domain.AuditUpdated, "beneficiaria", id))
	s.log.Info().Int64("id", id).Int64("actor_id", actorID(actor)).Msg("beneficiaria updated")
	return nil
}

func (s *BeneficiariaService) Delete(ctx context.Context, actor *domain.User, id int64) error {
	b, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	for _, key := range []string{b.DPIFront, b.DPIBack} {
		if key != "" {
			s.deleteObject(ctx, key)
		}
	}

	s.audit.Record(auditEntry(actor, domain.AuditDeleted, "beneficiaria", id))
	s.log.Info().Int64("id", id).Int64("actor_id", actorID(actor)).Msg("beneficiaria deleted")
	return nil
}

func (s *BeneficiariaService) SetStatus(ctx context.Context, actor *domain.User, id int64, estado string) error {
	if strings.TrimSpace(estado) == "" {
		return domain.NewValidationError("El estado es requerido")
	}
	if err := s.repo.SetStatus(ctx, id, estado); err != nil {
		return err
	}
	e := auditEntry(actor, domain.AuditStatusChange, "beneficiaria", id)
	e.Detail = estado
	s.audit.Record(e)
	return nil
}

// Image streams one of the stored DPI images.
func (s *BeneficiariaService) Image(ctx context.Context, id int64, side domain.ImageSide) (*ports.Document, error) {
	if !side.Valid() {
		return nil, domain.NewValidationError("Tipo de imagen no válido. Use 'frente' o 'reverso'")
	}
	b, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	key := b.ImageKey(side)
	if key == "" {
		return nil, domain.ErrImageNotFound
	}
	return s.docs.Get(ctx, key)
}

func (s *BeneficiariaService) upload(ctx context.Context, dpi string, images []ports.ImageUpload) (map[domain.ImageSide]string, error) {
	uploaded := make(map[domain.ImageSide]string, len(images))
	for _, img := range images {
		key := ImageObjectKey(dpi, img)
		if err := s.docs.Put(ctx, key, img.ContentType, img.Body, img.Size); err != nil {
			s.discard(ctx, uploaded)
			return nil, fmt.Errorf("upload %s image: %w", img.Side, err)
		}
		uploaded[img.Side] = key
	}
	return uploaded, nil
}

func (s *BeneficiariaService) discard(ctx context.Context, uploaded map[domain.ImageSide]string) {
	for _, key := range uploaded {
		s.deleteObject(ctx, key)
	}
}

func (s *BeneficiariaService) deleteObject(ctx context.Context, key string) {
	if err := s.docs.Delete(ctx, key); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("failed to delete dpi image")
	}
}

// ImageObjectKey builds dpi/<uuid>-<dpi>-<side><ext>.
func ImageObjectKey(dpi string, img ports.ImageUpload) string {
	ext := strings.ToLower(filepath.Ext(img.Filename))
	if ext == "" {
		ext = allowedImageTypes[img.ContentType]
	}
	return fmt.Sprintf("dpi/%s-%s-%s%s", uuid.NewString(), dpi, img.Side, ext)
}

func validateImages(images []ports.ImageUpload) error {
	seen := make(map[domain.ImageSide]bool, len(images))
	for _, img := range images {
		if !img.Side.Valid() {
			return domain.NewValidationError("Tipo de imagen no válido: %s", img.Side)
		}
		if seen[img.Side] {
			return domain.NewValidationError("Solo se permite una imagen de DPI %s", img.Side)
		}
		seen[img.Side] = true
		if _, ok := allowedImageTypes[img.ContentType]; !ok {
			return domain.NewValidationError("Tipo de archivo no permitido. Solo se permiten imágenes JPG, PNG y WEBP")
		}
		if img.Size > MaxImageSize {
			return domain.NewValidationError("La imagen de DPI %s excede el tamaño máximo de 10MB", img.Side)
		}
	}
	return nil
}

// dpiConflict names the DPI rule on a uniqueness violation.
func dpiConflict(err error) error {
	var dup *domain.DuplicateError
	if !errors.As(err, &dup) {
		return err
	}
	return &domain.DuplicateError{
		Code:    "DPI_DUPLICADO",
		Field:   "dpi",
		Value:   dup.Value,
		Key:     dup.Key,
		Message: fmt.Sprintf("El DPI %s ya está registrado en el sistema. Por favor, verifica el número.", dup.Value),
	}
}
