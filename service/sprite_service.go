package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"pokedex-web/repository"
	"pokedex-web/utils"
)

// ErrSpriteNotFound is returned when a pokemon has no sprite or it cannot be downloaded
var ErrSpriteNotFound = errors.New("sprite not found")

// SpriteService serves resized pokemon sprites
type SpriteService struct {
	repository repository.CatalogRepositoryInterface
	optimizer  *ImageOptimizer
	logger     *zap.Logger
}

// NewSpriteService creates a new SpriteService
func NewSpriteService(repo repository.CatalogRepositoryInterface, optimizer *ImageOptimizer, logger *zap.Logger) *SpriteService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SpriteService{repository: repo, optimizer: optimizer, logger: logger}
}

// GetSprite returns the front sprite of name as PNG resized for size
func (s *SpriteService) GetSprite(ctx context.Context, name, size string) ([]byte, error) {
	normalized := utils.NormalizeName(name)
	record, err := s.repository.GetPokemonByName(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrPokemonNotFound, normalized)
	}
	if record.Sprite == "" {
		return nil, fmt.Errorf("%w: %s has no sprite", ErrSpriteNotFound, normalized)
	}

	data, err := s.repository.Download(ctx, record.Sprite)
	if err != nil {
		s.logger.Warn("sprite download failed", zap.String("url", record.Sprite), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrSpriteNotFound, err)
	}

	return s.optimizer.OptimizeSprite(data, size)
}
