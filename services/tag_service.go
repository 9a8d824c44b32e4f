package services

import (
	"pulsehub/models"
	"pulsehub/repositories"
)

type TagService interface {
	GetTags() ([]models.Tag, error)
}

type tagService struct {
	tagRepo repositories.TagRepository
}

func NewTagService(tagRepo repositories.TagRepository) TagService {
	return &tagService{tagRepo: tagRepo}
}

func (s *tagService) GetTags() ([]models.Tag, error) {
	tags, err := s.tagRepo.GetAll()
	if err != nil {
		return nil, models.ErrorInternalServer{Message: err.Error()}
	}
	return tags, nil
}
