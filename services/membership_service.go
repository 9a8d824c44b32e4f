package services

import (
	"errors"

	"pulsehub/models"
	"pulsehub/repositories"

	"gorm.io/gorm"
)

// MembershipService answers role questions for moderation authorization and
// owns the community membership surface (subscribe, notification toggle).
type MembershipService interface {
	RoleOf(communityID, userID uint) (models.CommunityRole, error)
	RequireModerator(communityID, userID uint) error

	CreateCommunity(ownerID uint, req models.CreateCommunityRequest) (*models.Community, error)
	GetCommunity(id, viewerID uint) (*models.CommunityDetail, error)
	ListCommunities(params models.CommunityListParams) ([]models.CommunitySummary, error)
	ToggleSubscription(communityID, userID uint) (bool, error)
	ToggleNotifications(communityID, userID uint) (bool, error)
}

type membershipService struct {
	communityRepo repositories.CommunityRepository
}

func NewMembershipService(communityRepo repositories.CommunityRepository) MembershipService {
	return &membershipService{communityRepo: communityRepo}
}

func (s *membershipService) RoleOf(communityID, userID uint) (models.CommunityRole, error) {
	member, err := s.communityRepo.GetMember(communityID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RoleNone, nil
		}
		return models.RoleNone, models.ErrorInternalServer{Message: err.Error()}
	}
	return member.Role, nil
}

func (s *membershipService) RequireModerator(communityID, userID uint) error {
	role, err := s.RoleOf(communityID, userID)
	if err != nil {
		return err
	}
	if !role.CanModerate() {
		return models.ErrorForbidden{Message: "you are not a moderator of this community"}
	}
	return nil
}

func (s *membershipService) CreateCommunity(ownerID uint, req models.CreateCommunityRequest) (*models.Community, error) {
	community := &models.Community{
		Name:        req.Name,
		Description: req.Description,
		Rules:       req.Rules,
		Avatar:      req.Avatar,
		Background:  req.Background,
		OwnerID:     ownerID,
	}

	if err := s.communityRepo.CreateWithAdmin(community, ownerID); err != nil {
		return nil, models.ErrorInternalServer{Message: err.Error()}
	}

	created, err := s.communityRepo.GetByID(community.ID)
	if err != nil {
		return nil, models.ErrorInternalServer{Message: err.Error()}
	}
	return created, nil
}

func (s *membershipService) GetCommunity(id, viewerID uint) (*models.CommunityDetail, error) {
	community, err := s.communityRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "community not found"}
		}
		return nil, models.ErrorInternalServer{Message: err.Error()}
	}

	membersCount, err := s.communityRepo.CountMembers(id)
	if err != nil {
		return nil, models.ErrorInternalServer{Message: err.Error()}
	}
	postsCount, err := s.communityRepo.CountPosts(id)
	if err != nil {
		return nil, models.ErrorInternalServer{Message: err.Error()}
	}

	detail := &models.CommunityDetail{
		Community:    *community,
		MembersCount: membersCount,
		PostsCount:   postsCount,
	}

	if viewerID > 0 {
		isFollow := false
		notificationsEnabled := false
		if member, err := s.communityRepo.GetMember(id, viewerID); err == nil {
			isFollow = true
			notificationsEnabled = member.NotificationsEnabled
		}
		detail.IsFollow = &isFollow
		detail.NotificationsEnabled = &notificationsEnabled
	}

	return detail, nil
}

func (s *membershipService) ListCommunities(params models.CommunityListParams) ([]models.CommunitySummary, error) {
	communities, err := s.communityRepo.List(params)
	if err != nil {
		return nil, models.ErrorInternalServer{Message: err.Error()}
	}

	summaries := make([]models.CommunitySummary, 0, len(communities))
	for _, community := range communities {
		membersCount, err := s.communityRepo.CountMembers(community.ID)
		if err != nil {
			return nil, models.ErrorInternalServer{Message: err.Error()}
		}
		postsCount, err := s.communityRepo.CountPosts(community.ID)
		if err != nil {
			return nil, models.ErrorInternalServer{Message: err.Error()}
		}
		tags, err := s.communityRepo.AggregateTagNames(community.ID)
		if err != nil {
			return nil, models.ErrorInternalServer{Message: err.Error()}
		}

		summaries = append(summaries, models.CommunitySummary{
			Community:    community,
			MembersCount: membersCount,
			PostsCount:   postsCount,
			Tags:         tags,
		})
	}

	return summaries, nil
}

// ToggleSubscription subscribes the user as MEMBER, or removes the
// membership row entirely when one exists. Returns the resulting state.
func (s *membershipService) ToggleSubscription(communityID, userID uint) (bool, error) {
	if _, err := s.communityRepo.GetByID(communityID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, models.ErrorNotFound{Message: "community not found"}
		}
		return false, models.ErrorInternalServer{Message: err.Error()}
	}

	_, err := s.communityRepo.GetMember(communityID, userID)
	if err == nil {
		if err := s.communityRepo.DeleteMember(communityID, userID); err != nil {
			return false, models.ErrorInternalServer{Message: err.Error()}
		}
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, models.ErrorInternalServer{Message: err.Error()}
	}

	member := &models.CommunityMember{
		CommunityID: communityID,
		UserID:      userID,
		Role:        models.RoleMember,
	}
	if err := s.communityRepo.CreateMember(member); err != nil {
		return false, models.ErrorInternalServer{Message: err.Error()}
	}
	return true, nil
}

func (s *membershipService) ToggleNotifications(communityID, userID uint) (bool, error) {
	member, err := s.communityRepo.GetMember(communityID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, models.ErrorNotFound{Message: "you are not a member of this community"}
		}
		return false, models.ErrorInternalServer{Message: err.Error()}
	}

	member.NotificationsEnabled = !member.NotificationsEnabled
	if err := s.communityRepo.UpdateMember(member); err != nil {
		return false, models.ErrorInternalServer{Message: err.Error()}
	}
	return member.NotificationsEnabled, nil
}
