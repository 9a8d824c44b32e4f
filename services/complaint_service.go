package services

import (
	"errors"
	"strings"

	"pulsehub/models"
	"pulsehub/repositories"

	"gorm.io/gorm"
)

// ComplaintService handles content reporting. Complaints target community
// content and are decided by that community's moderators; like post
// moderation, the decision write is a compare-and-swap so a complaint gets
// exactly one terminal decision.
type ComplaintService interface {
	File(reporterID uint, req models.CreateComplaintRequest) (*models.Complaint, error)
	PendingComplaints(communityID, moderatorID uint) ([]models.Complaint, error)
	Decide(complaintID, moderatorID uint, status models.ComplaintStatus) (*models.Complaint, error)
}

type complaintService struct {
	complaintRepo repositories.ComplaintRepository
	postRepo      repositories.PostRepository
	commentRepo   repositories.CommentRepository
	communityRepo repositories.CommunityRepository
	membership    MembershipService
}

func NewComplaintService(
	complaintRepo repositories.ComplaintRepository,
	postRepo repositories.PostRepository,
	commentRepo repositories.CommentRepository,
	communityRepo repositories.CommunityRepository,
	membership MembershipService,
) ComplaintService {
	return &complaintService{
		complaintRepo: complaintRepo,
		postRepo:      postRepo,
		commentRepo:   commentRepo,
		communityRepo: communityRepo,
		membership:    membership,
	}
}

func (s *complaintService) File(reporterID uint, req models.CreateComplaintRequest) (*models.Complaint, error) {
	if strings.TrimSpace(req.Reason) == "" {
		return nil, models.ErrorBadRequest{Message: "a complaint reason is required"}
	}
	if (req.PostID == nil) == (req.CommentID == nil) {
		return nil, models.ErrorBadRequest{Message: "exactly one of post_id or comment_id is required"}
	}

	postID := uint(0)
	var commentID *uint

	if req.CommentID != nil {
		comment, err := s.commentRepo.GetByID(*req.CommentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, models.ErrorNotFound{Message: "comment not found"}
			}
			return nil, models.ErrorInternalServer{Message: err.Error()}
		}
		postID = comment.PostID
		commentID = req.CommentID
	} else {
		postID = *req.PostID
	}

	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "post not found"}
		}
		return nil, models.ErrorInternalServer{Message: err.Error()}
	}
	if post.CommunityID == nil {
		// There is no moderator to route a personal-content report to.
		return nil, models.ErrorBadRequest{Message: "only community content can be reported"}
	}

	complaint := &models.Complaint{
		ReporterID:  reporterID,
		PostID:      post.ID,
		CommentID:   commentID,
		CommunityID: *post.CommunityID,
		Reason:      strings.TrimSpace(req.Reason),
		Status:      models.ComplaintPending,
	}
	if err := s.complaintRepo.Create(complaint); err != nil {
		return nil, models.ErrorInternalServer{Message: err.Error()}
	}

	created, err := s.complaintRepo.GetByID(complaint.ID)
	if err != nil {
		return nil, models.ErrorInternalServer{Message: err.Error()}
	}
	return created, nil
}

func (s *complaintService) PendingComplaints(communityID, moderatorID uint) ([]models.Complaint, error) {
	if _, err := s.communityRepo.GetByID(communityID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "community not found"}
		}
		return nil, models.ErrorInternalServer{Message: err.Error()}
	}
	if err := s.membership.RequireModerator(communityID, moderatorID); err != nil {
		return nil, err
	}

	complaints, err := s.complaintRepo.ListPendingByCommunity(communityID)
	if err != nil {
		return nil, models.ErrorInternalServer{Message: err.Error()}
	}
	return complaints, nil
}

func (s *complaintService) Decide(complaintID, moderatorID uint, status models.ComplaintStatus) (*models.Complaint, error) {
	if status != models.ComplaintResolved && status != models.ComplaintDismissed {
		return nil, models.ErrorBadRequest{Message: "status must be RESOLVED or DISMISSED"}
	}

	complaint, err := s.complaintRepo.GetByID(complaintID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "complaint not found"}
		}
		return nil, models.ErrorInternalServer{Message: err.Error()}
	}
	if err := s.membership.RequireModerator(complaint.CommunityID, moderatorID); err != nil {
		return nil, err
	}

	ok, err := s.complaintRepo.UpdateFromPending(complaintID, status)
	if err != nil {
		return nil, models.ErrorInternalServer{Message: err.Error()}
	}
	if !ok {
		return nil, models.ErrorConflict{Message: "complaint already has a terminal decision"}
	}

	decided, err := s.complaintRepo.GetByID(complaintID)
	if err != nil {
		return nil, models.ErrorInternalServer{Message: err.Error()}
	}
	return decided, nil
}
