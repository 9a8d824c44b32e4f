package services

import (
	"math/rand"
	"sync"

	"pulsehub/models"
	"pulsehub/repositories"
)

const (
	defaultFeedLimit = 20
	maxFeedLimit     = 100
)

// FeedService composes the publicly visible post set for a viewer. When no
// sort is requested the page is shuffled per call; the random source is
// injected so tests can pin the order.
type FeedService interface {
	List(params models.FeedParams, viewerID uint) ([]models.PostSummary, int64, error)
}

type feedService struct {
	postRepo    repositories.PostRepository
	likeRepo    repositories.LikeRepository
	commentRepo repositories.CommentRepository
	savedRepo   repositories.SavedPostRepository

	mu  sync.Mutex
	rng *rand.Rand
}

func NewFeedService(
	postRepo repositories.PostRepository,
	likeRepo repositories.LikeRepository,
	commentRepo repositories.CommentRepository,
	savedRepo repositories.SavedPostRepository,
	seed int64,
) FeedService {
	return &feedService{
		postRepo:    postRepo,
		likeRepo:    likeRepo,
		commentRepo: commentRepo,
		savedRepo:   savedRepo,
		rng:         rand.New(rand.NewSource(seed)),
	}
}

func (s *feedService) List(params models.FeedParams, viewerID uint) ([]models.PostSummary, int64, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit <= 0 {
		params.Limit = defaultFeedLimit
	}
	if params.Limit > maxFeedLimit {
		params.Limit = maxFeedLimit
	}
	if viewerID == 0 {
		// "Subscriptions only" is meaningless for anonymous viewers.
		params.Subscriptions = false
	}

	posts, total, err := s.postRepo.ListVisible(params, viewerID)
	if err != nil {
		return nil, 0, models.ErrorInternalServer{Message: err.Error()}
	}

	postIDs := make([]uint, 0, len(posts))
	for _, post := range posts {
		postIDs = append(postIDs, post.ID)
	}

	likeCounts, err := s.likeRepo.CountByPosts(postIDs)
	if err != nil {
		return nil, 0, models.ErrorInternalServer{Message: err.Error()}
	}
	commentCounts, err := s.commentRepo.CountByPosts(postIDs)
	if err != nil {
		return nil, 0, models.ErrorInternalServer{Message: err.Error()}
	}

	var likedSet, savedSet map[uint]bool
	if viewerID > 0 {
		likedSet, err = s.likeRepo.LikedSet(viewerID, postIDs)
		if err != nil {
			return nil, 0, models.ErrorInternalServer{Message: err.Error()}
		}
		savedSet, err = s.savedRepo.SavedSet(viewerID, postIDs)
		if err != nil {
			return nil, 0, models.ErrorInternalServer{Message: err.Error()}
		}
	}

	summaries := make([]models.PostSummary, 0, len(posts))
	for _, post := range posts {
		summary := models.PostSummary{
			ID:        post.ID,
			Title:     post.Title,
			Content:   post.Content,
			CreatedAt: post.CreatedAt,
			Author: models.AuthorSummary{
				ID:       post.Author.ID,
				Username: post.Author.Username,
				Name:     post.Author.Name,
				Avatar:   post.Author.Avatar,
			},
			CommunityID:  post.CommunityID,
			Tags:         tagNames(post.Tags),
			LikeCount:    likeCounts[post.ID],
			CommentCount: commentCounts[post.ID],
		}

		if viewerID > 0 {
			isLiked := likedSet[post.ID]
			isSaved := savedSet[post.ID]
			summary.IsLiked = &isLiked
			summary.IsSaved = &isSaved
		}

		summaries = append(summaries, summary)
	}

	if params.Sort == "" || params.Sort == models.SortShuffle {
		s.shuffle(summaries)
	}

	return summaries, total, nil
}

func (s *feedService) shuffle(summaries []models.PostSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rng.Shuffle(len(summaries), func(i, j int) {
		summaries[i], summaries[j] = summaries[j], summaries[i]
	})
}
