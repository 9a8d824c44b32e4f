package services

import (
	"fmt"
	"os"
	"testing"
	"time"

	"pulsehub/config"
	"pulsehub/models"
	"pulsehub/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	config.InitJWT()
	os.Exit(m.Run())
}

// testEnv wires the full service stack against an isolated in-memory
// database. Each test gets its own database so tests can run in parallel.
type testEnv struct {
	db *gorm.DB

	userRepo         repositories.UserRepository
	postRepo         repositories.PostRepository
	versionRepo      repositories.PostVersionRepository
	tagRepo          repositories.TagRepository
	communityRepo    repositories.CommunityRepository
	notificationRepo repositories.NotificationRepository
	followRepo       repositories.FollowRepository
	likeRepo         repositories.LikeRepository
	commentRepo      repositories.CommentRepository
	savedRepo        repositories.SavedPostRepository
	complaintRepo    repositories.ComplaintRepository

	auth          AuthService
	posts         PostService
	feed          FeedService
	engagement    EngagementService
	membership    MembershipService
	notifications NotificationService
	tags          TagService
	complaints    ComplaintService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	env := &testEnv{
		db:               db,
		userRepo:         repositories.NewUserRepository(db),
		postRepo:         repositories.NewPostRepository(db),
		versionRepo:      repositories.NewPostVersionRepository(db),
		tagRepo:          repositories.NewTagRepository(db),
		communityRepo:    repositories.NewCommunityRepository(db),
		notificationRepo: repositories.NewNotificationRepository(db),
		followRepo:       repositories.NewFollowRepository(db),
		likeRepo:         repositories.NewLikeRepository(db),
		commentRepo:      repositories.NewCommentRepository(db),
		savedRepo:        repositories.NewSavedPostRepository(db),
		complaintRepo:    repositories.NewComplaintRepository(db),
	}

	env.auth = NewAuthService(env.userRepo)
	env.notifications = NewNotificationService(env.notificationRepo, env.followRepo)
	env.membership = NewMembershipService(env.communityRepo)
	env.posts = NewPostService(
		env.postRepo, env.versionRepo, env.tagRepo, env.communityRepo, env.userRepo,
		env.likeRepo, env.commentRepo, env.savedRepo,
		env.membership, env.notifications,
	)
	env.feed = NewFeedService(env.postRepo, env.likeRepo, env.commentRepo, env.savedRepo, 1)
	env.engagement = NewEngagementService(
		env.postRepo, env.likeRepo, env.commentRepo, env.savedRepo, env.followRepo, env.userRepo,
		env.notifications,
	)
	env.tags = NewTagService(env.tagRepo)
	env.complaints = NewComplaintService(env.complaintRepo, env.postRepo, env.commentRepo, env.communityRepo, env.membership)

	return env
}

func (env *testEnv) createUser(t *testing.T, username string) *models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Username: username,
		Email:    fmt.Sprintf("%s-%s@example.com", username, uuid.NewString()[:8]),
		Name:     username,
		Password: string(hashed),
	}
	require.NoError(t, env.userRepo.Create(user))
	return user
}

func (env *testEnv) createCommunity(t *testing.T, owner *models.User) *models.Community {
	t.Helper()

	community, err := env.membership.CreateCommunity(owner.ID, models.CreateCommunityRequest{
		Name:        "gophers-" + uuid.NewString()[:8],
		Description: "a place for gophers to share long-form posts",
	})
	require.NoError(t, err)
	return community
}

func (env *testEnv) addMember(t *testing.T, communityID uint, user *models.User, role models.CommunityRole) {
	t.Helper()

	require.NoError(t, env.communityRepo.CreateMember(&models.CommunityMember{
		CommunityID: communityID,
		UserID:      user.ID,
		Role:        role,
	}))
}

func (env *testEnv) createLivePost(t *testing.T, author *models.User, title string) *models.Post {
	t.Helper()

	post, err := env.posts.Create(author.ID, models.CreatePostRequest{
		Title:   title,
		Content: "some content for " + title,
		Status:  models.StatusPublished,
	})
	require.NoError(t, err)
	return post
}

func (env *testEnv) createDraft(t *testing.T, author *models.User, title string) *models.Post {
	t.Helper()

	post, err := env.posts.Create(author.ID, models.CreatePostRequest{
		Title:   title,
		Content: "draft content",
		Status:  models.StatusDraft,
	})
	require.NoError(t, err)
	return post
}

func (env *testEnv) notificationsFor(t *testing.T, recipientID uint) []models.Notification {
	t.Helper()

	notifications, err := env.notifications.List(recipientID)
	require.NoError(t, err)
	return notifications
}

func timePtr(t time.Time) *time.Time {
	return &t
}
