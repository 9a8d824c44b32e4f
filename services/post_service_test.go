package services

import (
	"testing"
	"time"

	"pulsehub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (env *testEnv) createPendingPost(t *testing.T, author *models.User, communityID uint, title string) *models.Post {
	t.Helper()

	post, err := env.posts.Create(author.ID, models.CreatePostRequest{
		Title:       title,
		Content:     "community content",
		CommunityID: &communityID,
	})
	require.NoError(t, err)
	require.Equal(t, models.StatusPending, post.Status)
	return post
}

func TestCreatePersonalPostDefaultsToDraft(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "alice")

	post, err := env.posts.Create(author.ID, models.CreatePostRequest{
		Title:   "My first draft",
		Content: "work in progress",
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusDraft, post.Status)
	assert.Equal(t, models.ModeUser, post.PublicationMode)
	assert.Equal(t, models.TypeArticle, post.PublicationType)
	assert.Nil(t, post.PublishAt)
}

func TestCreatePublishedPostSetsPublishAt(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "alice")

	post, err := env.posts.Create(author.ID, models.CreatePostRequest{
		Title:   "Hello world",
		Content: "published immediately",
		Status:  models.StatusPublished,
	})
	require.NoError(t, err)

	require.NotNil(t, post.PublishAt)
	assert.True(t, post.Live(time.Now()))
}

func TestCreateRejectsInvalidStatus(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "alice")

	_, err := env.posts.Create(author.ID, models.CreatePostRequest{
		Title:   "Sneaky",
		Content: "trying to self-approve",
		Status:  models.StatusPending,
	})
	assert.ErrorAs(t, err, &models.ErrorBadRequest{})
}

func TestCreateSanitizesContent(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "alice")

	post, err := env.posts.Create(author.ID, models.CreatePostRequest{
		Title:   "Markup",
		Content: `<p>hello</p><script>alert("x")</script>`,
	})
	require.NoError(t, err)

	assert.NotContains(t, post.Content, "<script>")
	assert.Contains(t, post.Content, "hello")
}

func TestCreateNormalizesTags(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "alice")

	post, err := env.posts.Create(author.ID, models.CreatePostRequest{
		Title:   "Tagged",
		Content: "content",
		Tags:    []string{"Go", " go ", "Databases", ""},
	})
	require.NoError(t, err)

	names := tagNames(post.Tags)
	assert.ElementsMatch(t, []string{"go", "databases"}, names)
}

func TestCreateCommunityPostAlwaysEntersModeration(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner")
	member := env.createUser(t, "member")
	community := env.createCommunity(t, owner)
	env.addMember(t, community.ID, member, models.RoleMember)

	// A client-supplied PUBLISHED status is ignored for community posts.
	post, err := env.posts.Create(member.ID, models.CreatePostRequest{
		Title:       "Community post",
		Content:     "content",
		CommunityID: &community.ID,
		Status:      models.StatusPublished,
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, post.Status)
	assert.Equal(t, models.ModeCommunity, post.PublicationMode)
	assert.Nil(t, post.PublishAt)
}

func TestCreateCommunityPostRequiresMembership(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner")
	outsider := env.createUser(t, "outsider")
	community := env.createCommunity(t, owner)

	_, err := env.posts.Create(outsider.ID, models.CreatePostRequest{
		Title:       "Drive-by",
		Content:     "content",
		CommunityID: &community.ID,
	})
	assert.ErrorAs(t, err, &models.ErrorForbidden{})
}

func TestCreateUnknownCommunity(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "alice")
	missing := uint(9999)

	_, err := env.posts.Create(author.ID, models.CreatePostRequest{
		Title:       "Nowhere",
		Content:     "content",
		CommunityID: &missing,
	})
	assert.ErrorAs(t, err, &models.ErrorNotFound{})
}

func TestEditDraftSnapshotsPriorVersion(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "alice")
	post := env.createDraft(t, author, "Original title")

	updated, err := env.posts.EditDraft(post.ID, author.ID, models.UpdateDraftRequest{
		Title:   "Revised title",
		Content: "revised content",
	})
	require.NoError(t, err)
	assert.Equal(t, "Revised title", updated.Title)

	versions, err := env.versionRepo.ListByPost(post.ID)
	require.NoError(t, err)
	require.Len(t, versions, 1)
	assert.Equal(t, "Original title", versions[0].Title)
	assert.Equal(t, "draft content", versions[0].Content)
	assert.Equal(t, author.ID, versions[0].EditorID)

	_, err = env.posts.EditDraft(post.ID, author.ID, models.UpdateDraftRequest{
		Title:   "Third title",
		Content: "third content",
	})
	require.NoError(t, err)

	versions, err = env.versionRepo.ListByPost(post.ID)
	require.NoError(t, err)
	assert.Len(t, versions, 2)
}

func TestEditDraftOnlyByAuthor(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "alice")
	other := env.createUser(t, "bob")
	post := env.createDraft(t, author, "Private draft")

	_, err := env.posts.EditDraft(post.ID, other.ID, models.UpdateDraftRequest{
		Title:   "Hijacked",
		Content: "content",
	})
	assert.ErrorAs(t, err, &models.ErrorForbidden{})
}

func TestEditRejectsNonDraft(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "alice")
	post := env.createLivePost(t, author, "Already live")

	_, err := env.posts.EditDraft(post.ID, author.ID, models.UpdateDraftRequest{
		Title:   "Too late",
		Content: "content",
	})
	assert.ErrorAs(t, err, &models.ErrorBadRequest{})
}

func TestPublishingDraftNotifiesFollowers(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "alice")
	follower := env.createUser(t, "bob")
	_, err := env.engagement.ToggleFollow(author.ID, follower.ID)
	require.NoError(t, err)

	post := env.createDraft(t, author, "Soon to be live")

	_, err = env.posts.EditDraft(post.ID, author.ID, models.UpdateDraftRequest{
		Title:   "Now live",
		Content: "content",
		Status:  models.StatusPublished,
	})
	require.NoError(t, err)

	var newPost []models.Notification
	for _, n := range env.notificationsFor(t, follower.ID) {
		if n.Type == models.NotificationNewPost {
			newPost = append(newPost, n)
		}
	}
	require.Len(t, newPost, 1)
	assert.Equal(t, author.ID, newPost[0].SenderID)
	assert.Equal(t, author.Username, newPost[0].SenderName)
}

func TestApprovePublishesPendingPost(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner")
	member := env.createUser(t, "member")
	community := env.createCommunity(t, owner)
	env.addMember(t, community.ID, member, models.RoleMember)
	post := env.createPendingPost(t, member, community.ID, "Pending post")

	approved, err := env.posts.Approve(post.ID, owner.ID, models.ApprovePostRequest{})
	require.NoError(t, err)

	assert.Equal(t, models.StatusPublished, approved.Status)
	assert.Equal(t, models.ModeCommunity, approved.PublicationMode)
	require.NotNil(t, approved.PublishAt)
	assert.True(t, approved.Live(time.Now()))

	var published []models.Notification
	for _, n := range env.notificationsFor(t, member.ID) {
		if n.Type == models.NotificationPostPublished {
			published = append(published, n)
		}
	}
	require.Len(t, published, 1)
	assert.Contains(t, published[0].Message, "Pending post")
}

func TestApprovePersonalPostForbidden(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "alice")
	moderator := env.createUser(t, "mod")
	post := env.createDraft(t, author, "Personal")

	_, err := env.posts.Approve(post.ID, moderator.ID, models.ApprovePostRequest{})
	assert.ErrorAs(t, err, &models.ErrorForbidden{})
}

func TestPlainMemberCannotModerate(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner")
	member := env.createUser(t, "member")
	other := env.createUser(t, "other")
	community := env.createCommunity(t, owner)
	env.addMember(t, community.ID, member, models.RoleMember)
	env.addMember(t, community.ID, other, models.RoleMember)
	post := env.createPendingPost(t, member, community.ID, "Pending")

	_, err := env.posts.Approve(post.ID, other.ID, models.ApprovePostRequest{})
	assert.ErrorAs(t, err, &models.ErrorForbidden{})

	_, err = env.posts.Reject(post.ID, other.ID, "nope")
	assert.ErrorAs(t, err, &models.ErrorForbidden{})
}

func TestSecondModerationDecisionConflicts(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner")
	moderator := env.createUser(t, "mod")
	member := env.createUser(t, "member")
	community := env.createCommunity(t, owner)
	env.addMember(t, community.ID, moderator, models.RoleModerator)
	env.addMember(t, community.ID, member, models.RoleMember)

	post := env.createPendingPost(t, member, community.ID, "Contested")

	_, err := env.posts.Approve(post.ID, owner.ID, models.ApprovePostRequest{})
	require.NoError(t, err)

	// The losing decision sees a conflict, not a silent overwrite.
	_, err = env.posts.Reject(post.ID, moderator.ID, "low quality")
	assert.ErrorAs(t, err, &models.ErrorConflict{})

	current, err := env.postRepo.GetByID(post.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPublished, current.Status)
}

func TestRejectRequiresReason(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner")
	member := env.createUser(t, "member")
	community := env.createCommunity(t, owner)
	env.addMember(t, community.ID, member, models.RoleMember)
	post := env.createPendingPost(t, member, community.ID, "Pending")

	_, err := env.posts.Reject(post.ID, owner.ID, "   ")
	assert.ErrorAs(t, err, &models.ErrorBadRequest{})
}

func TestRejectNotifiesAuthorWithReason(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner")
	member := env.createUser(t, "member")
	community := env.createCommunity(t, owner)
	env.addMember(t, community.ID, member, models.RoleMember)
	post := env.createPendingPost(t, member, community.ID, "Rejected post")

	rejected, err := env.posts.Reject(post.ID, owner.ID, "off topic")
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, rejected.Status)

	var rejections []models.Notification
	for _, n := range env.notificationsFor(t, member.ID) {
		if n.Type == models.NotificationPostRejected {
			rejections = append(rejections, n)
		}
	}
	require.Len(t, rejections, 1)
	assert.Contains(t, rejections[0].Message, "off topic")
}

func TestDeleteCascadesDependents(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "alice")
	reader := env.createUser(t, "bob")
	post := env.createLivePost(t, author, "Doomed post")

	_, err := env.engagement.ToggleLike(post.ID, reader.ID)
	require.NoError(t, err)
	_, err = env.engagement.AddComment(post.ID, reader.ID, "nice post")
	require.NoError(t, err)

	require.NoError(t, env.posts.Delete(post.ID, author.ID))

	_, err = env.posts.Get(post.ID, author.ID)
	assert.ErrorAs(t, err, &models.ErrorNotFound{})

	var likes, comments int64
	require.NoError(t, env.db.Model(&models.Like{}).Where("post_id = ?", post.ID).Count(&likes).Error)
	require.NoError(t, env.db.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&comments).Error)
	assert.Zero(t, likes)
	assert.Zero(t, comments)
}

func TestDeleteOnlyByAuthor(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "alice")
	other := env.createUser(t, "bob")
	post := env.createLivePost(t, author, "Protected")

	err := env.posts.Delete(post.ID, other.ID)
	assert.ErrorAs(t, err, &models.ErrorForbidden{})
}

func TestDraftIsInvisibleToEveryoneButAuthor(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "alice")
	other := env.createUser(t, "bob")
	post := env.createDraft(t, author, "Secret draft")

	_, err := env.posts.Get(post.ID, 0)
	assert.ErrorAs(t, err, &models.ErrorNotFound{})

	_, err = env.posts.Get(post.ID, other.ID)
	assert.ErrorAs(t, err, &models.ErrorNotFound{})

	detail, err := env.posts.Get(post.ID, author.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDraft, detail.Status)
}

func TestPendingPostVisibleToModeratorsAndAuthor(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner")
	member := env.createUser(t, "member")
	other := env.createUser(t, "other")
	community := env.createCommunity(t, owner)
	env.addMember(t, community.ID, member, models.RoleMember)
	env.addMember(t, community.ID, other, models.RoleMember)
	post := env.createPendingPost(t, member, community.ID, "In review")

	_, err := env.posts.Get(post.ID, member.ID)
	assert.NoError(t, err)

	_, err = env.posts.Get(post.ID, owner.ID)
	assert.NoError(t, err)

	_, err = env.posts.Get(post.ID, other.ID)
	assert.ErrorAs(t, err, &models.ErrorNotFound{})
}

func TestScheduledPostHiddenUntilPublishAt(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "alice")
	other := env.createUser(t, "bob")

	post, err := env.posts.Create(author.ID, models.CreatePostRequest{
		Title:     "From the future",
		Content:   "content",
		Status:    models.StatusPublished,
		PublishAt: timePtr(time.Now().Add(24 * time.Hour)),
	})
	require.NoError(t, err)

	_, err = env.posts.Get(post.ID, other.ID)
	assert.ErrorAs(t, err, &models.ErrorNotFound{})

	_, err = env.posts.Get(post.ID, author.ID)
	assert.NoError(t, err)
}

func TestGetDecoratesViewerState(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "alice")
	viewer := env.createUser(t, "bob")
	post := env.createLivePost(t, author, "Decorated")

	_, err := env.engagement.ToggleLike(post.ID, viewer.ID)
	require.NoError(t, err)

	anonymous, err := env.posts.Get(post.ID, 0)
	require.NoError(t, err)
	assert.Nil(t, anonymous.IsLiked)
	assert.Nil(t, anonymous.IsSaved)

	detail, err := env.posts.Get(post.ID, viewer.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.IsLiked)
	require.NotNil(t, detail.IsSaved)
	assert.True(t, *detail.IsLiked)
	assert.False(t, *detail.IsSaved)
	assert.Equal(t, int64(1), detail.LikeCount)
}

func TestVersionsOnlyShownToAuthor(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "alice")
	viewer := env.createUser(t, "bob")
	post := env.createDraft(t, author, "Versioned")

	_, err := env.posts.EditDraft(post.ID, author.ID, models.UpdateDraftRequest{
		Title:   "Versioned v2",
		Content: "content",
		Status:  models.StatusPublished,
	})
	require.NoError(t, err)

	mine, err := env.posts.Get(post.ID, author.ID)
	require.NoError(t, err)
	assert.Len(t, mine.Versions, 1)

	theirs, err := env.posts.Get(post.ID, viewer.ID)
	require.NoError(t, err)
	assert.Empty(t, theirs.Versions)
}

func TestPendingPostsListing(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner")
	member := env.createUser(t, "member")
	community := env.createCommunity(t, owner)
	env.addMember(t, community.ID, member, models.RoleMember)
	env.createPendingPost(t, member, community.ID, "First pending")
	env.createPendingPost(t, member, community.ID, "Second pending")

	views, err := env.posts.PendingPosts(community.ID, owner.ID)
	require.NoError(t, err)
	assert.Len(t, views, 2)

	_, err = env.posts.PendingPosts(community.ID, member.ID)
	assert.ErrorAs(t, err, &models.ErrorForbidden{})

	_, err = env.posts.PendingPosts(9999, owner.ID)
	assert.ErrorAs(t, err, &models.ErrorNotFound{})
}
