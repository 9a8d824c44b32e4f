package services

import (
	"testing"

	"pulsehub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCommunitySeedsOwnerAsAdmin(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner")

	community := env.createCommunity(t, owner)
	assert.Equal(t, owner.ID, community.OwnerID)

	role, err := env.membership.RoleOf(community.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, role)

	require.NoError(t, env.membership.RequireModerator(community.ID, owner.ID))
}

func TestRoleOfNonMember(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner")
	outsider := env.createUser(t, "outsider")
	community := env.createCommunity(t, owner)

	role, err := env.membership.RoleOf(community.ID, outsider.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleNone, role)

	err = env.membership.RequireModerator(community.ID, outsider.ID)
	assert.ErrorAs(t, err, &models.ErrorForbidden{})
}

func TestToggleSubscription(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner")
	user := env.createUser(t, "user")
	community := env.createCommunity(t, owner)

	subscribed, err := env.membership.ToggleSubscription(community.ID, user.ID)
	require.NoError(t, err)
	assert.True(t, subscribed)

	role, err := env.membership.RoleOf(community.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleMember, role)

	subscribed, err = env.membership.ToggleSubscription(community.ID, user.ID)
	require.NoError(t, err)
	assert.False(t, subscribed)

	role, err = env.membership.RoleOf(community.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleNone, role)

	_, err = env.membership.ToggleSubscription(9999, user.ID)
	assert.ErrorAs(t, err, &models.ErrorNotFound{})
}

func TestToggleNotifications(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner")
	member := env.createUser(t, "member")
	outsider := env.createUser(t, "outsider")
	community := env.createCommunity(t, owner)
	env.addMember(t, community.ID, member, models.RoleMember)

	enabled, err := env.membership.ToggleNotifications(community.ID, member.ID)
	require.NoError(t, err)
	assert.True(t, enabled)

	enabled, err = env.membership.ToggleNotifications(community.ID, member.ID)
	require.NoError(t, err)
	assert.False(t, enabled)

	_, err = env.membership.ToggleNotifications(community.ID, outsider.ID)
	assert.ErrorAs(t, err, &models.ErrorNotFound{})
}

func TestGetCommunityDetail(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner")
	member := env.createUser(t, "member")
	community := env.createCommunity(t, owner)
	env.addMember(t, community.ID, member, models.RoleMember)
	env.createPendingPost(t, member, community.ID, "Pending")

	published := env.createPendingPost(t, member, community.ID, "Approved")
	_, err := env.posts.Approve(published.ID, owner.ID, models.ApprovePostRequest{})
	require.NoError(t, err)

	detail, err := env.membership.GetCommunity(community.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), detail.MembersCount)
	// Pending posts do not count toward the community's post total.
	assert.Equal(t, int64(1), detail.PostsCount)
	assert.Nil(t, detail.IsFollow)

	viewerDetail, err := env.membership.GetCommunity(community.ID, member.ID)
	require.NoError(t, err)
	require.NotNil(t, viewerDetail.IsFollow)
	assert.True(t, *viewerDetail.IsFollow)
	require.NotNil(t, viewerDetail.NotificationsEnabled)
	assert.False(t, *viewerDetail.NotificationsEnabled)

	_, err = env.membership.GetCommunity(9999, 0)
	assert.ErrorAs(t, err, &models.ErrorNotFound{})
}

func TestListCommunitiesAggregatesTags(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner")
	member := env.createUser(t, "member")
	community := env.createCommunity(t, owner)
	env.addMember(t, community.ID, member, models.RoleMember)

	post, err := env.posts.Create(member.ID, models.CreatePostRequest{
		Title:       "Tagged community post",
		Content:     "content",
		CommunityID: &community.ID,
		Tags:        []string{"go", "testing"},
	})
	require.NoError(t, err)
	_, err = env.posts.Approve(post.ID, owner.ID, models.ApprovePostRequest{})
	require.NoError(t, err)

	summaries, err := env.membership.ListCommunities(models.CommunityListParams{})
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, []string{"go", "testing"}, summaries[0].Tags)
	assert.Equal(t, int64(2), summaries[0].MembersCount)
	assert.Equal(t, int64(1), summaries[0].PostsCount)
}

func TestListCommunitiesSearch(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner")

	_, err := env.membership.CreateCommunity(owner.ID, models.CreateCommunityRequest{
		Name:        "gophers club",
		Description: "a community dedicated to everything about Go",
	})
	require.NoError(t, err)
	_, err = env.membership.CreateCommunity(owner.ID, models.CreateCommunityRequest{
		Name:        "rustaceans den",
		Description: "a community dedicated to everything about Rust",
	})
	require.NoError(t, err)

	summaries, err := env.membership.ListCommunities(models.CommunityListParams{Q: "GOPHERS"})
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "gophers club", summaries[0].Name)
}

func TestGetTagsListsEverything(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "alice")

	_, err := env.posts.Create(author.ID, models.CreatePostRequest{
		Title:   "Tagged",
		Content: "content",
		Tags:    []string{"go", "sql", "go"},
	})
	require.NoError(t, err)

	tags, err := env.tags.GetTags()
	require.NoError(t, err)

	names := tagNames(tags)
	assert.ElementsMatch(t, []string{"go", "sql"}, names)
}
