package service

import (
	"Inkpost/internal/api/dto"
	"Inkpost/internal/model"
	"Inkpost/internal/repository"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func tagNamesOf(t *testing.T, db *gorm.DB, postID uint64) []string {
	t.Helper()
	var names []string
	require.NoError(t, db.Table("tags").
		Joins("JOIN post_tags ON post_tags.tag_id = tags.id").
		Where("post_tags.post_id = ?", postID).
		Order("tags.name").
		Pluck("tags.name", &names).Error)
	return names
}

func TestCreatePost_DedupesTags(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(repository.NewPostRepository(db))
	ctx := context.Background()

	owner := seedUser(t, db, "owner", false)
	goTag := &model.Tag{Name: "go"}
	require.NoError(t, db.Create(goTag).Error)

	res, err := svc.CreatePost(ctx, actorOf(owner), &dto.CreatePostDTO{
		Title:  "Hello",
		Body:   "World",
		Tags:   dto.StringList{"go", "go"},
		TagIDs: dto.IDList{goTag.ID},
	})
	require.NoError(t, err)
	require.Len(t, res.Tags, 1)
	assert.Equal(t, goTag.ID, res.Tags[0].ID)
	assert.Equal(t, []string{"go"}, tagNamesOf(t, db, res.ID))

	var tagCount int64
	require.NoError(t, db.Model(&model.Tag{}).Count(&tagCount).Error)
	assert.Equal(t, int64(1), tagCount)
}

func TestCreatePost_TagNamesAreCaseSensitive(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(repository.NewPostRepository(db))

	owner := seedUser(t, db, "owner", false)
	res, err := svc.CreatePost(context.Background(), actorOf(owner), &dto.CreatePostDTO{
		Title:  "Hello",
		Body:   "World",
		Tags:   dto.StringList{"Go", "go"},
		TagIDs: dto.IDList{},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "go"}, tagNamesOf(t, db, res.ID))
}

func TestCreatePost_UnknownTagIDRollsBack(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(repository.NewPostRepository(db))

	owner := seedUser(t, db, "owner", false)
	_, err := svc.CreatePost(context.Background(), actorOf(owner), &dto.CreatePostDTO{
		Title:  "Hello",
		Body:   "World",
		Tags:   dto.StringList{"fresh"},
		TagIDs: dto.IDList{42},
	})

	var fields FieldErrors
	require.ErrorAs(t, err, &fields)
	assert.Contains(t, fields, "tag_ids")

	var posts, tags int64
	require.NoError(t, db.Model(&model.Post{}).Count(&posts).Error)
	require.NoError(t, db.Model(&model.Tag{}).Count(&tags).Error)
	assert.Zero(t, posts)
	assert.Zero(t, tags)
}

func TestUpdatePost_SyncsTags(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(repository.NewPostRepository(db))
	ctx := context.Background()

	owner := seedUser(t, db, "owner", false)
	created, err := svc.CreatePost(ctx, actorOf(owner), &dto.CreatePostDTO{
		Title: "Hello", Body: "World",
		Tags: dto.StringList{"go", "sql"}, TagIDs: dto.IDList{},
	})
	require.NoError(t, err)

	updated, err := svc.UpdatePost(ctx, actorOf(owner), &dto.UpdatePostDTO{
		PostID: created.ID, Title: "Hello again", Body: "Changed",
		Tags: dto.StringList{"sql", "rust"}, TagIDs: dto.IDList{},
	})
	require.NoError(t, err)
	assert.Equal(t, "Hello again", updated.Title)
	assert.Equal(t, "Changed", updated.Body)
	assert.Equal(t, []string{"rust", "sql"}, tagNamesOf(t, db, created.ID))

	// 标签本身保留
	var tagCount int64
	require.NoError(t, db.Model(&model.Tag{}).Count(&tagCount).Error)
	assert.Equal(t, int64(3), tagCount)
}

func TestUpdatePost_RequiresEditable(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(repository.NewPostRepository(db))

	owner := seedUser(t, db, "owner", false)
	stranger := seedUser(t, db, "stranger", false)
	post := seedPost(t, db, owner, "mine")

	_, err := svc.UpdatePost(context.Background(), actorOf(stranger), &dto.UpdatePostDTO{
		PostID: post.ID, Title: "hijack", Body: "hijack",
		Tags: dto.StringList{}, TagIDs: dto.IDList{},
	})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	var stored model.Post
	require.NoError(t, db.First(&stored, post.ID).Error)
	assert.Equal(t, "mine", stored.Title)
}

func TestDeletePost_Cascades(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(repository.NewPostRepository(db))
	ctx := context.Background()

	owner := seedUser(t, db, "owner", false)
	created, err := svc.CreatePost(ctx, actorOf(owner), &dto.CreatePostDTO{
		Title: "Hello", Body: "World",
		Tags: dto.StringList{"go"}, TagIDs: dto.IDList{},
	})
	require.NoError(t, err)
	post := &model.Post{ID: created.ID}
	seedComment(t, db, 1, post, owner, true)
	seedComment(t, db, 2, post, owner, false)

	stranger := seedUser(t, db, "stranger", false)
	assert.ErrorIs(t, svc.DeletePost(ctx, actorOf(stranger), created.ID), ErrPermissionDenied)

	require.NoError(t, svc.DeletePost(ctx, actorOf(owner), created.ID))

	var comments, links, tags int64
	require.NoError(t, db.Model(&model.Comment{}).Where("post_id = ?", created.ID).Count(&comments).Error)
	require.NoError(t, db.Model(&model.PostTag{}).Where("post_id = ?", created.ID).Count(&links).Error)
	require.NoError(t, db.Model(&model.Tag{}).Count(&tags).Error)
	assert.Zero(t, comments)
	assert.Zero(t, links)
	assert.Equal(t, int64(1), tags)

	var stored model.Post
	require.NoError(t, db.First(&stored, created.ID).Error)
	assert.True(t, stored.IsDeleted)

	_, err = svc.GetPostDetails(ctx, created.ID)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestListPosts_KeywordAndCounts(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(repository.NewPostRepository(db))
	ctx := context.Background()

	alice := seedUser(t, db, "alice", false)
	bob := seedUser(t, db, "bob", false)

	_, err := svc.CreatePost(ctx, actorOf(alice), &dto.CreatePostDTO{
		Title: "Generics", Body: "type params", Tags: dto.StringList{"golang"}, TagIDs: dto.IDList{},
	})
	require.NoError(t, err)
	bobPost, err := svc.CreatePost(ctx, actorOf(bob), &dto.CreatePostDTO{
		Title: "Borrowing", Body: "lifetimes", Tags: dto.StringList{}, TagIDs: dto.IDList{},
	})
	require.NoError(t, err)
	seedComment(t, db, 1, &model.Post{ID: bobPost.ID}, alice, false)

	byTag, err := svc.ListPosts(ctx, &dto.PageQuery{Limit: 10, Keyword: "GOLANG"})
	require.NoError(t, err)
	require.Len(t, byTag.Data, 1)
	assert.Equal(t, "Generics", byTag.Data[0].Title)

	byOwner, err := svc.ListPosts(ctx, &dto.PageQuery{Limit: 10, Keyword: "bob@"})
	require.NoError(t, err)
	require.Len(t, byOwner.Data, 1)
	got := byOwner.Data[0]
	assert.Equal(t, "Borrowing", got.Title)
	require.NotNil(t, got.User)
	assert.Equal(t, "bob", got.User.Name)
	require.NotNil(t, got.CommentsCount)
	assert.Equal(t, int64(1), *got.CommentsCount)
	require.NotNil(t, got.TagsCount)
	assert.Equal(t, int64(0), *got.TagsCount)

	all, err := svc.ListPosts(ctx, &dto.PageQuery{Limit: 1, Page: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(2), all.Total)
	assert.Equal(t, 2, all.LastPage)
	assert.Equal(t, 2, all.CurrentPage)
	require.Len(t, all.Data, 1)
}

func TestGetPostDetails_PinnedFirst(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(repository.NewPostRepository(db))

	owner := seedUser(t, db, "owner", false)
	post := seedPost(t, db, owner, "first")
	seedComment(t, db, 1, post, owner, false)
	seedComment(t, db, 2, post, owner, true)
	seedComment(t, db, 3, post, owner, false)

	res, err := svc.GetPostDetails(context.Background(), post.ID)
	require.NoError(t, err)
	require.Len(t, res.Comments, 3)
	assert.Equal(t, uint64(2), res.Comments[0].ID)
	assert.True(t, res.Comments[0].IsPinned)
	require.NotNil(t, res.Comments[0].User)
	require.NotNil(t, res.User)
	assert.Equal(t, "owner", res.User.Name)
}
