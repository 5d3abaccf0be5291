package service

import (
	"Inkpost/internal/api/dto"
	"Inkpost/internal/model"
	"Inkpost/internal/repository"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagLifecycle(t *testing.T) {
	db := newTestDB(t)
	svc := NewTagService(repository.NewTagRepository(db))
	ctx := context.Background()

	created, err := svc.CreateTag(ctx, &dto.CreateTagDTO{Name: "golang"})
	require.NoError(t, err)
	assert.Equal(t, "golang", created.Name)

	_, err = svc.CreateTag(ctx, &dto.CreateTagDTO{Name: "golang"})
	assert.ErrorIs(t, err, ErrTagExists)

	_, err = svc.CreateTag(ctx, &dto.CreateTagDTO{Name: "rust"})
	require.NoError(t, err)

	page, err := svc.ListTags(ctx, &dto.PageQuery{Limit: 10, Keyword: "GO"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "golang", page.Data[0].Name)

	owner := seedUser(t, db, "owner", false)
	post := seedPost(t, db, owner, "tagged")
	require.NoError(t, db.Create(&model.PostTag{PostID: post.ID, TagID: created.ID}).Error)

	require.NoError(t, svc.DeleteTag(ctx, created.ID))
	var links int64
	require.NoError(t, db.Model(&model.PostTag{}).Where("tag_id = ?", created.ID).Count(&links).Error)
	assert.Zero(t, links)

	assert.ErrorIs(t, svc.DeleteTag(ctx, created.ID), ErrTagNotFound)
}
