package service

import (
	"Inkpost/internal/api/dto"
	"Inkpost/internal/model"
	"Inkpost/internal/pkg/security"
	"Inkpost/internal/repository"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newUserService(db *gorm.DB) (UserService, *security.TokenManager, security.Blacklist) {
	tokens := security.NewTokenManager("test-secret", time.Hour, "Inkpost")
	blacklist := security.NewMemoryBlacklist()
	return NewUserService(repository.NewUserRepo(db), tokens, blacklist), tokens, blacklist
}

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc, tokens, _ := newUserService(db)
	ctx := context.Background()

	token, err := svc.Register(ctx, &dto.RegisterDTO{Name: "alice", Email: "alice@example.com", Password: "Secret1!"})
	require.NoError(t, err)
	claims, err := tokens.ValidateToken(token)
	require.NoError(t, err)

	var stored model.User
	require.NoError(t, db.First(&stored, claims.UserID).Error)
	assert.NotEqual(t, "Secret1!", stored.Password)
	assert.False(t, stored.IsAdmin)

	_, err = svc.Register(ctx, &dto.RegisterDTO{Name: "alice2", Email: "alice@example.com", Password: "Secret1!"})
	var fields FieldErrors
	require.ErrorAs(t, err, &fields)
	assert.Equal(t, []string{"Email already exists."}, fields["email"])

	_, err = svc.Login(ctx, &dto.LoginDTO{Email: "alice@example.com", Password: "Secret1!"})
	assert.NoError(t, err)

	_, err = svc.Login(ctx, &dto.LoginDTO{Email: "alice@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, &dto.LoginDTO{Email: "nobody@example.com", Password: "Secret1!"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogout_RevokesToken(t *testing.T) {
	db := newTestDB(t)
	svc, _, blacklist := newUserService(db)
	ctx := context.Background()

	token, err := svc.Register(ctx, &dto.RegisterDTO{Name: "alice", Email: "alice@example.com", Password: "Secret1!"})
	require.NoError(t, err)
	require.NoError(t, svc.Logout(ctx, token))

	signature, err := security.ExtractSignature(token)
	require.NoError(t, err)
	revoked, err := blacklist.IsRevoked(ctx, signature)
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestUpdateUser_RehashesPassword(t *testing.T) {
	db := newTestDB(t)
	svc, _, _ := newUserService(db)
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterDTO{Name: "alice", Email: "alice@example.com", Password: "Secret1!"})
	require.NoError(t, err)
	var alice model.User
	require.NoError(t, db.Where("email = ?", "alice@example.com").First(&alice).Error)

	token, err := svc.UpdateUser(ctx, actorOf(&alice), &dto.UpdateUserDTO{
		Name: "alice b", Email: "alice.b@example.com", Password: "Newpass2#",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	_, err = svc.Login(ctx, &dto.LoginDTO{Email: "alice.b@example.com", Password: "Newpass2#"})
	assert.NoError(t, err)
	_, err = svc.Login(ctx, &dto.LoginDTO{Email: "alice.b@example.com", Password: "alice.b@example.com"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateUser_Authorization(t *testing.T) {
	db := newTestDB(t)
	svc, _, _ := newUserService(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice", false)
	bob := seedUser(t, db, "bob", false)
	admin := seedUser(t, db, "admin", true)

	_, err := svc.UpdateUser(ctx, actorOf(bob), &dto.UpdateUserDTO{
		UserID: alice.ID, Name: "hacked", Email: "hacked@example.com", Password: "Secret1!",
	})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = svc.UpdateUser(ctx, actorOf(bob), &dto.UpdateUserDTO{
		Name: "bob", Email: alice.Email, Password: "Secret1!",
	})
	var fields FieldErrors
	require.ErrorAs(t, err, &fields)

	token, err := svc.UpdateUser(ctx, actorOf(admin), &dto.UpdateUserDTO{
		UserID: alice.ID, Name: "alice renamed", Email: alice.Email, Password: "Secret1!",
	})
	require.NoError(t, err)
	assert.Empty(t, token)

	var stored model.User
	require.NoError(t, db.First(&stored, alice.ID).Error)
	assert.Equal(t, "alice renamed", stored.Name)
}

func TestDeleteUser_KeepsContent(t *testing.T) {
	db := newTestDB(t)
	svc, _, _ := newUserService(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice", false)
	bob := seedUser(t, db, "bob", false)
	post := seedPost(t, db, alice, "orphan")
	seedComment(t, db, 1, post, alice, false)

	assert.ErrorIs(t, svc.DeleteUser(ctx, actorOf(bob), alice.ID), ErrPermissionDenied)
	require.NoError(t, svc.DeleteUser(ctx, actorOf(alice), 0))

	_, err := svc.GetUserDetails(ctx, alice.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	var posts, comments int64
	require.NoError(t, db.Model(&model.Post{}).Where("user_id = ?", alice.ID).Count(&posts).Error)
	require.NoError(t, db.Model(&model.Comment{}).Where("user_id = ?", alice.ID).Count(&comments).Error)
	assert.Equal(t, int64(1), posts)
	assert.Equal(t, int64(1), comments)
}

func TestListUsers_Counts(t *testing.T) {
	db := newTestDB(t)
	svc, _, _ := newUserService(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice", false)
	seedUser(t, db, "bob", false)
	live := seedPost(t, db, alice, "live")
	gone := seedPost(t, db, alice, "gone")
	require.NoError(t, db.Model(gone).Update("is_deleted", true).Error)
	seedComment(t, db, 1, live, alice, false)

	page, err := svc.ListUsers(ctx, &dto.PageQuery{Limit: 10, Keyword: "ALI"})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	require.NotNil(t, page.Data[0].PostsCount)
	require.NotNil(t, page.Data[0].CommentsCount)
	assert.Equal(t, int64(1), *page.Data[0].PostsCount)
	assert.Equal(t, int64(1), *page.Data[0].CommentsCount)

	details, err := svc.GetUserDetails(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, details.Posts, 1)
	assert.Equal(t, "live", details.Posts[0].Title)
}

func TestSetAdmin(t *testing.T) {
	db := newTestDB(t)
	svc, _, _ := newUserService(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice", false)
	require.NoError(t, svc.SetAdmin(ctx, alice.Email, true))

	actor, err := svc.GetActor(ctx, alice.ID)
	require.NoError(t, err)
	require.NotNil(t, actor)
	assert.True(t, actor.IsAdmin)

	assert.ErrorIs(t, svc.SetAdmin(ctx, "missing@example.com", true), ErrUserNotFound)

	missing, err := svc.GetActor(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}
