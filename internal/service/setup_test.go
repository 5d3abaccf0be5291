package service

import (
	"Inkpost/internal/api/config"
	"Inkpost/internal/model"
	"Inkpost/internal/pkg/database"
	"Inkpost/internal/pkg/security"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	security.PasswordCost = bcrypt.MinCost
	os.Exit(m.Run())
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.NewGormDB(&config.DBConfig{
		Driver:   database.DriverSQLite,
		DSN:      fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
		MaxOpen:  1,
		LogLevel: "silent",
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// newFileTestDB 文件数据库，允许多个连接并发写入
func newFileTestDB(t *testing.T, maxOpen int) *gorm.DB {
	t.Helper()

	db, err := database.NewGormDB(&config.DBConfig{
		Driver:   database.DriverSQLite,
		DSN:      filepath.Join(t.TempDir(), "inkpost.db"),
		MaxOpen:  maxOpen,
		LogLevel: "silent",
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name string, isAdmin bool) *model.User {
	t.Helper()
	user := &model.User{
		Name:     name,
		Email:    name + "@example.com",
		Password: "unused",
		IsAdmin:  isAdmin,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedPost(t *testing.T, db *gorm.DB, owner *model.User, title string) *model.Post {
	t.Helper()
	post := &model.Post{UserID: owner.ID, Title: title, Body: title + " body"}
	require.NoError(t, db.Create(post).Error)
	return post
}

func seedComment(t *testing.T, db *gorm.DB, id uint64, post *model.Post, author *model.User, pinned bool) *model.Comment {
	t.Helper()
	comment := &model.Comment{ID: id, PostID: post.ID, UserID: author.ID, Body: "comment", IsPinned: pinned}
	require.NoError(t, db.Create(comment).Error)
	return comment
}

func actorOf(user *model.User) Actor {
	return Actor{ID: user.ID, IsAdmin: user.IsAdmin}
}
