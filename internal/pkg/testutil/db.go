package testutil

import (
	"Planting/internal/model"
	"Planting/internal/pkg/database"
	"Planting/internal/pkg/security"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewSqliteDB 内存数据库，单连接保证同一个库
func NewSqliteDB(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

func CreateBoard(t testing.TB, db *gorm.DB, name, description string) *model.Board {
	t.Helper()
	board := &model.Board{Name: name, Description: description}
	require.NoError(t, db.Create(board).Error)
	return board
}

// CreateUser 密码使用 bcrypt 存储，方便走登录流程
func CreateUser(t testing.TB, db *gorm.DB, username, password string) *model.User {
	t.Helper()
	hashed, err := security.HashPassword(password)
	require.NoError(t, err)
	user := &model.User{Username: username, Email: username + "@example.com", Password: hashed}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateTopic 创建主题和首帖
func CreateTopic(t testing.TB, db *gorm.DB, board *model.Board, starter *model.User, subject, message string, at time.Time) (*model.Topic, *model.Post) {
	t.Helper()
	topic := &model.Topic{Subject: subject, BoardID: board.ID, StarterID: starter.ID, LastUpdated: at}
	require.NoError(t, db.Omit("Board", "Starter", "Posts").Create(topic).Error)
	post := CreatePost(t, db, topic, starter, message, at)
	return topic, post
}

func CreatePost(t testing.TB, db *gorm.DB, topic *model.Topic, author *model.User, message string, at time.Time) *model.Post {
	t.Helper()
	post := &model.Post{Message: message, TopicID: topic.ID, CreatedByID: author.ID, CreatedAt: at}
	require.NoError(t, db.Omit("Topic", "CreatedBy", "UpdatedBy").Create(post).Error)
	return post
}
