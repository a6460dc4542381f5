package service

import (
	"Planting/internal/api/dto"
	"Planting/internal/model"
	"Planting/internal/pkg/consts"
	"Planting/internal/pkg/kafka"
	"Planting/internal/pkg/metrics"
	"Planting/internal/pkg/testutil"
	"Planting/internal/repository"
	"context"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var base = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	db        *gorm.DB
	board     *model.Board
	user      *model.User
	publisher *recordingPublisher
	metrics   *metrics.Metrics
	boards    BoardService
	topics    TopicService
	posts     PostService
}

func newFixture(t *testing.T) *fixture {
	db := testutil.NewSqliteDB(t)
	f := &fixture{
		db:        db,
		board:     testutil.CreateBoard(t, db, "Django", "This is a Django board."),
		user:      testutil.CreateUser(t, db, "john", "123"),
		publisher: &recordingPublisher{},
		metrics:   metrics.NewWithRegistry(prometheus.NewRegistry()),
	}

	boardRepo := repository.NewBoardRepo(db)
	topicRepo := repository.NewTopicRepo(db)
	postRepo := repository.NewPostRepository(db)
	f.boards = NewBoardService(boardRepo, topicRepo)
	f.topics = NewTopicService(boardRepo, topicRepo, postRepo, f.publisher, f.metrics)
	f.posts = NewPostService(postRepo, f.publisher, f.metrics)
	return f
}

func TestBoardService_GetBoardTopics(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	testutil.CreateTopic(t, f.db, f.board, f.user, "Hello", "first", base)

	result, err := f.boards.GetBoardTopics(ctx, f.board.ID)
	require.NoError(t, err)
	assert.Equal(t, "Django", result.Board.Name)
	require.Len(t, result.Topics, 1)
	assert.Equal(t, "Hello", result.Topics[0].Subject)
	assert.Equal(t, "john", result.Topics[0].StarterName)
	assert.Equal(t, "Django", result.Topics[0].BoardName)

	_, err = f.boards.GetBoardTopics(ctx, 99)
	assert.ErrorIs(t, err, ErrBoardNotFound)
}

func TestBoardService_GetBoards(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	testutil.CreateTopic(t, f.db, f.board, f.user, "Hello", "first", base)

	boards, err := f.boards.GetBoards(ctx)
	require.NoError(t, err)
	require.Len(t, boards, 1)
	assert.Equal(t, int64(1), boards[0].TopicsCount)
	assert.Equal(t, int64(1), boards[0].PostsCount)
	require.NotNil(t, boards[0].LastPost)
	assert.Equal(t, "john", boards[0].LastPost.CreatedByName)
}

func TestTopicService_CreateTopic(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	topic, err := f.topics.CreateTopic(ctx, f.user.ID, f.board.ID, &dto.NewTopicDTO{Subject: "Test title", Message: "Lorem ipsum dolor sit amet"})
	require.NoError(t, err)
	assert.NotZero(t, topic.ID)
	assert.Equal(t, f.board.ID, topic.BoardID)
	assert.Equal(t, f.user.ID, topic.StarterID)

	var topics, posts int64
	require.NoError(t, f.db.Model(&model.Topic{}).Count(&topics).Error)
	require.NoError(t, f.db.Model(&model.Post{}).Count(&posts).Error)
	assert.Equal(t, int64(1), topics)
	assert.Equal(t, int64(1), posts)

	assert.Equal(t, []string{kafka.EventTopicCreated}, f.publisher.types())
	assert.Equal(t, 1.0, promtest.ToFloat64(f.metrics.TopicsCreatedTotal))

	_, err = f.topics.CreateTopic(ctx, f.user.ID, 99, &dto.NewTopicDTO{Subject: "x", Message: "y"})
	assert.ErrorIs(t, err, ErrBoardNotFound)
}

func TestTopicService_PublishFailureDoesNotFailRequest(t *testing.T) {
	f := newFixture(t)
	f.publisher.err = errBrokerDown

	_, err := f.topics.CreateTopic(context.Background(), f.user.ID, f.board.ID, &dto.NewTopicDTO{Subject: "s", Message: "m"})
	require.NoError(t, err)
	assert.Equal(t, 1.0, promtest.ToFloat64(f.metrics.EventPublishErrors))
}

func TestTopicService_ViewTopic(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	topic, _ := testutil.CreateTopic(t, f.db, f.board, f.user, "Hello", "first", base)
	testutil.CreatePost(t, f.db, topic, f.user, "second", base.Add(time.Minute))

	detail, err := f.topics.ViewTopic(ctx, f.board.ID, topic.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), detail.Topic.Views)
	assert.Equal(t, int64(1), detail.Topic.Replies)
	require.Len(t, detail.Posts, 2)
	assert.Equal(t, "first", detail.Posts[0].Message)

	other := testutil.CreateBoard(t, f.db, "Python", "Python board.")
	_, err = f.topics.ViewTopic(ctx, other.ID, topic.ID)
	assert.ErrorIs(t, err, ErrTopicNotFound)
}

func TestTopicService_ReplyTopic(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	topic, _ := testutil.CreateTopic(t, f.db, f.board, f.user, "Hello", "first", base)

	later := base.Add(time.Hour)
	f.topics.(*topicServiceImpl).now = func() time.Time { return later }

	post, err := f.topics.ReplyTopic(ctx, f.user.ID, f.board.ID, topic.ID, &dto.PostFormDTO{Message: "hello, world!"})
	require.NoError(t, err)
	assert.Equal(t, topic.ID, post.TopicID)

	reloaded := &model.Topic{}
	require.NoError(t, f.db.First(reloaded, topic.ID).Error)
	assert.True(t, reloaded.LastUpdated.Equal(later))
	assert.Equal(t, []string{kafka.EventPostReplied}, f.publisher.types())

	_, err = f.topics.ReplyTopic(ctx, f.user.ID, f.board.ID, topic.ID+1, &dto.PostFormDTO{Message: "x"})
	assert.ErrorIs(t, err, ErrTopicNotFound)
}

func TestPostService_UpdatePost(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	topic, post := testutil.CreateTopic(t, f.db, f.board, f.user, "Hello", "first", base)
	stranger := testutil.CreateUser(t, f.db, "jane", "321")

	_, err := f.posts.UpdatePost(ctx, stranger.ID, f.board.ID, topic.ID, post.ID, &dto.PostFormDTO{Message: "hacked"})
	assert.ErrorIs(t, err, ErrPostNotFound)

	updated, err := f.posts.UpdatePost(ctx, f.user.ID, f.board.ID, topic.ID, post.ID, &dto.PostFormDTO{Message: "edited message"})
	require.NoError(t, err)
	assert.Equal(t, "edited message", updated.Message)
	require.NotNil(t, updated.UpdatedByID)
	assert.Equal(t, f.user.ID, *updated.UpdatedByID)
	assert.NotNil(t, updated.UpdatedAt)

	reloaded := &model.Post{}
	require.NoError(t, f.db.First(reloaded, post.ID).Error)
	assert.Equal(t, "edited message", reloaded.Message)
	assert.Equal(t, []string{kafka.EventPostEdited}, f.publisher.types())
}

func TestProperty_ViewsAreAdditive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	topic, _ := testutil.CreateTopic(t, f.db, f.board, f.user, "Hello", "first", base)

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 20
	properties := gopter.NewProperties(parameters)

	properties.Property("N views raise the counter by exactly N", prop.ForAll(
		func(n int) bool {
			before := &model.Topic{}
			if err := f.db.First(before, topic.ID).Error; err != nil {
				return false
			}
			for i := 0; i < n; i++ {
				if _, err := f.topics.ViewTopic(ctx, f.board.ID, topic.ID); err != nil {
					return false
				}
			}
			after := &model.Topic{}
			if err := f.db.First(after, topic.ID).Error; err != nil {
				return false
			}
			return after.Views-before.Views == int64(n) && after.LastUpdated.Equal(before.LastUpdated)
		},
		gen.IntRange(0, 10),
	))

	properties.TestingRun(t)
}

func TestBoardMetricService_SyncBoardMetrics(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	topic, _ := testutil.CreateTopic(t, f.db, f.board, f.user, "Hello", "first", base)
	testutil.CreatePost(t, f.db, topic, f.user, "second", base)
	require.NoError(t, repository.NewTopicRepo(f.db).IncrementViews(ctx, topic.ID))

	svc := NewBoardMetricService(repository.NewBoardRepo(f.db), repository.NewBoardMetricRepository(f.db))
	now := time.Now()
	for i := 0; i < 2; i++ {
		synced, err := svc.SyncBoardMetrics(ctx, now)
		require.NoError(t, err)
		assert.Equal(t, 1, synced)
	}

	rows, err := svc.GetBoardMetrics(ctx, f.board.ID, 1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(1), rows[0].TotalTopics)
	assert.Equal(t, int64(2), rows[0].TotalPosts)
	assert.Equal(t, int64(1), rows[0].TotalViews)

	_, err = svc.GetBoardMetrics(ctx, f.board.ID, 0)
	assert.ErrorIs(t, err, ErrParamInvalid)
}

func TestStatusOf(t *testing.T) {
	code, ok := StatusOf(ErrTopicNotFound)
	assert.True(t, ok)
	assert.Equal(t, 404, code)

	code, ok = StatusOf(errBrokerDown)
	assert.False(t, ok)
	assert.Equal(t, 500, code)
}

func TestBoardService_GetBoardsCache(t *testing.T) {
	mr := testutil.NewMiniRedis(t)
	f := newFixture(t)
	ctx := context.Background()
	_, first := testutil.CreateTopic(t, f.db, f.board, f.user, "Hello", "first", base)

	boards, err := f.boards.GetBoards(ctx)
	require.NoError(t, err)
	require.Len(t, boards, 1)
	assert.True(t, mr.Exists(consts.BoardListKey))
	ttl := mr.TTL(consts.BoardListKey)
	assert.Positive(t, ttl)
	assert.LessOrEqual(t, ttl, BoardListTTL)

	testutil.CreateBoard(t, f.db, "Python", "Python board.")
	boards, err = f.boards.GetBoards(ctx)
	require.NoError(t, err)
	assert.Len(t, boards, 1)

	// 回复和编辑都会让首页缓存失效
	_, err = f.topics.ReplyTopic(ctx, f.user.ID, f.board.ID, first.TopicID, &dto.PostFormDTO{Message: "reply"})
	require.NoError(t, err)
	assert.False(t, mr.Exists(consts.BoardListKey))

	boards, err = f.boards.GetBoards(ctx)
	require.NoError(t, err)
	assert.Len(t, boards, 2)
	assert.True(t, mr.Exists(consts.BoardListKey))

	_, err = f.posts.UpdatePost(ctx, f.user.ID, f.board.ID, first.TopicID, first.ID, &dto.PostFormDTO{Message: "edited"})
	require.NoError(t, err)
	assert.False(t, mr.Exists(consts.BoardListKey))
}

func TestBoardService_GetBoardsCorruptCache(t *testing.T) {
	mr := testutil.NewMiniRedis(t)
	f := newFixture(t)

	require.NoError(t, mr.Set(consts.BoardListKey, "not json"))
	boards, err := f.boards.GetBoards(context.Background())
	require.NoError(t, err)
	require.Len(t, boards, 1)
	assert.Equal(t, "Django", boards[0].Name)
}
