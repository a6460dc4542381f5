package api

import (
	"Planting/internal/api/handler"
	"Planting/internal/model"
	"Planting/internal/pkg/consts"
	"Planting/internal/pkg/kafka"
	"Planting/internal/pkg/metrics"
	"Planting/internal/pkg/security"
	"Planting/internal/pkg/testutil"
	"Planting/internal/repository"
	"Planting/internal/service"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testApp struct {
	router *gin.Engine
	db     *gorm.DB
	board  *model.Board
	user   *model.User
}

func setupTestApp(t *testing.T) *testApp {
	gin.SetMode(gin.TestMode)
	db := testutil.NewSqliteDB(t)

	m := metrics.NewWithRegistry(prometheus.NewRegistry())
	publisher := kafka.NopPublisher{}

	boardRepo := repository.NewBoardRepo(db)
	topicRepo := repository.NewTopicRepo(db)
	postRepo := repository.NewPostRepository(db)
	boardSvc := service.NewBoardService(boardRepo, topicRepo)
	topicSvc := service.NewTopicService(boardRepo, topicRepo, postRepo, publisher, m)
	postSvc := service.NewPostService(postRepo, publisher, m)
	userSvc := service.NewUserService(repository.NewUserRepo(db))
	metricSvc := service.NewBoardMetricService(boardRepo, repository.NewBoardMetricRepository(db))

	router, err := SetupRouter(&HandlersGroup{
		BoardHandler:       handler.NewBoardHandler(boardSvc),
		TopicHandler:       handler.NewTopicHandler(boardSvc, topicSvc),
		PostHandler:        handler.NewPostHandler(topicSvc, postSvc),
		AccountHandler:     handler.NewAccountHandler(userSvc, false),
		BoardMetricHandler: handler.NewBoardMetricHandler(boardSvc, metricSvc),
	}, RouterOptions{LoginURL: "/login/", LogIndex: "planting-test", Metrics: m})
	require.NoError(t, err)

	return &testApp{
		router: router,
		db:     db,
		board:  testutil.CreateBoard(t, db, "Django", "Django board."),
		user:   testutil.CreateUser(t, db, "john", "123"),
	}
}

func (a *testApp) do(t *testing.T, method, target string, form url.Values, user *model.User) *httptest.ResponseRecorder {
	t.Helper()
	token := ""
	if user != nil {
		var err error
		token, err = security.GenerateToken(user.ID, user.Username)
		require.NoError(t, err)
	}
	return a.doWithToken(t, method, target, form, token)
}

func (a *testApp) doWithToken(t *testing.T, method, target string, form url.Values, token string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "token", Value: token})
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) get(t *testing.T, target string, user *model.User) *httptest.ResponseRecorder {
	return a.do(t, http.MethodGet, target, nil, user)
}

func (a *testApp) post(t *testing.T, target string, form url.Values, user *model.User) *httptest.ResponseRecorder {
	return a.do(t, http.MethodPost, target, form, user)
}

func hasLink(t *testing.T, w *httptest.ResponseRecorder, href string) bool {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(w.Body.String()))
	require.NoError(t, err)
	return doc.Find(fmt.Sprintf("a[href=%q]", href)).Length() > 0
}

func countErrors(t *testing.T, w *httptest.ResponseRecorder) int {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(w.Body.String()))
	require.NoError(t, err)
	return doc.Find(".errors").Length()
}

func (a *testApp) count(t *testing.T, value any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, a.db.Model(value).Count(&n).Error)
	return n
}

func TestHome(t *testing.T) {
	app := setupTestApp(t)

	w := app.get(t, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.True(t, hasLink(t, w, "/boards/1/"))
	assert.Contains(t, w.Body.String(), "Django board.")
}

func TestBoardTopics(t *testing.T) {
	app := setupTestApp(t)
	other := testutil.CreateBoard(t, app.db, "Python", "Python board.")
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	testutil.CreateTopic(t, app.db, app.board, app.user, "Django topic", "hi", base)
	testutil.CreateTopic(t, app.db, other, app.user, "Python topic", "hi", base)

	w := app.get(t, "/boards/1/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, hasLink(t, w, "/"))
	assert.True(t, hasLink(t, w, "/boards/1/new/"))
	assert.True(t, hasLink(t, w, "/boards/1/topics/1/"))
	assert.Contains(t, w.Body.String(), "Django topic")
	assert.NotContains(t, w.Body.String(), "Python topic")

	assert.Equal(t, http.StatusNotFound, app.get(t, "/boards/99/", nil).Code)
	assert.Equal(t, http.StatusNotFound, app.get(t, "/boards/abc/", nil).Code)
}

func TestNewTopic_LoginRequired(t *testing.T) {
	app := setupTestApp(t)

	w := app.get(t, "/boards/1/new/", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login/?next=/boards/1/new/", w.Header().Get("Location"))

	w = app.post(t, "/boards/1/new/", url.Values{"subject": {"s"}, "message": {"m"}}, nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Zero(t, app.count(t, &model.Topic{}))
}

func TestNewTopic_Page(t *testing.T) {
	app := setupTestApp(t)

	w := app.get(t, "/boards/1/new/", app.user)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, hasLink(t, w, "/boards/1/"))

	assert.Equal(t, http.StatusNotFound, app.get(t, "/boards/99/new/", app.user).Code)
	assert.Equal(t, http.StatusNotFound, app.post(t, "/boards/99/new/", url.Values{"subject": {"s"}, "message": {"m"}}, app.user).Code)
}

func TestNewTopic_ValidPostData(t *testing.T) {
	app := setupTestApp(t)

	w := app.post(t, "/boards/1/new/", url.Values{
		"subject": {"Molerat Buttholes"},
		"message": {"More common than you think!"},
	}, app.user)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/boards/1/topics/1/", w.Header().Get("Location"))
	assert.Equal(t, int64(1), app.count(t, &model.Topic{}))
	assert.Equal(t, int64(1), app.count(t, &model.Post{}))

	topic := &model.Topic{}
	require.NoError(t, app.db.First(topic).Error)
	assert.Equal(t, app.user.ID, topic.StarterID)
	assert.Equal(t, app.board.ID, topic.BoardID)
}

func TestNewTopic_InvalidPostData(t *testing.T) {
	app := setupTestApp(t)

	cases := map[string]url.Values{
		"empty form":    {},
		"empty strings": {"subject": {""}, "message": {""}},
		"blank strings": {"subject": {"   "}, "message": {"\n\t"}},
		"too long":      {"subject": {strings.Repeat("x", 256)}, "message": {"ok"}},
	}
	for name, form := range cases {
		t.Run(name, func(t *testing.T) {
			w := app.post(t, "/boards/1/new/", form, app.user)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Positive(t, countErrors(t, w))
			assert.Zero(t, app.count(t, &model.Topic{}))
			assert.Zero(t, app.count(t, &model.Post{}))
		})
	}
}

func TestTopicPosts_Views(t *testing.T) {
	app := setupTestApp(t)
	topic, _ := testutil.CreateTopic(t, app.db, app.board, app.user, "Hello", "first", time.Now())

	for i := 0; i < 10; i++ {
		w := app.get(t, "/boards/1/topics/1/", nil)
		require.Equal(t, http.StatusOK, w.Code)
	}

	reloaded := &model.Topic{}
	require.NoError(t, app.db.First(reloaded, topic.ID).Error)
	assert.Equal(t, int64(10), reloaded.Views)

	other := testutil.CreateBoard(t, app.db, "Python", "Python board.")
	w := app.get(t, fmt.Sprintf("/boards/%d/topics/%d/", other.ID, topic.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, http.StatusNotFound, app.get(t, "/boards/1/topics/99/", nil).Code)
}

func TestTopicPosts_EditLinkOnlyForOwner(t *testing.T) {
	app := setupTestApp(t)
	testutil.CreateTopic(t, app.db, app.board, app.user, "Hello", "first", time.Now())
	stranger := testutil.CreateUser(t, app.db, "jane", "321")

	w := app.get(t, "/boards/1/topics/1/", app.user)
	assert.True(t, hasLink(t, w, "/boards/1/topics/1/posts/1/edit/"))
	assert.True(t, hasLink(t, w, "/boards/1/topics/1/reply/"))

	w = app.get(t, "/boards/1/topics/1/", stranger)
	assert.False(t, hasLink(t, w, "/boards/1/topics/1/posts/1/edit/"))

	w = app.get(t, "/boards/1/topics/1/", nil)
	assert.False(t, hasLink(t, w, "/boards/1/topics/1/posts/1/edit/"))
}

func TestReplyTopic(t *testing.T) {
	app := setupTestApp(t)
	started := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	topic, _ := testutil.CreateTopic(t, app.db, app.board, app.user, "Hello", "first", started)

	w := app.get(t, "/boards/1/topics/1/reply/", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login/?next=/boards/1/topics/1/reply/", w.Header().Get("Location"))

	w = app.get(t, "/boards/1/topics/1/reply/", app.user)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, hasLink(t, w, "/boards/1/topics/1/"))

	w = app.post(t, "/boards/1/topics/1/reply/", url.Values{"message": {""}}, app.user)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), app.count(t, &model.Post{}))

	w = app.post(t, "/boards/1/topics/1/reply/", url.Values{"message": {"hello, world!"}}, app.user)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/boards/1/topics/1/", w.Header().Get("Location"))
	assert.Equal(t, int64(2), app.count(t, &model.Post{}))

	reloaded := &model.Topic{}
	require.NoError(t, app.db.First(reloaded, topic.ID).Error)
	assert.True(t, reloaded.LastUpdated.After(started))

	result, err := repository.NewTopicRepo(app.db).GetTopicsByBoard(t.Context(), app.board.ID)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, int64(1), result[0].Replies)

	assert.Equal(t, http.StatusNotFound, app.get(t, "/boards/1/topics/99/reply/", app.user).Code)
}

func TestEditPost(t *testing.T) {
	app := setupTestApp(t)
	_, post := testutil.CreateTopic(t, app.db, app.board, app.user, "Hello", "original", time.Now())
	stranger := testutil.CreateUser(t, app.db, "jane", "321")
	editURL := "/boards/1/topics/1/posts/1/edit/"

	w := app.get(t, editURL, nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login/?next="+editURL, w.Header().Get("Location"))

	assert.Equal(t, http.StatusNotFound, app.get(t, editURL, stranger).Code)
	w = app.post(t, editURL, url.Values{"message": {"hacked"}}, stranger)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.get(t, editURL, app.user)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "original")

	w = app.post(t, editURL, url.Values{"message": {""}}, app.user)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Positive(t, countErrors(t, w))

	w = app.post(t, editURL, url.Values{"message": {"edited message"}}, app.user)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/boards/1/topics/1/", w.Header().Get("Location"))

	reloaded := &model.Post{}
	require.NoError(t, app.db.First(reloaded, post.ID).Error)
	assert.Equal(t, "edited message", reloaded.Message)
	require.NotNil(t, reloaded.UpdatedByID)
	assert.Equal(t, app.user.ID, *reloaded.UpdatedByID)
	assert.NotNil(t, reloaded.UpdatedAt)

	assert.Equal(t, http.StatusNotFound, app.get(t, "/boards/2/topics/1/posts/1/edit/", app.user).Code)
}

func TestLogin(t *testing.T) {
	app := setupTestApp(t)

	w := app.get(t, "/login/?next=/boards/1/new/", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = app.post(t, "/login/", url.Values{"username": {"john"}, "password": {"wrong"}}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Positive(t, countErrors(t, w))

	w = app.post(t, "/login/", url.Values{"username": {"john"}, "password": {"123"}, "next": {"/boards/1/new/"}}, nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/boards/1/new/", w.Header().Get("Location"))
	assert.Contains(t, w.Header().Get("Set-Cookie"), "token=")
	assert.Contains(t, w.Header().Get("Set-Cookie"), "HttpOnly")

	w = app.post(t, "/login/", url.Values{"username": {"john"}, "password": {"123"}, "next": {"https://evil.example/"}}, nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestSignUpAndLogout(t *testing.T) {
	app := setupTestApp(t)

	w := app.post(t, "/signup/", url.Values{
		"username":         {"jane"},
		"email":            {"jane@doe.com"},
		"password":         {"abcdef123456"},
		"password_confirm": {"abcdef123456"},
	}, nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.Contains(t, w.Header().Get("Set-Cookie"), "token=")
	assert.Equal(t, int64(2), app.count(t, &model.User{}))

	w = app.post(t, "/signup/", url.Values{
		"username":         {"john"},
		"email":            {"john@doe.com"},
		"password":         {"abcdef123456"},
		"password_confirm": {"abcdef123456"},
	}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Positive(t, countErrors(t, w))

	w = app.post(t, "/signup/", url.Values{
		"username":         {"mary"},
		"email":            {"not-an-email"},
		"password":         {"abcdef123456"},
		"password_confirm": {"abcdef"},
	}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.GreaterOrEqual(t, countErrors(t, w), 2)
	assert.Equal(t, int64(2), app.count(t, &model.User{}))

	w = app.post(t, "/logout/", url.Values{}, app.user)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Set-Cookie"), "Max-Age=0")

	// 注销只接受 POST
	w = app.get(t, "/logout/", app.user)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, w.Header().Get("Set-Cookie"))
}

func TestLogout_RevokesToken(t *testing.T) {
	mr := testutil.NewMiniRedis(t)
	app := setupTestApp(t)
	token, err := security.GenerateToken(app.user.ID, app.user.Username)
	require.NoError(t, err)

	w := app.doWithToken(t, http.MethodGet, "/boards/1/new/", nil, token)
	assert.Equal(t, http.StatusOK, w.Code)

	w = app.doWithToken(t, http.MethodPost, "/logout/", url.Values{}, token)
	assert.Equal(t, http.StatusFound, w.Code)
	signature, err := security.ExtractSignature(token)
	require.NoError(t, err)
	assert.True(t, mr.Exists(consts.TokenBlacklistKey+signature))

	w = app.doWithToken(t, http.MethodGet, "/boards/1/new/", nil, token)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login/?next=/boards/1/new/", w.Header().Get("Location"))

	// 已注销的 Token 在公开页面上视为匿名
	w = app.doWithToken(t, http.MethodGet, "/", nil, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, hasLink(t, w, "/login/"))
}

func TestHome_BoardListCache(t *testing.T) {
	mr := testutil.NewMiniRedis(t)
	app := setupTestApp(t)

	w := app.get(t, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{consts.BoardListKey}, mr.Keys())

	// 命中缓存时看不到直接写库的新版块
	testutil.CreateBoard(t, app.db, "Python", "Python board.")
	w = app.get(t, "/", nil)
	assert.NotContains(t, w.Body.String(), "Python board.")

	w = app.post(t, "/boards/1/new/", url.Values{"subject": {"Test title"}, "message": {"Lorem ipsum"}}, app.user)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.False(t, mr.Exists(consts.BoardListKey))

	w = app.get(t, "/", nil)
	assert.Contains(t, w.Body.String(), "Python board.")
	assert.True(t, mr.Exists(consts.BoardListKey))
}

func TestPingAndMetrics(t *testing.T) {
	app := setupTestApp(t)

	w := app.get(t, "/api/ping", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"Code":200,"Message":"pong","Data":null}`, w.Body.String())

	app.get(t, "/", nil)
	w = app.get(t, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "planting_http_requests_total")
}

func TestBoardMetricsAPI(t *testing.T) {
	app := setupTestApp(t)

	w := app.get(t, "/api/boards/1/metrics/7d", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"Code":200`)

	w = app.get(t, "/api/boards/99/metrics/30d", nil)
	assert.Contains(t, w.Body.String(), `"Code":404`)
}

func TestUnknownRoute(t *testing.T) {
	app := setupTestApp(t)
	assert.Equal(t, http.StatusNotFound, app.get(t, "/nowhere/", nil).Code)
}
