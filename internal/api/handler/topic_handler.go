package handler

import (
	"Planting/internal/api/dto"
	"Planting/internal/pkg/consts"
	"Planting/internal/pkg/response"
	"Planting/internal/pkg/util"
	"Planting/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

type TopicHandler struct {
	boardSvc service.BoardService
	topicSvc service.TopicService
}

func NewTopicHandler(boardSvc service.BoardService, topicSvc service.TopicService) *TopicHandler {
	return &TopicHandler{
		boardSvc: boardSvc,
		topicSvc: topicSvc,
	}
}

func (s *TopicHandler) NewTopicPage(c *gin.Context) {
	ids, ok := pathIDs(c, "board_id")
	if !ok {
		return
	}

	board, err := s.boardSvc.GetBoard(c.Request.Context(), ids[0])
	if err != nil {
		response.Error(c, err)
		return
	}
	renderNewTopic(c, board, &dto.NewTopicDTO{}, dto.FormErrors{})
}

// CreateTopic 表单校验失败时原样回显，成功后跳转到新主题
func (s *TopicHandler) CreateTopic(c *gin.Context) {
	ids, ok := pathIDs(c, "board_id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	board, err := s.boardSvc.GetBoard(ctx, ids[0])
	if err != nil {
		response.Error(c, err)
		return
	}

	form := &dto.NewTopicDTO{}
	formErrors := dto.FormErrors{}
	if err = c.ShouldBind(form); err != nil {
		formErrors.Add(dto.NonFieldErrors, service.ErrParamInvalid.Error())
	} else {
		form.Normalize()
		formErrors = util.ValidateForm(form)
	}
	if formErrors.HasErrors() {
		renderNewTopic(c, board, form, formErrors)
		return
	}

	topic, err := s.topicSvc.CreateTopic(ctx, c.GetUint64(consts.CtxUserID), board.ID, form)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Redirect(c, topicURL(board.ID, topic.ID))
}

func renderNewTopic(c *gin.Context, board *dto.BoardDTO, form *dto.NewTopicDTO, formErrors dto.FormErrors) {
	response.HTML(c, http.StatusOK, "new_topic.html", gin.H{
		"Title":  "Start a New Topic",
		"Board":  board,
		"Form":   form,
		"Errors": formErrors,
	})
}

// TopicPosts 主题详情，每次访问浏览数 +1
func (s *TopicHandler) TopicPosts(c *gin.Context) {
	ids, ok := pathIDs(c, "board_id", "topic_id")
	if !ok {
		return
	}

	detail, err := s.topicSvc.ViewTopic(c.Request.Context(), ids[0], ids[1])
	if err != nil {
		response.Error(c, err)
		return
	}
	response.HTML(c, http.StatusOK, "topic_posts.html", gin.H{
		"Title": detail.Topic.Subject,
		"Topic": detail.Topic,
		"Posts": detail.Posts,
	})
}

func (s *TopicHandler) ReplyPage(c *gin.Context) {
	ids, ok := pathIDs(c, "board_id", "topic_id")
	if !ok {
		return
	}

	topic, err := s.topicSvc.GetTopic(c.Request.Context(), ids[0], ids[1])
	if err != nil {
		response.Error(c, err)
		return
	}
	s.renderReply(c, topic, &dto.PostFormDTO{}, dto.FormErrors{})
}

// ReplyTopic 回复主题，成功后回到主题详情
func (s *TopicHandler) ReplyTopic(c *gin.Context) {
	ids, ok := pathIDs(c, "board_id", "topic_id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	topic, err := s.topicSvc.GetTopic(ctx, ids[0], ids[1])
	if err != nil {
		response.Error(c, err)
		return
	}

	form := &dto.PostFormDTO{}
	formErrors := bindPostForm(c, form)
	if formErrors.HasErrors() {
		s.renderReply(c, topic, form, formErrors)
		return
	}

	if _, err = s.topicSvc.ReplyTopic(ctx, c.GetUint64(consts.CtxUserID), topic.BoardID, topic.ID, form); err != nil {
		response.Error(c, err)
		return
	}
	response.Redirect(c, topicURL(topic.BoardID, topic.ID))
}

func (s *TopicHandler) renderReply(c *gin.Context, topic *dto.TopicDTO, form *dto.PostFormDTO, formErrors dto.FormErrors) {
	recent, err := s.topicSvc.GetRecentPosts(c.Request.Context(), topic.BoardID, topic.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.HTML(c, http.StatusOK, "reply_topic.html", gin.H{
		"Title":       "Post a reply",
		"Topic":       topic,
		"RecentPosts": recent,
		"Form":        form,
		"Errors":      formErrors,
	})
}

// bindPostForm 绑定并校验 message 表单
func bindPostForm(c *gin.Context, form *dto.PostFormDTO) dto.FormErrors {
	if err := c.ShouldBind(form); err != nil {
		formErrors := dto.FormErrors{}
		formErrors.Add(dto.NonFieldErrors, service.ErrParamInvalid.Error())
		return formErrors
	}
	form.Normalize()
	return util.ValidateForm(form)
}
