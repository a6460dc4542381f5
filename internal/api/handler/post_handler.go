package handler

import (
	"Planting/internal/api/dto"
	"Planting/internal/pkg/consts"
	"Planting/internal/pkg/response"
	"Planting/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	topicSvc service.TopicService
	postSvc  service.PostService
}

func NewPostHandler(topicSvc service.TopicService, postSvc service.PostService) *PostHandler {
	return &PostHandler{
		topicSvc: topicSvc,
		postSvc:  postSvc,
	}
}

func (s *PostHandler) EditPostPage(c *gin.Context) {
	ids, ok := pathIDs(c, "board_id", "topic_id", "post_id")
	if !ok {
		return
	}

	post, err := s.postSvc.GetOwnedPost(c.Request.Context(), c.GetUint64(consts.CtxUserID), ids[0], ids[1], ids[2])
	if err != nil {
		response.Error(c, err)
		return
	}
	s.renderEdit(c, post, &dto.PostFormDTO{Message: post.Message}, dto.FormErrors{})
}

// UpdatePost 只能编辑自己的帖子，其他人的帖子返回 404
func (s *PostHandler) UpdatePost(c *gin.Context) {
	ids, ok := pathIDs(c, "board_id", "topic_id", "post_id")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	userID := c.GetUint64(consts.CtxUserID)

	post, err := s.postSvc.GetOwnedPost(ctx, userID, ids[0], ids[1], ids[2])
	if err != nil {
		response.Error(c, err)
		return
	}

	form := &dto.PostFormDTO{}
	formErrors := bindPostForm(c, form)
	if formErrors.HasErrors() {
		s.renderEdit(c, post, form, formErrors)
		return
	}

	updated, err := s.postSvc.UpdatePost(ctx, userID, post.BoardID, post.TopicID, post.ID, form)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Redirect(c, topicURL(updated.BoardID, updated.TopicID))
}

func (s *PostHandler) renderEdit(c *gin.Context, post *dto.PostDTO, form *dto.PostFormDTO, formErrors dto.FormErrors) {
	topic, err := s.topicSvc.GetTopic(c.Request.Context(), post.BoardID, post.TopicID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.HTML(c, http.StatusOK, "edit_post.html", gin.H{
		"Title":  "Edit post",
		"Topic":  topic,
		"Post":   post,
		"Form":   form,
		"Errors": formErrors,
	})
}
