package handler

import (
	"Planting/internal/pkg/response"
	"Planting/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

type BoardHandler struct {
	boardSvc service.BoardService
}

func NewBoardHandler(boardSvc service.BoardService) *BoardHandler {
	return &BoardHandler{
		boardSvc: boardSvc,
	}
}

// Home 首页版块列表
func (s *BoardHandler) Home(c *gin.Context) {
	boards, err := s.boardSvc.GetBoards(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.HTML(c, http.StatusOK, "home.html", gin.H{
		"Boards": boards,
	})
}

// BoardTopics 版块下的主题列表
func (s *BoardHandler) BoardTopics(c *gin.Context) {
	ids, ok := pathIDs(c, "board_id")
	if !ok {
		return
	}

	result, err := s.boardSvc.GetBoardTopics(c.Request.Context(), ids[0])
	if err != nil {
		response.Error(c, err)
		return
	}
	response.HTML(c, http.StatusOK, "topics.html", gin.H{
		"Title":  result.Board.Name,
		"Board":  result.Board,
		"Topics": result.Topics,
	})
}
