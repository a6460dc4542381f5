package handler

import (
	"Planting/internal/pkg/response"
	"Planting/internal/pkg/util"
	"Planting/internal/service"

	"github.com/gin-gonic/gin"
)

type BoardMetricHandler struct {
	boardSvc  service.BoardService
	metricSvc service.BoardMetricService
}

func NewBoardMetricHandler(boardSvc service.BoardService, metricSvc service.BoardMetricService) *BoardMetricHandler {
	return &BoardMetricHandler{
		boardSvc:  boardSvc,
		metricSvc: metricSvc,
	}
}

// GetMetrics7Days 获取版块 7 天趋势
func (h *BoardMetricHandler) GetMetrics7Days(c *gin.Context) {
	h.getMetrics(c, 7)
}

// GetMetrics30Days 获取版块 30 天趋势
func (h *BoardMetricHandler) GetMetrics30Days(c *gin.Context) {
	h.getMetrics(c, 30)
}

func (h *BoardMetricHandler) getMetrics(c *gin.Context, days int) {
	boardID, ok := util.ParseID(c.Param("board_id"))
	if !ok {
		response.APIError(c, service.ErrParamInvalid)
		return
	}

	ctx := c.Request.Context()
	if _, err := h.boardSvc.GetBoard(ctx, boardID); err != nil {
		response.APIError(c, err)
		return
	}

	metricData, err := h.metricSvc.GetBoardMetrics(ctx, boardID, days)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.Success(c, "success", metricData)
}
