package handler

import (
	"Planting/internal/pkg/response"
	"Planting/internal/pkg/util"

	"github.com/gin-gonic/gin"
)

// pathIDs 解析路径中的多个 id，任意一个非法都按 404 处理
func pathIDs(c *gin.Context, names ...string) ([]uint64, bool) {
	ids := make([]uint64, 0, len(names))
	for _, name := range names {
		id, ok := util.ParseID(c.Param(name))
		if !ok {
			response.PageNotFound(c)
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}

func topicURL(boardID, topicID uint64) string {
	return "/boards/" + util.FormatID(boardID) + "/topics/" + util.FormatID(topicID) + "/"
}
