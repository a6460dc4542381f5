package service

import (
	"Planting/internal/api/dto"
	"Planting/internal/model"
	"Planting/internal/pkg/consts"
	"Planting/internal/pkg/kafka"
	"Planting/internal/pkg/metrics"
	"Planting/internal/pkg/redis"
	"context"
	"errors"
	log "log/slog"

	"github.com/go-sql-driver/mysql"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

// isDuplicateKey 唯一索引冲突
func isDuplicateKey(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// publishEvent 事件发布失败只记录日志，不影响请求
func publishEvent(ctx context.Context, publisher kafka.Publisher, m *metrics.Metrics, event *kafka.ForumEvent) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, event); err != nil {
		m.IncrementEventPublishError()
		log.WarnContext(ctx, "publish forum event failed", "type", event.Type, "err", err)
	}
}

// invalidateBoardCache 首页统计发生变化
func invalidateBoardCache(ctx context.Context) {
	if err := redis.DeleteKey(ctx, consts.BoardListKey); err != nil {
		log.WarnContext(ctx, "invalidate board cache failed", "err", err)
	}
}

func toBoardDTO(board *model.Board) (*dto.BoardDTO, error) {
	boardDTO := &dto.BoardDTO{}
	if err := copier.Copy(boardDTO, board); err != nil {
		return nil, err
	}
	return boardDTO, nil
}

func toTopicDTO(topic *model.Topic, replies int64) (*dto.TopicDTO, error) {
	topicDTO := &dto.TopicDTO{}
	if err := copier.Copy(topicDTO, topic); err != nil {
		return nil, err
	}
	topicDTO.BoardName = topic.Board.Name
	topicDTO.StarterName = topic.Starter.Username
	topicDTO.Replies = replies
	return topicDTO, nil
}

func toPostDTO(post *model.Post, boardID uint64) (*dto.PostDTO, error) {
	postDTO := &dto.PostDTO{}
	if err := copier.Copy(postDTO, post); err != nil {
		return nil, err
	}
	postDTO.BoardID = boardID
	postDTO.CreatedByName = post.CreatedBy.Username
	if post.UpdatedBy != nil {
		postDTO.UpdatedByName = post.UpdatedBy.Username
	}
	return postDTO, nil
}

func toPostDTOs(posts []*model.Post, boardID uint64) ([]*dto.PostDTO, error) {
	result := make([]*dto.PostDTO, 0, len(posts))
	for _, post := range posts {
		postDTO, err := toPostDTO(post, boardID)
		if err != nil {
			return nil, err
		}
		result = append(result, postDTO)
	}
	return result, nil
}
