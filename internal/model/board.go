package model

type Board struct {
	ID          uint64 `gorm:"primaryKey"`
	Name        string `gorm:"type:varchar(30);not null;uniqueIndex:idx_board_name" json:"name"`
	Description string `gorm:"type:varchar(100);not null;default:''" json:"description"`

	// 关联关系
	Topics []Topic `gorm:"foreignKey:BoardID;references:ID"`
}

func (Board) TableName() string {
	return "boards"
}

// BoardSummary 首页展示用的版块统计
type BoardSummary struct {
	Board
	TopicsCount int64
	PostsCount  int64
	LastPost    *Post
}
