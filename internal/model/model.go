package model

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/par4d15e/blogbackendserver-sub001/internal/model/auth"
	"github.com/par4d15e/blogbackendserver-sub001/internal/model/blog"
	"github.com/par4d15e/blogbackendserver-sub001/internal/model/board"
	"github.com/par4d15e/blogbackendserver-sub001/internal/model/friend"
	"github.com/par4d15e/blogbackendserver-sub001/internal/model/media"
	"github.com/par4d15e/blogbackendserver-sub001/internal/model/payment"
	"github.com/par4d15e/blogbackendserver-sub001/internal/model/project"
	"github.com/par4d15e/blogbackendserver-sub001/internal/model/section"
	"github.com/par4d15e/blogbackendserver-sub001/internal/model/seo"
	"github.com/par4d15e/blogbackendserver-sub001/internal/model/subscriber"
	"github.com/par4d15e/blogbackendserver-sub001/internal/model/tag"
	"github.com/par4d15e/blogbackendserver-sub001/internal/model/user"
)

// GetModels 返回所有需要迁移的模型
// 注意顺序: 被引用的表放前面, AutoMigrate 按序建表
func GetModels() []interface{} {
	return []interface{}{
		&user.User{},
		&auth.RefreshToken{},
		&auth.Code{},
		&auth.SocialAccount{},
		&seo.Seo{},
		&section.Section{},
		&tag.Tag{},
		&media.Media{},
		&blog.Blog{},
		&blog.BlogStatus{},
		&blog.BlogStats{},
		&blog.BlogComment{},
		&blog.SavedBlog{},
		&blog.BlogTag{},
		&blog.BlogSummary{},
		&board.Board{},
		&board.BoardComment{},
		&friend.Friend{},
		&friend.FriendList{},
		&payment.Tax{},
		&payment.PaymentRecord{},
		&project.Project{},
		&project.ProjectAttachment{},
		&project.ProjectMonetization{},
		&subscriber.Subscriber{},
	}
}

func InitTable(db *gorm.DB) error {
	models := GetModels()

	// 执行自动迁移
	err := db.AutoMigrate(models...)
	if err != nil {
		return fmt.Errorf("数据库表迁移失败: %v", err)
	}

	return nil
}
