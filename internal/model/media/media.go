// Package media 媒体文件模型
package media

import "time"

// MediaType 媒体类型
type MediaType int

const (
	TypeImage    MediaType = 1
	TypeVideo    MediaType = 2
	TypeAudio    MediaType = 3
	TypeDocument MediaType = 4
	TypeOther    MediaType = 5
)

// Media 媒体表, 文件本体存储在对象存储, 这里只存元信息和访问地址
type Media struct {
	ID     uint      `gorm:"primaryKey" json:"id"`
	UUID   string    `gorm:"type:varchar(36);not null;uniqueIndex" json:"uuid"`
	UserID uint      `gorm:"not null;index" json:"user_id"`
	Type   MediaType `gorm:"not null;index" json:"type"`
	// 用户头像标记, 每个用户至多一个
	IsAvatar             bool      `gorm:"not null;default:false;index" json:"is_avatar"`
	IsContentAudio       bool      `gorm:"not null;default:false" json:"is_content_audio"`
	FileName             string    `gorm:"type:varchar(200);not null" json:"file_name"`
	OriginalFilepathURL  string    `gorm:"type:varchar(500);not null" json:"original_filepath_url"`
	ThumbnailFilepathURL *string   `gorm:"type:varchar(500)" json:"thumbnail_filepath_url"`
	WatermarkFilepathURL *string   `gorm:"type:varchar(500)" json:"watermark_filepath_url"`
	FileSize             int64     `gorm:"not null;default:0" json:"file_size"`
	CreatedAt            time.Time `gorm:"index:,sort:desc" json:"created_at"`
}

func (Media) TableName() string {
	return "media"
}
