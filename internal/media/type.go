package media

import (
	mediamodel "github.com/par4d15e/blogbackendserver-sub001/internal/model/media"
)

// ListQuery 管理端媒体列表筛选
type ListQuery struct {
	Type     *int  `form:"type" enums:"1,2,3,4,5"`
	IsAvatar *bool `form:"is_avatar"`
	Page     int   `form:"page"`
	PageSize int   `form:"page_size"`
}

// MediaListResponse 偏移分页列表
type MediaListResponse struct {
	Media    []mediamodel.Media `json:"media"`
	Total    int64              `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
}

// PresignResponse 限时下载地址
type PresignResponse struct {
	URL       string `json:"url"`
	ExpiresIn int    `json:"expires_in"`
}
