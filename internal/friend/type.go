package friend

// UpdateFriendRequest 友链分组信息更新
type UpdateFriendRequest struct {
	ChineseTitle       *string `json:"chinese_title"`
	EnglishTitle       *string `json:"english_title"`
	ChineseDescription *string `json:"chinese_description"`
	EnglishDescription *string `json:"english_description"`
}

// CreateLinkRequest 申请友链, 新申请默认隐藏待审核
type CreateLinkRequest struct {
	LogoURL            string  `json:"logo_url" binding:"required,url"`
	SiteURL            string  `json:"site_url" binding:"required,url"`
	ChineseTitle       string  `json:"chinese_title" binding:"required,max=100"`
	EnglishTitle       *string `json:"english_title"`
	ChineseDescription string  `json:"chinese_description" binding:"required,max=200"`
	EnglishDescription *string `json:"english_description"`
}

// UpdateLinkTypeRequest 后台调整友链展示类型
type UpdateLinkTypeRequest struct {
	Type int `json:"type" binding:"required" enums:"1,2,3"` // 1-精选 2-普通 3-隐藏
}
