package analytic

// UserLocation 用户地理分布点
type UserLocation struct {
	City      *string `json:"city"`
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

// SectionCount 栏目分布项
type SectionCount struct {
	Section string `json:"section"`
	Count   int64  `json:"count"`
}

// BlogStatistics 博客统计
type BlogStatistics struct {
	TotalBlogs            int64          `json:"total_blogs"`
	PublishedBlogs        int64          `json:"published_blogs"`
	ArchivedBlogs         int64          `json:"archived_blogs"`
	FeaturedBlogs         int64          `json:"featured_blogs"`
	NewBlogsThisMonth     int64          `json:"new_blogs_this_month"`
	UpdatedBlogsThisMonth int64          `json:"updated_blogs_this_month"`
	TotalViews            int64          `json:"total_views"`
	TotalLikes            int64          `json:"total_likes"`
	TotalComments         int64          `json:"total_comments"`
	TotalSaves            int64          `json:"total_saves"`
	SectionDistribution   []SectionCount `json:"section_distribution"`
}

// BlogPerformer 热门博客排行项
type BlogPerformer struct {
	BlogSlug    string `json:"blog_slug"`
	SectionSlug string `json:"section_slug"`
	Title       string `json:"title"`
	Value       int64  `json:"value"`
}

// TopBlogPerformers 博客四项指标前十排行
type TopBlogPerformers struct {
	TopViews    []BlogPerformer `json:"top_views"`
	TopLikes    []BlogPerformer `json:"top_likes"`
	TopComments []BlogPerformer `json:"top_comments"`
	TopSaves    []BlogPerformer `json:"top_saves"`
}

// TagStatistic 标签热度项
type TagStatistic struct {
	TagSlug      string `json:"tag_slug"`
	ChineseTitle string `json:"chinese_title"`
	BlogCount    int64  `json:"blog_count"`
}

// ProjectStatistics 项目统计
type ProjectStatistics struct {
	TotalProjects        int64            `json:"total_projects"`
	PublishedProjects    int64            `json:"published_projects"`
	NewProjectsThisMonth int64            `json:"new_projects_this_month"`
	TypeDistribution     map[string]int64 `json:"type_distribution"`
	SectionDistribution  []SectionCount   `json:"section_distribution"`
}

// PaymentStatistics 支付统计, 周期性字段按 period 聚合
type PaymentStatistics struct {
	TotalRevenue              float64          `json:"total_revenue"`
	TotalPayments             int64            `json:"total_payments"`
	SuccessfulPayments        int64            `json:"successful_payments"`
	PeriodRevenue             float64          `json:"period_revenue"`
	PeriodPayments            int64            `json:"period_payments"`
	YearlyRevenue             float64          `json:"yearly_revenue"`
	TotalTax                  float64          `json:"total_tax"`
	PaymentTypeDistribution   map[string]int64 `json:"payment_type_distribution"`
	PaymentStatusDistribution map[string]int64 `json:"payment_status_distribution"`
}

// RevenueProject 收入排行项
type RevenueProject struct {
	ProjectSlug  string  `json:"project_slug"`
	Title        string  `json:"title"`
	TotalRevenue float64 `json:"total_revenue"`
	PaymentCount int64   `json:"payment_count"`
}

// MediaStatistics 媒体统计
type MediaStatistics struct {
	TotalMedia        int64 `json:"total_media"`
	AvatarCount       int64 `json:"avatar_count"`
	NewMediaThisMonth int64 `json:"new_media_this_month"`
}

// UserStatistics 用户统计
type UserStatistics struct {
	TotalUsers        int64 `json:"total_users"`
	ActiveUsers       int64 `json:"active_users"`
	NewUsersThisMonth int64 `json:"new_users_this_month"`
}

// TrendPoint 按天聚合的趋势点
type TrendPoint struct {
	Date  string  `json:"date"`
	Count int64   `json:"count,omitempty"`
	Value float64 `json:"value,omitempty"`
}

// GrowthTrends 最近 N 天增长趋势
type GrowthTrends struct {
	UserGrowth    []TrendPoint `json:"user_growth"`
	BlogGrowth    []TrendPoint `json:"blog_growth"`
	RevenueGrowth []TrendPoint `json:"revenue_growth"`
}

// OverviewStatistics 总览, 各项只保留关键指标
type OverviewStatistics struct {
	Users    OverviewTotal   `json:"users"`
	Blogs    OverviewTotal   `json:"blogs"`
	Projects OverviewTotal   `json:"projects"`
	Payments OverviewRevenue `json:"payments"`
	Media    OverviewTotal   `json:"media"`
}

type OverviewTotal struct {
	Total int64 `json:"total"`
}

type OverviewRevenue struct {
	TotalRevenue float64 `json:"total_revenue"`
}
