package analytic

import (
	"time"

	"gorm.io/gorm"

	blogmodel "github.com/par4d15e/blogbackendserver-sub001/internal/model/blog"
	mediamodel "github.com/par4d15e/blogbackendserver-sub001/internal/model/media"
	paymentmodel "github.com/par4d15e/blogbackendserver-sub001/internal/model/payment"
	projectmodel "github.com/par4d15e/blogbackendserver-sub001/internal/model/project"
	usermodel "github.com/par4d15e/blogbackendserver-sub001/internal/model/user"
)

// AnalyticRepository 统计查询, 全部是聚合只读查询
type AnalyticRepository struct {
	db *gorm.DB
}

func NewAnalyticRepository(db *gorm.DB) *AnalyticRepository {
	return &AnalyticRepository{db: db}
}

// dateRange 周期起点, 未知周期按本月算
func dateRange(period string) (time.Time, time.Time) {
	now := time.Now().UTC()
	var start time.Time
	switch period {
	case "day":
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	case "week":
		weekday := int(now.Weekday())
		// 周一作为一周的起点
		if weekday == 0 {
			weekday = 7
		}
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).
			AddDate(0, 0, -(weekday - 1))
	case "year":
		start = time.Date(now.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	default:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
	return start, now
}

// UserLocations 有经纬度的用户坐标
func (r *AnalyticRepository) UserLocations() ([]UserLocation, error) {
	var locations []UserLocation
	err := r.db.Model(&usermodel.User{}).
		Select("city, longitude, latitude").
		Where("longitude IS NOT NULL AND latitude IS NOT NULL").
		Scan(&locations).Error
	if err != nil {
		return nil, err
	}
	return locations, nil
}

func (r *AnalyticRepository) BlogStatistics() (*BlogStatistics, error) {
	stats := &BlogStatistics{}

	if err := r.db.Model(&blogmodel.Blog{}).Count(&stats.TotalBlogs).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&blogmodel.BlogStatus{}).
		Where("is_published = ?", true).Count(&stats.PublishedBlogs).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&blogmodel.BlogStatus{}).
		Where("is_archived = ?", true).Count(&stats.ArchivedBlogs).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&blogmodel.BlogStatus{}).
		Where("is_featured = ?", true).Count(&stats.FeaturedBlogs).Error; err != nil {
		return nil, err
	}

	start, end := dateRange("month")
	if err := r.db.Model(&blogmodel.Blog{}).
		Where("created_at BETWEEN ? AND ?", start, end).
		Count(&stats.NewBlogsThisMonth).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&blogmodel.Blog{}).
		Where("updated_at BETWEEN ? AND ?", start, end).
		Count(&stats.UpdatedBlogsThisMonth).Error; err != nil {
		return nil, err
	}

	var totals struct {
		Views    int64
		Likes    int64
		Comments int64
		Saves    int64
	}
	err := r.db.Model(&blogmodel.BlogStats{}).
		Select("COALESCE(SUM(views), 0) AS views, COALESCE(SUM(likes), 0) AS likes, COALESCE(SUM(comments), 0) AS comments, COALESCE(SUM(saves), 0) AS saves").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	stats.TotalViews = totals.Views
	stats.TotalLikes = totals.Likes
	stats.TotalComments = totals.Comments
	stats.TotalSaves = totals.Saves

	err = r.db.Model(&blogmodel.Blog{}).
		Select("sections.chinese_title AS section, COUNT(blogs.id) AS count").
		Joins("JOIN sections ON sections.id = blogs.section_id").
		Group("sections.id, sections.chinese_title").
		Order("count DESC").
		Scan(&stats.SectionDistribution).Error
	if err != nil {
		return nil, err
	}

	return stats, nil
}

// topBlogsBy 按 blog_stats 的某个指标取前十
func (r *AnalyticRepository) topBlogsBy(metric string) ([]BlogPerformer, error) {
	var performers []BlogPerformer
	err := r.db.Model(&blogmodel.Blog{}).
		Select("blogs.slug AS blog_slug, sections.slug AS section_slug, blogs.chinese_title AS title, blog_stats."+metric+" AS value").
		Joins("JOIN blog_stats ON blog_stats.blog_id = blogs.id").
		Joins("JOIN sections ON sections.id = blogs.section_id").
		Order("blog_stats." + metric + " DESC").
		Limit(10).
		Scan(&performers).Error
	if err != nil {
		return nil, err
	}
	return performers, nil
}

func (r *AnalyticRepository) TopBlogPerformers() (*TopBlogPerformers, error) {
	result := &TopBlogPerformers{}
	var err error
	if result.TopViews, err = r.topBlogsBy("views"); err != nil {
		return nil, err
	}
	if result.TopLikes, err = r.topBlogsBy("likes"); err != nil {
		return nil, err
	}
	if result.TopComments, err = r.topBlogsBy("comments"); err != nil {
		return nil, err
	}
	if result.TopSaves, err = r.topBlogsBy("saves"); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *AnalyticRepository) TagStatistics(limit int) ([]TagStatistic, error) {
	var stats []TagStatistic
	err := r.db.Table("tags").
		Select("tags.slug AS tag_slug, tags.chinese_title, COUNT(blog_tag.id) AS blog_count").
		Joins("JOIN blog_tag ON blog_tag.tag_id = tags.id").
		Group("tags.id, tags.slug, tags.chinese_title").
		Order("blog_count DESC").
		Limit(limit).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}

var projectTypeNames = map[projectmodel.ProjectType]string{
	projectmodel.TypeWeb:     "web",
	projectmodel.TypeMobile:  "mobile",
	projectmodel.TypeDesktop: "desktop",
	projectmodel.TypeOther:   "other",
}

func (r *AnalyticRepository) ProjectStatistics() (*ProjectStatistics, error) {
	stats := &ProjectStatistics{TypeDistribution: make(map[string]int64)}

	if err := r.db.Model(&projectmodel.Project{}).Count(&stats.TotalProjects).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&projectmodel.Project{}).
		Where("is_published = ?", true).Count(&stats.PublishedProjects).Error; err != nil {
		return nil, err
	}

	start, end := dateRange("month")
	if err := r.db.Model(&projectmodel.Project{}).
		Where("created_at BETWEEN ? AND ?", start, end).
		Count(&stats.NewProjectsThisMonth).Error; err != nil {
		return nil, err
	}

	var typeRows []struct {
		Type  projectmodel.ProjectType
		Count int64
	}
	err := r.db.Model(&projectmodel.Project{}).
		Select("type, COUNT(id) AS count").
		Group("type").
		Scan(&typeRows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range typeRows {
		name, ok := projectTypeNames[row.Type]
		if !ok {
			name = "other"
		}
		stats.TypeDistribution[name] = row.Count
	}

	err = r.db.Model(&projectmodel.Project{}).
		Select("sections.chinese_title AS section, COUNT(projects.id) AS count").
		Joins("JOIN sections ON sections.id = projects.section_id").
		Where("projects.section_id IS NOT NULL").
		Group("sections.id, sections.chinese_title").
		Order("count DESC").
		Scan(&stats.SectionDistribution).Error
	if err != nil {
		return nil, err
	}

	return stats, nil
}

var paymentTypeNames = map[paymentmodel.PaymentType]string{
	paymentmodel.TypeCard:             "card",
	paymentmodel.TypeLink:             "link",
	paymentmodel.TypeKlarna:           "klarna",
	paymentmodel.TypeAfterpayClearpay: "afterpay_clearpay",
	paymentmodel.TypeAlipay:           "alipay",
}

var paymentStatusNames = map[paymentmodel.PaymentStatus]string{
	paymentmodel.StatusCancel:  "cancel",
	paymentmodel.StatusSuccess: "success",
	paymentmodel.StatusFailed:  "failed",
	paymentmodel.StatusPending: "pending",
}

func (r *AnalyticRepository) PaymentStatistics(period string) (*PaymentStatistics, error) {
	stats := &PaymentStatistics{
		PaymentTypeDistribution:   make(map[string]int64),
		PaymentStatusDistribution: make(map[string]int64),
	}

	sumRevenue := func(dest *float64, conds func(*gorm.DB) *gorm.DB) error {
		query := r.db.Model(&paymentmodel.PaymentRecord{}).
			Select("COALESCE(SUM(amount), 0)").
			Where("payment_status = ?", paymentmodel.StatusSuccess)
		return conds(query).Scan(dest).Error
	}

	noop := func(db *gorm.DB) *gorm.DB { return db }
	if err := sumRevenue(&stats.TotalRevenue, noop); err != nil {
		return nil, err
	}
	if err := r.db.Model(&paymentmodel.PaymentRecord{}).Count(&stats.TotalPayments).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&paymentmodel.PaymentRecord{}).
		Where("payment_status = ?", paymentmodel.StatusSuccess).
		Count(&stats.SuccessfulPayments).Error; err != nil {
		return nil, err
	}

	start, end := dateRange(period)
	if err := sumRevenue(&stats.PeriodRevenue, func(db *gorm.DB) *gorm.DB {
		return db.Where("created_at BETWEEN ? AND ?", start, end)
	}); err != nil {
		return nil, err
	}
	if err := r.db.Model(&paymentmodel.PaymentRecord{}).
		Where("created_at BETWEEN ? AND ?", start, end).
		Count(&stats.PeriodPayments).Error; err != nil {
		return nil, err
	}

	yearStart, _ := dateRange("year")
	if err := sumRevenue(&stats.YearlyRevenue, func(db *gorm.DB) *gorm.DB {
		return db.Where("created_at >= ?", yearStart)
	}); err != nil {
		return nil, err
	}

	err := r.db.Model(&paymentmodel.PaymentRecord{}).
		Select("COALESCE(SUM(tax_amount), 0)").
		Where("payment_status = ?", paymentmodel.StatusSuccess).
		Scan(&stats.TotalTax).Error
	if err != nil {
		return nil, err
	}

	var typeRows []struct {
		PaymentType paymentmodel.PaymentType
		Count       int64
	}
	err = r.db.Model(&paymentmodel.PaymentRecord{}).
		Select("payment_type, COUNT(id) AS count").
		Group("payment_type").
		Scan(&typeRows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range typeRows {
		name, ok := paymentTypeNames[row.PaymentType]
		if !ok {
			name = "card"
		}
		stats.PaymentTypeDistribution[name] = row.Count
	}

	var statusRows []struct {
		PaymentStatus paymentmodel.PaymentStatus
		Count         int64
	}
	err = r.db.Model(&paymentmodel.PaymentRecord{}).
		Select("payment_status, COUNT(id) AS count").
		Group("payment_status").
		Scan(&statusRows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range statusRows {
		name, ok := paymentStatusNames[row.PaymentStatus]
		if !ok {
			name = "pending"
		}
		stats.PaymentStatusDistribution[name] = row.Count
	}

	return stats, nil
}

func (r *AnalyticRepository) TopRevenueProjects() ([]RevenueProject, error) {
	var projects []RevenueProject
	err := r.db.Model(&projectmodel.Project{}).
		Select("projects.slug AS project_slug, projects.chinese_title AS title, COALESCE(SUM(payment_records.amount), 0) AS total_revenue, COUNT(payment_records.id) AS payment_count").
		Joins("JOIN payment_records ON payment_records.project_id = projects.id").
		Where("payment_records.payment_status = ?", paymentmodel.StatusSuccess).
		Group("projects.id, projects.slug, projects.chinese_title").
		Order("total_revenue DESC").
		Limit(10).
		Scan(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *AnalyticRepository) MediaStatistics() (*MediaStatistics, error) {
	stats := &MediaStatistics{}

	if err := r.db.Model(&mediamodel.Media{}).Count(&stats.TotalMedia).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&mediamodel.Media{}).
		Where("is_avatar = ?", true).Count(&stats.AvatarCount).Error; err != nil {
		return nil, err
	}

	start, end := dateRange("month")
	if err := r.db.Model(&mediamodel.Media{}).
		Where("created_at BETWEEN ? AND ?", start, end).
		Count(&stats.NewMediaThisMonth).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *AnalyticRepository) UserStatistics() (*UserStatistics, error) {
	stats := &UserStatistics{}

	if err := r.db.Model(&usermodel.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&usermodel.User{}).
		Where("is_active = ? AND is_deleted = ?", true, false).
		Count(&stats.ActiveUsers).Error; err != nil {
		return nil, err
	}

	start, end := dateRange("month")
	if err := r.db.Model(&usermodel.User{}).
		Where("created_at BETWEEN ? AND ?", start, end).
		Count(&stats.NewUsersThisMonth).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

// GrowthTrends 最近 N 天按日聚合的新增用户/博客和收入
func (r *AnalyticRepository) GrowthTrends(days int) (*GrowthTrends, error) {
	since := time.Now().UTC().AddDate(0, 0, -days)
	trends := &GrowthTrends{}

	countTrend := func(model interface{}) ([]TrendPoint, error) {
		var points []TrendPoint
		err := r.db.Model(model).
			Select("DATE(created_at) AS date, COUNT(id) AS count").
			Where("created_at >= ?", since).
			Group("DATE(created_at)").
			Order("date").
			Scan(&points).Error
		return points, err
	}

	var err error
	if trends.UserGrowth, err = countTrend(&usermodel.User{}); err != nil {
		return nil, err
	}
	if trends.BlogGrowth, err = countTrend(&blogmodel.Blog{}); err != nil {
		return nil, err
	}

	err = r.db.Model(&paymentmodel.PaymentRecord{}).
		Select("DATE(created_at) AS date, COALESCE(SUM(amount), 0) AS value").
		Where("created_at >= ? AND payment_status = ?", since, paymentmodel.StatusSuccess).
		Group("DATE(created_at)").
		Order("date").
		Scan(&trends.RevenueGrowth).Error
	if err != nil {
		return nil, err
	}

	return trends, nil
}
