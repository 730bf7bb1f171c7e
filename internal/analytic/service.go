package analytic

import (
	"context"
	"fmt"
	"time"

	"github.com/par4d15e/blogbackendserver-sub001/internal/cache"
	"github.com/par4d15e/blogbackendserver-sub001/internal/database"
	"github.com/par4d15e/blogbackendserver-sub001/pkg/response"
)

// 统计数据的缓存时长, 比业务缓存短一些保证后台数据相对新鲜
const statsTTL = 5 * time.Minute

const (
	keyUserLocations  = "analytics_user_locations"
	keyBlogStats      = "analytics_blog_statistics"
	keyTopPerformers  = "analytics_top_ten_blog_performers"
	keyTagStats       = "analytics_tag_statistics:"
	keyProjectStats   = "analytics_project_statistics"
	keyPaymentStats   = "analytics_payment_statistics:"
	keyTopRevenue     = "analytics_top_ten_revenue_projects"
	keyMediaStats     = "analytics_media_statistics"
	keyUserStats      = "analytics_user_statistics"
	keyGrowthTrends   = "analytics_growth_trends:"
	keyOverview       = "analytics_overview_statistics"
)

type AnalyticService struct {
	repo *AnalyticRepository
}

func NewAnalyticService() *AnalyticService {
	return &AnalyticService{repo: NewAnalyticRepository(database.MySQLDB)}
}

func statsError(msg string, err error) *response.BusinessError {
	return response.NewBusinessError(
		response.WithErrorCode(response.Fail),
		response.WithErrorMessage(msg),
		response.WithError(err),
	)
}

func (s *AnalyticService) UserLocations() ([]UserLocation, *response.BusinessError) {
	result, err := cache.GetOrLoad(context.Background(), keyUserLocations, statsTTL, func() ([]UserLocation, error) {
		return s.repo.UserLocations()
	})
	if err != nil {
		return nil, statsError("查询用户分布失败", err)
	}
	return result, nil
}

func (s *AnalyticService) BlogStatistics() (*BlogStatistics, *response.BusinessError) {
	result, err := cache.GetOrLoad(context.Background(), keyBlogStats, statsTTL, func() (*BlogStatistics, error) {
		return s.repo.BlogStatistics()
	})
	if err != nil {
		return nil, statsError("查询博客统计失败", err)
	}
	return result, nil
}

func (s *AnalyticService) TopBlogPerformers() (*TopBlogPerformers, *response.BusinessError) {
	result, err := cache.GetOrLoad(context.Background(), keyTopPerformers, statsTTL, func() (*TopBlogPerformers, error) {
		return s.repo.TopBlogPerformers()
	})
	if err != nil {
		return nil, statsError("查询博客排行失败", err)
	}
	return result, nil
}

func (s *AnalyticService) TagStatistics(limit int) ([]TagStatistic, *response.BusinessError) {
	if limit < 1 || limit > 100 {
		limit = 20
	}

	key := fmt.Sprintf("%slimit=%d", keyTagStats, limit)
	result, err := cache.GetOrLoad(context.Background(), key, statsTTL, func() ([]TagStatistic, error) {
		return s.repo.TagStatistics(limit)
	})
	if err != nil {
		return nil, statsError("查询标签统计失败", err)
	}
	return result, nil
}

func (s *AnalyticService) ProjectStatistics() (*ProjectStatistics, *response.BusinessError) {
	result, err := cache.GetOrLoad(context.Background(), keyProjectStats, statsTTL, func() (*ProjectStatistics, error) {
		return s.repo.ProjectStatistics()
	})
	if err != nil {
		return nil, statsError("查询项目统计失败", err)
	}
	return result, nil
}

// PaymentStatistics period 支持 day/week/month/year
func (s *AnalyticService) PaymentStatistics(period string) (*PaymentStatistics, *response.BusinessError) {
	switch period {
	case "day", "week", "month", "year":
	default:
		period = "month"
	}

	key := keyPaymentStats + period
	result, err := cache.GetOrLoad(context.Background(), key, statsTTL, func() (*PaymentStatistics, error) {
		return s.repo.PaymentStatistics(period)
	})
	if err != nil {
		return nil, statsError("查询支付统计失败", err)
	}
	return result, nil
}

func (s *AnalyticService) TopRevenueProjects() ([]RevenueProject, *response.BusinessError) {
	result, err := cache.GetOrLoad(context.Background(), keyTopRevenue, statsTTL, func() ([]RevenueProject, error) {
		return s.repo.TopRevenueProjects()
	})
	if err != nil {
		return nil, statsError("查询收入排行失败", err)
	}
	return result, nil
}

func (s *AnalyticService) MediaStatistics() (*MediaStatistics, *response.BusinessError) {
	result, err := cache.GetOrLoad(context.Background(), keyMediaStats, statsTTL, func() (*MediaStatistics, error) {
		return s.repo.MediaStatistics()
	})
	if err != nil {
		return nil, statsError("查询媒体统计失败", err)
	}
	return result, nil
}

func (s *AnalyticService) UserStatistics() (*UserStatistics, *response.BusinessError) {
	result, err := cache.GetOrLoad(context.Background(), keyUserStats, statsTTL, func() (*UserStatistics, error) {
		return s.repo.UserStatistics()
	})
	if err != nil {
		return nil, statsError("查询用户统计失败", err)
	}
	return result, nil
}

func (s *AnalyticService) GrowthTrends(days int) (*GrowthTrends, *response.BusinessError) {
	if days < 1 || days > 365 {
		days = 30
	}

	key := fmt.Sprintf("%sdays=%d", keyGrowthTrends, days)
	result, err := cache.GetOrLoad(context.Background(), key, statsTTL, func() (*GrowthTrends, error) {
		return s.repo.GrowthTrends(days)
	})
	if err != nil {
		return nil, statsError("查询增长趋势失败", err)
	}
	return result, nil
}

// Overview 汇总关键指标, 各子项直查数据库避免缓存套缓存
func (s *AnalyticService) Overview() (*OverviewStatistics, *response.BusinessError) {
	result, err := cache.GetOrLoad(context.Background(), keyOverview, statsTTL, func() (*OverviewStatistics, error) {
		userStats, err := s.repo.UserStatistics()
		if err != nil {
			return nil, err
		}
		blogStats, err := s.repo.BlogStatistics()
		if err != nil {
			return nil, err
		}
		projectStats, err := s.repo.ProjectStatistics()
		if err != nil {
			return nil, err
		}
		paymentStats, err := s.repo.PaymentStatistics("month")
		if err != nil {
			return nil, err
		}
		mediaStats, err := s.repo.MediaStatistics()
		if err != nil {
			return nil, err
		}

		return &OverviewStatistics{
			Users:    OverviewTotal{Total: userStats.TotalUsers},
			Blogs:    OverviewTotal{Total: blogStats.TotalBlogs},
			Projects: OverviewTotal{Total: projectStats.TotalProjects},
			Payments: OverviewRevenue{TotalRevenue: paymentStats.TotalRevenue},
			Media:    OverviewTotal{Total: mediaStats.TotalMedia},
		}, nil
	})
	if err != nil {
		return nil, statsError("查询总览统计失败", err)
	}
	return result, nil
}
