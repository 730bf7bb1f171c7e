package section

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/par4d15e/blogbackendserver-sub001/internal/cache"
	"github.com/par4d15e/blogbackendserver-sub001/internal/database"
	sectionmodel "github.com/par4d15e/blogbackendserver-sub001/internal/model/section"
	"github.com/par4d15e/blogbackendserver-sub001/pkg/response"
)

// UpdateSectionRequest 后台栏目更新
type UpdateSectionRequest struct {
	ChineseTitle       *string `json:"chinese_title"`
	EnglishTitle       *string `json:"english_title"`
	ChineseDescription *string `json:"chinese_description"`
	EnglishDescription *string `json:"english_description"`
	SeoID              *uint   `json:"seo_id"`
	IsActive           *bool   `json:"is_active"`
}

type SectionService struct {
	repo *SectionRepository
}

func NewSectionService() *SectionService {
	return &SectionService{repo: NewSectionRepository(database.MySQLDB)}
}

// GetTree 栏目树, 带缓存
func (s *SectionService) GetTree() ([]sectionmodel.Section, *response.BusinessError) {
	result, err := cache.GetOrLoad(context.Background(), cache.KeySectionTree, cache.DefaultTTL, func() ([]sectionmodel.Section, error) {
		sections, err := s.repo.ListActive()
		if err != nil {
			return nil, err
		}
		return BuildTree(sections), nil
	})
	if err != nil {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("查询栏目失败"),
			response.WithError(err),
		)
	}
	return result, nil
}

// GetBySlug 栏目详情
func (s *SectionService) GetBySlug(slug string) (*sectionmodel.Section, *response.BusinessError) {
	sec, err := s.repo.GetBySlug(slug)
	if err != nil {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("查询栏目失败"),
			response.WithError(err),
		)
	}
	if sec == nil {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.NotFound),
			response.WithErrorMessage("栏目不存在"),
		)
	}
	return sec, nil
}

// Update 后台更新栏目
func (s *SectionService) Update(sectionID uint, req UpdateSectionRequest) *response.BusinessError {
	sec, err := s.repo.GetByID(sectionID)
	if err != nil || sec == nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.NotFound),
			response.WithErrorMessage("栏目不存在"),
		)
	}

	updates := map[string]any{}
	if req.ChineseTitle != nil {
		updates["chinese_title"] = *req.ChineseTitle
	}
	if req.EnglishTitle != nil {
		updates["english_title"] = *req.EnglishTitle
	}
	if req.ChineseDescription != nil {
		updates["chinese_description"] = *req.ChineseDescription
	}
	if req.EnglishDescription != nil {
		updates["english_description"] = *req.EnglishDescription
	}
	if req.SeoID != nil {
		updates["seo_id"] = *req.SeoID
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		return response.NewBusinessError(
			response.WithErrorCode(response.InvalidParameter),
			response.WithErrorMessage("没有需要更新的字段"),
		)
	}
	updates["updated_at"] = time.Now().UTC()

	if err := s.repo.Update(sectionID, updates); err != nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("更新栏目失败"),
			response.WithError(err),
		)
	}

	if err := cache.Delete(context.Background(), cache.KeySectionTree); err != nil {
		logrus.WithError(err).Warn("清理栏目树缓存失败")
	}
	return nil
}
