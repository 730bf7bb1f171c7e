package project

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/par4d15e/blogbackendserver-sub001/internal/cache"
	"github.com/par4d15e/blogbackendserver-sub001/internal/database"
	projectmodel "github.com/par4d15e/blogbackendserver-sub001/internal/model/project"
	"github.com/par4d15e/blogbackendserver-sub001/pkg/pagination"
	"github.com/par4d15e/blogbackendserver-sub001/pkg/response"
)

type ProjectService struct {
	repo *ProjectRepository
}

func NewProjectService() *ProjectService {
	return &ProjectService{repo: NewProjectRepository(database.MySQLDB)}
}

func normalizeLimit(limit int) int {
	if limit < 1 || limit > 50 {
		return 10
	}
	return limit
}

func buildListResponse(projects []projectmodel.Project, limit int, hasNext bool, prevCursor string) *ProjectListResponse {
	items := make([]ProjectListItem, 0, len(projects))
	for i := range projects {
		items = append(items, toListItem(&projects[i]))
	}

	var last pagination.Cursor
	if len(projects) > 0 {
		tail := projects[len(projects)-1]
		last = pagination.Cursor{CreatedAt: tail.CreatedAt, ID: tail.ID}
	}

	return &ProjectListResponse{
		Projects: items,
		Page:     pagination.BuildPage(limit, len(items), hasNext, last, prevCursor),
	}
}

// List 项目列表, 公开访问只返回已发布项目并走缓存, 管理员直查全部
func (s *ProjectService) List(q ListQuery, isAdmin bool) (*ProjectListResponse, *response.BusinessError) {
	limit := normalizeLimit(q.Limit)

	if isAdmin {
		projects, hasNext, err := s.repo.List(q.Cursor, limit, q.Asc, false)
		if err != nil {
			return nil, response.NewBusinessError(
				response.WithErrorCode(response.Fail),
				response.WithErrorMessage("查询项目列表失败"),
				response.WithError(err),
			)
		}
		return buildListResponse(projects, limit, hasNext, q.Cursor), nil
	}

	key := fmt.Sprintf("%scursor=%s:limit=%d:asc=%t", cache.KeyProjectLists, q.Cursor, limit, q.Asc)
	result, err := cache.GetOrLoad(context.Background(), key, cache.DefaultTTL, func() (*ProjectListResponse, error) {
		projects, hasNext, err := s.repo.List(q.Cursor, limit, q.Asc, true)
		if err != nil {
			return nil, err
		}
		return buildListResponse(projects, limit, hasNext, q.Cursor), nil
	})
	if err != nil {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("查询项目列表失败"),
			response.WithError(err),
		)
	}
	return result, nil
}

// GetDetail 项目详情, 未发布的项目仅管理员可见
// 公开访问走缓存, 管理员直查以便预览未发布内容
func (s *ProjectService) GetDetail(slug string, isAdmin bool) (*projectmodel.Project, *response.BusinessError) {
	var p *projectmodel.Project
	var err error
	if isAdmin {
		p, err = s.repo.GetBySlug(slug)
	} else {
		p, err = cache.GetOrLoad(context.Background(), cache.KeyProjectDetail+slug, cache.DefaultTTL, func() (*projectmodel.Project, error) {
			return s.repo.GetBySlug(slug)
		})
	}
	if err != nil {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("查询项目失败"),
			response.WithError(err),
		)
	}
	if p == nil || (!p.IsPublished && !isAdmin) {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.NotFound),
			response.WithErrorMessage("项目不存在"),
		)
	}
	return p, nil
}

// Create 创建项目, slug 唯一
func (s *ProjectService) Create(req *CreateProjectRequest) (*projectmodel.Project, *response.BusinessError) {
	exists, err := s.repo.SlugExists(req.Slug, 0)
	if err != nil {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("创建项目失败"),
			response.WithError(err),
		)
	}
	if exists {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Conflict),
			response.WithErrorMessage("项目 slug 已存在"),
		)
	}

	hash := contentHash(req.ChineseContent)
	p := projectmodel.Project{
		Type:               projectmodel.ProjectType(req.Type),
		SectionID:          req.SectionID,
		SeoID:              req.SeoID,
		CoverID:            req.CoverID,
		IsPublished:        req.IsPublished,
		Slug:               req.Slug,
		ChineseTitle:       req.ChineseTitle,
		EnglishTitle:       req.EnglishTitle,
		ChineseDescription: req.ChineseDescription,
		EnglishDescription: req.EnglishDescription,
		ChineseContent:     req.ChineseContent,
		EnglishContent:     req.EnglishContent,
		ContentHash:        &hash,
	}
	if err := s.repo.Create(&p, req.AttachmentIDs, req.Price, req.TaxID); err != nil {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("创建项目失败"),
			response.WithError(err),
		)
	}

	s.invalidateListCache()
	return &p, nil
}

// Update 按字段更新项目
func (s *ProjectService) Update(id uint, req *UpdateProjectRequest) *response.BusinessError {
	p, err := s.repo.GetByID(id)
	if err != nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("更新项目失败"),
			response.WithError(err),
		)
	}
	if p == nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.NotFound),
			response.WithErrorMessage("项目不存在"),
		)
	}

	updates := make(map[string]interface{})
	if req.Type != nil {
		updates["type"] = *req.Type
	}
	if req.SectionID != nil {
		updates["section_id"] = *req.SectionID
	}
	if req.SeoID != nil {
		updates["seo_id"] = *req.SeoID
	}
	if req.CoverID != nil {
		updates["cover_id"] = *req.CoverID
	}
	if req.Slug != nil && *req.Slug != p.Slug {
		exists, err := s.repo.SlugExists(*req.Slug, id)
		if err != nil {
			return response.NewBusinessError(
				response.WithErrorCode(response.Fail),
				response.WithErrorMessage("更新项目失败"),
				response.WithError(err),
			)
		}
		if exists {
			return response.NewBusinessError(
				response.WithErrorCode(response.Conflict),
				response.WithErrorMessage("项目 slug 已存在"),
			)
		}
		updates["slug"] = *req.Slug
	}
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
	if req.ChineseContent != nil {
		updates["chinese_content"] = req.ChineseContent
		updates["content_hash"] = contentHash(req.ChineseContent)
	}
	if req.EnglishContent != nil {
		updates["english_content"] = req.EnglishContent
	}
	if len(updates) > 0 {
		now := time.Now()
		updates["updated_at"] = &now
	}

	if err := s.repo.Update(id, updates, req.AttachmentIDs, req.Price, req.TaxID); err != nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("更新项目失败"),
			response.WithError(err),
		)
	}

	s.invalidateListCache()
	s.invalidateDetailCache(p.Slug)
	if req.Slug != nil {
		s.invalidateDetailCache(*req.Slug)
	}
	return nil
}

// Delete 删除项目及其附件关联与付费信息
func (s *ProjectService) Delete(id uint) *response.BusinessError {
	p, err := s.repo.GetByID(id)
	if err != nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("删除项目失败"),
			response.WithError(err),
		)
	}
	if p == nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.NotFound),
			response.WithErrorMessage("项目不存在"),
		)
	}

	if err := s.repo.Delete(id); err != nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("删除项目失败"),
			response.WithError(err),
		)
	}

	s.invalidateListCache()
	s.invalidateDetailCache(p.Slug)
	return nil
}

// SetPublished 发布/下架
func (s *ProjectService) SetPublished(id uint, published bool) *response.BusinessError {
	p, err := s.repo.GetByID(id)
	if err != nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("更新项目状态失败"),
			response.WithError(err),
		)
	}
	if p == nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.NotFound),
			response.WithErrorMessage("项目不存在"),
		)
	}

	if err := s.repo.SetPublished(id, published); err != nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("更新项目状态失败"),
			response.WithError(err),
		)
	}

	s.invalidateListCache()
	s.invalidateDetailCache(p.Slug)
	return nil
}

func contentHash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

func (s *ProjectService) invalidateListCache() {
	_ = cache.DeletePattern(context.Background(), cache.KeyProjectLists+"*")
}

func (s *ProjectService) invalidateDetailCache(slug string) {
	_ = cache.Delete(context.Background(), cache.KeyProjectDetail+slug)
}
