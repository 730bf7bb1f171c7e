package blog

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/par4d15e/blogbackendserver-sub001/internal/cache"
	"github.com/par4d15e/blogbackendserver-sub001/internal/database"
	blogmodel "github.com/par4d15e/blogbackendserver-sub001/internal/model/blog"
	"github.com/par4d15e/blogbackendserver-sub001/pkg/pagination"
	"github.com/par4d15e/blogbackendserver-sub001/pkg/response"
)

// 内容 hash 的 Redis key 前缀, 用于感知正文变化
const contentHashPrefix = "blog_content_hash:"

// 热门博客的统计窗口
const popularWindowDays = 30

type BlogService struct {
	repo *BlogRepository
}

func NewBlogService() *BlogService {
	return &BlogService{repo: NewBlogRepository(database.MySQLDB)}
}

func normalizeLimit(limit int) int {
	if limit < 1 || limit > 50 {
		return 10
	}
	return limit
}

func buildListResponse(blogs []blogmodel.Blog, limit int, hasNext bool, prevCursor string) *BlogListResponse {
	items := make([]BlogListItem, 0, len(blogs))
	for i := range blogs {
		items = append(items, toListItem(&blogs[i]))
	}

	var last pagination.Cursor
	if len(blogs) > 0 {
		tail := blogs[len(blogs)-1]
		last = pagination.Cursor{CreatedAt: tail.CreatedAt, ID: tail.ID}
	}

	return &BlogListResponse{
		Blogs: items,
		Page:  pagination.BuildPage(limit, len(items), hasNext, last, prevCursor),
	}
}

// ListBySection 栏目博客列表, 带缓存
func (s *BlogService) ListBySection(sectionID uint, q ListQuery) (*BlogListResponse, *response.BusinessError) {
	limit := normalizeLimit(q.Limit)

	key := fmt.Sprintf("%ssection=%d:cursor=%s:limit=%d:asc=%t", cache.KeyBlogLists, sectionID, q.Cursor, limit, q.Asc)
	result, err := cache.GetOrLoad(context.Background(), key, cache.DefaultTTL, func() (*BlogListResponse, error) {
		blogs, hasNext, err := s.repo.ListBySection(sectionID, q.Cursor, limit, q.Asc)
		if err != nil {
			return nil, err
		}
		return buildListResponse(blogs, limit, hasNext, q.Cursor), nil
	})
	if err != nil {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("查询博客列表失败"),
			response.WithError(err),
		)
	}

	return result, nil
}

// ListByTag 标签博客列表, 带缓存
func (s *BlogService) ListByTag(tagSlug string, q ListQuery) (*BlogListResponse, *response.BusinessError) {
	limit := normalizeLimit(q.Limit)

	key := fmt.Sprintf("%stag=%s:cursor=%s:limit=%d", cache.KeyBlogLists, tagSlug, q.Cursor, limit)
	result, err := cache.GetOrLoad(context.Background(), key, cache.DefaultTTL, func() (*BlogListResponse, error) {
		blogs, hasNext, err := s.repo.ListByTag(tagSlug, q.Cursor, limit)
		if err != nil {
			return nil, err
		}
		return buildListResponse(blogs, limit, hasNext, q.Cursor), nil
	})
	if err != nil {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("查询博客列表失败"),
			response.WithError(err),
		)
	}

	return result, nil
}

// ListArchived 归档博客列表
func (s *BlogService) ListArchived(q ListQuery) (*BlogListResponse, *response.BusinessError) {
	limit := normalizeLimit(q.Limit)

	blogs, hasNext, err := s.repo.ListArchived(q.Cursor, limit)
	if err != nil {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("查询归档博客失败"),
			response.WithError(err),
		)
	}

	return buildListResponse(blogs, limit, hasNext, q.Cursor), nil
}

// ListPopular 近期热门博客, 带缓存
func (s *BlogService) ListPopular(limit int) ([]BlogListItem, *response.BusinessError) {
	limit = normalizeLimit(limit)

	key := fmt.Sprintf("%s:limit=%d", cache.KeyBlogPopular, limit)
	result, err := cache.GetOrLoad(context.Background(), key, cache.DefaultTTL, func() ([]BlogListItem, error) {
		blogs, err := s.repo.ListPopular(popularWindowDays, limit)
		if err != nil {
			return nil, err
		}
		items := make([]BlogListItem, 0, len(blogs))
		for i := range blogs {
			items = append(items, toListItem(&blogs[i]))
		}
		return items, nil
	})
	if err != nil {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("查询热门博客失败"),
			response.WithError(err),
		)
	}

	return result, nil
}

// GetDetail 博客详情, 浏览量自增
// 公开访问走缓存, 管理员直查以便预览未发布内容
func (s *BlogService) GetDetail(slug string, isAdmin bool) (*blogmodel.Blog, *response.BusinessError) {
	var b *blogmodel.Blog
	var err error
	if isAdmin {
		b, err = s.repo.GetBySlug(slug)
	} else {
		b, err = cache.GetOrLoad(context.Background(), cache.KeyBlogDetail+slug, cache.DefaultTTL, func() (*blogmodel.Blog, error) {
			return s.repo.GetBySlug(slug)
		})
	}
	if err != nil {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("查询博客失败"),
			response.WithError(err),
		)
	}
	if b == nil {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.NotFound),
			response.WithErrorMessage("博客不存在"),
		)
	}

	if !isAdmin && (b.Status == nil || !b.Status.IsPublished) {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.NotFound),
			response.WithErrorMessage("博客不存在"),
		)
	}

	if err := s.repo.IncrementViews(b.ID); err != nil {
		logrus.WithError(err).WithField("blog_id", b.ID).Warn("浏览量更新失败")
	}

	s.trackContentHash(b)
	return b, nil
}

// GetNavigation 上一篇/下一篇
func (s *BlogService) GetNavigation(slug string) (*BlogNavigation, *response.BusinessError) {
	b, err := s.repo.GetBySlug(slug)
	if err != nil || b == nil {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.NotFound),
			response.WithErrorMessage("博客不存在"),
		)
	}

	prev, next, err := s.repo.Navigation(b)
	if err != nil {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("查询导航失败"),
			response.WithError(err),
		)
	}

	nav := &BlogNavigation{}
	if prev != nil {
		item := toListItem(prev)
		nav.Prev = &item
	}
	if next != nil {
		item := toListItem(next)
		nav.Next = &item
	}
	return nav, nil
}

// Create 创建博客
func (s *BlogService) Create(userID uint, req CreateBlogRequest) (*blogmodel.Blog, *response.BusinessError) {
	exists, err := s.repo.SlugExists(req.Slug, 0)
	if err != nil {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("查询 slug 失败"),
			response.WithError(err),
		)
	}
	if exists {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Conflict),
			response.WithErrorMessage("slug 已存在"),
		)
	}

	hash := contentHash(req.ChineseContent)
	b := &blogmodel.Blog{
		UserID:             &userID,
		SectionID:          req.SectionID,
		SeoID:              req.SeoID,
		CoverID:            req.CoverID,
		Slug:               &req.Slug,
		ChineseTitle:       req.ChineseTitle,
		EnglishTitle:       req.EnglishTitle,
		ChineseDescription: req.ChineseDescription,
		EnglishDescription: req.EnglishDescription,
		ChineseContent:     req.ChineseContent,
		EnglishContent:     req.EnglishContent,
		ContentHash:        &hash,
	}

	if err := s.repo.Create(b, req.TagIDs, req.IsPublished); err != nil {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("创建博客失败"),
			response.WithError(err),
		)
	}

	s.invalidateListCache()
	return b, nil
}

// Update 更新博客
func (s *BlogService) Update(blogID uint, req UpdateBlogRequest) *response.BusinessError {
	b, err := s.repo.GetByID(blogID)
	if err != nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("查询博客失败"),
			response.WithError(err),
		)
	}
	if b == nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.NotFound),
			response.WithErrorMessage("博客不存在"),
		)
	}

	updates := map[string]any{}
	if req.Slug != nil {
		exists, err := s.repo.SlugExists(*req.Slug, blogID)
		if err != nil {
			return response.NewBusinessError(
				response.WithErrorCode(response.Fail),
				response.WithErrorMessage("查询 slug 失败"),
				response.WithError(err),
			)
		}
		if exists {
			return response.NewBusinessError(
				response.WithErrorCode(response.Conflict),
				response.WithErrorMessage("slug 已存在"),
			)
		}
		updates["slug"] = *req.Slug
	}
	if req.SectionID != nil {
		updates["section_id"] = *req.SectionID
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
	if req.SeoID != nil {
		updates["seo_id"] = *req.SeoID
	}
	if req.CoverID != nil {
		updates["cover_id"] = *req.CoverID
	}
	if req.ChineseContent != nil {
		updates["chinese_content"] = req.ChineseContent
		// 正文变化时重算 hash, 下游凭 hash 判断是否需要重建衍生内容
		hash := contentHash(req.ChineseContent)
		updates["content_hash"] = hash
	}
	if req.EnglishContent != nil {
		updates["english_content"] = req.EnglishContent
	}
	if len(updates) > 0 {
		updates["updated_at"] = time.Now().UTC()
	}

	if err := s.repo.Update(blogID, updates, req.TagIDs); err != nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("更新博客失败"),
			response.WithError(err),
		)
	}

	s.invalidateListCache()
	s.invalidateDetailCache(b)
	return nil
}

// Delete 删除博客
func (s *BlogService) Delete(blogID uint) *response.BusinessError {
	b, err := s.repo.GetByID(blogID)
	if err != nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("查询博客失败"),
			response.WithError(err),
		)
	}
	if b == nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.NotFound),
			response.WithErrorMessage("博客不存在"),
		)
	}

	if err := s.repo.Delete(blogID); err != nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("删除博客失败"),
			response.WithError(err),
		)
	}

	if err := cache.Delete(context.Background(), contentHashPrefix+fmt.Sprint(blogID)); err != nil {
		logrus.WithError(err).Warn("清理内容 hash 失败")
	}
	s.invalidateListCache()
	s.invalidateDetailCache(b)
	return nil
}

// UpdateStatus 发布/归档/精选状态更新
func (s *BlogService) UpdateStatus(blogID uint, req UpdateStatusRequest) *response.BusinessError {
	b, err := s.repo.GetByID(blogID)
	if err != nil || b == nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.NotFound),
			response.WithErrorMessage("博客不存在"),
		)
	}

	updates := map[string]any{}
	if req.IsPublished != nil {
		updates["is_published"] = *req.IsPublished
	}
	if req.IsArchived != nil {
		updates["is_archived"] = *req.IsArchived
	}
	if req.IsFeatured != nil {
		updates["is_featured"] = *req.IsFeatured
	}
	if len(updates) == 0 {
		return response.NewBusinessError(
			response.WithErrorCode(response.InvalidParameter),
			response.WithErrorMessage("没有需要更新的状态"),
		)
	}
	updates["updated_at"] = time.Now().UTC()

	if err := s.repo.UpdateStatus(blogID, updates); err != nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("更新状态失败"),
			response.WithError(err),
		)
	}

	s.invalidateListCache()
	s.invalidateDetailCache(b)
	return nil
}

// ToggleSave 收藏/取消收藏
func (s *BlogService) ToggleSave(userID, blogID uint) (bool, *response.BusinessError) {
	b, err := s.repo.GetByID(blogID)
	if err != nil || b == nil {
		return false, response.NewBusinessError(
			response.WithErrorCode(response.NotFound),
			response.WithErrorMessage("博客不存在"),
		)
	}

	saved, err := s.repo.ToggleSave(userID, blogID)
	if err != nil {
		return false, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("收藏操作失败"),
			response.WithError(err),
		)
	}
	return saved, nil
}

// Like 点赞
func (s *BlogService) Like(blogID uint, delta int) *response.BusinessError {
	if delta != 1 && delta != -1 {
		return response.NewBusinessError(
			response.WithErrorCode(response.InvalidParameter),
			response.WithErrorMessage("不支持的点赞操作"),
		)
	}

	b, err := s.repo.GetByID(blogID)
	if err != nil || b == nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.NotFound),
			response.WithErrorMessage("博客不存在"),
		)
	}

	if err := s.repo.ToggleLike(blogID, delta); err != nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("点赞操作失败"),
			response.WithError(err),
		)
	}
	return nil
}

// ListSaved 当前用户收藏列表
func (s *BlogService) ListSaved(userID uint, q ListQuery) (*BlogListResponse, *response.BusinessError) {
	limit := normalizeLimit(q.Limit)

	saved, hasNext, err := s.repo.ListSaved(userID, q.Cursor, limit)
	if err != nil {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("查询收藏列表失败"),
			response.WithError(err),
		)
	}

	items := make([]BlogListItem, 0, len(saved))
	var last pagination.Cursor
	for i := range saved {
		if saved[i].Blog != nil {
			items = append(items, toListItem(saved[i].Blog))
		}
		last = pagination.Cursor{CreatedAt: saved[i].CreatedAt, ID: saved[i].ID}
	}

	return &BlogListResponse{
		Blogs: items,
		Page:  pagination.BuildPage(limit, len(items), hasNext, last, q.Cursor),
	}, nil
}

// contentHash 正文内容 sha256
func contentHash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// trackContentHash 对比 Redis 中记录的 hash, 感知正文变化
func (s *BlogService) trackContentHash(b *blogmodel.Blog) {
	if b.ContentHash == nil {
		return
	}

	ctx := context.Background()
	key := contentHashPrefix + fmt.Sprint(b.ID)

	var stored string
	err := cache.GetJSON(ctx, key, &stored)
	if err == nil && stored == *b.ContentHash {
		return
	}
	if err != nil && err != cache.ErrCacheMiss {
		logrus.WithError(err).Warn("读取内容 hash 失败")
		return
	}

	// hash 变化或首次记录, 刷新标记（衍生内容重建由后台按标记处理）
	if err := cache.SetJSON(ctx, key, *b.ContentHash, 0); err != nil {
		logrus.WithError(err).Warn("写入内容 hash 失败")
	}
}

func (s *BlogService) invalidateListCache() {
	ctx := context.Background()
	for _, pattern := range []string{cache.KeyBlogLists + "*", cache.KeyBlogPopular + "*"} {
		if err := cache.DeletePattern(ctx, pattern); err != nil {
			logrus.WithError(err).WithField("pattern", pattern).Warn("清理博客列表缓存失败")
		}
	}
}

func (s *BlogService) invalidateDetailCache(b *blogmodel.Blog) {
	if b.Slug == nil {
		return
	}
	if err := cache.Delete(context.Background(), cache.KeyBlogDetail+*b.Slug); err != nil {
		logrus.WithError(err).Warn("清理博客详情缓存失败")
	}
}
