package blog

import (
	"time"

	"gorm.io/gorm"

	blogmodel "github.com/par4d15e/blogbackendserver-sub001/internal/model/blog"
	"github.com/par4d15e/blogbackendserver-sub001/pkg/pagination"
)

type BlogRepository struct {
	db *gorm.DB
}

func NewBlogRepository(db *gorm.DB) *BlogRepository {
	return &BlogRepository{db: db}
}

// listPreloads 列表查询的关联预加载
func listPreloads(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Cover").
		Preload("Stats").
		Preload("Status").
		Preload("Tags.Tag")
}

// publishedScope 仅返回已发布未归档的博客
func publishedScope(db *gorm.DB) *gorm.DB {
	return db.
		Joins("JOIN blog_status ON blog_status.blog_id = blogs.id").
		Where("blog_status.is_published = ? AND blog_status.is_archived = ?", true, false)
}

// ListBySection 按栏目 keyset 分页
// 多取一行判断是否有下一页
func (r *BlogRepository) ListBySection(sectionID uint, cursor string, limit int, asc bool) ([]blogmodel.Blog, bool, error) {
	var blogs []blogmodel.Blog
	err := r.db.Model(&blogmodel.Blog{}).
		Scopes(publishedScope).
		Where("blogs.section_id = ?", sectionID).
		Scopes(pagination.Keyset{Asc: asc}.Scope("blogs.created_at", cursor)).
		Limit(limit + 1).
		Scopes(listPreloads).
		Find(&blogs).Error
	if err != nil {
		return nil, false, err
	}

	hasNext := len(blogs) > limit
	if hasNext {
		blogs = blogs[:limit]
	}
	return blogs, hasNext, nil
}

// ListByTag 按标签 slug keyset 分页
func (r *BlogRepository) ListByTag(tagSlug string, cursor string, limit int) ([]blogmodel.Blog, bool, error) {
	var blogs []blogmodel.Blog
	err := r.db.Model(&blogmodel.Blog{}).
		Scopes(publishedScope).
		Joins("JOIN blog_tag ON blog_tag.blog_id = blogs.id").
		Joins("JOIN tags ON tags.id = blog_tag.tag_id").
		Where("tags.slug = ?", tagSlug).
		Scopes(pagination.Keyset{}.Scope("blogs.created_at", cursor)).
		Limit(limit + 1).
		Scopes(listPreloads).
		Find(&blogs).Error
	if err != nil {
		return nil, false, err
	}

	hasNext := len(blogs) > limit
	if hasNext {
		blogs = blogs[:limit]
	}
	return blogs, hasNext, nil
}

// ListArchived 归档博客 keyset 分页
func (r *BlogRepository) ListArchived(cursor string, limit int) ([]blogmodel.Blog, bool, error) {
	var blogs []blogmodel.Blog
	err := r.db.Model(&blogmodel.Blog{}).
		Joins("JOIN blog_status ON blog_status.blog_id = blogs.id").
		Where("blog_status.is_archived = ?", true).
		Scopes(pagination.Keyset{}.Scope("blogs.created_at", cursor)).
		Limit(limit + 1).
		Scopes(listPreloads).
		Find(&blogs).Error
	if err != nil {
		return nil, false, err
	}

	hasNext := len(blogs) > limit
	if hasNext {
		blogs = blogs[:limit]
	}
	return blogs, hasNext, nil
}

// ListPopular 近期热门, 按浏览量排序
func (r *BlogRepository) ListPopular(days, limit int) ([]blogmodel.Blog, error) {
	since := time.Now().UTC().AddDate(0, 0, -days)

	var blogs []blogmodel.Blog
	err := r.db.Model(&blogmodel.Blog{}).
		Scopes(publishedScope).
		Joins("JOIN blog_stats ON blog_stats.blog_id = blogs.id").
		Where("blogs.created_at >= ?", since).
		Order("blog_stats.views DESC").
		Limit(limit).
		Scopes(listPreloads).
		Find(&blogs).Error
	return blogs, err
}

// GetBySlug 详情查询, 携带全部关联
func (r *BlogRepository) GetBySlug(slug string) (*blogmodel.Blog, error) {
	var b blogmodel.Blog
	err := r.db.
		Preload("User").
		Preload("Section").
		Preload("Seo").
		Preload("Cover").
		Preload("Status").
		Preload("Stats").
		Preload("Summary").
		Preload("Tags.Tag").
		Where("slug = ?", slug).
		First(&b).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

// GetByID 按 ID 查询
func (r *BlogRepository) GetByID(id uint) (*blogmodel.Blog, error) {
	var b blogmodel.Blog
	err := r.db.Preload("Status").Preload("Stats").First(&b, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

// SlugExists slug 是否已被占用
func (r *BlogRepository) SlugExists(slug string, excludeID uint) (bool, error) {
	var count int64
	q := r.db.Model(&blogmodel.Blog{}).Where("slug = ?", slug)
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

// Navigation 同栏目内按创建时间的上一篇/下一篇
func (r *BlogRepository) Navigation(b *blogmodel.Blog) (prev, next *blogmodel.Blog, err error) {
	var p blogmodel.Blog
	errPrev := r.db.Model(&blogmodel.Blog{}).
		Scopes(publishedScope).
		Where("blogs.section_id = ? AND blogs.created_at < ?", b.SectionID, b.CreatedAt).
		Order("blogs.created_at DESC").
		First(&p).Error
	if errPrev == nil {
		prev = &p
	} else if errPrev != gorm.ErrRecordNotFound {
		return nil, nil, errPrev
	}

	var n blogmodel.Blog
	errNext := r.db.Model(&blogmodel.Blog{}).
		Scopes(publishedScope).
		Where("blogs.section_id = ? AND blogs.created_at > ?", b.SectionID, b.CreatedAt).
		Order("blogs.created_at ASC").
		First(&n).Error
	if errNext == nil {
		next = &n
	} else if errNext != gorm.ErrRecordNotFound {
		return nil, nil, errNext
	}

	return prev, next, nil
}

// Create 创建博客, 同事务建立状态行、统计行和标签关联
func (r *BlogRepository) Create(b *blogmodel.Blog, tagIDs []uint, isPublished bool) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(b).Error; err != nil {
			return err
		}

		status := blogmodel.BlogStatus{
			UserID:      b.UserID,
			BlogID:      b.ID,
			IsPublished: isPublished,
		}
		if err := tx.Create(&status).Error; err != nil {
			return err
		}

		stats := blogmodel.BlogStats{BlogID: b.ID}
		if err := tx.Create(&stats).Error; err != nil {
			return err
		}

		return replaceTags(tx, b.ID, tagIDs)
	})
}

// Update 更新博客字段和标签关联
func (r *BlogRepository) Update(blogID uint, updates map[string]any, tagIDs []uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&blogmodel.Blog{}).
				Where("id = ?", blogID).
				Updates(updates).Error; err != nil {
				return err
			}
		}

		if tagIDs != nil {
			return replaceTags(tx, blogID, tagIDs)
		}
		return nil
	})
}

// replaceTags 全量替换标签关联
func replaceTags(tx *gorm.DB, blogID uint, tagIDs []uint) error {
	if tagIDs == nil {
		return nil
	}

	if err := tx.Where("blog_id = ?", blogID).Delete(&blogmodel.BlogTag{}).Error; err != nil {
		return err
	}
	for _, tagID := range tagIDs {
		bt := blogmodel.BlogTag{BlogID: blogID, TagID: tagID}
		if err := tx.Create(&bt).Error; err != nil {
			return err
		}
	}
	return nil
}

// Delete 删除博客及全部附属行
func (r *BlogRepository) Delete(blogID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, m := range []any{
			&blogmodel.BlogTag{}, &blogmodel.BlogComment{}, &blogmodel.SavedBlog{},
			&blogmodel.BlogStats{}, &blogmodel.BlogStatus{}, &blogmodel.BlogSummary{},
		} {
			if err := tx.Where("blog_id = ?", blogID).Delete(m).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&blogmodel.Blog{}, blogID).Error
	})
}

// UpdateStatus 发布/归档/精选状态更新
func (r *BlogRepository) UpdateStatus(blogID uint, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.Model(&blogmodel.BlogStatus{}).
		Where("blog_id = ?", blogID).
		Updates(updates).Error
}

// IncrementViews 浏览量自增
func (r *BlogRepository) IncrementViews(blogID uint) error {
	return r.db.Model(&blogmodel.BlogStats{}).
		Where("blog_id = ?", blogID).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

// ToggleLike 点赞计数增减
func (r *BlogRepository) ToggleLike(blogID uint, delta int) error {
	return r.db.Model(&blogmodel.BlogStats{}).
		Where("blog_id = ?", blogID).
		UpdateColumn("likes", gorm.Expr("GREATEST(likes + ?, 0)", delta)).Error
}

// GetSaved 收藏记录查询
func (r *BlogRepository) GetSaved(userID, blogID uint) (*blogmodel.SavedBlog, error) {
	var s blogmodel.SavedBlog
	err := r.db.Where("user_id = ? AND blog_id = ?", userID, blogID).First(&s).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// ToggleSave 收藏/取消收藏, 同事务维护 stats.saves 计数
// 返回操作后是否处于已收藏状态
func (r *BlogRepository) ToggleSave(userID, blogID uint) (bool, error) {
	existing, err := r.GetSaved(userID, blogID)
	if err != nil {
		return false, err
	}

	saved := existing == nil
	err = r.db.Transaction(func(tx *gorm.DB) error {
		if existing != nil {
			if err := tx.Delete(existing).Error; err != nil {
				return err
			}
			return tx.Model(&blogmodel.BlogStats{}).
				Where("blog_id = ?", blogID).
				UpdateColumn("saves", gorm.Expr("GREATEST(saves - 1, 0)")).Error
		}

		s := blogmodel.SavedBlog{UserID: userID, BlogID: blogID}
		if err := tx.Create(&s).Error; err != nil {
			return err
		}
		return tx.Model(&blogmodel.BlogStats{}).
			Where("blog_id = ?", blogID).
			UpdateColumn("saves", gorm.Expr("saves + 1")).Error
	})
	if err != nil {
		return false, err
	}
	return saved, nil
}

// ListSaved 用户收藏列表 keyset 分页
func (r *BlogRepository) ListSaved(userID uint, cursor string, limit int) ([]blogmodel.SavedBlog, bool, error) {
	var saved []blogmodel.SavedBlog
	err := r.db.Model(&blogmodel.SavedBlog{}).
		Where("saved_blog.user_id = ?", userID).
		Scopes(pagination.Keyset{}.Scope("saved_blog.created_at", cursor)).
		Limit(limit + 1).
		Preload("Blog").
		Preload("Blog.Cover").
		Preload("Blog.Stats").
		Find(&saved).Error
	if err != nil {
		return nil, false, err
	}

	hasNext := len(saved) > limit
	if hasNext {
		saved = saved[:limit]
	}
	return saved, hasNext, nil
}
