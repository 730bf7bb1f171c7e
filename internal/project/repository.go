package project

import (
	"errors"
	"time"

	"gorm.io/gorm"

	projectmodel "github.com/par4d15e/blogbackendserver-sub001/internal/model/project"
	"github.com/par4d15e/blogbackendserver-sub001/pkg/pagination"
)

// ProjectRepository 项目数据访问层
type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func listPreloads(db *gorm.DB) *gorm.DB {
	return db.Preload("Cover").Preload("Monetization")
}

// List 按创建时间 keyset 分页, onlyPublished 控制是否过滤未发布项目
func (r *ProjectRepository) List(cursor string, limit int, asc bool, onlyPublished bool) ([]projectmodel.Project, bool, error) {
	var projects []projectmodel.Project
	query := r.db.Model(&projectmodel.Project{}).
		Scopes(pagination.Keyset{Asc: asc}.Scope("projects.created_at", cursor)).
		Scopes(listPreloads)
	if onlyPublished {
		query = query.Where("projects.is_published = ?", true)
	}
	if err := query.Limit(limit + 1).Find(&projects).Error; err != nil {
		return nil, false, err
	}

	hasNext := len(projects) > limit
	if hasNext {
		projects = projects[:limit]
	}
	return projects, hasNext, nil
}

// GetBySlug 返回 nil 表示不存在
func (r *ProjectRepository) GetBySlug(slug string) (*projectmodel.Project, error) {
	var p projectmodel.Project
	err := r.db.Preload("Cover").Preload("Seo").Preload("Section").
		Preload("Attachments.Attachment").
		Preload("Monetization.Tax").
		Where("slug = ?", slug).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProjectRepository) GetByID(id uint) (*projectmodel.Project, error) {
	var p projectmodel.Project
	err := r.db.Preload("Monetization").First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProjectRepository) SlugExists(slug string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.Model(&projectmodel.Project{}).Where("slug = ?", slug)
	if excludeID > 0 {
		query = query.Where("id != ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create 事务内创建项目、附件关联和付费信息
func (r *ProjectRepository) Create(p *projectmodel.Project, attachmentIDs []uint, price *float64, taxID *uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return err
		}
		if err := createAttachments(tx, p.ID, attachmentIDs); err != nil {
			return err
		}
		if price != nil {
			monetization := projectmodel.ProjectMonetization{
				ProjectID: p.ID,
				Price:     *price,
				TaxID:     taxID,
			}
			if err := tx.Create(&monetization).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Update 事务内更新项目字段, attachmentIDs 非 nil 时全量替换附件关联,
// price 非 nil 时更新或补建付费信息
func (r *ProjectRepository) Update(id uint, updates map[string]interface{}, attachmentIDs []uint, price *float64, taxID *uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&projectmodel.Project{}).Where("id = ?", id).
				Updates(updates).Error; err != nil {
				return err
			}
		}
		if attachmentIDs != nil {
			if err := tx.Where("project_id = ?", id).
				Delete(&projectmodel.ProjectAttachment{}).Error; err != nil {
				return err
			}
			if err := createAttachments(tx, id, attachmentIDs); err != nil {
				return err
			}
		}
		if price != nil {
			var m projectmodel.ProjectMonetization
			err := tx.Where("project_id = ?", id).First(&m).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				m = projectmodel.ProjectMonetization{ProjectID: id, Price: *price, TaxID: taxID}
				return tx.Create(&m).Error
			}
			if err != nil {
				return err
			}
			now := time.Now()
			m.Price = *price
			m.TaxID = taxID
			m.UpdatedAt = &now
			return tx.Save(&m).Error
		}
		return nil
	})
}

func createAttachments(tx *gorm.DB, projectID uint, attachmentIDs []uint) error {
	for _, attachmentID := range attachmentIDs {
		link := projectmodel.ProjectAttachment{
			ProjectID:    projectID,
			AttachmentID: attachmentID,
		}
		if err := tx.Create(&link).Error; err != nil {
			return err
		}
	}
	return nil
}

// Delete 连带删除附件关联与付费信息
func (r *ProjectRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).
			Delete(&projectmodel.ProjectAttachment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).
			Delete(&projectmodel.ProjectMonetization{}).Error; err != nil {
			return err
		}
		return tx.Delete(&projectmodel.Project{}, id).Error
	})
}

func (r *ProjectRepository) SetPublished(id uint, published bool) error {
	now := time.Now()
	return r.db.Model(&projectmodel.Project{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_published": published,
			"updated_at":   &now,
		}).Error
}
