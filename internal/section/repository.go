package section

import (
	"gorm.io/gorm"

	sectionmodel "github.com/par4d15e/blogbackendserver-sub001/internal/model/section"
)

type SectionRepository struct {
	db *gorm.DB
}

func NewSectionRepository(db *gorm.DB) *SectionRepository {
	return &SectionRepository{db: db}
}

// ListActive 全部启用栏目, 组树用
func (r *SectionRepository) ListActive() ([]sectionmodel.Section, error) {
	var sections []sectionmodel.Section
	err := r.db.
		Where("is_active = ?", true).
		Order("id ASC").
		Find(&sections).Error
	return sections, err
}

// GetBySlug 按 slug 查询, 携带 SEO
func (r *SectionRepository) GetBySlug(slug string) (*sectionmodel.Section, error) {
	var s sectionmodel.Section
	err := r.db.Where("slug = ?", slug).First(&s).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// GetByID 按 ID 查询
func (r *SectionRepository) GetByID(id uint) (*sectionmodel.Section, error) {
	var s sectionmodel.Section
	err := r.db.First(&s, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// Update 后台更新栏目
func (r *SectionRepository) Update(sectionID uint, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.Model(&sectionmodel.Section{}).
		Where("id = ?", sectionID).
		Updates(updates).Error
}

// BuildTree 按 parent_id 组装栏目树
func BuildTree(sections []sectionmodel.Section) []sectionmodel.Section {
	childrenOf := make(map[uint][]sectionmodel.Section)
	var rootIDs []uint
	byID := make(map[uint]sectionmodel.Section, len(sections))

	for _, s := range sections {
		byID[s.ID] = s
		if s.ParentID == nil {
			rootIDs = append(rootIDs, s.ID)
			continue
		}
		childrenOf[*s.ParentID] = append(childrenOf[*s.ParentID], s)
	}

	var attach func(s sectionmodel.Section) sectionmodel.Section
	attach = func(s sectionmodel.Section) sectionmodel.Section {
		s.Children = []sectionmodel.Section{}
		for _, child := range childrenOf[s.ID] {
			s.Children = append(s.Children, attach(child))
		}
		return s
	}

	roots := make([]sectionmodel.Section, 0, len(rootIDs))
	for _, id := range rootIDs {
		roots = append(roots, attach(byID[id]))
	}
	return roots
}
