package services

import (
	"errors"
	"net/url"
	"time"

	"github.com/iconhive/IconHive/models"
	"gorm.io/gorm"
)

// IconRef 按 id 批量查询时的投影
type IconRef struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Path  string `json:"path"`
	OldID uint   `json:"oldId"`
	NewID uint   `json:"newId"`
}

func (s *IconService) GetByID(ids []uint) ([]IconRef, error) {
	var refs []IconRef
	err := s.DB.Model(&models.Icon{}).Where("id IN ?", ids).Scan(&refs).Error
	return refs, err
}

type SearchIcon struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Code int    `json:"code"`
	Path string `json:"path"`
}

// SearchBucket 按所属大库分组的检索结果
type SearchBucket struct {
	ID    uint         `json:"id"`
	Name  string       `json:"name"`
	Icons []SearchIcon `json:"icons"`
}

type SearchResult struct {
	Data       []SearchBucket `json:"data"`
	TotalCount int            `json:"totalCount"`
	QueryKey   string         `json:"queryKey"`
}

// GetByCondition 按名称或标签模糊检索线上图标，结果按所属大库分桶
func (s *IconService) GetByCondition(q string) (*SearchResult, error) {
	if q == "" {
		return nil, NewValidationError("不支持传入空参数")
	}
	decoded, err := url.QueryUnescape(q)
	if err != nil {
		return nil, NewValidationError("必须传入合法的查询条件")
	}
	like := "%" + decoded + "%"

	type searchRow struct {
		ID       uint
		Name     string
		Code     int
		Path     string
		RepoID   uint
		RepoName string
	}
	var rows []searchRow
	err = s.DB.Table("icons").
		Select("icons.id, icons.name, icons.code, icons.path, repos.id AS repo_id, repos.name AS repo_name").
		Joins("JOIN repo_versions ON repo_versions.icon_id = icons.id").
		Joins("JOIN repos ON repos.id = repo_versions.repository_id").
		Where("icons.status >= ?", models.IconStatusResolved).
		Where("icons.name LIKE ? OR icons.tags LIKE ?", like, like).
		Order("repos.id, icons.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := &SearchResult{
		Data:       []SearchBucket{},
		TotalCount: len(rows),
		QueryKey:   url.QueryEscape(decoded),
	}
	index := map[uint]int{}
	for _, row := range rows {
		pos, ok := index[row.RepoID]
		if !ok {
			result.Data = append(result.Data, SearchBucket{ID: row.RepoID, Name: row.RepoName})
			pos = len(result.Data) - 1
			index[row.RepoID] = pos
		}
		result.Data[pos].Icons = append(result.Data[pos].Icons, SearchIcon{
			ID:   row.ID,
			Name: row.Name,
			Code: row.Code,
			Path: row.Path,
		})
	}
	return result, nil
}

type RepoBrief struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Alias string `json:"alias"`
	Admin uint   `json:"admin"`
}

type UserBrief struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// IconDetail 图标详情，首个所属大库平铺为 repo 字段
type IconDetail struct {
	models.Icon
	Repo *RepoBrief `json:"repo,omitempty"`
	User *UserBrief `json:"user,omitempty"`
}

// GetIconInfo 查询单个图标详情，带所属大库（固定 0.0.0 版本关联）和上传者
func (s *IconService) GetIconInfo(iconID uint) (*IconDetail, error) {
	var icon models.Icon
	if err := s.DB.First(&icon, iconID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("未获取图标信息")
		}
		return nil, err
	}

	detail := &IconDetail{Icon: icon}

	var repo RepoBrief
	err := s.DB.Table("repos").
		Select("repos.id, repos.name, repos.alias, repos.admin").
		Joins("JOIN repo_versions ON repo_versions.repository_id = repos.id").
		Where("repo_versions.icon_id = ? AND repo_versions.version = ?", iconID, "0.0.0").
		Order("repos.id").
		First(&repo).Error
	if err == nil {
		detail.Repo = &repo
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var user UserBrief
	err = s.DB.Model(&models.User{}).Where("id = ?", icon.Uploader).First(&user).Error
	if err == nil {
		detail.User = &user
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return detail, nil
}

// GetUploadedIcons 获取已经上传但还没有提交的图标
func (s *IconService) GetUploadedIcons(userID uint) ([]models.Icon, error) {
	var icons []models.Icon
	err := s.DB.Where("uploader = ? AND status = ?", userID, models.IconStatusUploaded).
		Find(&icons).Error
	return icons, err
}

// TimeGroup 按提交时间分组的图标列表
type TimeGroup struct {
	ApplyTime time.Time     `json:"applyTime"`
	Icons     []models.Icon `json:"icons"`
}

// GetSubmittedIcons 获取已经提交的、上传的、被拒绝的图标，按 applyTime 分组
// 分页窗口作用在去重后的 applyTime 组上，而不是图标行数上
func (s *IconService) GetSubmittedIcons(userID uint, page, pageSize int) ([]TimeGroup, int64, error) {
	statuses := []int{
		models.IconStatusResolved,
		models.IconStatusUploaded,
		models.IconStatusRejected,
		models.IconStatusPending,
	}

	var times []time.Time
	if err := s.DB.Model(&models.Icon{}).
		Where("uploader = ? AND status IN ?", userID, statuses).
		Group("apply_time").
		Order("apply_time DESC").
		Offset((page-1)*pageSize).
		Limit(pageSize).
		Pluck("apply_time", &times).Error; err != nil {
		return nil, 0, err
	}
	if len(times) == 0 {
		return []TimeGroup{}, 0, nil
	}

	var icons []models.Icon
	if err := s.DB.Where("uploader = ? AND status IN ?", userID, statuses).
		Where("apply_time <= ? AND apply_time >= ?", times[0], times[len(times)-1]).
		Order("apply_time DESC").
		Find(&icons).Error; err != nil {
		return nil, 0, err
	}

	var groups []TimeGroup
	var current TimeGroup
	for _, icon := range icons {
		if len(current.Icons) > 0 && !current.ApplyTime.Equal(icon.ApplyTime) {
			groups = append(groups, current)
			current = TimeGroup{}
		}
		current.ApplyTime = icon.ApplyTime
		current.Icons = append(current.Icons, icon)
	}
	groups = append(groups, current)

	// 注意：总数统计没有带状态过滤，与主查询口径不一致，行为保持原样
	var total int64
	if err := s.DB.Model(&models.Icon{}).
		Where("uploader = ?", userID).
		Distinct("apply_time").
		Count(&total).Error; err != nil {
		return nil, 0, err
	}
	return groups, total, nil
}
