package services

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iconhive/IconHive/fontbuilder"
	"github.com/iconhive/IconHive/methods"
	"github.com/iconhive/IconHive/models"
	"gorm.io/gorm"
)

type IconService struct {
	DB      *gorm.DB
	Builder fontbuilder.Builder
}

func NewIconService() *IconService {
	return &IconService{
		DB:      models.DB,
		Builder: fontbuilder.NewSVGBuilder(),
	}
}

// iconDisplayName 从上传文件名派生展示名，去掉 .svg 后缀
func iconDisplayName(filename string) string {
	name := strings.TrimSuffix(filepath.Base(filename), ".svg")
	if name == "" || name == "." {
		return "迷の文件"
	}
	return name
}

func readUpload(file *multipart.FileHeader) ([]byte, error) {
	f, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// UploadIcons 上传图标至图标库，插入 Icon 表中，但不建立表与图标的关联
// 这里不记录日志，提交到库里再记录
func (s *IconService) UploadIcons(files []*multipart.FileHeader, uploaderID uint) error {
	if len(files) == 0 {
		return NewValidationError("未获取上传的图标文件，请检查 formdata 的 icon 字段")
	}

	glyphs := make([]fontbuilder.Glyph, 0, len(files))
	for _, file := range files {
		buf, err := readUpload(file)
		if err != nil {
			return err
		}
		glyphs = append(glyphs, fontbuilder.Glyph{
			Name:   iconDisplayName(file.Filename),
			Buffer: buf,
		})
	}

	return s.createUploaded(glyphs, uploaderID, models.IconStatusUploaded)
}

// createUploaded 编译字形并批量入库
func (s *IconService) createUploaded(glyphs []fontbuilder.Glyph, uploaderID uint, status int) error {
	built, err := s.Builder.Build(glyphs, fontbuilder.Options{WriteFiles: false})
	if err != nil {
		return NewValidationError(err.Error())
	}

	rows := make([]models.Icon, 0, len(built))
	for _, g := range built {
		rows = append(rows, models.Icon{
			Name:      g.Name,
			FontClass: methods.ConvertToInitials(g.Name),
			Path:      g.D,
			Status:    status,
			Uploader:  uploaderID,
		})
	}
	return s.DB.Create(&rows).Error
}

// UploadReplacingIcon 上传替换图标，状态为 REPLACING
// 用户放弃替换时记录保留，任何页面查到该状态都应视为未完成
func (s *IconService) UploadReplacingIcon(file *multipart.FileHeader, uploaderID uint) (uint, error) {
	if file == nil {
		return 0, NewValidationError("未获取上传的图标文件，请检查 formdata 的 icon 字段")
	}
	buf, err := readUpload(file)
	if err != nil {
		return 0, err
	}
	built, err := s.Builder.Build([]fontbuilder.Glyph{{
		Name:   iconDisplayName(file.Filename),
		Buffer: buf,
	}}, fontbuilder.Options{WriteFiles: false})
	if err != nil {
		return 0, NewValidationError(err.Error())
	}

	row := models.Icon{
		Name:      built[0].Name,
		FontClass: methods.ConvertToInitials(built[0].Name),
		Path:      built[0].D,
		Status:    models.IconStatusReplacing,
		Uploader:  uploaderID,
	}
	if err := s.DB.Create(&row).Error; err != nil {
		return 0, err
	}
	return row.ID, nil
}

// UploadIconPack 解包上传的压缩包并把其中的 SVG 批量入库，返回入库数量
func (s *IconService) UploadIconPack(archivePath string, uploaderID uint) (int, error) {
	scratch := filepath.Join(filepath.Dir(archivePath), uuid.NewString())
	if err := methods.Unpack(archivePath, scratch); err != nil {
		return 0, NewValidationError("解压失败: " + err.Error())
	}
	defer os.RemoveAll(scratch)

	var glyphs []fontbuilder.Glyph
	err := filepath.Walk(scratch, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || strings.ToLower(filepath.Ext(path)) != ".svg" {
			return nil
		}
		buf, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		glyphs = append(glyphs, fontbuilder.Glyph{
			Name:   iconDisplayName(filepath.Base(path)),
			Buffer: buf,
		})
		return nil
	})
	if err != nil {
		return 0, err
	}
	if len(glyphs) == 0 {
		return 0, NewValidationError("压缩包中没有找到 SVG 文件")
	}

	if err := s.createUploaded(glyphs, uploaderID, models.IconStatusUploaded); err != nil {
		return 0, err
	}
	return len(glyphs), nil
}

// ownerRepos 查询图标归属的大库，按库 id 升序
func (s *IconService) ownerRepos(iconID uint) ([]models.Repo, error) {
	var repos []models.Repo
	err := s.DB.Table("repos").
		Select("repos.*").
		Joins("JOIN repo_versions ON repo_versions.repository_id = repos.id").
		Where("repo_versions.icon_id = ?", iconID).
		Order("repos.id").
		Find(&repos).Error
	return repos, err
}

// ReplaceIcon 将 from 替换为 to，逻辑是：
// 1. 保存 from 的 path
// 2. 将 to 的 path 赋值给 from
// 3. 将 from 的全部信息赋值给 to（现在认为两者已替换）
// 4. to 的 oldId 指向 from，from 的 newId 指向 to
// 持有 from.id 的调用方无感知地拿到新字形
func (s *IconService) ReplaceIcon(fromID, toID, userID uint) error {
	var from models.Icon
	if err := s.DB.First(&from, fromID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewNotFoundError(fmt.Sprintf("被替换的图标 %d 不存在", fromID))
		}
		return err
	}
	var to models.Icon
	if err := s.DB.First(&to, toID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewNotFoundError(fmt.Sprintf("替换的新图标 %d 不存在", toID))
		}
		return err
	}
	repos, err := s.ownerRepos(fromID)
	if err != nil {
		return err
	}

	if from.Status != models.IconStatusResolved {
		return NewInvariantError(fmt.Sprintf("被替换的图标 %s 并非审核通过的线上图标", from.Name))
	}
	if to.Status != models.IconStatusReplacing {
		return NewInvariantError(fmt.Sprintf("替换的新图标 %s 并非待替换状态的图标", to.Name))
	}
	if len(repos) == 0 {
		return NewInvariantError(fmt.Sprintf("被替换的图标 %s 竟然不属于任何一个大库", from.Name))
	}

	var repoVersion models.RepoVersion
	if err := s.DB.Where("icon_id = ?", fromID).First(&repoVersion).Error; err != nil {
		return err
	}

	newPath := to.Path
	fromName := from.Name
	toName := to.Name
	now := time.Now()

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Icon{}).Where("id = ?", to.ID).Updates(map[string]interface{}{
			"name":        from.Name,
			"font_class":  from.FontClass,
			"tags":        from.Tags,
			"path":        from.Path,
			"create_time": from.CreateTime,
			"apply_time":  from.ApplyTime,
			"new_id":      from.ID,
		}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Icon{}).Where("id = ?", from.ID).Updates(map[string]interface{}{
			"path":   newPath,
			"old_id": to.ID,
		}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Repo{}).Where("id = ?", repos[0].ID).Update("updated_at", now).Error; err != nil {
			return err
		}
		// 注意，替换完之后 id 就换位了
		return models.LogRecorder(tx, models.LogEntry{
			Type: "REPLACE",
			Params: map[string]interface{}{
				"iconFrom": map[string]interface{}{"id": to.ID, "name": toName},
				"iconTo":   map[string]interface{}{"id": from.ID, "name": fromName},
			},
			LoggerID: repoVersion.RepositoryID,
		}, userID)
	})
}

// SubmitIconItem 提交入库的单个图标参数，Style 对应 fontClass
type SubmitIconItem struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Tags  string `json:"tags"`
	Style string `json:"style"`
}

// SubmitIcons 把一批已上传的图标提交到大库，单事务完成：
// 更新图标信息为待审核、建立版本关联、记录日志并通知库管理员
func (s *IconService) SubmitIcons(repoID uint, icons []SubmitIconItem, userID uint) error {
	if repoID == 0 {
		return NewValidationError(fmt.Sprintf("期望传入合法 repoId，目前传入的是 %d", repoID))
	}
	if len(icons) == 0 {
		return NewValidationError("未传入待提交的图标")
	}
	for _, icon := range icons {
		if icon.ID == 0 {
			return NewValidationError(fmt.Sprintf("icons 数组期望传入合法 id，目前传入的是 %d", icon.ID))
		}
	}

	var repo models.Repo
	if err := s.DB.First(&repo, repoID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewNotFoundError(fmt.Sprintf("大库 %d 不存在", repoID))
		}
		return err
	}

	now := time.Now()
	return s.DB.Transaction(func(tx *gorm.DB) error {
		for _, icon := range icons {
			if err := tx.Model(&models.Icon{}).Where("id = ?", icon.ID).Updates(map[string]interface{}{
				"name":       icon.Name,
				"tags":       icon.Tags,
				"font_class": icon.Style,
				"status":     models.IconStatusPending,
				"apply_time": now,
			}).Error; err != nil {
				return err
			}
		}

		versions := make([]models.RepoVersion, 0, len(icons))
		for _, icon := range icons {
			versions = append(versions, models.RepoVersion{
				Version:      "0.0.0",
				IconID:       icon.ID,
				RepositoryID: repoID,
			})
		}
		if err := tx.Create(&versions).Error; err != nil {
			return err
		}

		params := make([]map[string]interface{}, 0, len(icons))
		for _, icon := range icons {
			params = append(params, map[string]interface{}{"id": icon.ID, "name": icon.Name})
		}
		return models.LogRecorder(tx, models.LogEntry{
			Type:        "UPLOAD",
			Params:      map[string]interface{}{"icon": params},
			LoggerID:    repoID,
			Subscribers: []uint{repo.Admin},
		}, userID)
	})
}

// DeleteIcon 软删除：仅上传者本人可删，且只针对未通过审核或未提交的图标
func (s *IconService) DeleteIcon(iconID, userID uint) error {
	var icon models.Icon
	err := s.DB.Select("id", "status", "uploader").First(&icon, iconID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewNotFoundError("未获取图标信息")
		}
		return err
	}
	if icon.Uploader != userID {
		return NewInvariantError("没有权限删除他人上传的图标")
	}
	if icon.Status != models.IconStatusRejected && icon.Status != models.IconStatusUploaded {
		return NewInvariantError("只能删除审核未通过的图标或未提交的图标")
	}
	return s.DB.Model(&models.Icon{}).Where("id = ?", iconID).
		Update("status", models.IconStatusDelete).Error
}

// IconMeta 修改图标信息后的返回投影
type IconMeta struct {
	Name string `json:"name"`
	Tags string `json:"tags"`
}

// UpdateIconInfo 修改标签对上传者开放，修改名称只有所属大库管理员可以
func (s *IconService) UpdateIconInfo(iconID uint, tags, name string, userID uint) (*IconMeta, error) {
	var icon models.Icon
	if err := s.DB.First(&icon, iconID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("未获取图标信息")
		}
		return nil, err
	}
	repos, err := s.ownerRepos(iconID)
	if err != nil {
		return nil, err
	}

	data := map[string]interface{}{}
	if tags != "" {
		data["tags"] = tags
	}
	if len(repos) > 0 && repos[0].Admin == userID && name != "" {
		data["name"] = name
	}
	if len(data) == 0 {
		return nil, NewValidationError("必须传入非空的数据参数")
	}

	if err := s.DB.Model(&models.Icon{}).Where("id = ?", iconID).Updates(data).Error; err != nil {
		return nil, err
	}

	var meta IconMeta
	if err := s.DB.Model(&models.Icon{}).Where("id = ?", iconID).First(&meta).Error; err != nil {
		return nil, err
	}
	return &meta, nil
}
