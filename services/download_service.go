package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/iconhive/IconHive/config"
	"github.com/iconhive/IconHive/fontbuilder"
	"github.com/iconhive/IconHive/methods"
	"github.com/iconhive/IconHive/models"
	"gorm.io/gorm"
)

// DownloadService 编译字体包并打成 zip
// Builder 和 Zip 可注入，便于测试时替换
type DownloadService struct {
	DB       *gorm.DB
	Builder  fontbuilder.Builder
	Zip      func(src, dest string) error
	CacheDir string
}

func NewDownloadService() *DownloadService {
	return &DownloadService{
		DB:       models.DB,
		Builder:  fontbuilder.NewSVGBuilder(),
		Zip:      methods.ZipFolderTo,
		CacheDir: config.Download,
	}
}

type DownloadRequest struct {
	Type     string `json:"type"`
	ID       uint   `json:"id"`
	Version  string `json:"version"`
	Icons    []uint `json:"icons"`
	FontName string `json:"fontName"`
}

// DownloadIcons 下载字体包，参数 icons 的优先级最高
// 下载项为大库时检查大库的最后更改日期：已有构建的时间戳不早于
// 最后更改时间就直接复用对应的 zip，不再重新编译
//
// 项目不走缓存是因为图标替换直接改写 svg 路径，
// 项目侧感知不到内容变化，只有大库的 updatedAt 被刷新
func (s *DownloadService) DownloadIcons(req DownloadRequest) (string, error) {
	version := req.Version
	if version == "" {
		version = "0.0.0"
	}

	isRepo := req.Type == "repo"
	stamp := time.Now().UnixMilli()
	fontName := req.FontName

	var glyphs []fontbuilder.Glyph
	var foldName string
	var foldPrefix string
	var lastModify int64

	adHoc := len(req.Icons) > 0
	if adHoc {
		if err := s.DB.Model(&models.Icon{}).
			Select("font_class AS name, code AS codepoint, path AS d").
			Where("id IN ? AND status = ?", req.Icons, models.IconStatusResolved).
			Scan(&glyphs).Error; err != nil {
			return "", err
		}
		foldName = fmt.Sprintf("%d", stamp)
		if fontName == "" {
			fontName = "iconfont"
		}
	} else {
		switch req.Type {
		case "repo":
			var repo models.Repo
			if err := s.DB.First(&repo, req.ID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return "", NewNotFoundError(fmt.Sprintf("大库 %d 不存在", req.ID))
				}
				return "", err
			}
			if err := s.collectionGlyphs("repo_versions", "repository_id", req.ID, version, &glyphs); err != nil {
				return "", err
			}
			if fontName == "" {
				fontName = repo.Alias
			}
			lastModify = repo.UpdatedAt.UnixMilli()
		case "project":
			var project models.Project
			if err := s.DB.First(&project, req.ID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return "", NewNotFoundError(fmt.Sprintf("项目 %d 不存在", req.ID))
				}
				return "", err
			}
			if err := s.collectionGlyphs("project_versions", "project_id", req.ID, version, &glyphs); err != nil {
				return "", err
			}
			if fontName == "" {
				fontName = project.Name
			}
		default:
			return "", NewValidationError(fmt.Sprintf("不支持的下载类型 %s", req.Type))
		}
		foldPrefix = fmt.Sprintf("%s-%d-%s", req.Type, req.ID, version)
		foldName = fmt.Sprintf("%s-%d", foldPrefix, stamp)
	}

	needRebuild := true
	var latestStamp int64
	// 如果是大库则检查一下已有构建
	if isRepo && !adHoc {
		var err error
		latestStamp, err = methods.GetLatestStamp(s.CacheDir, foldPrefix)
		if err != nil {
			return "", err
		}
		needRebuild = latestStamp == 0 || latestStamp < lastModify
	}

	if needRebuild {
		fontDest, err := methods.EnsureCachesExist(s.CacheDir, foldName)
		if err != nil {
			return "", err
		}
		if _, err := s.Builder.Build(glyphs, fontbuilder.Options{
			WriteFiles: true,
			Dest:       fontDest,
			FontName:   fontName,
		}); err != nil {
			return "", err
		}
		if err := s.Zip(fontDest, fontDest+".zip"); err != nil {
			return "", err
		}
	} else {
		foldName = fmt.Sprintf("%s-%d", foldPrefix, latestStamp)
	}

	return foldName + ".zip", nil
}

// collectionGlyphs 取某个集合在指定版本下的线上图标字形
func (s *DownloadService) collectionGlyphs(joinTable, ownerColumn string, id uint, version string, glyphs *[]fontbuilder.Glyph) error {
	return s.DB.Table("icons").
		Select("icons.font_class AS name, icons.code AS codepoint, icons.path AS d").
		Joins(fmt.Sprintf("JOIN %s ON %s.icon_id = icons.id", joinTable, joinTable)).
		Where(fmt.Sprintf("%s.%s = ? AND %s.version = ?", joinTable, ownerColumn, joinTable), id, version).
		Where("icons.status = ?", models.IconStatusResolved).
		Order("icons.id").
		Scan(glyphs).Error
}
