package models

import "time"

// Repo 大库：由管理员维护的图标集合，编译为一个字体包
// UpdatedAt 是下载缓存的唯一失效信号，替换图标时会手动刷新
type Repo struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"index;not null" json:"name"`
	Alias     string    `json:"alias"`
	Admin     uint      `gorm:"index" json:"admin"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Repo) TableName() string {
	return "repos"
}

// RepoVersion 图标与大库的多对多关联，默认版本 0.0.0
type RepoVersion struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Version      string `gorm:"default:0.0.0" json:"version"`
	IconID       uint   `gorm:"index;column:icon_id" json:"iconId"`
	RepositoryID uint   `gorm:"index;column:repository_id" json:"repositoryId"`
}

func (RepoVersion) TableName() string {
	return "repo_versions"
}
