package models

import "time"

// Project 项目：面向具体产品的图标分组，独立于大库做版本管理
type Project struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"index;not null" json:"name"`
	Owner     uint      `gorm:"index" json:"owner"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Project) TableName() string {
	return "projects"
}

// ProjectVersion 图标与项目的多对多关联
type ProjectVersion struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Version   string `gorm:"default:0.0.0" json:"version"`
	IconID    uint   `gorm:"index;column:icon_id" json:"iconId"`
	ProjectID uint   `gorm:"index;column:project_id" json:"projectId"`
}

func (ProjectVersion) TableName() string {
	return "project_versions"
}
