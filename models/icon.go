package models

import "time"

// 图标状态，数值保持递增关系，检索时依赖 status >= IconStatusResolved
const (
	IconStatusDelete    = 0  // 软删除
	IconStatusUploaded  = 1  // 已上传未提交
	IconStatusReplacing = 2  // 待替换的新图标，任何页面查到该状态都应视为未完成替换
	IconStatusPending   = 10 // 已提交待审核
	IconStatusRejected  = 15 // 审核未通过
	IconStatusResolved  = 20 // 审核通过的线上图标
)

// Icon 单个矢量图标记录
// OldID/NewID 构成替换链：B 替换 A 后 A.NewID = B.ID，B.OldID = A.ID
type Icon struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"index;not null" json:"name"`
	Tags       string    `json:"tags"`
	FontClass  string    `json:"fontClass"`
	Code       int       `json:"code"`
	Path       string    `gorm:"type:text" json:"path"`
	Status     int       `gorm:"index" json:"status"`
	Uploader   uint      `gorm:"index" json:"uploader"`
	OldID      uint      `gorm:"column:old_id" json:"oldId"`
	NewID      uint      `gorm:"column:new_id" json:"newId"`
	CreateTime time.Time `gorm:"autoCreateTime" json:"createTime"`
	ApplyTime  time.Time `json:"applyTime"`
}

func (Icon) TableName() string {
	return "icons"
}
