package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Log 审计日志，随状态变更操作在同一事务内写入
type Log struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Type        string         `gorm:"index;not null" json:"type"`
	Params      datatypes.JSON `json:"params"`
	LoggerID    uint           `gorm:"index;column:logger_id" json:"loggerId"`
	Subscribers datatypes.JSON `json:"subscribers"`
	UserID      uint           `gorm:"index" json:"userId"`
	CreatedAt   time.Time      `json:"createdAt"`
}

func (Log) TableName() string {
	return "logs"
}

// LogEntry 写日志的入参，Params 会被序列化为 JSON 存储
type LogEntry struct {
	Type        string
	Params      interface{}
	LoggerID    uint
	Subscribers []uint
}

// LogRecorder 在调用方的事务内追加一条审计日志
// 事务回滚时日志一并回滚，不会单独存在
func LogRecorder(tx *gorm.DB, entry LogEntry, userID uint) error {
	params, err := json.Marshal(entry.Params)
	if err != nil {
		return err
	}
	subscribers, err := json.Marshal(entry.Subscribers)
	if err != nil {
		return err
	}
	row := Log{
		Type:        entry.Type,
		Params:      datatypes.JSON(params),
		LoggerID:    entry.LoggerID,
		Subscribers: datatypes.JSON(subscribers),
		UserID:      userID,
	}
	return tx.Create(&row).Error
}
