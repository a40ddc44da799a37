package models

type User struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Token string `json:"token"`
	Name  string `json:"name"`
}

func (User) TableName() string {
	return "users"
}
