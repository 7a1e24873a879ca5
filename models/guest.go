package models

import "gorm.io/gorm"

type Guest struct {
	gorm.Model

	Name     string `json:"name" gorm:"type:varchar(120)"`
	IDNumber string `json:"idNumber" gorm:"column:id_number;uniqueIndex;type:varchar(50)"`
	Image    string `json:"image" gorm:"column:image_url;type:varchar(500)"`
}
