package model

type Service struct {
	Id         string `gorm:"type:text;primaryKey"`
	Name       string `gorm:"type:text"`
	Subtitle   string `gorm:"type:text"`
	SubtitleZh string `gorm:"type:text;column:subtitle_zh"`
	UpdatedAt  string `gorm:"type:text;column:updatedAt"`
}

func (Service) TableName() string {
	return "services"
}

type ServiceSpecialty struct {
	ServiceId string `gorm:"type:text;column:service_id;index"`
	Specialty string `gorm:"type:text"`
}

func (ServiceSpecialty) TableName() string {
	return "service_specialties"
}

type Pricing struct {
	Id        string `gorm:"type:text;primaryKey"`
	Category  string `gorm:"type:text"`
	Type      string `gorm:"type:text"`
	Item      string `gorm:"type:text"`
	Price     *int
	Max       *int
	ServiceId string `gorm:"type:text;column:service_id;index"`
	UpdatedAt string `gorm:"type:text;column:updatedAt"`
}

func (Pricing) TableName() string {
	return "pricing"
}

type FAQ struct {
	Id        string `gorm:"type:text;primaryKey"`
	Category  string `gorm:"type:text"`
	Question  string `gorm:"type:text"`
	Keywords  string `gorm:"type:text"`
	UpdatedAt string `gorm:"type:text;column:updatedAt"`
}

func (FAQ) TableName() string {
	return "faqs"
}
