package model

// Schema is fixed: populated by the ingestion job, read-only for the
// query pipeline. Column names (camelCase included) must match exactly
// what the SQL generation prompt advertises.

type ClinicInfo struct {
	Id          string `gorm:"type:text;primaryKey"`
	Name        string `gorm:"type:text"`
	Tagline     string `gorm:"type:text"`
	TaglineZh   string `gorm:"type:text;column:tagline_zh"`
	Street      string `gorm:"type:text"`
	City        string `gorm:"type:text"`
	Province    string `gorm:"type:text"`
	PostalCode  string `gorm:"type:text;column:postalCode"`
	Country     string `gorm:"type:text"`
	Phone       string `gorm:"type:text"`
	Email       string `gorm:"type:text"`
	BookingLink string `gorm:"type:text;column:booking_link"`
	UpdatedAt   string `gorm:"type:text;column:updatedAt"`
}

func (ClinicInfo) TableName() string {
	return "clinic_info"
}

type ClinicHour struct {
	ClinicId  string `gorm:"type:text;column:clinic_id;index"`
	Day       string `gorm:"type:text"`
	OpenTime  string `gorm:"type:text;column:open_time"`
	CloseTime string `gorm:"type:text;column:close_time"`
}

func (ClinicHour) TableName() string {
	return "clinic_hours"
}

type ClinicLanguage struct {
	ClinicId string `gorm:"type:text;column:clinic_id;index"`
	Language string `gorm:"type:text"`
}

func (ClinicLanguage) TableName() string {
	return "clinic_languages"
}

type ClinicSocial struct {
	ClinicId string `gorm:"type:text;column:clinic_id;index"`
	Platform string `gorm:"type:text"`
	Url      string `gorm:"type:text"`
}

func (ClinicSocial) TableName() string {
	return "clinic_socials"
}
