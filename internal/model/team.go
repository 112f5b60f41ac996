package model

type TeamMember struct {
	Id        string `gorm:"type:text;primaryKey"`
	Type      string `gorm:"type:text"`
	JaneAppId *int   `gorm:"column:janeAppId"`
	FirstName string `gorm:"type:text;column:firstName"`
	LastName  string `gorm:"type:text;column:lastName"`
	FullName  string `gorm:"type:text;column:fullName"`
	Prefix    string `gorm:"type:text"`
	Title     string `gorm:"type:text"`
	UpdatedAt string `gorm:"type:text;column:updatedAt"`
}

func (TeamMember) TableName() string {
	return "team_members"
}

type TeamSpecialty struct {
	PractitionerId string `gorm:"type:text;column:practitioner_id;index"`
	Specialty      string `gorm:"type:text"`
}

func (TeamSpecialty) TableName() string {
	return "team_specialties"
}

type TeamLanguage struct {
	PractitionerId string `gorm:"type:text;column:practitioner_id;index"`
	Language       string `gorm:"type:text"`
}

func (TeamLanguage) TableName() string {
	return "team_languages"
}

type TeamService struct {
	PractitionerId string `gorm:"type:text;column:practitioner_id;index"`
	ServiceId      string `gorm:"type:text;column:service_id;index"`
}

func (TeamService) TableName() string {
	return "team_services"
}
