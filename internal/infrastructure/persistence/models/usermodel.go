package models

type ProfileModel struct {
	ID        uint   `gorm:"primaryKey"`
	Email     string `gorm:"uniqueIndex;size:255;not null"`
	Name      string `gorm:"size:100;not null"`
	Role      string `gorm:"size:20;not null;index"`
	Phone     string `gorm:"size:30"`
	AvatarURL string `gorm:"size:500"`
	Active    bool   `gorm:"not null;default:true;index"`
	CreatedAt int64  `gorm:"not null"`
	UpdatedAt int64  `gorm:"not null"`
}

func (ProfileModel) TableName() string {
	return "user_profiles"
}

type NotificationModel struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"not null;index:idx_notifications_user_read"`
	Type      string `gorm:"size:30;not null"`
	Title     string `gorm:"size:200;not null"`
	Content   string `gorm:"type:text"`
	TicketID  *uint  `gorm:"index"`
	Read      bool   `gorm:"not null;default:false;index:idx_notifications_user_read"`
	ReadAt    *int64
	CreatedAt int64 `gorm:"not null;index"`
}

func (NotificationModel) TableName() string {
	return "notifications"
}
