package model

// Folder groups media owned by a single user. Its ID doubles as the
// on-disk directory name under uploads/<user>/<folder-id>
type Folder struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    string `gorm:"index;not null" json:"user_id"`
	Name      string `gorm:"not null" json:"name"`
	CreatedAt int64  `gorm:"autoCreateTime:milli" json:"created_at"`
}
