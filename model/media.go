package model

const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
)

type Media struct {
	ID     uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID string `gorm:"index;not null" json:"user_id"`

	// Nil means the media is unfiled and its blob lives in the
	// user's "general" directory
	FolderID *uint `gorm:"index" json:"folder_id"`

	// Name the blob is stored under, after the collision-resistant
	// prefix has been applied
	Filename string `gorm:"not null" json:"filename"`

	// Public URL of the blob, always /uploads/<user>/<folder|general>/<filename>.
	// Stays stable for the lifetime of the row, even across folder
	// reassignment
	FileURL string `gorm:"not null" json:"file_url"`

	Type        string `gorm:"not null" json:"type"`
	Description string `json:"description"`
	CreatedAt   int64  `gorm:"autoCreateTime:milli" json:"created_at"`
}

// TableName pins the table name, "media" already being plural
func (Media) TableName() string { return "media" }
