package model

// Tag is a globally shared label. Names are stored lower case, so the
// unique index doubles as the case-insensitive dedup point
type Tag struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

// MediaTag joins media to tags. The composite primary key keeps
// duplicate links out at the schema level
type MediaTag struct {
	MediaID uint `gorm:"primaryKey" json:"media_id"`
	TagID   uint `gorm:"primaryKey" json:"tag_id"`
}

func (MediaTag) TableName() string { return "media_tags" }
