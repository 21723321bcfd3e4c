package gorm

import "time"

type File struct {
	Record
	ArticleID        *uint      `gorm:"column:article_id;index" json:"article_id"`
	OwnerID          *uint      `gorm:"column:owner_id" json:"owner_id"`
	ParentID         *uint      `gorm:"column:parent_id" json:"parent_id"`
	MimeType         string     `gorm:"column:mime_type" json:"mime_type"`
	OriginalFilename string     `gorm:"column:original_filename" json:"original_filename"`
	UUIDFilename     string     `gorm:"column:uuid_filename" json:"uuid_filename"`
	Label            string     `gorm:"column:label" json:"label"`
	Description      string     `gorm:"column:description" json:"description"`
	Sequence         int        `gorm:"column:sequence" json:"sequence"`
	Kind             string     `gorm:"column:kind" json:"kind"`
	IsGalley         bool       `gorm:"column:is_galley" json:"is_galley"`
	DateUploaded     *time.Time `gorm:"column:date_uploaded" json:"date_uploaded"`
	DateModified     *time.Time `gorm:"column:date_modified" json:"date_modified"`
	Path             string     `gorm:"column:path" json:"-"`
}

func (File) TableName() string {
	return "core_file"
}

// FileHistory threads a newer version of a file onto the file it supersedes.
type FileHistory struct {
	Record
	FileID        uint      `gorm:"column:file_id;uniqueIndex:idx_file_history" json:"file_id"`
	HistoryFileID uint      `gorm:"column:history_file_id;uniqueIndex:idx_file_history" json:"history_file_id"`
	Sequence      int       `gorm:"column:sequence" json:"sequence"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (FileHistory) TableName() string {
	return "core_file_history"
}

type Galley struct {
	Record
	ArticleID uint   `gorm:"column:article_id;index" json:"article_id"`
	FileID    uint   `gorm:"column:file_id;uniqueIndex" json:"file_id"`
	Label     string `gorm:"column:label" json:"label"`
	Type      string `gorm:"column:type" json:"type"`
	Sequence  int    `gorm:"column:sequence" json:"sequence"`
}

func (Galley) TableName() string {
	return "core_galley"
}
