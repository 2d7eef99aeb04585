package model

import "time"

// Attachment is the metadata row for one stored blob. The storage key is the
// primary handle for byte retrieval; bytes themselves live in the blob store,
// never in this table.
type Attachment struct {
	StorageKey   string    `gorm:"primaryKey;size:191" json:"filename"`
	CompanyID    uint      `gorm:"index;not null" json:"companyId"`
	OriginalName string    `gorm:"not null" json:"originalName"`
	ContentType  string    `json:"contentType"`
	Size         int64     `json:"size"`
	UploadDate   time.Time `json:"uploadDate"`
}

func (Attachment) TableName() string {
	return "attachments"
}
