package gorm

// Record is the primary key shared by every host entity. The JSON name is
// the attribute name used by the import pipeline when decoding mapped values.
type Record struct {
	ID uint `gorm:"column:id;primaryKey" json:"id"`
}

// RecordID returns the primary key.
func (r Record) RecordID() uint { return r.ID }
