package Models

import "time"

type SymptomRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UID       string    `gorm:"index;size:128" json:"-"`
	Symptoms  string    `gorm:"type:text" json:"symptoms"`
	Analysis  string    `gorm:"type:text" json:"analysis"`
	CreatedAt time.Time `json:"timestamp"`
}

func SaveSymptomRecord(uid, symptoms, analysis string) error {
	record := SymptomRecord{UID: uid, Symptoms: symptoms, Analysis: analysis}
	return DB.Create(&record).Error
}

func GetSymptomHistory(uid string) ([]SymptomRecord, error) {
	records := []SymptomRecord{}
	err := DB.Where("uid = ?", uid).Order("created_at desc").Find(&records).Error
	return records, err
}
