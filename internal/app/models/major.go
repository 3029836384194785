package models

// Major is static reference data.
type Major struct {
	ID      int64  `json:"id" db:"id"`
	Code    string `json:"code" db:"code"`
	Name    string `json:"name" db:"name"`
	Faculty string `json:"faculty" db:"faculty"`
}

// MajorStatistics is the per-major student count and average grade.
type MajorStatistics struct {
	Code         string  `json:"code" db:"code"`
	Major        string  `json:"major" db:"name"`
	Faculty      string  `json:"faculty" db:"faculty"`
	StudentCount int     `json:"studentCount" db:"student_count"`
	AvgGrade     float64 `json:"avgGrade" db:"avg_grade"`
}
