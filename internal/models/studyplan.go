package models

type StudyTask struct {
	ID        int64  `json:"id"`
	StudentID int64  `json:"student_id"`
	Title     string `json:"title"`
	Time      string `json:"time"`
	Category  string `json:"category"`
	Completed bool   `json:"completed"`
	Date      string `json:"date"`
}

type CreateTaskRequest struct {
	Title    string `json:"title"`
	Time     string `json:"time"`
	Category string `json:"category"`
	Date     string `json:"date"`
}
