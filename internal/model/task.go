package model

// DefaultCategory подставляется, когда категория не указана
const DefaultCategory = "default"

type Task struct {
	ID int64 `json:"id"`
	Content string `json:"content"`
	Completed bool `json:"completed"`
	Category string `json:"category"`
}
