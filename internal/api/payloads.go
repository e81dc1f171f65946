package api

import (
	"encoding/json"
	"time"

	"taskflow/internal/model"
)

// Optional records whether a JSON key was present and whether it was null.
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Null = true
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// ptr returns the value when the key carried a non-null value.
func (o Optional[T]) ptr() *T {
	if !o.Set || o.Null {
		return nil
	}
	v := o.Value
	return &v
}

type credentialsIn struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authOut struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

type userOut struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

type createTaskIn struct {
	Title      string `json:"title"`
	Desc       string `json:"desc"`
	CategoryID *uint  `json:"category_id"`
	Priority   string `json:"priority"`
	Status     string `json:"status"`
	DueDate    string `json:"due_date"`
}

type updateTaskIn struct {
	Title      Optional[string] `json:"title"`
	Desc       Optional[string] `json:"desc"`
	CategoryID Optional[uint]   `json:"category_id"`
	Priority   Optional[string] `json:"priority"`
	Status     Optional[string] `json:"status"`
	DueDate    Optional[string] `json:"due_date"`
}

type taskOut struct {
	ID         uint   `json:"id"`
	Title      string `json:"title"`
	Desc       string `json:"desc"`
	CategoryID *uint  `json:"category_id"`
	Priority   string `json:"priority"`
	Status     string `json:"status"`
	DueDate    string `json:"due_date"`
	CreatedAt  string `json:"created_at"`
}

func newTaskOut(t model.Task) taskOut {
	out := taskOut{
		ID:         t.ID,
		Title:      t.Title,
		Desc:       t.Description,
		CategoryID: t.CategoryID,
		Priority:   string(t.Priority),
		Status:     string(t.Status),
		CreatedAt:  t.CreatedAt.UTC().Format(time.RFC3339),
	}
	if t.DueDate != nil {
		out.DueDate = *t.DueDate
	}
	return out
}

type categoryIn struct {
	Name  string  `json:"name"`
	Color *string `json:"color"`
}

type categoryOut struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

func newCategoryOut(c model.Category) categoryOut {
	return categoryOut{ID: c.ID, Name: c.Name, Color: c.Color}
}

type messageOut struct {
	Message string `json:"message"`
}
