package models

type Calendar struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type CreateCalendarInput struct {
	Name  string
	Color string
}

type UpdateCalendarInput struct {
	ID    string
	Name  *string
	Color *string
}
