package models

import "time"

// Category — рубрика обзоров. Административный CRUD рубрик вне рамок
// сервиса, здесь рубрики только читаются при создании обзора.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// Tag — метка обзора, связь многие-ко-многим.
type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
