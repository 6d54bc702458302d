package models

import "encoding/json"

// UserDTO is the backend's user document.
type UserDTO struct {
	ID                   string `json:"_id" validate:"required"`
	Email                string `json:"email" validate:"required"`
	FirstName            string `json:"firstName"`
	LastName             string `json:"lastName"`
	Username             string `json:"username"`
	Role                 string `json:"role"`
	IsActive             *bool  `json:"isActive"`
	Credits              *int   `json:"credits"`
	CreatedAt            string `json:"createdAt"`
	TotalVideosGenerated int    `json:"totalVideosGenerated"`
}

// OwnerDTO is the populated owner reference of a video.
type OwnerDTO struct {
	ID    string `json:"_id"`
	Email string `json:"email"`
}

// VideoDTO is the backend's video document. Older endpoints use "id" and
// "videoUrl"; the owner is either a populated object or a bare id.
type VideoDTO struct {
	ID          string          `json:"_id"`
	AltID       string          `json:"id"`
	VideoURL    string          `json:"video_url"`
	AltVideoURL string          `json:"videoUrl"`
	Prompt      string          `json:"prompt"`
	CreatedAt   string          `json:"createdAt"`
	Owner       json.RawMessage `json:"userId"`
}

// StatDTO is a dashboard counter; the value may be a number or a string.
type StatDTO struct {
	Title string          `json:"title" validate:"required"`
	Value json.RawMessage `json:"value"`
}
