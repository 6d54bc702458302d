package models

import "time"

// Video is a generated asset. Read-only on the client.
type Video struct {
	ID         string
	VideoURL   string
	Prompt     string
	CreatedAt  time.Time
	OwnerEmail string
}

// Stat is one dashboard counter, e.g. {"Total Users", "42"}.
type Stat struct {
	Title string
	Value string
}

// GeneratedVideo is the result of a generation request.
type GeneratedVideo struct {
	VideoURL string
}
