package table

import (
	"strings"

	"github.com/dmitrijs2005/vidgen/internal/client/models"
)

// FilterVideosByOwner keeps videos whose owner email equals email, ignoring
// case. An empty email keeps everything.
func FilterVideosByOwner(videos []models.Video, email string) []models.Video {
	email = strings.TrimSpace(email)
	if email == "" {
		return videos
	}
	out := make([]models.Video, 0, len(videos))
	for _, v := range videos {
		if strings.EqualFold(v.OwnerEmail, email) {
			out = append(out, v)
		}
	}
	return out
}

func VideoColumns() []Column[models.Video] {
	return []Column[models.Video]{
		{
			ID: "createdAt", Header: "Created At",
			Compare: func(a, b models.Video) int { return a.CreatedAt.Compare(b.CreatedAt) },
			Cell: func(v models.Video) string {
				if v.CreatedAt.IsZero() {
					return "-"
				}
				return v.CreatedAt.Format("2006-01-02 15:04")
			},
		},
		{
			ID: "owner", Header: "Owner",
			Compare: func(a, b models.Video) int { return strings.Compare(a.OwnerEmail, b.OwnerEmail) },
			Cell:    func(v models.Video) string { return v.OwnerEmail },
		},
		{
			ID: "prompt", Header: "Prompt",
			Compare: func(a, b models.Video) int { return strings.Compare(a.Prompt, b.Prompt) },
			Cell:    func(v models.Video) string { return truncate(v.Prompt, 48) },
		},
		{
			ID: "url", Header: "URL",
			Cell: func(v models.Video) string { return v.VideoURL },
		},
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
