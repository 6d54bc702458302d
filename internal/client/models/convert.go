package models

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// ToUser converts a wire user. A missing isActive flag means active.
func (d UserDTO) ToUser() User {
	u := User{
		ID:                   d.ID,
		Email:                d.Email,
		FirstName:            d.FirstName,
		LastName:             d.LastName,
		Username:             d.Username,
		Role:                 RoleUser,
		IsActive:             true,
		CreatedAt:            parseTime(d.CreatedAt),
		TotalVideosGenerated: d.TotalVideosGenerated,
	}
	if d.Role == string(RoleAdmin) {
		u.Role = RoleAdmin
	}
	if d.IsActive != nil {
		u.IsActive = *d.IsActive
	}
	if d.Credits != nil {
		u.Credits = *d.Credits
	}
	return u
}

// ToSession derives session fields. defaultCredits applies when the server
// omitted the balance.
func (d UserDTO) ToSession(defaultCredits int) Session {
	s := Session{
		UserID:        d.ID,
		DisplayName:   displayName(d.FirstName, d.LastName),
		Email:         d.Email,
		CreditBalance: defaultCredits,
		Role:          RoleUser,
	}
	if d.Credits != nil {
		s.CreditBalance = *d.Credits
	}
	if d.Role == string(RoleAdmin) {
		s.Role = RoleAdmin
	}
	return s
}

func (d VideoDTO) ToVideo() Video {
	v := Video{
		ID:        firstNonEmpty(d.ID, d.AltID),
		VideoURL:  firstNonEmpty(d.VideoURL, d.AltVideoURL),
		Prompt:    d.Prompt,
		CreatedAt: parseTime(d.CreatedAt),
	}

	owner := bytes.TrimSpace(d.Owner)
	if len(owner) > 0 && owner[0] == '{' {
		var o OwnerDTO
		if err := json.Unmarshal(owner, &o); err == nil {
			v.OwnerEmail = o.Email
		}
	}
	return v
}

func (d StatDTO) ToStat() Stat {
	raw := bytes.TrimSpace(d.Value)
	value := string(raw)

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		value = s
	}
	if value == "null" {
		value = ""
	}
	return Stat{Title: d.Title, Value: value}
}

func UsersFromDTO(in []UserDTO) []User {
	out := make([]User, 0, len(in))
	for _, d := range in {
		out = append(out, d.ToUser())
	}
	return out
}

func VideosFromDTO(in []VideoDTO) []Video {
	out := make([]Video, 0, len(in))
	for _, d := range in {
		out = append(out, d.ToVideo())
	}
	return out
}

func StatsFromDTO(in []StatDTO) []Stat {
	out := make([]Stat, 0, len(in))
	for _, d := range in {
		out = append(out, d.ToStat())
	}
	return out
}

func parseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
