package client

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/vidgen/internal/client/models"
	"github.com/dmitrijs2005/vidgen/internal/client/rest"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// envelope is the status part every JSON object reply may carry.
type envelope struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// check turns an explicit success:false into an APIError.
func (e envelope) check(status int, fallback string) error {
	if e.Success == nil || *e.Success {
		return nil
	}
	msg := e.Message
	if msg == "" {
		msg = e.Error
	}
	if msg == "" {
		msg = fallback
	}
	return &rest.APIError{Status: status, Message: msg}
}

type authResponse struct {
	envelope
	Token string          `json:"token" validate:"required"`
	User  *models.UserDTO `json:"user" validate:"required"`
}

type meResponse struct {
	envelope
	User *models.UserDTO `json:"user" validate:"required"`
}

type generateResponse struct {
	envelope
	VideoURL string `json:"videoUrl" validate:"required"`
}

type enhanceResponse struct {
	envelope
	EnhancedPrompt string `json:"enhancedPrompt"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type emailRequest struct {
	Email string `json:"email"`
}

type promptRequest struct {
	Prompt string `json:"prompt"`
}

type userRequest struct {
	UserID string `json:"userId"`
}

type creditsRequest struct {
	UserID  string `json:"userId"`
	Credits int    `json:"credits"`
}

// decodeObject decodes an object reply, honours success:false, then
// validates the contract.
func decodeObject[T any](resp *rest.Response, out *T, env func(*T) envelope, fallback string) error {
	if err := resp.Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if err := env(out).check(resp.Status, fallback); err != nil {
		return err
	}
	if err := validate.Struct(out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}

// decodeList accepts either a bare JSON array or an object holding the array
// under field, and validates every element.
func decodeList[T any](resp *rest.Response, field string, fallback string) ([]T, error) {
	body := bytes.TrimSpace(resp.Body)

	var items []T
	if len(body) > 0 && body[0] == '[' {
		if err := json.Unmarshal(body, &items); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
		}
	} else {
		var wrapped map[string]json.RawMessage
		if err := json.Unmarshal(body, &wrapped); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
		}

		var env envelope
		if err := json.Unmarshal(body, &env); err == nil {
			if err := env.check(resp.Status, fallback); err != nil {
				return nil, err
			}
		}

		raw, ok := wrapped[field]
		if !ok {
			return nil, fmt.Errorf("%w: missing %q", ErrInvalidResponse, field)
		}
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
		}
	}

	for i := range items {
		if err := validate.Struct(items[i]); err != nil {
			return nil, fmt.Errorf("%w: item %d: %v", ErrInvalidResponse, i, err)
		}
	}
	return items, nil
}
