package api

import (
	"errors"
	"net/mail"
	"strings"
)

const maxMessageLength = 4000

func validateContactRequest(req *contactRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Message = strings.TrimSpace(req.Message)

	if req.Name == "" {
		return errors.New("name is required")
	}
	if len(req.Name) > 128 {
		return errors.New("name must be less than 128 characters")
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return errors.New("invalid email address")
	}
	if len(req.Phone) > 32 {
		return errors.New("phone must be less than 32 characters")
	}
	if req.Message == "" {
		return errors.New("message is required")
	}
	if len(req.Message) > maxMessageLength {
		return errors.New("message is too long")
	}
	return nil
}
