package api

import (
	"time"

	"github.com/hoanvu/atelier/internal/token"
)

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type SendOTPResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	SessionID string    `json:"sessionId"`
	Expires   time.Time `json:"expires"`
}

type VerifyOTPResponse struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	User    *token.Principal `json:"user"`
}

type StatusResponse struct {
	Success       bool             `json:"success"`
	Authenticated bool             `json:"authenticated"`
	User          *token.Principal `json:"user,omitempty"`
}

type DataResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type verifyOTPRequest struct {
	SessionID string `json:"sessionId"`
	Code      string `json:"code"`
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

type propertyImageRequest struct {
	URL      string `json:"url"`
	Caption  string `json:"caption"`
	Position int    `json:"position"`
}

type propertyRequest struct {
	Title       string                 `json:"title"`
	Slug        string                 `json:"slug"`
	Summary     string                 `json:"summary"`
	Description string                 `json:"description"`
	Location    string                 `json:"location"`
	Area        string                 `json:"area"`
	Year        int                    `json:"year"`
	Status      string                 `json:"status"`
	CoverImage  string                 `json:"coverImage"`
	Images      []propertyImageRequest `json:"images"`
	Published   bool                   `json:"published"`
}
