package services

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"loopchat/errors"
)

var validate = validator.New()

// SendRequest is a validated send command: a destination port on
// loopback and a non-empty payload.
type SendRequest struct {
	Port    int    `validate:"required,gte=1,lte=65535"`
	Content string `validate:"required"`
}

// ParseSendRequest turns raw operator input into a SendRequest.
// A non-numeric or out-of-range port aborts the operation before any
// state changes.
func ParseSendRequest(rawPort, content string) (SendRequest, error) {
	port, err := strconv.Atoi(strings.TrimSpace(rawPort))
	if err != nil {
		return SendRequest{}, errors.ErrInvalidPort
	}
	req := SendRequest{Port: port, Content: content}
	if err := validate.Struct(req); err != nil {
		if req.Content == "" {
			return SendRequest{}, errors.ErrEmptyMessage
		}
		return SendRequest{}, errors.ErrInvalidPort
	}
	return req, nil
}
