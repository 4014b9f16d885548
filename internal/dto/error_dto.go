package dto

import (
	"encoding/json"
	"strings"
)

// ErrorResponse covers the backend's error bodies: {"detail": "..."},
// FastAPI validation lists {"detail": [{"msg": "..."}]} and {"message": "..."}.
type ErrorResponse struct {
	Detail  json.RawMessage `json:"detail,omitempty"`
	Message string          `json:"message,omitempty"`
}

type validationDetail struct {
	Msg string `json:"msg"`
}

func (e ErrorResponse) Text() string {
	if len(e.Detail) > 0 {
		var s string
		if err := json.Unmarshal(e.Detail, &s); err == nil && s != "" {
			return s
		}
		var items []validationDetail
		if err := json.Unmarshal(e.Detail, &items); err == nil && len(items) > 0 {
			msgs := make([]string, 0, len(items))
			for _, it := range items {
				if it.Msg != "" {
					msgs = append(msgs, it.Msg)
				}
			}
			return strings.Join(msgs, "; ")
		}
		return string(e.Detail)
	}
	return e.Message
}
