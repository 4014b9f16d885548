package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"applydi-client/internal/entity"
)

// FlexID accepts identifiers encoded either as JSON numbers or strings and
// writes numeric identifiers back as numbers, which is what the backend
// expects for document selections.
type FlexID string

func (id *FlexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = FlexID(entity.CanonicalID(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a number or a string: %w", err)
	}
	*id = FlexID(entity.CanonicalID(n.String()))
	return nil
}

func (id FlexID) MarshalJSON() ([]byte, error) {
	canonical := entity.CanonicalID(string(id))
	if n, err := strconv.ParseInt(canonical, 10, 64); err == nil {
		return []byte(strconv.FormatInt(n, 10)), nil
	}
	return json.Marshal(canonical)
}

func (id FlexID) String() string {
	return string(id)
}

func FlexIDs(ids []string) []FlexID {
	out := make([]FlexID, 0, len(ids))
	for _, id := range ids {
		out = append(out, FlexID(id))
	}
	return out
}
