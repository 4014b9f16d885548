package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexIDDecodesNumbersAndStrings(t *testing.T) {
	var resp GetAllDocumentsResponse
	body := `{"documents":[{"id":12,"filename":"a.pdf","created_at":"2026-10-01T10:00:00"},{"id":"0013","filename":"b.txt","created_at":"2026-10-02T10:00:00","agent_id":3}]}`

	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	require.Len(t, resp.Documents, 2)
	assert.Equal(t, FlexID("12"), resp.Documents[0].Id)
	assert.Nil(t, resp.Documents[0].AgentId)
	assert.Equal(t, FlexID("13"), resp.Documents[1].Id)
	require.NotNil(t, resp.Documents[1].AgentId)
	assert.Equal(t, FlexID("3"), *resp.Documents[1].AgentId)
}

func TestAskRequestEncodesNumericSelection(t *testing.T) {
	req := AskRequest{
		Question:          "Quel est le CA ?",
		SelectedDocuments: FlexIDs([]string{"1", "uuid-like"}),
		AgentType:         "sales",
	}

	raw, err := json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{"question":"Quel est le CA ?","selected_documents":[1,"uuid-like"],"agent_type":"sales"}`, string(raw))
}

func TestCreateAgentResponseResolved(t *testing.T) {
	var bare CreateAgentResponse
	require.NoError(t, json.Unmarshal([]byte(`{"id":5,"name":"Closer","type":"sales"}`), &bare))
	require.NotNil(t, bare.Resolved())
	assert.Equal(t, FlexID("5"), bare.Resolved().Id)

	var wrapped CreateAgentResponse
	require.NoError(t, json.Unmarshal([]byte(`{"message":"ok","agent":{"id":"6","name":"Buyer","type":"purchase"}}`), &wrapped))
	assert.Equal(t, "Buyer", wrapped.Resolved().Name)

	var empty CreateAgentResponse
	require.NoError(t, json.Unmarshal([]byte(`{"message":"ok"}`), &empty))
	assert.Nil(t, empty.Resolved())
}

func TestErrorResponseText(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"string detail", `{"detail":"File type not supported"}`, "File type not supported"},
		{"validation list", `{"detail":[{"msg":"field required"},{"msg":"value is not a valid integer"}]}`, "field required; value is not a valid integer"},
		{"message", `{"message":"Invalid token"}`, "Invalid token"},
		{"empty", `{}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e ErrorResponse
			require.NoError(t, json.Unmarshal([]byte(tt.body), &e))
			assert.Equal(t, tt.want, e.Text())
		})
	}
}
