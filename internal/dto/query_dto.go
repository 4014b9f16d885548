package dto

// AskRequest is shared by /ask, /generate-csv and /generate-pdf.
type AskRequest struct {
	Question          string   `json:"question" validate:"required,notblank"`
	SelectedDocuments []FlexID `json:"selected_documents"`
	AgentType         string   `json:"agent_type" validate:"required,oneof=sales marketing hr purchase"`
}

type AskResponse struct {
	Answer         string `json:"answer"`
	CanGenerateCSV bool   `json:"can_generate_csv"`
	CanGeneratePDF bool   `json:"can_generate_pdf"`
	HasTable       bool   `json:"has_table"`
}
