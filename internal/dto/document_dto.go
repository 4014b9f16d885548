package dto

type DocumentResponse struct {
	Id        FlexID  `json:"id"`
	Filename  string  `json:"filename"`
	CreatedAt string  `json:"created_at"`
	AgentId   *FlexID `json:"agent_id,omitempty"`
}

type GetAllDocumentsResponse struct {
	Documents []DocumentResponse `json:"documents"`
}

type UploadDocumentResponse struct {
	Filename   string  `json:"filename"`
	DocumentId FlexID  `json:"document_id"`
	Status     string  `json:"status"`
	AgentId    *FlexID `json:"agent_id,omitempty"`
}
