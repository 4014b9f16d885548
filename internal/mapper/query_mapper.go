package mapper

import (
	"time"

	"applydi-client/internal/dto"
	"applydi-client/internal/entity"
)

type QueryMapper struct{}

func NewQueryMapper() *QueryMapper {
	return &QueryMapper{}
}

func (m *QueryMapper) ToRequest(q entity.QueryContext) *dto.AskRequest {
	return &dto.AskRequest{
		Question:          q.Question,
		SelectedDocuments: dto.FlexIDs(q.DocumentIds),
		AgentType:         q.AgentType.String(),
	}
}

// ToResult takes the capability flags verbatim from the response.
func (m *QueryMapper) ToResult(r *dto.AskResponse, q entity.QueryContext, answeredAt time.Time) *entity.QueryResult {
	return &entity.QueryResult{
		Answer: r.Answer,
		Capabilities: entity.ExportCapabilities{
			CSV:               r.CanGenerateCSV,
			PDF:               r.CanGeneratePDF,
			HasTabularContent: r.HasTable,
		},
		Context:    q,
		AnsweredAt: answeredAt,
	}
}
