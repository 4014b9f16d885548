package mapper

import (
	"time"

	"applydi-client/internal/dto"
	"applydi-client/internal/entity"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToEntity(d *dto.DocumentResponse) *entity.Document {
	if d == nil {
		return nil
	}
	var createdAt time.Time
	if t := parseTimestampPtr(d.CreatedAt); t != nil {
		createdAt = *t
	}
	return &entity.Document{
		Id:        entity.CanonicalID(d.Id.String()),
		Filename:  d.Filename,
		CreatedAt: createdAt,
		AgentId:   flexIDPtr(d.AgentId),
	}
}

func (m *DocumentMapper) ToEntities(list []dto.DocumentResponse) []*entity.Document {
	result := make([]*entity.Document, 0, len(list))
	for i := range list {
		result = append(result, m.ToEntity(&list[i]))
	}
	return result
}

// FromUpload builds the Document an upload produced. The backend does not
// echo a creation time, so uploadedAt is used.
func (m *DocumentMapper) FromUpload(u *dto.UploadDocumentResponse, agentId *string, uploadedAt time.Time) *entity.Document {
	if u == nil {
		return nil
	}
	owner := flexIDPtr(u.AgentId)
	if owner == nil && agentId != nil {
		id := entity.CanonicalID(*agentId)
		owner = &id
	}
	return &entity.Document{
		Id:        entity.CanonicalID(u.DocumentId.String()),
		Filename:  u.Filename,
		CreatedAt: uploadedAt,
		AgentId:   owner,
	}
}

func flexIDPtr(id *dto.FlexID) *string {
	if id == nil || *id == "" {
		return nil
	}
	s := entity.CanonicalID(id.String())
	return &s
}
