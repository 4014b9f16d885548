package service

import (
	"context"
	"os"
	"path/filepath"

	"applydi-client/internal/entity"
	"applydi-client/internal/pkg/clientutils"
	"applydi-client/internal/pkg/logger"
	"applydi-client/internal/repository/contract"
)

// IDocumentService is the Document Inventory. A nil agentId addresses the
// general corpus, which is listed separately from any agent's.
type IDocumentService interface {
	List(ctx context.Context, agentId *string) ([]*entity.Document, error)
	Upload(ctx context.Context, path string, agentId *string) (*entity.Document, error)
	Remove(ctx context.Context, documentId string) error
}

type documentService struct {
	repo    contract.DocumentRepository
	session ISessionService
	logger  logger.ILogger
}

func NewDocumentService(repo contract.DocumentRepository, session ISessionService, log logger.ILogger) IDocumentService {
	return &documentService{repo: repo, session: session, logger: log}
}

func (s *documentService) List(ctx context.Context, agentId *string) ([]*entity.Document, error) {
	token, err := credential(s.session)
	if err != nil {
		return nil, err
	}

	docs, err := s.repo.FindAll(ctx, token, agentId)
	if err != nil {
		expireOnUnauthorized(s.session, err)
		return nil, err
	}
	return docs, nil
}

// Upload sends the file at path as-is. The extension allow-list is the
// caller's concern; the backend has the final word on accepted types.
func (s *documentService) Upload(ctx context.Context, path string, agentId *string) (*entity.Document, error) {
	token, err := credential(s.session)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, clientutils.NewValidationError("cannot read " + path + ": " + err.Error())
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		return nil, clientutils.NewValidationError(path + " is not a regular file")
	}

	doc, err := s.repo.Upload(ctx, token, contract.DocumentUpload{
		Filename: filepath.Base(path),
		Content:  f,
	}, agentId)
	if err != nil {
		expireOnUnauthorized(s.session, err)
		return nil, err
	}

	s.logger.Info("DOCUMENT", "Document uploaded", map[string]interface{}{
		"document_id": doc.Id,
		"filename":    doc.Filename,
		"size":        info.Size(),
		"agent_id":    agentId,
	})
	return doc, nil
}

func (s *documentService) Remove(ctx context.Context, documentId string) error {
	token, err := credential(s.session)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, token, documentId); err != nil {
		expireOnUnauthorized(s.session, err)
		return err
	}

	s.logger.Info("DOCUMENT", "Document removed", map[string]interface{}{"document_id": documentId})
	return nil
}
