package fakeapi

import (
	"io"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"applydi-client/internal/dto"

	"github.com/gofiber/fiber/v2"
)

const timestampLayout = "2006-01-02T15:04:05.000000"

var acceptedExtensions = map[string]bool{".pdf": true, ".txt": true, ".docx": true, ".md": true, ".csv": true}

func detail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"detail": msg})
}

func (b *Backend) login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return detail(c, fiber.StatusUnprocessableEntity, "Invalid body")
	}

	b.mu.Lock()
	u, ok := b.users[req.Username]
	b.mu.Unlock()
	if !ok || u.Password != req.Password {
		return detail(c, fiber.StatusUnauthorized, "Incorrect username or password")
	}

	return c.JSON(dto.LoginResponse{AccessToken: b.sign(u.Username, time.Hour), TokenType: "bearer"})
}

func (b *Backend) register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return detail(c, fiber.StatusUnprocessableEntity, "Invalid body")
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.users[req.Username]; exists {
		return detail(c, fiber.StatusBadRequest, "Username already registered")
	}
	b.users[req.Username] = &user{Username: req.Username, Email: req.Email, Password: req.Password}
	return c.JSON(dto.RegisterResponse{Message: "User created successfully"})
}

func agentResponse(a *agent) dto.AgentResponse {
	return dto.AgentResponse{
		Id:        dto.FlexID(strconv.Itoa(a.Id)),
		Name:      a.Name,
		Type:      a.Type,
		CreatedAt: a.CreatedAt.Format(timestampLayout),
	}
}

func (b *Backend) listAgents(c *fiber.Ctx) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	agents := make([]dto.AgentResponse, 0)
	for _, id := range sortedKeys(b.agents) {
		if a := b.agents[id]; a.Owner == owner(c) {
			agents = append(agents, agentResponse(a))
		}
	}
	return c.JSON(dto.GetAllAgentsResponse{Agents: agents})
}

func (b *Backend) createAgent(c *fiber.Ctx) error {
	var req dto.CreateAgentRequest
	if err := c.BodyParser(&req); err != nil {
		return detail(c, fiber.StatusUnprocessableEntity, "Invalid body")
	}
	if strings.TrimSpace(req.Name) == "" {
		return detail(c, fiber.StatusBadRequest, "Agent name is required")
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	a := &agent{Id: b.nextAgent, Owner: owner(c), Name: req.Name, Type: req.Type, CreatedAt: time.Now()}
	b.agents[a.Id] = a
	b.nextAgent++

	if b.omitCreatedAgent {
		return c.JSON(fiber.Map{"message": "Agent created"})
	}
	return c.JSON(fiber.Map{"agent": agentResponse(a)})
}

func (b *Backend) deleteAgent(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return detail(c, fiber.StatusNotFound, "Agent not found")
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	a, ok := b.agents[id]
	if !ok || a.Owner != owner(c) {
		return detail(c, fiber.StatusNotFound, "Agent not found")
	}
	delete(b.agents, id)
	for docId, d := range b.documents {
		if d.AgentId != nil && *d.AgentId == id {
			delete(b.documents, docId)
		}
	}
	return c.JSON(fiber.Map{"message": "Agent deleted"})
}

// ownedAgent must be called with mu held.
func (b *Backend) ownedAgent(c *fiber.Ctx, raw string) (int, bool) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	a, ok := b.agents[id]
	return id, ok && a.Owner == owner(c)
}

func (b *Backend) listDocuments(c *fiber.Ctx) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	var agentId *int
	if raw := c.Query("agent_id"); raw != "" {
		id, ok := b.ownedAgent(c, raw)
		if !ok {
			return detail(c, fiber.StatusNotFound, "Agent not found")
		}
		agentId = &id
	}

	docs := make([]dto.DocumentResponse, 0)
	for _, id := range sortedKeys(b.documents) {
		d := b.documents[id]
		if d.Owner != owner(c) || !sameAgent(d.AgentId, agentId) {
			continue
		}
		res := dto.DocumentResponse{
			Id:        dto.FlexID(strconv.Itoa(d.Id)),
			Filename:  d.Filename,
			CreatedAt: d.CreatedAt.Format(timestampLayout),
		}
		if d.AgentId != nil {
			aid := dto.FlexID(strconv.Itoa(*d.AgentId))
			res.AgentId = &aid
		}
		docs = append(docs, res)
	}
	return c.JSON(dto.GetAllDocumentsResponse{Documents: docs})
}

func (b *Backend) upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return detail(c, fiber.StatusUnprocessableEntity, "File is required")
	}
	if !acceptedExtensions[strings.ToLower(filepath.Ext(fh.Filename))] {
		return detail(c, fiber.StatusBadRequest, "File type not supported")
	}
	f, err := fh.Open()
	if err != nil {
		return detail(c, fiber.StatusBadRequest, "Unreadable file")
	}
	content, _ := io.ReadAll(f)
	f.Close()
	if len(content) == 0 {
		return detail(c, fiber.StatusBadRequest, "Empty file")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	d := &document{Id: b.nextDoc, Owner: owner(c), Filename: fh.Filename, CreatedAt: time.Now()}
	res := dto.UploadDocumentResponse{Filename: fh.Filename, Status: "processed"}
	if strings.HasSuffix(c.Path(), "/upload-agent") {
		id, ok := b.ownedAgent(c, c.FormValue("agent_id"))
		if !ok {
			return detail(c, fiber.StatusNotFound, "Agent not found")
		}
		d.AgentId = &id
		aid := dto.FlexID(strconv.Itoa(id))
		res.AgentId = &aid
	}
	b.documents[d.Id] = d
	b.nextDoc++

	res.DocumentId = dto.FlexID(strconv.Itoa(d.Id))
	return c.JSON(res)
}

func (b *Backend) deleteDocument(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return detail(c, fiber.StatusNotFound, "Document not found")
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	d, ok := b.documents[id]
	if !ok || d.Owner != owner(c) {
		return detail(c, fiber.StatusNotFound, "Document not found")
	}
	delete(b.documents, id)
	return c.JSON(fiber.Map{"message": "Document deleted"})
}

func (b *Backend) ask(c *fiber.Ctx) error {
	var req dto.AskRequest
	if err := c.BodyParser(&req); err != nil {
		return detail(c, fiber.StatusUnprocessableEntity, "Invalid body")
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.askRequests = append(b.askRequests, req)
	return c.JSON(b.answer)
}

func (b *Backend) export(kind, contentType string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req dto.AskRequest
		if err := c.BodyParser(&req); err != nil {
			return detail(c, fiber.StatusUnprocessableEntity, "Invalid body")
		}

		b.mu.Lock()
		b.exportRequests[kind] = append(b.exportRequests[kind], req)
		b.mu.Unlock()

		c.Set(fiber.HeaderContentType, contentType)
		return c.Send([]byte(kind + ":" + req.Question))
	}
}

func sameAgent(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func sortedKeys[T any](m map[int]T) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
