package fakeapi

import (
	"strconv"
	"sync"
	"time"

	"applydi-client/internal/dto"
)

// AddUser registers an account and returns a valid credential for it.
func (b *Backend) AddUser(username, password string) string {
	b.mu.Lock()
	b.users[username] = &user{Username: username, Email: username + "@example.com", Password: password}
	b.mu.Unlock()
	return b.sign(username, time.Hour)
}

// Token signs a credential for username valid for ttl. A negative ttl gives
// an already expired credential.
func (b *Backend) Token(username string, ttl time.Duration) string {
	return b.sign(username, ttl)
}

func (b *Backend) SeedAgent(username, name, agentType string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	a := &agent{Id: b.nextAgent, Owner: username, Name: name, Type: agentType, CreatedAt: time.Now()}
	b.agents[a.Id] = a
	b.nextAgent++
	return strconv.Itoa(a.Id)
}

// SeedDocument stores a document for username; an empty agentId files it in
// the general corpus.
func (b *Backend) SeedDocument(username, filename, agentId string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	d := &document{Id: b.nextDoc, Owner: username, Filename: filename, CreatedAt: time.Now()}
	if agentId != "" {
		id, _ := strconv.Atoi(agentId)
		d.AgentId = &id
	}
	b.documents[d.Id] = d
	b.nextDoc++
	return strconv.Itoa(d.Id)
}

func (b *Backend) DocumentCount(username string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, d := range b.documents {
		if d.Owner == username {
			n++
		}
	}
	return n
}

func (b *Backend) AgentCount(username string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, a := range b.agents {
		if a.Owner == username {
			n++
		}
	}
	return n
}

// Fail makes the next call to route answer status with detail.
func (b *Backend) Fail(route string, status int, msg string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[route] = append(b.failures[route], failure{status: status, detail: msg})
}

func (b *Backend) Calls(route string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[route]
}

func (b *Backend) SetAnswer(res dto.AskResponse) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.answer = res
}

// OmitCreatedAgent makes POST /agents acknowledge without echoing the agent.
func (b *Backend) OmitCreatedAgent() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.omitCreatedAgent = true
}

func (b *Backend) AskRequests() []dto.AskRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]dto.AskRequest(nil), b.askRequests...)
}

func (b *Backend) ExportRequests(kind string) []dto.AskRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]dto.AskRequest(nil), b.exportRequests[kind]...)
}

// Hold parks every call to route until the returned release func runs. The
// arrived channel receives once per parked call.
func (b *Backend) Hold(route string) (arrived <-chan struct{}, release func()) {
	gate := make(chan struct{})
	ch := make(chan struct{}, 16)

	b.mu.Lock()
	b.gates[route] = gate
	b.arrived[route] = ch
	b.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.gates, route)
			delete(b.arrived, route)
			b.mu.Unlock()
			close(gate)
		})
	}
}
