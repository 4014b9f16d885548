// Package fakeapi is an in-process stand-in for the assistant backend. It
// serves the same routes over a fiber app and is reached through app.Test,
// so tests never open a socket.
package fakeapi

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"applydi-client/internal/dto"
	"applydi-client/pkg/httpclient"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	RouteLogin          = "POST /login"
	RouteRegister       = "POST /register"
	RouteListAgents     = "GET /agents"
	RouteCreateAgent    = "POST /agents"
	RouteDeleteAgent    = "DELETE /agents/:id"
	RouteListDocuments  = "GET /user/documents"
	RouteUpload         = "POST /upload"
	RouteUploadAgent    = "POST /upload-agent"
	RouteDeleteDocument = "DELETE /user/documents/:id"
	RouteAsk            = "POST /ask"
	RouteGenerateCSV    = "POST /generate-csv"
	RouteGeneratePDF    = "POST /generate-pdf"
)

type user struct {
	Username string
	Email    string
	Password string
}

type agent struct {
	Id        int
	Owner     string
	Name      string
	Type      string
	CreatedAt time.Time
}

type document struct {
	Id        int
	Owner     string
	Filename  string
	AgentId   *int
	CreatedAt time.Time
}

type failure struct {
	status int
	detail string
}

// Backend holds the fake's state. All exported helpers are safe to call
// while requests are in flight.
type Backend struct {
	app    *fiber.App
	secret []byte

	mu        sync.Mutex
	users     map[string]*user
	agents    map[int]*agent
	documents map[int]*document
	nextAgent int
	nextDoc   int
	calls     map[string]int
	failures  map[string][]failure

	answer           dto.AskResponse
	askRequests      []dto.AskRequest
	exportRequests   map[string][]dto.AskRequest
	omitCreatedAgent bool
	gates            map[string]chan struct{}
	arrived          map[string]chan struct{}
}

func New() *Backend {
	b := &Backend{
		secret:         []byte("fakeapi-secret"),
		users:          map[string]*user{},
		agents:         map[int]*agent{},
		documents:      map[int]*document{},
		nextAgent:      1,
		nextDoc:        1,
		calls:          map[string]int{},
		failures:       map[string][]failure{},
		exportRequests: map[string][]dto.AskRequest{},
		gates:          map[string]chan struct{}{},
		arrived:        map[string]chan struct{}{},
		answer: dto.AskResponse{
			Answer: "Voici la synthèse des documents sélectionnés.",
		},
	}

	app := fiber.New(fiber.Config{
		BodyLimit:             10 * 1024 * 1024,
		DisableStartupMessage: true,
	})

	b.route(app, RouteLogin, false, b.login)
	b.route(app, RouteRegister, false, b.register)
	b.route(app, RouteListAgents, true, b.listAgents)
	b.route(app, RouteCreateAgent, true, b.createAgent)
	b.route(app, RouteDeleteAgent, true, b.deleteAgent)
	b.route(app, RouteListDocuments, true, b.listDocuments)
	b.route(app, RouteUpload, true, b.upload)
	b.route(app, RouteUploadAgent, true, b.upload)
	b.route(app, RouteDeleteDocument, true, b.deleteDocument)
	b.route(app, RouteAsk, true, b.ask)
	b.route(app, RouteGenerateCSV, true, b.export("csv", "text/csv"))
	b.route(app, RouteGeneratePDF, true, b.export("pdf", "application/pdf"))

	b.app = app
	return b
}

func (b *Backend) App() *fiber.App {
	return b.app
}

func (b *Backend) route(app *fiber.App, route string, protected bool, h fiber.Handler) {
	parts := strings.Fields(route)
	method, path := parts[0], parts[1]

	handlers := []fiber.Handler{b.instrument(route)}
	if protected {
		handlers = append(handlers, b.jwtMiddleware)
	}
	handlers = append(handlers, h)
	app.Add(method, path, handlers...)
}

// instrument counts the call, waits on a gate if one is set and replays an
// injected failure.
func (b *Backend) instrument(route string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		b.mu.Lock()
		b.calls[route]++
		gate := b.gates[route]
		arrived := b.arrived[route]
		var injected *failure
		if queue := b.failures[route]; len(queue) > 0 {
			injected = &queue[0]
			b.failures[route] = queue[1:]
		}
		b.mu.Unlock()

		if arrived != nil {
			select {
			case arrived <- struct{}{}:
			default:
			}
		}
		if gate != nil {
			<-gate
		}
		if injected != nil {
			return c.Status(injected.status).JSON(fiber.Map{"detail": injected.detail})
		}
		return c.Next()
	}
}

func (b *Backend) jwtMiddleware(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": "Not authenticated"})
	}

	token, err := jwt.Parse(authHeader[7:], func(t *jwt.Token) (interface{}, error) {
		return b.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": "Could not validate credentials"})
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": "Could not validate credentials"})
	}
	c.Locals("username", sub)
	return c.Next()
}

func owner(c *fiber.Ctx) string {
	s, _ := c.Locals("username").(string)
	return s
}

func (b *Backend) sign(username string, ttl time.Duration) string {
	claims := jwt.MapClaims{"sub": username, "exp": time.Now().Add(ttl).Unix()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(b.secret)
	if err != nil {
		panic(err)
	}
	return token
}

// doer adapts the fiber app to httpclient.Doer.
type doer struct {
	app *fiber.App
}

func (d doer) Do(req *http.Request) (*http.Response, error) {
	return d.app.Test(req, -1)
}

// Doer is handed to httpclient.WithDoer.
func (b *Backend) Doer() httpclient.Doer {
	return doer{app: b.app}
}
