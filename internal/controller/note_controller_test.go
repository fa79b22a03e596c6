package controller

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"notes-app-be/internal/dto"
	"notes-app-be/internal/entity"
	"notes-app-be/internal/pkg/logger"
	"notes-app-be/internal/pkg/serverutils"
	"notes-app-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubNoteService struct {
	created *dto.NoteResponse
	listed  []dto.NoteResponse
	err     error

	gotUserId  uuid.UUID
	gotContent string
	gotNoteId  uuid.UUID
}

func (s *stubNoteService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	s.gotUserId = userId
	s.gotContent = req.Content
	return s.created, s.err
}

func (s *stubNoteService) List(ctx context.Context, userId uuid.UUID) ([]dto.NoteResponse, error) {
	s.gotUserId = userId
	return s.listed, s.err
}

func (s *stubNoteService) Delete(ctx context.Context, userId, noteId uuid.UUID) error {
	s.gotUserId = userId
	s.gotNoteId = noteId
	return s.err
}

var _ service.INoteService = (*stubNoteService)(nil)

func newNoteApp(svc service.INoteService, account *entity.AuthAccount) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware(logger.NewNopLogger()))

	// Stands in for the real bearer-token middleware.
	auth := func(ctx *fiber.Ctx) error {
		if account == nil {
			return serverutils.NewUnauthorized("Access token required")
		}
		ctx.Locals("auth_account", account)
		return ctx.Next()
	}

	api := app.Group("/api")
	NewNoteController(svc, auth).RegisterRoutes(api)
	return app
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func TestCreateNoteEndpoint(t *testing.T) {
	account := &entity.AuthAccount{Id: uuid.New(), Email: "alice@example.com"}
	noteId := uuid.New()
	svc := &stubNoteService{created: &dto.NoteResponse{
		Id:        noteId,
		Content:   "buy milk",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}}
	app := newNoteApp(svc, account)

	req := httptest.NewRequest("POST", "/api/notes", strings.NewReader(`{"content":"buy milk"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, account.Id, svc.gotUserId)
	assert.Equal(t, "buy milk", svc.gotContent)

	var e envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&e))
	assert.True(t, e.Success)

	var created dto.NoteResponse
	require.NoError(t, json.Unmarshal(e.Data, &created))
	assert.Equal(t, noteId, created.Id)
}

func TestCreateNoteEndpointRequiresContent(t *testing.T) {
	account := &entity.AuthAccount{Id: uuid.New(), Email: "alice@example.com"}
	app := newNoteApp(&stubNoteService{}, account)

	req := httptest.NewRequest("POST", "/api/notes", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestListNotesEndpoint(t *testing.T) {
	account := &entity.AuthAccount{Id: uuid.New(), Email: "alice@example.com"}
	svc := &stubNoteService{listed: []dto.NoteResponse{
		{Id: uuid.New(), Content: "newer"},
		{Id: uuid.New(), Content: "older"},
	}}
	app := newNoteApp(svc, account)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/notes", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, account.Id, svc.gotUserId)

	var e envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&e))
	var notes []dto.NoteResponse
	require.NoError(t, json.Unmarshal(e.Data, &notes))
	require.Len(t, notes, 2)
	assert.Equal(t, "newer", notes[0].Content)
}

func TestDeleteNoteEndpoint(t *testing.T) {
	account := &entity.AuthAccount{Id: uuid.New(), Email: "alice@example.com"}
	svc := &stubNoteService{}
	app := newNoteApp(svc, account)

	noteId := uuid.New()
	resp, err := app.Test(httptest.NewRequest("DELETE", "/api/notes/"+noteId.String(), nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, noteId, svc.gotNoteId)
}

func TestDeleteNoteEndpointBadId(t *testing.T) {
	account := &entity.AuthAccount{Id: uuid.New(), Email: "alice@example.com"}
	app := newNoteApp(&stubNoteService{}, account)

	resp, err := app.Test(httptest.NewRequest("DELETE", "/api/notes/not-a-uuid", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestNotesEndpointsRequireAuth(t *testing.T) {
	app := newNoteApp(&stubNoteService{}, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/notes", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
