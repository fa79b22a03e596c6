package service

import (
	"context"
	"strings"
	"time"

	"notes-app-be/internal/dto"
	"notes-app-be/internal/entity"
	"notes-app-be/internal/pkg/logger"
	"notes-app-be/internal/pkg/serverutils"
	"notes-app-be/internal/repository/contract"

	"github.com/google/uuid"
)

type INoteService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.NoteResponse, error)
	List(ctx context.Context, userId uuid.UUID) ([]dto.NoteResponse, error)
	Delete(ctx context.Context, userId, noteId uuid.UUID) error
}

type noteService struct {
	notes  contract.NoteRepository
	logger logger.ILogger
}

func NewNoteService(notes contract.NoteRepository, log logger.ILogger) INoteService {
	return &noteService{notes: notes, logger: log}
}

func (s *noteService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, serverutils.NewValidationError("Content is required")
	}

	now := time.Now()
	note := &entity.Note{
		Id:        uuid.New(),
		UserId:    userId,
		Content:   req.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.notes.Create(ctx, note); err != nil {
		return nil, err
	}

	return toNoteResponse(note), nil
}

func (s *noteService) List(ctx context.Context, userId uuid.UUID) ([]dto.NoteResponse, error) {
	notes, err := s.notes.FindAllByUserId(ctx, userId)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.NoteResponse, 0, len(notes))
	for _, note := range notes {
		responses = append(responses, *toNoteResponse(note))
	}
	return responses, nil
}

func (s *noteService) Delete(ctx context.Context, userId, noteId uuid.UUID) error {
	note, err := s.notes.FindById(ctx, noteId)
	if err != nil {
		return err
	}
	if note == nil {
		return serverutils.NewNotFound("Note not found")
	}
	if note.UserId != userId {
		return serverutils.NewForbidden("You can only delete your own notes")
	}
	return s.notes.Delete(ctx, noteId)
}

func toNoteResponse(note *entity.Note) *dto.NoteResponse {
	return &dto.NoteResponse{
		Id:        note.Id,
		Content:   note.Content,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
}
