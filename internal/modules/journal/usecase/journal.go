package usecase

import (
	"context"

	"prayerlog/internal/modules/journal/domain"
	"prayerlog/internal/modules/journal/dto"
	journalin "prayerlog/internal/modules/journal/port/in"
	"prayerlog/internal/modules/journal/service"
)

type Interactor struct {
	svc *service.NoteService
}

func NewInteractor(svc *service.NoteService) journalin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Create(ctx context.Context, input dto.CreateInput) (dto.NoteOutput, error) {
	note, err := i.svc.Create(ctx, input.UserID, input.Title, input.Text)
	if err != nil {
		return dto.NoteOutput{}, err
	}
	return toOutput(note), nil
}

func (i *Interactor) Update(ctx context.Context, input dto.UpdateInput) (dto.UpdateOutput, error) {
	note, changed, err := i.svc.Update(ctx, input.UserID, input.ID, input.Title, input.Text)
	if err != nil {
		return dto.UpdateOutput{}, err
	}
	return dto.UpdateOutput{Note: toOutput(note), Changed: changed}, nil
}

func (i *Interactor) Get(ctx context.Context, userID, id string) (dto.NoteOutput, error) {
	note, err := i.svc.Get(ctx, userID, id)
	if err != nil {
		return dto.NoteOutput{}, err
	}
	return toOutput(note), nil
}

func (i *Interactor) List(ctx context.Context, userID string) ([]dto.NoteOutput, error) {
	notes, err := i.svc.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toOutputs(notes), nil
}

func (i *Interactor) Search(ctx context.Context, userID, query string) ([]dto.NoteOutput, error) {
	notes, err := i.svc.Search(ctx, userID, query)
	if err != nil {
		return nil, err
	}
	return toOutputs(notes), nil
}

func (i *Interactor) Delete(ctx context.Context, userID, id string) error {
	return i.svc.Delete(ctx, userID, id)
}

func toOutput(note domain.Note) dto.NoteOutput {
	return dto.NoteOutput{
		ID:        note.ID,
		Title:     note.Title,
		Text:      note.Text,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
		NotePath:  note.NotePath,
	}
}

func toOutputs(notes []domain.Note) []dto.NoteOutput {
	out := make([]dto.NoteOutput, 0, len(notes))
	for _, n := range notes {
		out = append(out, toOutput(n))
	}
	return out
}
