package in

import (
	"context"

	"prayerlog/internal/modules/journal/dto"
	journalin "prayerlog/internal/modules/journal/port/in"
)

type CLIHandler struct {
	usecase journalin.Usecase
}

func NewCLIHandler(usecase journalin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Add(ctx context.Context, userID, title, text string) (dto.NoteOutput, error) {
	return h.usecase.Create(ctx, dto.CreateInput{UserID: userID, Title: title, Text: text})
}

// Edit keeps the current title or text when the replacement is empty.
func (h CLIHandler) Edit(ctx context.Context, userID, id, title, text string) (dto.UpdateOutput, error) {
	current, err := h.usecase.Get(ctx, userID, id)
	if err != nil {
		return dto.UpdateOutput{}, err
	}
	if title == "" {
		title = current.Title
	}
	if text == "" {
		text = current.Text
	}
	return h.usecase.Update(ctx, dto.UpdateInput{UserID: userID, ID: id, Title: title, Text: text})
}

// List returns every note, or only matching ones when query is set.
func (h CLIHandler) List(ctx context.Context, userID, query string) ([]dto.NoteOutput, error) {
	if query == "" {
		return h.usecase.List(ctx, userID)
	}
	return h.usecase.Search(ctx, userID, query)
}

func (h CLIHandler) Delete(ctx context.Context, userID, id string) error {
	return h.usecase.Delete(ctx, userID, id)
}
