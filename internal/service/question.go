package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"unicode/utf8"

	"qa_service/internal/auth"
	"qa_service/internal/models"
	"qa_service/internal/storage"

	"github.com/gosimple/slug"
)

const (
	minTitleLength           = 10
	minQuestionContentLength = 20

	maxSlugAttempts = 100
)

func validateQuestion(title, content string) error {
	if utf8.RuneCountInString(title) < minTitleLength {
		return models.NewValidationError("Please provide a title that is at least 10 characters long.")
	}
	if utf8.RuneCountInString(content) < minQuestionContentLength {
		return models.NewValidationError("Please provide a content that is at least 20 characters long.")
	}
	return nil
}

// uniqueSlug derives a slug from title, suffixing -1, -2, ... until no question uses it.
func (s *service) uniqueSlug(ctx context.Context, title string) (string, error) {
	const op = "service.uniqueSlug"

	base := slug.Make(title)
	if base == "" {
		base = "question"
	}

	candidate := base
	for i := 1; i <= maxSlugAttempts; i++ {
		exists, err := s.storage.SlugExists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("%s: %w", op, err)
		}
		if !exists {
			return candidate, nil
		}
		candidate = base + "-" + strconv.Itoa(i)
	}

	suffix, err := auth.RandomString(8)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return base + "-" + slug.Make(suffix), nil
}

func (s *service) AskQuestion(ctx context.Context, identity auth.Identity, title, content string) (models.Question, error) {
	const op = "service.AskQuestion"

	if title == "" || content == "" {
		return models.Question{}, models.NewValidationError("Please provide a title and content")
	}
	if err := validateQuestion(title, content); err != nil {
		return models.Question{}, err
	}

	userID, err := identityID(identity)
	if err != nil {
		return models.Question{}, err
	}

	// the slug index is unique; a concurrent ask may take the slug between check and insert
	for attempt := 0; ; attempt++ {
		questionSlug, err := s.uniqueSlug(ctx, title)
		if err != nil {
			return models.Question{}, err
		}

		now := s.now()
		question, err := s.storage.CreateQuestion(ctx, models.Question{
			Title:     title,
			Content:   content,
			Slug:      questionSlug,
			UserID:    userID,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err == nil {
			return question, nil
		}
		if !errors.Is(err, storage.ErrDuplicate) || attempt >= 2 {
			return models.Question{}, fmt.Errorf("%s: %w", op, err)
		}
	}
}

func (s *service) GetQuestion(ctx context.Context, questionID string) (models.Question, error) {
	const op = "service.GetQuestion"

	id, err := parseID(questionID, "Please provide a question id", "Please provide a valid id")
	if err != nil {
		return models.Question{}, err
	}

	question, err := s.storage.GetQuestionByID(ctx, id)
	if err != nil {
		return models.Question{}, lookupErr(op, err, "There is no question with that id")
	}

	return question, nil
}

func (s *service) EditQuestion(ctx context.Context, identity auth.Identity, questionID, title, content string) (models.Question, error) {
	const op = "service.EditQuestion"

	if questionID == "" {
		return models.Question{}, models.NewValidationError("Please provide a question id")
	}
	if content == "" {
		return models.Question{}, models.NewValidationError("Please provide content to edit the question.")
	}
	if title == "" {
		return models.Question{}, models.NewValidationError("Please provide a title to edit the question.")
	}
	id, err := parseID(questionID, "Please provide a question id", "Please provide a validated question id")
	if err != nil {
		return models.Question{}, err
	}
	if err := validateQuestion(title, content); err != nil {
		return models.Question{}, err
	}

	question, err := s.storage.GetQuestionByID(ctx, id)
	if err != nil {
		return models.Question{}, lookupErr(op, err, "There is no question with that id.")
	}

	if !auth.IsOwner(question, identity.ID) {
		return models.Question{}, models.NewPermissionError("You cannot edit this question.")
	}

	updated, err := s.storage.UpdateQuestion(ctx, id, title, content)
	if err != nil {
		return models.Question{}, lookupErr(op, err, "There is no question with that id.")
	}

	return updated, nil
}

func (s *service) DeleteQuestion(ctx context.Context, identity auth.Identity, questionID string) error {
	const op = "service.DeleteQuestion"

	id, err := parseID(questionID, "Please provide a question id", "Please provide a validated question id")
	if err != nil {
		return err
	}

	question, err := s.storage.GetQuestionByID(ctx, id)
	if err != nil {
		return lookupErr(op, err, "There is no question with that id.")
	}

	if !auth.IsOwner(question, identity.ID) {
		return models.NewPermissionError("You cannot delete this question.")
	}

	if err := s.storage.DeleteQuestion(ctx, id); err != nil {
		return lookupErr(op, err, "There is no question with that id.")
	}

	return nil
}
