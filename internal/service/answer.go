package service

import (
	"context"
	"unicode/utf8"

	"qa_service/internal/auth"
	"qa_service/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const minAnswerContentLength = 10

func parseAnswerIDs(questionID, answerID string) (primitive.ObjectID, primitive.ObjectID, error) {
	qid, err := parseID(questionID, "Please provide an ID.", "Please provide a valid ID.")
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, err
	}
	aid, err := parseID(answerID, "Please provide an ID.", "Please provide a valid ID.")
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, err
	}
	return qid, aid, nil
}

// answerOfQuestion loads an answer and hides it unless it belongs to questionID.
func (s *service) answerOfQuestion(ctx context.Context, op string, questionID, answerID primitive.ObjectID, notFoundMsg string) (models.Answer, error) {
	answer, err := s.storage.GetAnswerByID(ctx, answerID)
	if err != nil {
		return models.Answer{}, lookupErr(op, err, notFoundMsg)
	}
	if answer.QuestionID != questionID {
		return models.Answer{}, models.NewNotFoundError(notFoundMsg)
	}
	return answer, nil
}

func (s *service) AddAnswer(ctx context.Context, identity auth.Identity, questionID, content string) (models.Answer, error) {
	const op = "service.AddAnswer"

	qid, err := parseID(questionID, "Please provide an ID.", "Please provide a valid ID.")
	if err != nil {
		return models.Answer{}, err
	}
	if content == "" {
		return models.Answer{}, models.NewValidationError("Please provide a content for the answer.")
	}
	if utf8.RuneCountInString(content) < minAnswerContentLength {
		return models.Answer{}, models.NewValidationError("Please provide minimum 10 characters.")
	}

	userID, err := identityID(identity)
	if err != nil {
		return models.Answer{}, err
	}

	if _, err := s.storage.GetQuestionByID(ctx, qid); err != nil {
		return models.Answer{}, lookupErr(op, err, "There is no question with that id")
	}

	answer, err := s.storage.CreateAnswer(ctx, models.Answer{
		Content:    content,
		UserID:     userID,
		QuestionID: qid,
		Likes:      []primitive.ObjectID{},
		CreatedAt:  s.now(),
	})
	if err != nil {
		return models.Answer{}, lookupErr(op, err, "There is no question with that id")
	}

	return answer, nil
}

func (s *service) ListAnswers(ctx context.Context, questionID string) ([]models.Answer, error) {
	const op = "service.ListAnswers"

	qid, err := parseID(questionID, "Please provide an ID.", "Please provide a valid ID.")
	if err != nil {
		return nil, err
	}

	answers, err := s.storage.ListAnswersByQuestion(ctx, qid)
	if err != nil {
		return nil, lookupErr(op, err, "There is no question with that id")
	}

	return answers, nil
}

func (s *service) GetAnswer(ctx context.Context, questionID, answerID string) (models.Answer, error) {
	const op = "service.GetAnswer"

	qid, aid, err := parseAnswerIDs(questionID, answerID)
	if err != nil {
		return models.Answer{}, err
	}

	return s.answerOfQuestion(ctx, op, qid, aid, "There is no answer with that id.")
}

func (s *service) EditAnswer(ctx context.Context, identity auth.Identity, questionID, answerID, content string) (models.Answer, error) {
	const op = "service.EditAnswer"

	qid, aid, err := parseAnswerIDs(questionID, answerID)
	if err != nil {
		return models.Answer{}, err
	}
	if content == "" {
		return models.Answer{}, models.NewValidationError("Please provide a content to edit the answer.")
	}
	if utf8.RuneCountInString(content) < minAnswerContentLength {
		return models.Answer{}, models.NewValidationError("Please provide minimum 10 characters.")
	}

	answer, err := s.answerOfQuestion(ctx, op, qid, aid, "Answer could not be found.")
	if err != nil {
		return models.Answer{}, err
	}

	if !auth.IsOwner(answer, identity.ID) {
		return models.Answer{}, models.NewPermissionError("You cannot edit this answer.")
	}

	edited, err := s.storage.UpdateAnswerContent(ctx, aid, content)
	if err != nil {
		return models.Answer{}, lookupErr(op, err, "Answer could not be found.")
	}

	return edited, nil
}

func (s *service) DeleteAnswer(ctx context.Context, identity auth.Identity, questionID, answerID string) error {
	const op = "service.DeleteAnswer"

	qid, aid, err := parseAnswerIDs(questionID, answerID)
	if err != nil {
		return err
	}

	answer, err := s.answerOfQuestion(ctx, op, qid, aid, "Answer could not be found.")
	if err != nil {
		return err
	}

	if !auth.IsOwner(answer, identity.ID) {
		return models.NewPermissionError("You cannot delete this answer.")
	}

	if err := s.storage.DeleteAnswer(ctx, aid); err != nil {
		return lookupErr(op, err, "Answer could not be found.")
	}

	return nil
}

// LikeAnswer records one like per identity; a repeated like is a client error.
func (s *service) LikeAnswer(ctx context.Context, identity auth.Identity, questionID, answerID string) error {
	const op = "service.LikeAnswer"

	qid, aid, err := parseAnswerIDs(questionID, answerID)
	if err != nil {
		return err
	}

	userID, err := identityID(identity)
	if err != nil {
		return err
	}

	if _, err := s.answerOfQuestion(ctx, op, qid, aid, "Answer could not be found"); err != nil {
		return err
	}

	added, err := s.storage.AddAnswerLike(ctx, aid, userID)
	if err != nil {
		return lookupErr(op, err, "Answer could not be found")
	}
	if !added {
		return models.NewValidationError("You already liked this answer")
	}

	return nil
}
