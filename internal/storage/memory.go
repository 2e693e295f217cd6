package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"qa_service/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStorage keeps every collection in process memory. It enforces the same
// unique keys as the MongoDB indexes and hands out copies, never shared slices.
type MemoryStorage struct {
	mu             sync.RWMutex
	users          map[primitive.ObjectID]models.User
	resetPasswords map[primitive.ObjectID]models.ResetPassword // keyed by user id
	questions      map[primitive.ObjectID]models.Question
	answers        map[primitive.ObjectID]models.Answer
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		users:          make(map[primitive.ObjectID]models.User),
		resetPasswords: make(map[primitive.ObjectID]models.ResetPassword),
		questions:      make(map[primitive.ObjectID]models.Question),
		answers:        make(map[primitive.ObjectID]models.Answer),
	}
}

func (s *MemoryStorage) Close(context.Context) error { return nil }

func cloneIDs(ids []primitive.ObjectID) []primitive.ObjectID {
	out := make([]primitive.ObjectID, len(ids))
	copy(out, ids)
	return out
}

func cloneQuestion(q models.Question) models.Question {
	q.Likes = cloneIDs(q.Likes)
	q.Answers = cloneIDs(q.Answers)
	return q
}

func cloneAnswer(a models.Answer) models.Answer {
	a.Likes = cloneIDs(a.Likes)
	return a
}

// users

func (s *MemoryStorage) CreateUser(_ context.Context, user models.User) (primitive.ObjectID, error) {
	const op = "storage.CreateUser"

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == user.Username || u.Email == user.Email {
			return primitive.NilObjectID, fmt.Errorf("%s: %w", op, ErrDuplicate)
		}
	}

	user.ID = primitive.NewObjectID()
	s.users[user.ID] = user

	return user.ID, nil
}

func (s *MemoryStorage) GetUserByID(_ context.Context, userID primitive.ObjectID) (models.User, error) {
	const op = "storage.GetUserByID"

	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[userID]
	if !ok {
		return models.User{}, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	user.Password = ""

	return user, nil
}

func (s *MemoryStorage) findByEmail(email string) (models.User, bool) {
	for _, u := range s.users {
		if u.Email == email {
			return u, true
		}
	}
	return models.User{}, false
}

func (s *MemoryStorage) GetUserByEmail(_ context.Context, email string) (models.User, error) {
	const op = "storage.GetUserByEmail"

	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.findByEmail(email)
	if !ok {
		return models.User{}, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	user.Password = ""

	return user, nil
}

func (s *MemoryStorage) GetCredentialsByEmail(_ context.Context, email string) (models.Credentials, error) {
	const op = "storage.GetCredentialsByEmail"

	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.findByEmail(email)
	if !ok {
		return models.Credentials{}, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	return models.Credentials{UserID: user.ID, Name: user.Name, PasswordHash: user.Password}, nil
}

func (s *MemoryStorage) DeleteUser(_ context.Context, userID primitive.ObjectID) error {
	const op = "storage.DeleteUser"

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	delete(s.users, userID)

	return nil
}

// reset passwords

func (s *MemoryStorage) CreateResetPassword(_ context.Context, record models.ResetPassword) error {
	const op = "storage.CreateResetPassword"

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.resetPasswords[record.UserID]; ok {
		return fmt.Errorf("%s: %w", op, ErrDuplicate)
	}
	record.ID = primitive.NewObjectID()
	s.resetPasswords[record.UserID] = record

	return nil
}

func (s *MemoryStorage) GetResetPasswordByUserID(_ context.Context, userID primitive.ObjectID) (models.ResetPassword, error) {
	const op = "storage.GetResetPasswordByUserID"

	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.resetPasswords[userID]
	if !ok {
		return models.ResetPassword{}, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	return record, nil
}

func (s *MemoryStorage) SetResetPasswordToken(_ context.Context, userID primitive.ObjectID, token string, expire time.Time) error {
	const op = "storage.SetResetPasswordToken"

	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.resetPasswords[userID]
	if !ok {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	record.ResetPasswordToken = token
	record.ResetPasswordTokenExpire = expire
	s.resetPasswords[userID] = record

	return nil
}

func (s *MemoryStorage) ClearResetPasswordToken(_ context.Context, userID primitive.ObjectID) error {
	const op = "storage.ClearResetPasswordToken"

	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.resetPasswords[userID]
	if !ok {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	record.ResetPasswordToken = ""
	s.resetPasswords[userID] = record

	return nil
}

// questions

func (s *MemoryStorage) CreateQuestion(_ context.Context, question models.Question) (models.Question, error) {
	const op = "storage.CreateQuestion"

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, q := range s.questions {
		if q.Slug == question.Slug {
			return models.Question{}, fmt.Errorf("%s: %w", op, ErrDuplicate)
		}
	}

	question.ID = primitive.NewObjectID()
	question = cloneQuestion(question)
	s.questions[question.ID] = question

	return cloneQuestion(question), nil
}

func (s *MemoryStorage) GetQuestionByID(_ context.Context, questionID primitive.ObjectID) (models.Question, error) {
	const op = "storage.GetQuestionByID"

	s.mu.RLock()
	defer s.mu.RUnlock()

	question, ok := s.questions[questionID]
	if !ok {
		return models.Question{}, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	return cloneQuestion(question), nil
}

func (s *MemoryStorage) UpdateQuestion(_ context.Context, questionID primitive.ObjectID, title, content string) (models.Question, error) {
	const op = "storage.UpdateQuestion"

	s.mu.Lock()
	defer s.mu.Unlock()

	question, ok := s.questions[questionID]
	if !ok {
		return models.Question{}, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	question.Title = title
	question.Content = content
	question.UpdatedAt = time.Now().UTC()
	s.questions[questionID] = question

	return cloneQuestion(question), nil
}

func (s *MemoryStorage) DeleteQuestion(_ context.Context, questionID primitive.ObjectID) error {
	const op = "storage.DeleteQuestion"

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.questions[questionID]; !ok {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	delete(s.questions, questionID)

	return nil
}

func (s *MemoryStorage) SlugExists(_ context.Context, slug string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, q := range s.questions {
		if q.Slug == slug {
			return true, nil
		}
	}

	return false, nil
}

// answers

func (s *MemoryStorage) CreateAnswer(_ context.Context, answer models.Answer) (models.Answer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	answer.ID = primitive.NewObjectID()
	answer = cloneAnswer(answer)
	s.answers[answer.ID] = answer

	return cloneAnswer(answer), nil
}

func (s *MemoryStorage) ListAnswersByQuestion(_ context.Context, questionID primitive.ObjectID) ([]models.Answer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	answers := make([]models.Answer, 0)
	for _, a := range s.answers {
		if a.QuestionID == questionID {
			answers = append(answers, cloneAnswer(a))
		}
	}
	sort.Slice(answers, func(i, j int) bool {
		if answers[i].CreatedAt.Equal(answers[j].CreatedAt) {
			return answers[i].ID.Hex() < answers[j].ID.Hex()
		}
		return answers[i].CreatedAt.Before(answers[j].CreatedAt)
	})

	return answers, nil
}

func (s *MemoryStorage) GetAnswerByID(_ context.Context, answerID primitive.ObjectID) (models.Answer, error) {
	const op = "storage.GetAnswerByID"

	s.mu.RLock()
	defer s.mu.RUnlock()

	answer, ok := s.answers[answerID]
	if !ok {
		return models.Answer{}, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	return cloneAnswer(answer), nil
}

func (s *MemoryStorage) UpdateAnswerContent(_ context.Context, answerID primitive.ObjectID, content string) (models.Answer, error) {
	const op = "storage.UpdateAnswerContent"

	s.mu.Lock()
	defer s.mu.Unlock()

	answer, ok := s.answers[answerID]
	if !ok {
		return models.Answer{}, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	answer.Content = content
	s.answers[answerID] = answer

	return cloneAnswer(answer), nil
}

func (s *MemoryStorage) DeleteAnswer(_ context.Context, answerID primitive.ObjectID) error {
	const op = "storage.DeleteAnswer"

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.answers[answerID]; !ok {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	delete(s.answers, answerID)

	return nil
}

func (s *MemoryStorage) AddAnswerLike(_ context.Context, answerID, userID primitive.ObjectID) (bool, error) {
	const op = "storage.AddAnswerLike"

	s.mu.Lock()
	defer s.mu.Unlock()

	answer, ok := s.answers[answerID]
	if !ok {
		return false, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if answer.LikedBy(userID) {
		return false, nil
	}
	answer.Likes = append(cloneIDs(answer.Likes), userID)
	s.answers[answerID] = answer

	return true, nil
}
