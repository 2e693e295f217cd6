package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"qa_service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type MongoStorage struct {
	client  *mongo.Client
	db      *mongo.Database
	timeout time.Duration
}

func NewMongoStorage(ctx context.Context, uri, dbName string, timeout time.Duration) (*MongoStorage, error) {
	const op = "storage.NewMongoStorage"

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	m := &MongoStorage{
		client:  client,
		db:      client.Database(dbName),
		timeout: timeout,
	}

	if err := m.ensureIndexes(connectCtx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return m, nil
}

func (m *MongoStorage) ensureIndexes(ctx context.Context) error {
	const op = "storage.ensureIndexes"

	unique := options.Index().SetUnique(true)
	indexes := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		},
		resetPasswordsCollection: {
			{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: unique},
		},
		questionsCollection: {
			{Keys: bson.D{{Key: "slug", Value: 1}}, Options: unique},
		},
		answersCollection: {
			{Keys: bson.D{{Key: "question_id", Value: 1}}},
		},
	}

	for coll, idx := range indexes {
		if _, err := m.db.Collection(coll).Indexes().CreateMany(ctx, idx); err != nil {
			return fmt.Errorf("%s (%s): %w", op, coll, err)
		}
	}

	return nil
}

func (m *MongoStorage) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

func (m *MongoStorage) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, m.timeout)
}

// mongoErr maps driver errors to the storage sentinels.
func mongoErr(op string, err error) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%s: %w: %v", op, ErrDuplicate, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// users

func (m *MongoStorage) CreateUser(ctx context.Context, user models.User) (primitive.ObjectID, error) {
	const op = "storage.CreateUser"

	ctx, cancel := m.opContext(ctx)
	defer cancel()

	user.ID = primitive.NewObjectID()
	if _, err := m.db.Collection(usersCollection).InsertOne(ctx, user); err != nil {
		return primitive.NilObjectID, mongoErr(op, err)
	}

	return user.ID, nil
}

func (m *MongoStorage) GetUserByID(ctx context.Context, userID primitive.ObjectID) (models.User, error) {
	const op = "storage.GetUserByID"

	ctx, cancel := m.opContext(ctx)
	defer cancel()

	var user models.User
	opts := options.FindOne().SetProjection(bson.M{"password": 0})
	if err := m.db.Collection(usersCollection).FindOne(ctx, bson.M{"_id": userID}, opts).Decode(&user); err != nil {
		return models.User{}, mongoErr(op, err)
	}

	return user, nil
}

func (m *MongoStorage) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	const op = "storage.GetUserByEmail"

	ctx, cancel := m.opContext(ctx)
	defer cancel()

	var user models.User
	opts := options.FindOne().SetProjection(bson.M{"password": 0})
	if err := m.db.Collection(usersCollection).FindOne(ctx, bson.M{"email": email}, opts).Decode(&user); err != nil {
		return models.User{}, mongoErr(op, err)
	}

	return user, nil
}

func (m *MongoStorage) GetCredentialsByEmail(ctx context.Context, email string) (models.Credentials, error) {
	const op = "storage.GetCredentialsByEmail"

	ctx, cancel := m.opContext(ctx)
	defer cancel()

	var user models.User
	opts := options.FindOne().SetProjection(bson.M{"_id": 1, "name": 1, "password": 1})
	if err := m.db.Collection(usersCollection).FindOne(ctx, bson.M{"email": email}, opts).Decode(&user); err != nil {
		return models.Credentials{}, mongoErr(op, err)
	}

	return models.Credentials{UserID: user.ID, Name: user.Name, PasswordHash: user.Password}, nil
}

func (m *MongoStorage) DeleteUser(ctx context.Context, userID primitive.ObjectID) error {
	const op = "storage.DeleteUser"

	ctx, cancel := m.opContext(ctx)
	defer cancel()

	res, err := m.db.Collection(usersCollection).DeleteOne(ctx, bson.M{"_id": userID})
	if err != nil {
		return mongoErr(op, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	return nil
}

// reset passwords

func (m *MongoStorage) CreateResetPassword(ctx context.Context, record models.ResetPassword) error {
	const op = "storage.CreateResetPassword"

	ctx, cancel := m.opContext(ctx)
	defer cancel()

	record.ID = primitive.NewObjectID()
	if _, err := m.db.Collection(resetPasswordsCollection).InsertOne(ctx, record); err != nil {
		return mongoErr(op, err)
	}

	return nil
}

func (m *MongoStorage) GetResetPasswordByUserID(ctx context.Context, userID primitive.ObjectID) (models.ResetPassword, error) {
	const op = "storage.GetResetPasswordByUserID"

	ctx, cancel := m.opContext(ctx)
	defer cancel()

	var record models.ResetPassword
	if err := m.db.Collection(resetPasswordsCollection).FindOne(ctx, bson.M{"user_id": userID}).Decode(&record); err != nil {
		return models.ResetPassword{}, mongoErr(op, err)
	}

	return record, nil
}

func (m *MongoStorage) SetResetPasswordToken(ctx context.Context, userID primitive.ObjectID, token string, expire time.Time) error {
	const op = "storage.SetResetPasswordToken"

	update := bson.M{"$set": bson.M{
		"reset_password_token":        token,
		"reset_password_token_expire": expire,
	}}

	return m.updateResetPassword(ctx, op, userID, update)
}

func (m *MongoStorage) ClearResetPasswordToken(ctx context.Context, userID primitive.ObjectID) error {
	const op = "storage.ClearResetPasswordToken"

	update := bson.M{"$set": bson.M{"reset_password_token": ""}}

	return m.updateResetPassword(ctx, op, userID, update)
}

func (m *MongoStorage) updateResetPassword(ctx context.Context, op string, userID primitive.ObjectID, update bson.M) error {
	ctx, cancel := m.opContext(ctx)
	defer cancel()

	res, err := m.db.Collection(resetPasswordsCollection).UpdateOne(ctx, bson.M{"user_id": userID}, update)
	if err != nil {
		return mongoErr(op, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	return nil
}

// questions

func (m *MongoStorage) CreateQuestion(ctx context.Context, question models.Question) (models.Question, error) {
	const op = "storage.CreateQuestion"

	ctx, cancel := m.opContext(ctx)
	defer cancel()

	question.ID = primitive.NewObjectID()
	if question.Likes == nil {
		question.Likes = []primitive.ObjectID{}
	}
	if question.Answers == nil {
		question.Answers = []primitive.ObjectID{}
	}

	if _, err := m.db.Collection(questionsCollection).InsertOne(ctx, question); err != nil {
		return models.Question{}, mongoErr(op, err)
	}

	return question, nil
}

func (m *MongoStorage) GetQuestionByID(ctx context.Context, questionID primitive.ObjectID) (models.Question, error) {
	const op = "storage.GetQuestionByID"

	ctx, cancel := m.opContext(ctx)
	defer cancel()

	var question models.Question
	if err := m.db.Collection(questionsCollection).FindOne(ctx, bson.M{"_id": questionID}).Decode(&question); err != nil {
		return models.Question{}, mongoErr(op, err)
	}

	return question, nil
}

func (m *MongoStorage) UpdateQuestion(ctx context.Context, questionID primitive.ObjectID, title, content string) (models.Question, error) {
	const op = "storage.UpdateQuestion"

	ctx, cancel := m.opContext(ctx)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"title":      title,
		"content":    content,
		"updated_at": time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var question models.Question
	if err := m.db.Collection(questionsCollection).FindOneAndUpdate(ctx, bson.M{"_id": questionID}, update, opts).Decode(&question); err != nil {
		return models.Question{}, mongoErr(op, err)
	}

	return question, nil
}

func (m *MongoStorage) DeleteQuestion(ctx context.Context, questionID primitive.ObjectID) error {
	const op = "storage.DeleteQuestion"

	ctx, cancel := m.opContext(ctx)
	defer cancel()

	res, err := m.db.Collection(questionsCollection).DeleteOne(ctx, bson.M{"_id": questionID})
	if err != nil {
		return mongoErr(op, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	return nil
}

func (m *MongoStorage) SlugExists(ctx context.Context, slug string) (bool, error) {
	const op = "storage.SlugExists"

	ctx, cancel := m.opContext(ctx)
	defer cancel()

	n, err := m.db.Collection(questionsCollection).CountDocuments(ctx, bson.M{"slug": slug}, options.Count().SetLimit(1))
	if err != nil {
		return false, mongoErr(op, err)
	}

	return n > 0, nil
}

// answers

func (m *MongoStorage) CreateAnswer(ctx context.Context, answer models.Answer) (models.Answer, error) {
	const op = "storage.CreateAnswer"

	ctx, cancel := m.opContext(ctx)
	defer cancel()

	answer.ID = primitive.NewObjectID()
	if answer.Likes == nil {
		answer.Likes = []primitive.ObjectID{}
	}

	if _, err := m.db.Collection(answersCollection).InsertOne(ctx, answer); err != nil {
		return models.Answer{}, mongoErr(op, err)
	}

	return answer, nil
}

func (m *MongoStorage) ListAnswersByQuestion(ctx context.Context, questionID primitive.ObjectID) ([]models.Answer, error) {
	const op = "storage.ListAnswersByQuestion"

	ctx, cancel := m.opContext(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := m.db.Collection(answersCollection).Find(ctx, bson.M{"question_id": questionID}, opts)
	if err != nil {
		return nil, mongoErr(op, err)
	}
	defer cursor.Close(ctx)

	answers := make([]models.Answer, 0)
	if err := cursor.All(ctx, &answers); err != nil {
		return nil, fmt.Errorf("%s (cursor): %w", op, err)
	}

	return answers, nil
}

func (m *MongoStorage) GetAnswerByID(ctx context.Context, answerID primitive.ObjectID) (models.Answer, error) {
	const op = "storage.GetAnswerByID"

	ctx, cancel := m.opContext(ctx)
	defer cancel()

	var answer models.Answer
	if err := m.db.Collection(answersCollection).FindOne(ctx, bson.M{"_id": answerID}).Decode(&answer); err != nil {
		return models.Answer{}, mongoErr(op, err)
	}

	return answer, nil
}

func (m *MongoStorage) UpdateAnswerContent(ctx context.Context, answerID primitive.ObjectID, content string) (models.Answer, error) {
	const op = "storage.UpdateAnswerContent"

	ctx, cancel := m.opContext(ctx)
	defer cancel()

	update := bson.M{"$set": bson.M{"content": content}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var answer models.Answer
	if err := m.db.Collection(answersCollection).FindOneAndUpdate(ctx, bson.M{"_id": answerID}, update, opts).Decode(&answer); err != nil {
		return models.Answer{}, mongoErr(op, err)
	}

	return answer, nil
}

func (m *MongoStorage) DeleteAnswer(ctx context.Context, answerID primitive.ObjectID) error {
	const op = "storage.DeleteAnswer"

	ctx, cancel := m.opContext(ctx)
	defer cancel()

	res, err := m.db.Collection(answersCollection).DeleteOne(ctx, bson.M{"_id": answerID})
	if err != nil {
		return mongoErr(op, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	return nil
}

func (m *MongoStorage) AddAnswerLike(ctx context.Context, answerID, userID primitive.ObjectID) (bool, error) {
	const op = "storage.AddAnswerLike"

	ctx, cancel := m.opContext(ctx)
	defer cancel()

	coll := m.db.Collection(answersCollection)

	// single conditional update, so concurrent likes cannot duplicate an entry
	filter := bson.M{"_id": answerID, "likes": bson.M{"$ne": userID}}
	res, err := coll.UpdateOne(ctx, filter, bson.M{"$push": bson.M{"likes": userID}})
	if err != nil {
		return false, mongoErr(op, err)
	}
	if res.MatchedCount == 1 {
		return true, nil
	}

	n, err := coll.CountDocuments(ctx, bson.M{"_id": answerID}, options.Count().SetLimit(1))
	if err != nil {
		return false, mongoErr(op, err)
	}
	if n == 0 {
		return false, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	return false, nil
}
