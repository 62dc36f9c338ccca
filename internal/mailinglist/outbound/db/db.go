package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shandysiswandi/mailinglist/internal/mailinglist/entity"
	"github.com/shandysiswandi/mailinglist/internal/pkg/clock"
	"github.com/shandysiswandi/mailinglist/internal/pkg/instrument"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultCollection is used when no collection name is configured.
const DefaultCollection = "users"

type userDocument struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Name      string        `bson:"name"`
	Email     string        `bson:"email"`
	CreatedAt time.Time     `bson:"created_at"`
}

func (d userDocument) data() entity.UserData {
	return entity.UserData{Name: d.Name, Email: d.Email}
}

// DB is the MongoDB-backed subscriber repository.
type DB struct {
	coll  *mongo.Collection
	clock clock.Clocker
	ins   instrument.Instrumentation
}

func NewDB(database *mongo.Database, collection string, clk clock.Clocker, ins instrument.Instrumentation) *DB {
	if collection == "" {
		collection = DefaultCollection
	}

	return &DB{
		coll:  database.Collection(collection),
		clock: clk,
		ins:   ins,
	}
}

func (s *DB) mapError(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("mongodb %s: %w", op, err)
}

func (s *DB) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("mailinglist.outbound.db").Start(ctx, name)
}

func (s *DB) endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (s *DB) Add(ctx context.Context, user entity.UserData) (err error) {
	ctx, span := s.startSpan(ctx, "Add")
	defer func() { s.endSpan(span, err) }()

	_, err = s.coll.InsertOne(ctx, userDocument{
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: s.clock.Now().UTC(),
	})
	err = s.mapError("insert user", err)
	return err
}

func (s *DB) Exists(ctx context.Context, user entity.UserData) (ok bool, err error) {
	ctx, span := s.startSpan(ctx, "Exists")
	defer func() { s.endSpan(span, err) }()

	n, err := s.coll.CountDocuments(ctx,
		bson.D{{Key: "name", Value: user.Name}, {Key: "email", Value: user.Email}},
		options.Count().SetLimit(1),
	)
	if err != nil {
		err = s.mapError("count users", err)
		return false, err
	}

	return n > 0, nil
}

// FindUserByEmail returns the oldest subscriber with the email, or nil.
func (s *DB) FindUserByEmail(ctx context.Context, email string) (_ *entity.UserData, err error) {
	ctx, span := s.startSpan(ctx, "FindUserByEmail")
	defer func() { s.endSpan(span, err) }()

	var doc userDocument
	err = s.coll.FindOne(ctx,
		bson.D{{Key: "email", Value: email}},
		options.FindOne().SetSort(bson.D{{Key: "_id", Value: 1}}),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		err = nil
		return nil, nil
	}
	if err != nil {
		err = s.mapError("find user by email", err)
		return nil, err
	}

	user := doc.data()
	return &user, nil
}

func (s *DB) FindAllUsers(ctx context.Context) (_ []entity.UserData, err error) {
	ctx, span := s.startSpan(ctx, "FindAllUsers")
	defer func() { s.endSpan(span, err) }()

	cur, err := s.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		err = s.mapError("find users", err)
		return nil, err
	}

	var docs []userDocument
	if err = cur.All(ctx, &docs); err != nil {
		err = s.mapError("decode users", err)
		return nil, err
	}

	users := make([]entity.UserData, 0, len(docs))
	for _, d := range docs {
		users = append(users, d.data())
	}

	return users, nil
}

// Ping reports whether the database answers.
func (s *DB) Ping(ctx context.Context) (err error) {
	ctx, span := s.startSpan(ctx, "Ping")
	defer func() { s.endSpan(span, err) }()

	err = s.mapError("ping", s.coll.Database().Client().Ping(ctx, nil))
	return err
}
