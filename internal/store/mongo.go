package store

import (
	"context"
	"errors"

	"github.com/rotisserie/eris"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sells-group/scorecard/internal/model"
)

const historyCollection = "score_history"

// MongoStore implements Store on a MongoDB collection.
type MongoStore struct {
	client  *mongo.Client
	history *mongo.Collection
}

// NewMongo connects to uri and uses the named database.
func NewMongo(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, eris.Wrap(err, "mongo: connect")
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(ctx) //nolint:errcheck
		return nil, eris.Wrap(err, "mongo: ping")
	}
	return newMongoStore(client, client.Database(database)), nil
}

func newMongoStore(client *mongo.Client, db *mongo.Database) *MongoStore {
	return &MongoStore{client: client, history: db.Collection(historyCollection)}
}

func (s *MongoStore) Migrate(ctx context.Context) error {
	_, err := s.history.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "subcomponent_id", Value: 1}, {Key: "session_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "updated_at", Value: -1}}},
	})
	return eris.Wrap(err, "mongo: migrate")
}

func (s *MongoStore) Close() error {
	if s.client == nil {
		return nil
	}
	return eris.Wrap(s.client.Disconnect(context.Background()), "mongo: disconnect")
}

func (s *MongoStore) SaveHistory(ctx context.Context, rec *model.HistoryRecord) error {
	prepare(rec)

	filter := bson.M{"subcomponent_id": rec.SubcomponentID, "session_id": rec.SessionID}
	update := bson.M{
		"$set": bson.M{
			"overall_score": rec.OverallScore,
			"responses":     rec.Responses,
			"result":        rec.Result,
			"updated_at":    rec.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"id":         rec.ID,
			"created_at": rec.CreatedAt,
		},
	}
	_, err := s.history.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return eris.Wrapf(err, "mongo: save history %s/%s", rec.SubcomponentID, rec.SessionID)
}

func (s *MongoStore) GetHistory(ctx context.Context, subcomponentID, sessionID string) (*model.HistoryRecord, error) {
	var rec model.HistoryRecord
	err := s.history.FindOne(ctx, bson.M{"subcomponent_id": subcomponentID, "session_id": sessionID}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "mongo: get history")
	}
	return &rec, nil
}

func (s *MongoStore) ListHistory(ctx context.Context, filter HistoryFilter) ([]model.HistoryRecord, error) {
	q := bson.M{}
	if filter.SubcomponentID != "" {
		q["subcomponent_id"] = filter.SubcomponentID
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "updated_at", Value: -1}, {Key: "id", Value: 1}}).
		SetLimit(int64(limitOf(filter))).
		SetSkip(int64(max(filter.Offset, 0)))

	cur, err := s.history.Find(ctx, q, opts)
	if err != nil {
		return nil, eris.Wrap(err, "mongo: list history")
	}
	var out []model.HistoryRecord
	if err := cur.All(ctx, &out); err != nil {
		return nil, eris.Wrap(err, "mongo: decode history")
	}
	return out, nil
}
