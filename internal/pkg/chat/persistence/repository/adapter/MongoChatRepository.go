package adapter

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	chat "github.com/SutharYagnesh/EduPath/internal/pkg/chat/application/domain"
	repository "github.com/SutharYagnesh/EduPath/internal/pkg/chat/persistence/repository/port"
)

const chatsCollection = "chats"

type MongoChatRepository struct {
	coll *mongo.Collection
}

// Ensure interface compliance at compile time
var _ repository.ChatRepository = (*MongoChatRepository)(nil)

func NewMongoChatRepository(db *mongo.Database) *MongoChatRepository {
	return &MongoChatRepository{coll: db.Collection(chatsCollection)}
}

func (r *MongoChatRepository) Create(ctx context.Context, ownerID string, c chat.Chat) (*chat.Chat, error) {
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, repository.ErrNotFound
	}

	now := time.Now().UTC()
	c.UserID = owner
	c.CreatedAt = now
	c.UpdatedAt = now
	if c.Title == "" {
		c.Title = chat.DefaultTitle
	}
	if c.Messages == nil {
		c.Messages = []chat.Message{}
	}

	res, err := r.coll.InsertOne(ctx, c)
	if err != nil {
		return nil, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		c.ID = oid
	}
	return &c, nil
}

func (r *MongoChatRepository) ListByOwner(ctx context.Context, ownerID string) ([]chat.Chat, error) {
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, repository.ErrNotFound
	}

	cur, err := r.coll.Find(ctx, bson.M{"user_id": owner},
		options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	chats := []chat.Chat{}
	if err := cur.All(ctx, &chats); err != nil {
		return nil, err
	}
	return chats, nil
}

func (r *MongoChatRepository) FindByIDAndOwner(ctx context.Context, id, ownerID string) (*chat.Chat, error) {
	filter, err := ownerScoped(id, ownerID)
	if err != nil {
		return nil, err
	}

	var c chat.Chat
	err = r.coll.FindOne(ctx, filter).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *MongoChatRepository) Update(ctx context.Context, id, ownerID string, patch repository.ChatPatch) (*chat.Chat, error) {
	filter, err := ownerScoped(id, ownerID)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Messages != nil {
		set["messages"] = *patch.Messages
	}

	var updated chat.Chat
	err = r.coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *MongoChatRepository) Delete(ctx context.Context, id, ownerID string) error {
	filter, err := ownerScoped(id, ownerID)
	if err != nil {
		return err
	}

	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// AppendMessage is a single aggregation-pipeline update: the push, the
// updatedAt refresh, and the conditional first-exchange title all evaluate
// server-side against the document's current state, so two racing sends both
// land their messages and only the one that saw an empty transcript sets the
// title.
func (r *MongoChatRepository) AppendMessage(ctx context.Context, id, ownerID string, m chat.Message, firstExchangeTitle string) (*chat.Chat, error) {
	filter, err := ownerScoped(id, ownerID)
	if err != nil {
		return nil, err
	}

	existing := bson.M{"$ifNull": bson.A{"$messages", bson.A{}}}

	set := bson.M{
		"messages":   bson.M{"$concatArrays": bson.A{existing, bson.A{m}}},
		"updated_at": time.Now().UTC(),
	}
	if firstExchangeTitle != "" {
		set["title"] = bson.M{"$cond": bson.A{
			bson.M{"$eq": bson.A{bson.M{"$size": existing}, 0}},
			firstExchangeTitle,
			"$title",
		}}
	}

	var updated chat.Chat
	err = r.coll.FindOneAndUpdate(ctx, filter, mongo.Pipeline{bson.D{{Key: "$set", Value: set}}},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// ownerScoped builds the compound {_id, user_id} predicate every owner-facing
// operation filters by. Malformed ids cannot match anything and map to
// ErrNotFound rather than a validation error, keeping existence unleakable.
func ownerScoped(id, ownerID string) (bson.M, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	return bson.M{"_id": oid, "user_id": owner}, nil
}
