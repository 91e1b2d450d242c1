package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nirmaanhetu/marketplace-api/internal/core/domain"
)

const chatsCollection = "chat_sessions"

type ChatRepository struct {
	coll *mongo.Collection
}

func NewChatRepository(db *mongo.Database) *ChatRepository {
	return &ChatRepository{coll: db.Collection(chatsCollection)}
}

type mongoChatSession struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	UserID     string             `bson:"user_id"`
	Turns      []domain.ChatTurn  `bson:"turns"`
	LastActive time.Time          `bson:"last_active"`
}

func (r *ChatRepository) GetOrCreate(ctx context.Context, userID string) (*domain.ChatSession, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ms mongoChatSession
	err := r.coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&ms)
	if err == nil {
		return &domain.ChatSession{
			ID:         ms.ID.Hex(),
			UserID:     ms.UserID,
			Turns:      ms.Turns,
			LastActive: ms.LastActive,
		}, false, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, fmt.Errorf("find chat session: %w", err)
	}

	doc := mongoChatSession{
		UserID:     userID,
		Turns:      []domain.ChatTurn{},
		LastActive: time.Now().UTC(),
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		// Lost a create race: another request inserted first, reload it.
		if mongo.IsDuplicateKeyError(err) {
			session, _, ferr := r.GetOrCreate(ctx, userID)
			return session, false, ferr
		}
		return nil, false, fmt.Errorf("create chat session: %w", err)
	}

	return &domain.ChatSession{
		ID:         res.InsertedID.(primitive.ObjectID).Hex(),
		UserID:     userID,
		Turns:      []domain.ChatTurn{},
		LastActive: doc.LastActive,
	}, true, nil
}

// AppendTurn pushes and trims in one atomic update: $slice keeps only the
// most recent domain.MaxChatTurns entries, dropping from the front.
func (r *ChatRepository) AppendTurn(ctx context.Context, userID string, turn domain.ChatTurn) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.coll.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{
			"$push": bson.M{"turns": bson.M{
				"$each":  []domain.ChatTurn{turn},
				"$slice": -domain.MaxChatTurns,
			}},
			"$set": bson.M{"last_active": turn.At},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("append chat turn: %w", err)
	}
	return nil
}

func (r *ChatRepository) Reset(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.coll.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": bson.M{
			"turns":       []domain.ChatTurn{},
			"last_active": time.Now().UTC(),
		}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("reset chat session: %w", err)
	}
	return nil
}
