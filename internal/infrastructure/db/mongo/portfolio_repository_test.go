package mongo

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/nirmaanhetu/marketplace-api/internal/core/domain"
)

// These run against the driver's mock deployment: no server, responses are
// scripted per command. They pin the MatchedCount handling in RemovePastWork,
// where the updated_at $set makes ModifiedCount useless as a pull signal.
func TestPortfolioRepository_RemovePastWork(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	owner := primitive.NewObjectID()
	entry := primitive.NewObjectID()

	portfolioDoc := bson.D{
		{Key: "_id", Value: primitive.NewObjectID()},
		{Key: "created_by", Value: owner},
		{Key: "company", Value: "Acme"},
		{Key: "experience", Value: 5},
		{Key: "address", Value: "Pune"},
		{Key: "description", Value: "homes"},
		{Key: "past_works", Value: bson.A{}},
		{Key: "created_at", Value: time.Now().UTC()},
		{Key: "updated_at", Value: time.Now().UTC()},
	}

	mt.Run("entry removed", func(mt *mtest.T) {
		repo := NewPortfolioRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		if err := repo.RemovePastWork(context.Background(), owner.Hex(), entry.Hex()); err != nil {
			t.Fatalf("remove failed: %v", err)
		}
	})

	mt.Run("entry absent from existing portfolio", func(mt *mtest.T) {
		repo := NewPortfolioRepository(mt.DB)
		// The update matches nothing because the entry is in the filter;
		// the follow-up find sees the portfolio.
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(
				bson.E{Key: "n", Value: 0},
				bson.E{Key: "nModified", Value: 0},
			),
			mtest.CreateCursorResponse(0, "nirmaan_hetu.portfolios", mtest.FirstBatch, portfolioDoc),
		)

		err := repo.RemovePastWork(context.Background(), owner.Hex(), entry.Hex())
		if !errors.Is(err, domain.ErrPastWorkNotFound) {
			t.Fatalf("expected ErrPastWorkNotFound, got %v", err)
		}
	})

	mt.Run("portfolio absent", func(mt *mtest.T) {
		repo := NewPortfolioRepository(mt.DB)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(
				bson.E{Key: "n", Value: 0},
				bson.E{Key: "nModified", Value: 0},
			),
			mtest.CreateCursorResponse(0, "nirmaan_hetu.portfolios", mtest.FirstBatch),
		)

		err := repo.RemovePastWork(context.Background(), owner.Hex(), entry.Hex())
		if !errors.Is(err, domain.ErrPortfolioNotFound) {
			t.Fatalf("expected ErrPortfolioNotFound, got %v", err)
		}
	})

	mt.Run("malformed entry id", func(mt *mtest.T) {
		repo := NewPortfolioRepository(mt.DB)

		err := repo.RemovePastWork(context.Background(), owner.Hex(), "not-a-hex-id")
		if !errors.Is(err, domain.ErrPastWorkNotFound) {
			t.Fatalf("expected ErrPastWorkNotFound, got %v", err)
		}
	})
}
