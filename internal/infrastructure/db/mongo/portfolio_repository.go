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

const portfoliosCollection = "portfolios"

type PortfolioRepository struct {
	coll *mongo.Collection
}

func NewPortfolioRepository(db *mongo.Database) *PortfolioRepository {
	return &PortfolioRepository{coll: db.Collection(portfoliosCollection)}
}

type mongoLogo struct {
	URL      string `bson:"url"`
	PublicID string `bson:"public_id"`
}

type mongoPriceRange struct {
	Min float64 `bson:"min"`
	Max float64 `bson:"max"`
}

type mongoPastWork struct {
	ID          primitive.ObjectID `bson:"_id"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Images      []string           `bson:"images"`
	Price       mongoPriceRange    `bson:"price"`
	Specialties []string           `bson:"specialties"`
	CreatedAt   time.Time          `bson:"created_at"`
}

type mongoPortfolio struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	CreatedBy   primitive.ObjectID `bson:"created_by"`
	Company     string             `bson:"company"`
	Experience  int                `bson:"experience"`
	Address     string             `bson:"address"`
	Description string             `bson:"description"`
	Lat         *float64           `bson:"lat,omitempty"`
	Lng         *float64           `bson:"lng,omitempty"`
	Logo        *mongoLogo         `bson:"logo,omitempty"`
	PastWorks   []mongoPastWork    `bson:"past_works"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (mp *mongoPortfolio) toDomain() *domain.Portfolio {
	p := &domain.Portfolio{
		ID:          mp.ID.Hex(),
		CreatedBy:   mp.CreatedBy.Hex(),
		Company:     mp.Company,
		Experience:  mp.Experience,
		Address:     mp.Address,
		Description: mp.Description,
		Lat:         mp.Lat,
		Lng:         mp.Lng,
		PastWorks:   make([]domain.PastWork, 0, len(mp.PastWorks)),
		CreatedAt:   mp.CreatedAt,
		UpdatedAt:   mp.UpdatedAt,
	}
	if mp.Logo != nil {
		p.Logo = &domain.MediaObject{URL: mp.Logo.URL, PublicID: mp.Logo.PublicID}
	}
	for _, w := range mp.PastWorks {
		p.PastWorks = append(p.PastWorks, domain.PastWork{
			ID:          w.ID.Hex(),
			Title:       w.Title,
			Description: w.Description,
			Images:      w.Images,
			Price:       domain.PriceRange{Min: w.Price.Min, Max: w.Price.Max},
			Specialties: w.Specialties,
			CreatedAt:   w.CreatedAt,
		})
	}
	return p
}

func (r *PortfolioRepository) Create(ctx context.Context, p *domain.Portfolio) (*domain.Portfolio, error) {
	owner, err := primitive.ObjectIDFromHex(p.CreatedBy)
	if err != nil {
		return nil, fmt.Errorf("invalid owner id: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoPortfolio{
		CreatedBy:   owner,
		Company:     p.Company,
		Experience:  p.Experience,
		Address:     p.Address,
		Description: p.Description,
		Lat:         p.Lat,
		Lng:         p.Lng,
		PastWorks:   []mongoPastWork{},
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.Logo != nil {
		doc.Logo = &mongoLogo{URL: p.Logo.URL, PublicID: p.Logo.PublicID}
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrPortfolioExists
		}
		return nil, fmt.Errorf("insert portfolio: %w", err)
	}

	created := *p
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *PortfolioRepository) FindByOwner(ctx context.Context, ownerID string) (*domain.Portfolio, error) {
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, domain.ErrPortfolioNotFound
	}
	return r.findOne(ctx, bson.M{"created_by": owner})
}

func (r *PortfolioRepository) FindByID(ctx context.Context, id string) (*domain.Portfolio, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPortfolioNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *PortfolioRepository) findOne(ctx context.Context, filter bson.M) (*domain.Portfolio, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mp mongoPortfolio
	if err := r.coll.FindOne(ctx, filter).Decode(&mp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPortfolioNotFound
		}
		return nil, fmt.Errorf("find portfolio: %w", err)
	}
	return mp.toDomain(), nil
}

func (r *PortfolioRepository) FindAll(ctx context.Context) ([]*domain.Portfolio, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("find portfolios: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Portfolio
	for cur.Next(ctx) {
		var mp mongoPortfolio
		if err := cur.Decode(&mp); err != nil {
			return nil, fmt.Errorf("decode portfolio: %w", err)
		}
		out = append(out, mp.toDomain())
	}
	return out, cur.Err()
}

// UpdateFields applies the non-zero fields in a single $set, replacing the
// load-mutate-save pattern so concurrent updates cannot lose writes.
func (r *PortfolioRepository) UpdateFields(ctx context.Context, ownerID string, upd domain.PortfolioUpdate) (*domain.Portfolio, error) {
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, domain.ErrPortfolioNotFound
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Company != "" {
		set["company"] = upd.Company
	}
	if upd.Experience > 0 {
		set["experience"] = upd.Experience
	}
	if upd.Address != "" {
		set["address"] = upd.Address
	}
	if upd.Description != "" {
		set["description"] = upd.Description
	}
	if upd.Lat != nil {
		set["lat"] = *upd.Lat
	}
	if upd.Lng != nil {
		set["lng"] = *upd.Lng
	}
	if upd.Logo != nil {
		set["logo"] = mongoLogo{URL: upd.Logo.URL, PublicID: upd.Logo.PublicID}
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mp mongoPortfolio
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"created_by": owner},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&mp)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPortfolioNotFound
		}
		return nil, fmt.Errorf("update portfolio: %w", err)
	}
	return mp.toDomain(), nil
}

func (r *PortfolioRepository) ClearLogo(ctx context.Context, ownerID string) error {
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return domain.ErrPortfolioNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"created_by": owner},
		bson.M{
			"$unset": bson.M{"logo": ""},
			"$set":   bson.M{"updated_at": time.Now().UTC()},
		})
	if err != nil {
		return fmt.Errorf("clear logo: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPortfolioNotFound
	}
	return nil
}

// AppendPastWork pushes at the end of the embedded list, keeping insertion
// order.
func (r *PortfolioRepository) AppendPastWork(ctx context.Context, ownerID string, pw *domain.PastWork) error {
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return domain.ErrPortfolioNotFound
	}

	doc := mongoPastWork{
		ID:          primitive.NewObjectID(),
		Title:       pw.Title,
		Description: pw.Description,
		Images:      pw.Images,
		Price:       mongoPriceRange{Min: pw.Price.Min, Max: pw.Price.Max},
		Specialties: pw.Specialties,
		CreatedAt:   pw.CreatedAt,
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"created_by": owner},
		bson.M{
			"$push": bson.M{"past_works": doc},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		})
	if err != nil {
		return fmt.Errorf("append past work: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPortfolioNotFound
	}

	pw.ID = doc.ID.Hex()
	return nil
}

// RemovePastWork pulls by embedded ID, scoped to the owner's portfolio so a
// builder can never touch another builder's entries. The entry is part of
// the filter: the $set on updated_at always modifies the document, so
// ModifiedCount cannot tell a real pull from a no-op.
func (r *PortfolioRepository) RemovePastWork(ctx context.Context, ownerID, pastWorkID string) error {
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return domain.ErrPortfolioNotFound
	}
	pwID, err := primitive.ObjectIDFromHex(pastWorkID)
	if err != nil {
		return domain.ErrPastWorkNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"created_by": owner, "past_works._id": pwID},
		bson.M{
			"$pull": bson.M{"past_works": bson.M{"_id": pwID}},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		})
	if err != nil {
		return fmt.Errorf("remove past work: %w", err)
	}
	if res.MatchedCount == 0 {
		// No document carried the entry: tell a missing portfolio apart
		// from a missing entry.
		if _, err := r.findOne(ctx, bson.M{"created_by": owner}); err != nil {
			return err
		}
		return domain.ErrPastWorkNotFound
	}
	return nil
}
