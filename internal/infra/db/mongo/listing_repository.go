package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainlisting "staybook/internal/domain/listing"
	"staybook/internal/domain/shared/money"
)

var ErrConcurrentUpdate = errors.New("mongo: concurrent update detected")

type ListingRepository struct {
	col *mongo.Collection
}

func NewListingRepository(db *mongo.Database) *ListingRepository {
	return &ListingRepository{col: db.Collection("agg_listing")}
}

func (r *ListingRepository) ByID(ctx context.Context, id domainlisting.ListingID) (*domainlisting.Listing, error) {
	var doc listingDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainlisting.ErrListingNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *ListingRepository) Save(ctx context.Context, l *domainlisting.Listing) error {
	doc := newListingDocument(l)
	filter := bson.M{"_id": doc.ID, "version": l.Version}
	doc.Version = l.Version + 1
	update := bson.M{"$set": doc}
	opts := options.Update().SetUpsert(true)
	res, err := r.col.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrConcurrentUpdate
		}
		return err
	}
	if res.MatchedCount == 0 && res.UpsertedCount == 0 {
		return ErrConcurrentUpdate
	}
	l.Version = doc.Version
	return nil
}

func (r *ListingRepository) SoftDelete(ctx context.Context, id domainlisting.ListingID, now time.Time) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": string(id)},
		bson.M{
			"$set": bson.M{"deleted_at": now.UTC().UnixMilli(), "updated_at": now.UTC().UnixMilli()},
			"$inc": bson.M{"version": 1},
		})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domainlisting.ErrListingNotFound
	}
	return nil
}

func (r *ListingRepository) ByProperty(ctx context.Context, id domainlisting.PropertyID) ([]*domainlisting.Listing, error) {
	filter := bson.M{"property_id": string(id), "deleted_at": nil}
	opts := options.Find().SetSort(bson.D{{Key: "public_id", Value: 1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	return decodeListings(ctx, cur)
}

func (r *ListingRepository) List(ctx context.Context, params domainlisting.ListParams) (domainlisting.ListResult, error) {
	opts := params.Normalized()
	filter := bson.M{"deleted_at": nil}
	price := bson.M{}
	if opts.MinPriceCents > 0 {
		price["$gte"] = opts.MinPriceCents
	}
	if opts.MaxPriceCents > 0 {
		price["$lte"] = opts.MaxPriceCents
	}
	if len(price) > 0 {
		filter["price.value_in_cents"] = price
	}
	if opts.Currency != "" {
		filter["price.currency"] = opts.Currency
	}
	if len(opts.PropertyIDs) > 0 {
		ids := make([]string, 0, len(opts.PropertyIDs))
		for _, pid := range opts.PropertyIDs {
			ids = append(ids, string(pid))
		}
		filter["property_id"] = bson.M{"$in": ids}
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return domainlisting.ListResult{}, err
	}
	findOpts := options.Find().
		SetSort(bson.D{{Key: "public_id", Value: 1}}).
		SetSkip(int64(opts.Offset())).
		SetLimit(int64(opts.Limit))
	cur, err := r.col.Find(ctx, filter, findOpts)
	if err != nil {
		return domainlisting.ListResult{}, err
	}
	defer cur.Close(ctx)
	items, err := decodeListings(ctx, cur)
	if err != nil {
		return domainlisting.ListResult{}, err
	}
	return domainlisting.ListResult{Items: items, Total: int(total)}, nil
}

func (r *ListingRepository) NextPublicID(ctx context.Context) (int64, error) {
	return nextSequence(ctx, r.col.Database(), "listing_public_id")
}

func decodeListings(ctx context.Context, cur *mongo.Cursor) ([]*domainlisting.Listing, error) {
	items := make([]*domainlisting.Listing, 0)
	for cur.Next(ctx) {
		var doc listingDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		items = append(items, doc.toAggregate())
	}
	return items, cur.Err()
}

type listingDocument struct {
	ID         string             `bson:"_id"`
	PropertyID string             `bson:"property_id"`
	PublicID   int64              `bson:"public_id"`
	Price      moneyDocument      `bson:"price"`
	Intervals  []intervalDocument `bson:"intervals"`
	DeletedAt  *int64             `bson:"deleted_at"`
	CreatedAt  int64              `bson:"created_at"`
	UpdatedAt  int64              `bson:"updated_at"`
	Version    int64              `bson:"version"`
}

type moneyDocument struct {
	ValueInCents int64  `bson:"value_in_cents"`
	Currency     string `bson:"currency"`
}

type intervalDocument struct {
	From      int64  `bson:"from"`
	To        int64  `bson:"to"`
	Status    string `bson:"status"`
	ExpiresAt *int64 `bson:"expires_at,omitempty"`
}

func newListingDocument(l *domainlisting.Listing) listingDocument {
	intervals := make([]intervalDocument, 0, len(l.Intervals))
	for _, iv := range l.Intervals {
		doc := intervalDocument{
			From:   iv.From.UnixMilli(),
			To:     iv.To.UnixMilli(),
			Status: string(iv.Status),
		}
		if iv.ExpiresAt != nil {
			ms := iv.ExpiresAt.UnixMilli()
			doc.ExpiresAt = &ms
		}
		intervals = append(intervals, doc)
	}
	var deletedAt *int64
	if l.DeletedAt != nil {
		ms := l.DeletedAt.UnixMilli()
		deletedAt = &ms
	}
	return listingDocument{
		ID:         string(l.ID),
		PropertyID: string(l.PropertyID),
		PublicID:   l.PublicID,
		Price:      moneyDocument{ValueInCents: l.PricePerNight.ValueInCents, Currency: l.PricePerNight.Currency},
		Intervals:  intervals,
		DeletedAt:  deletedAt,
		CreatedAt:  l.CreatedAt.UnixMilli(),
		UpdatedAt:  l.UpdatedAt.UnixMilli(),
		Version:    l.Version,
	}
}

func (d listingDocument) toAggregate() *domainlisting.Listing {
	intervals := make([]domainlisting.Interval, 0, len(d.Intervals))
	for _, doc := range d.Intervals {
		iv := domainlisting.Interval{
			From:   timestampToTime(doc.From),
			To:     timestampToTime(doc.To),
			Status: domainlisting.IntervalStatus(doc.Status),
		}
		if doc.ExpiresAt != nil {
			t := timestampToTime(*doc.ExpiresAt)
			iv.ExpiresAt = &t
		}
		intervals = append(intervals, iv)
	}
	var deletedAt *time.Time
	if d.DeletedAt != nil {
		t := timestampToTime(*d.DeletedAt)
		deletedAt = &t
	}
	return &domainlisting.Listing{
		ID:            domainlisting.ListingID(d.ID),
		PropertyID:    domainlisting.PropertyID(d.PropertyID),
		PublicID:      d.PublicID,
		PricePerNight: money.Money{ValueInCents: d.Price.ValueInCents, Currency: d.Price.Currency},
		Intervals:     intervals,
		DeletedAt:     deletedAt,
		CreatedAt:     timestampToTime(d.CreatedAt),
		UpdatedAt:     timestampToTime(d.UpdatedAt),
		Version:       d.Version,
	}
}

func timestampToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

var _ domainlisting.Repository = (*ListingRepository)(nil)
