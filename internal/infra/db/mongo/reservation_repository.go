package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainlisting "staybook/internal/domain/listing"
	domainreservation "staybook/internal/domain/reservation"
	"staybook/internal/domain/shared/money"
	"staybook/internal/domain/shared/period"
)

type ReservationRepository struct {
	col *mongo.Collection
}

func NewReservationRepository(db *mongo.Database) *ReservationRepository {
	return &ReservationRepository{col: db.Collection("agg_reservation")}
}

func (r *ReservationRepository) ByID(ctx context.Context, id domainreservation.ReservationID) (*domainreservation.Reservation, error) {
	var doc reservationDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainreservation.ErrReservationNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *ReservationRepository) Save(ctx context.Context, res *domainreservation.Reservation) error {
	doc := newReservationDocument(res)
	filter := bson.M{"_id": doc.ID, "version": res.Version}
	doc.Version = res.Version + 1
	update := bson.M{"$set": doc}
	opts := options.Update().SetUpsert(true)
	result, err := r.col.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrConcurrentUpdate
		}
		return err
	}
	if result.MatchedCount == 0 && result.UpsertedCount == 0 {
		return ErrConcurrentUpdate
	}
	res.Version = doc.Version
	return nil
}

func (r *ReservationRepository) List(ctx context.Context, params domainreservation.ListParams) (domainreservation.ListResult, error) {
	opts := params.Normalized()
	filter := bson.M{}
	if opts.GuestID != "" {
		filter["guest_id"] = string(opts.GuestID)
	}
	if opts.ListingID != "" {
		filter["listing_id"] = string(opts.ListingID)
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return domainreservation.ListResult{}, err
	}
	findOpts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(opts.Offset())).
		SetLimit(int64(opts.Limit))
	cur, err := r.col.Find(ctx, filter, findOpts)
	if err != nil {
		return domainreservation.ListResult{}, err
	}
	defer cur.Close(ctx)

	items := make([]*domainreservation.Reservation, 0)
	for cur.Next(ctx) {
		var doc reservationDocument
		if err := cur.Decode(&doc); err != nil {
			return domainreservation.ListResult{}, err
		}
		items = append(items, doc.toAggregate())
	}
	if err := cur.Err(); err != nil {
		return domainreservation.ListResult{}, err
	}
	return domainreservation.ListResult{Items: items, Total: int(total)}, nil
}

type reservationDocument struct {
	ID         string        `bson:"_id"`
	ListingID  string        `bson:"listing_id"`
	GuestID    string        `bson:"guest_id"`
	From       int64         `bson:"from"`
	To         int64         `bson:"to"`
	Status     string        `bson:"status"`
	TotalPrice moneyDocument `bson:"total_price"`
	CreatedAt  int64         `bson:"created_at"`
	UpdatedAt  int64         `bson:"updated_at"`
	Version    int64         `bson:"version"`
}

func newReservationDocument(res *domainreservation.Reservation) reservationDocument {
	return reservationDocument{
		ID:         string(res.ID),
		ListingID:  string(res.ListingID),
		GuestID:    string(res.GuestID),
		From:       res.Period.From.UnixMilli(),
		To:         res.Period.To.UnixMilli(),
		Status:     string(res.Status),
		TotalPrice: moneyDocument{ValueInCents: res.TotalPrice.ValueInCents, Currency: res.TotalPrice.Currency},
		CreatedAt:  res.CreatedAt.UnixMilli(),
		UpdatedAt:  res.UpdatedAt.UnixMilli(),
		Version:    res.Version,
	}
}

func (d reservationDocument) toAggregate() *domainreservation.Reservation {
	return &domainreservation.Reservation{
		ID:         domainreservation.ReservationID(d.ID),
		ListingID:  domainlisting.ListingID(d.ListingID),
		GuestID:    domainreservation.GuestID(d.GuestID),
		Period:     period.Period{From: timestampToTime(d.From), To: timestampToTime(d.To)},
		Status:     domainreservation.Status(d.Status),
		TotalPrice: money.Money{ValueInCents: d.TotalPrice.ValueInCents, Currency: d.TotalPrice.Currency},
		CreatedAt:  timestampToTime(d.CreatedAt),
		UpdatedAt:  timestampToTime(d.UpdatedAt),
		Version:    d.Version,
	}
}

var _ domainreservation.Repository = (*ReservationRepository)(nil)
