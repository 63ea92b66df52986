package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainproperty "staybook/internal/domain/property"
)

type PropertyRepository struct {
	col *mongo.Collection
}

func NewPropertyRepository(db *mongo.Database) *PropertyRepository {
	return &PropertyRepository{col: db.Collection("agg_property")}
}

func (r *PropertyRepository) ByID(ctx context.Context, id domainproperty.PropertyID) (*domainproperty.Property, error) {
	var doc propertyDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainproperty.ErrPropertyNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *PropertyRepository) Save(ctx context.Context, p *domainproperty.Property) error {
	doc := newPropertyDocument(p)
	opts := options.Replace().SetUpsert(true)
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, opts)
	return err
}

func (r *PropertyRepository) IDsWithCapacity(ctx context.Context, minCapacity int) ([]domainproperty.PropertyID, error) {
	filter := bson.M{"capacity": bson.M{"$gte": minCapacity}}
	opts := options.Find().SetProjection(bson.M{"_id": 1})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	ids := make([]domainproperty.PropertyID, 0)
	for cur.Next(ctx) {
		var doc struct {
			ID string `bson:"_id"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		ids = append(ids, domainproperty.PropertyID(doc.ID))
	}
	return ids, cur.Err()
}

type propertyDocument struct {
	ID           string          `bson:"_id"`
	HostID       string          `bson:"host_id"`
	PublicID     int64           `bson:"public_id"`
	Name         string          `bson:"name"`
	Description  string          `bson:"description"`
	Capacity     int             `bson:"capacity"`
	PropertyType string          `bson:"property_type"`
	Address      addressDocument `bson:"address"`
	ImageURLs    []string        `bson:"image_urls"`
}

type addressDocument struct {
	Line1   string `bson:"line1"`
	Line2   string `bson:"line2"`
	City    string `bson:"city"`
	Country string `bson:"country"`
	ZipCode string `bson:"zip_code"`
}

func newPropertyDocument(p *domainproperty.Property) propertyDocument {
	return propertyDocument{
		ID:           string(p.ID),
		HostID:       string(p.HostID),
		PublicID:     p.PublicID,
		Name:         p.Name,
		Description:  p.Description,
		Capacity:     p.Capacity,
		PropertyType: p.PropertyType,
		Address: addressDocument{
			Line1:   p.Address.Line1,
			Line2:   p.Address.Line2,
			City:    p.Address.City,
			Country: p.Address.Country,
			ZipCode: p.Address.ZipCode,
		},
		ImageURLs: p.ImageURLs,
	}
}

func (d propertyDocument) toAggregate() *domainproperty.Property {
	return &domainproperty.Property{
		ID:           domainproperty.PropertyID(d.ID),
		HostID:       domainproperty.HostID(d.HostID),
		PublicID:     d.PublicID,
		Name:         d.Name,
		Description:  d.Description,
		Capacity:     d.Capacity,
		PropertyType: d.PropertyType,
		Address: domainproperty.Address{
			Line1:   d.Address.Line1,
			Line2:   d.Address.Line2,
			City:    d.Address.City,
			Country: d.Address.Country,
			ZipCode: d.Address.ZipCode,
		},
		ImageURLs: d.ImageURLs,
	}
}

var _ domainproperty.Repository = (*PropertyRepository)(nil)
