package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/guttosm/laundry-service/internal/domain/model"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Prices are stored as decimal strings so that no float rounding happens on the
// way through BSON. The scale is kept, so 16.00 is stored as "16.00".

// MixedPackDocument is the stored form of model.MixedPack.
type MixedPackDocument struct {
	ID         string `bson:"id"`
	Capacity   int    `bson:"capacity"`
	ShirtLimit int    `bson:"shirt_limit"`
	Price      string `bson:"price"`
}

// ShirtPackDocument is the stored form of model.ShirtPack.
type ShirtPackDocument struct {
	ID       string `bson:"id"`
	Capacity int    `bson:"capacity"`
	Price    string `bson:"price"`
}

// LinenPackDocument is the stored form of model.LinenPack.
type LinenPackDocument struct {
	ID          string `bson:"id"`
	Sheets      int    `bson:"sheets"`
	Pillowcases int    `bson:"pillowcases"`
	Price       string `bson:"price"`
}

// ItemDocument is the stored form of model.Item.
type ItemDocument struct {
	ID        string `bson:"id"`
	Name      string `bson:"name"`
	UnitPrice string `bson:"unit_price"`
	Category  string `bson:"category,omitempty"`
}

// CatalogDocument is one version of the catalog. Exactly one document is active.
type CatalogDocument struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty"`
	Version    int                 `bson:"version"`
	Active     bool                `bson:"active"`
	MixedPacks []MixedPackDocument `bson:"mixed_packs"`
	ShirtPacks []ShirtPackDocument `bson:"shirt_packs"`
	LinenPacks []LinenPackDocument `bson:"linen_packs"`
	Items      []ItemDocument      `bson:"items"`
	CreatedAt  time.Time           `bson:"created_at"`
	UpdatedAt  time.Time           `bson:"updated_at"`
	CreatedBy  string              `bson:"created_by,omitempty"`
	Note       string              `bson:"note,omitempty"`
}

// NewCatalogDocument converts a catalog spec into its stored form.
func NewCatalogDocument(spec model.CatalogSpec) CatalogDocument {
	doc := CatalogDocument{
		MixedPacks: make([]MixedPackDocument, 0, len(spec.MixedPacks)),
		ShirtPacks: make([]ShirtPackDocument, 0, len(spec.ShirtPacks)),
		LinenPacks: make([]LinenPackDocument, 0, len(spec.LinenPacks)),
		Items:      make([]ItemDocument, 0, len(spec.Items)),
	}
	for _, p := range spec.MixedPacks {
		doc.MixedPacks = append(doc.MixedPacks, MixedPackDocument{
			ID: p.ID, Capacity: p.Capacity, ShirtLimit: p.ShirtLimit, Price: formatPrice(p.Price),
		})
	}
	for _, p := range spec.ShirtPacks {
		doc.ShirtPacks = append(doc.ShirtPacks, ShirtPackDocument{
			ID: p.ID, Capacity: p.Capacity, Price: formatPrice(p.Price),
		})
	}
	for _, p := range spec.LinenPacks {
		doc.LinenPacks = append(doc.LinenPacks, LinenPackDocument{
			ID: p.ID, Sheets: p.Sheets, Pillowcases: p.Pillowcases, Price: formatPrice(p.Price),
		})
	}
	for _, item := range spec.Items {
		doc.Items = append(doc.Items, ItemDocument{
			ID: item.ID, Name: item.Name, UnitPrice: formatPrice(item.UnitPrice), Category: string(item.Category),
		})
	}
	return doc
}

// Spec converts the document back into a catalog spec. It fails only when a
// stored price is not a decimal.
func (d *CatalogDocument) Spec() (model.CatalogSpec, error) {
	spec := model.CatalogSpec{
		MixedPacks: make([]model.MixedPack, 0, len(d.MixedPacks)),
		ShirtPacks: make([]model.ShirtPack, 0, len(d.ShirtPacks)),
		LinenPacks: make([]model.LinenPack, 0, len(d.LinenPacks)),
		Items:      make([]model.Item, 0, len(d.Items)),
	}
	for _, p := range d.MixedPacks {
		price, err := parsePrice("mixed_packs."+p.ID, p.Price)
		if err != nil {
			return model.CatalogSpec{}, err
		}
		spec.MixedPacks = append(spec.MixedPacks, model.MixedPack{
			ID: p.ID, Capacity: p.Capacity, ShirtLimit: p.ShirtLimit, Price: price,
		})
	}
	for _, p := range d.ShirtPacks {
		price, err := parsePrice("shirt_packs."+p.ID, p.Price)
		if err != nil {
			return model.CatalogSpec{}, err
		}
		spec.ShirtPacks = append(spec.ShirtPacks, model.ShirtPack{ID: p.ID, Capacity: p.Capacity, Price: price})
	}
	for _, p := range d.LinenPacks {
		price, err := parsePrice("linen_packs."+p.ID, p.Price)
		if err != nil {
			return model.CatalogSpec{}, err
		}
		spec.LinenPacks = append(spec.LinenPacks, model.LinenPack{
			ID: p.ID, Sheets: p.Sheets, Pillowcases: p.Pillowcases, Price: price,
		})
	}
	for _, item := range d.Items {
		price, err := parsePrice("items."+item.ID, item.UnitPrice)
		if err != nil {
			return model.CatalogSpec{}, err
		}
		spec.Items = append(spec.Items, model.Item{
			ID: item.ID, Name: item.Name, UnitPrice: price, Category: model.Category(item.Category),
		})
	}
	return spec, nil
}

func formatPrice(d decimal.Decimal) string {
	if exp := d.Exponent(); exp < 0 {
		return d.StringFixed(-exp)
	}
	return d.String()
}

func parsePrice(field, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("stored catalog %s: invalid price %q: %w", field, s, err)
	}
	return d, nil
}

// CatalogRepository stores versioned catalogs.
type CatalogRepository struct {
	collection *mongo.Collection
}

// NewCatalogRepository creates a new catalog repository.
func NewCatalogRepository(db *MongoDB) *CatalogRepository {
	return &CatalogRepository{
		collection: db.Catalogs,
	}
}

// GetActive returns the active catalog, or nil when none has been stored.
// The newest active version wins while a Create is in flight.
func (r *CatalogRepository) GetActive(ctx context.Context) (*CatalogDocument, error) {
	var doc CatalogDocument
	opts := options.FindOne().SetSort(bson.D{{Key: "version", Value: -1}})
	err := r.collection.FindOne(ctx, bson.M{"active": true}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// Create stores spec as the next catalog version and makes it the active one.
func (r *CatalogRepository) Create(ctx context.Context, spec model.CatalogSpec, createdBy, note string) (*CatalogDocument, error) {
	latest, err := r.latestVersion(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	doc := NewCatalogDocument(spec)
	doc.ID = primitive.NewObjectID()
	doc.Version = latest + 1
	doc.Active = true
	doc.CreatedAt = now
	doc.UpdatedAt = now
	doc.CreatedBy = createdBy
	doc.Note = note

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return nil, err
	}

	_, err = r.collection.UpdateMany(
		ctx,
		bson.M{"active": true, "_id": bson.M{"$ne": doc.ID}},
		bson.M{"$set": bson.M{"active": false, "updated_at": now}},
	)
	if err != nil {
		return nil, err
	}

	return &doc, nil
}

// List returns stored catalog versions, newest first.
func (r *CatalogRepository) List(ctx context.Context, limit int) ([]CatalogDocument, error) {
	opts := options.Find().SetSort(bson.D{{Key: "version", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	docs := make([]CatalogDocument, 0)
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *CatalogRepository) latestVersion(ctx context.Context) (int, error) {
	var doc struct {
		Version int `bson:"version"`
	}
	opts := options.FindOne().
		SetSort(bson.D{{Key: "version", Value: -1}}).
		SetProjection(bson.M{"version": 1})
	err := r.collection.FindOne(ctx, bson.M{}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return doc.Version, nil
}
