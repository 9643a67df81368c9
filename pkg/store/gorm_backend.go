package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// gormAssociations maps embed names onto model association fields.
var gormAssociations = map[string]string{
	EmbedCrops: "Crop",
}

type GormBackend struct {
	conn *gorm.DB
}

func NewGormBackend(conn *gorm.DB) *GormBackend {
	return &GormBackend{conn: conn}
}

func (b *GormBackend) Select(ctx context.Context, q Query, dest any) error {
	tx := b.conn.WithContext(ctx).Table(string(q.Collection))

	for _, f := range q.Filters {
		tx = tx.Where(clause.Eq{Column: clause.Column{Name: f.Column}, Value: f.Value})
	}
	if q.Order != nil {
		tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: q.Order.Column}, Desc: q.Order.Desc})
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	for _, embed := range q.Embed {
		assoc, ok := gormAssociations[embed]
		if !ok {
			return fmt.Errorf("unknown embed %q on %s", embed, q.Collection)
		}
		tx = tx.Preload(assoc)
	}

	return tx.Find(dest).Error
}
