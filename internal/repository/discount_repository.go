package repository

import (
    "context"
    "errors"
    "time"

    "gorm.io/gorm"

    "github.com/iliyamo/hotel-room-booking/internal/model"
)

// discountRow maps the discounts table for GORM.
type discountRow struct {
    ID        uint64 `gorm:"primaryKey"`
    Code      string `gorm:"uniqueIndex;size:64"`
    Percent   int
    StartsAt  *time.Time
    EndsAt    *time.Time
    IsActive  bool
    CreatedAt time.Time
    UpdatedAt time.Time
}

// TableName pins the table name GORM uses.
func (discountRow) TableName() string { return "discounts" }

func (d *discountRow) toModel() *model.Discount {
    return &model.Discount{
        ID:        d.ID,
        Code:      d.Code,
        Percent:   d.Percent,
        StartsAt:  d.StartsAt,
        EndsAt:    d.EndsAt,
        IsActive:  d.IsActive,
        CreatedAt: d.CreatedAt,
        UpdatedAt: d.UpdatedAt,
    }
}

// DiscountRepo is the GORM implementation of the discount code store.
type DiscountRepo struct {
    db *gorm.DB
}

func NewDiscountRepo(db *gorm.DB) *DiscountRepo { return &DiscountRepo{db: db} }

// FindByCode looks a discount up by its normalized code.  It returns
// ErrNotFound when no row matches.
func (r *DiscountRepo) FindByCode(ctx context.Context, code string) (*model.Discount, error) {
    var row discountRow
    err := r.db.WithContext(ctx).Where("code = ?", code).First(&row).Error
    if err != nil {
        if errors.Is(err, gorm.ErrRecordNotFound) {
            return nil, ErrNotFound
        }
        return nil, err
    }
    return row.toModel(), nil
}
