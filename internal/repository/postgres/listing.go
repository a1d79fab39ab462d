package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gearshare-backend/internal/domain"
	"gearshare-backend/internal/logger"
	"gearshare-backend/internal/repository"
)

type listingRepository struct {
	db *sql.DB
}

func NewListingRepository(db *sql.DB) repository.ListingRepository {
	return &listingRepository{db: db}
}

func (r *listingRepository) Create(ctx context.Context, l *domain.Listing) error {
	query := `INSERT INTO listings (owner_id, title, legal_item_name, description, category, subcategory, pricing_mode, rate_cents, security_deposit_cents, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	now := time.Now()
	l.CreatedOn, l.UpdatedOn = now, now
	logger.DatabaseCall("INSERT", "listings", "ownerID", l.OwnerID, "category", l.Category)
	err := r.db.QueryRowContext(ctx, query, l.OwnerID, l.Title, l.LegalItemName, l.Description, l.Category, l.Subcategory, l.PricingMode, l.RateCents, l.SecurityDepositCents, l.CreatedOn, l.UpdatedOn).Scan(&l.ID)
	logger.DatabaseResult("INSERT", 1, err, "listingID", l.ID)
	return err
}

// GetByID joins the owner so contracts can name the lessor.
func (r *listingRepository) GetByID(ctx context.Context, id int32) (*domain.Listing, error) {
	l := &domain.Listing{}
	query := `SELECT l.id, l.owner_id, u.name, u.email, l.title, l.legal_item_name, l.description, l.category, l.subcategory,
	                 l.pricing_mode, l.rate_cents, l.security_deposit_cents, l.created_on, l.updated_on
	          FROM listings l JOIN users u ON u.id = l.owner_id
	          WHERE l.id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&l.ID, &l.OwnerID, &l.OwnerName, &l.OwnerEmail, &l.Title, &l.LegalItemName, &l.Description, &l.Category, &l.Subcategory,
		&l.PricingMode, &l.RateCents, &l.SecurityDepositCents, &l.CreatedOn, &l.UpdatedOn)
	if err != nil {
		return nil, translate(err, fmt.Sprintf("listing %d", id))
	}
	return l, nil
}

func (r *listingRepository) Update(ctx context.Context, l *domain.Listing) error {
	query := `UPDATE listings SET title=$1, legal_item_name=$2, description=$3, category=$4, subcategory=$5, pricing_mode=$6, rate_cents=$7, security_deposit_cents=$8, updated_on=$9
	          WHERE id=$10`
	l.UpdatedOn = time.Now()
	logger.DatabaseCall("UPDATE", "listings", "listingID", l.ID)
	res, err := r.db.ExecContext(ctx, query, l.Title, l.LegalItemName, l.Description, l.Category, l.Subcategory, l.PricingMode, l.RateCents, l.SecurityDepositCents, l.UpdatedOn, l.ID)
	if err != nil {
		logger.DatabaseResult("UPDATE", 0, err)
		return err
	}
	n, err := res.RowsAffected()
	logger.DatabaseResult("UPDATE", n, err, "listingID", l.ID)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: listing %d", domain.ErrNotFound, l.ID)
	}
	return nil
}
