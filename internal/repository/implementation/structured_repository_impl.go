package implementation

import (
	"context"
	"strings"

	"clinic-concierge-be/internal/repository/contract"

	"gorm.io/gorm"
)

type StructuredRepositoryImpl struct {
	db *gorm.DB
}

func NewStructuredRepository(db *gorm.DB) contract.StructuredRepository {
	return &StructuredRepositoryImpl{db: db}
}

func (r *StructuredRepositoryImpl) ExecSelect(ctx context.Context, query string) (*contract.ResultSet, error) {
	return r.scanRows(ctx, query, nil)
}

// consultationKeywords drives the fallback query. Listed in both languages
// so pricing rows ingested with Chinese item names still match.
var consultationKeywords = []string{
	"consult", "initial", "assessment", "first", "諮詢", "初診", "首次", "評估",
}

func (r *StructuredRepositoryImpl) FallbackConsultationPricing(ctx context.Context) (*contract.ResultSet, string, error) {
	var conds []string
	var args []interface{}
	for _, col := range []string{"item", "type", "category"} {
		for _, kw := range consultationKeywords {
			conds = append(conds, "LOWER("+col+") LIKE ?")
			args = append(args, "%"+strings.ToLower(kw)+"%")
		}
	}

	query := "SELECT item, type, category, price, max FROM pricing WHERE " +
		strings.Join(conds, " OR ") +
		" ORDER BY price IS NULL, price ASC LIMIT 10"

	rs, err := r.scanRows(ctx, query, args)
	return rs, query, err
}

func (r *StructuredRepositoryImpl) LatestBookingLink(ctx context.Context) (string, error) {
	var link string
	err := r.db.WithContext(ctx).
		Raw(`SELECT booking_link FROM clinic_info WHERE booking_link IS NOT NULL ORDER BY "updatedAt" DESC LIMIT 1`).
		Scan(&link).Error
	if err != nil {
		return "", err
	}
	return link, nil
}

func (r *StructuredRepositoryImpl) scanRows(ctx context.Context, query string, args []interface{}) (*contract.ResultSet, error) {
	rows, err := r.db.WithContext(ctx).Raw(query, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	result := &contract.ResultSet{Columns: cols}
	for rows.Next() {
		values := make([]interface{}, len(cols))
		ptrs := make([]interface{}, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		row := make(map[string]interface{}, len(cols))
		for i, col := range cols {
			// Drivers hand back []byte for text columns; normalize for rendering.
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
			} else {
				row[col] = values[i]
			}
		}
		result.Rows = append(result.Rows, row)
	}

	return result, rows.Err()
}
