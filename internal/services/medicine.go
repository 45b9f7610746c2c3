package services

import (
	"context"
	"fmt"

	"github.com/medfinder/medfinder/internal/models"
)

type MedicineServiceInterface interface {
	Search(ctx context.Context, query string) ([]models.Medicine, error)
}

// MedicineService reads the medicine catalog. The catalog is reference data
// loaded by migrations or imports; the application never writes to it.
type MedicineService struct {
	db DB
}

func NewMedicineService(db DB) *MedicineService {
	return &MedicineService{db: db}
}

const medicineSearchLimit = 50

// Search matches the query against generic and brand names,
// case-insensitively. Charging for the lookup is the caller's concern.
func (s *MedicineService) Search(ctx context.Context, query string) ([]models.Medicine, error) {
	pattern := "%" + query + "%"
	rows, err := s.db.Query(ctx,
		`SELECT id, generic_name, brand_name, batch, expiry, strength, net_quantity
		 FROM medicines
		 WHERE generic_name ILIKE $1 OR brand_name ILIKE $1
		 ORDER BY generic_name
		 LIMIT $2`,
		pattern, medicineSearchLimit,
	)
	if err != nil {
		return nil, fmt.Errorf("searching medicines: %w", err)
	}
	defer rows.Close()

	medicines := []models.Medicine{}
	for rows.Next() {
		var m models.Medicine
		if err := rows.Scan(&m.ID, &m.GenericName, &m.BrandName, &m.Batch, &m.Expiry, &m.Strength, &m.NetQuantity); err != nil {
			return nil, fmt.Errorf("scanning medicine: %w", err)
		}
		medicines = append(medicines, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating medicines: %w", err)
	}

	return medicines, nil
}
