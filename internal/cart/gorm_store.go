package cart

import (
	"fmt"

	"gorm.io/gorm"
)

// LineRecord is the persisted form of one cart line, keyed by owner.
type LineRecord struct {
	ID       uint   `gorm:"primaryKey"`
	OwnerID  string `gorm:"index;type:varchar(36)"`
	ItemID   uint
	Name     string
	Price    float64
	Quantity int
}

// TableName maps LineRecord to the cart_lines table.
func (LineRecord) TableName() string { return "cart_lines" }

// GORMStore is a GORM implementation of Store.
type GORMStore struct {
	db *gorm.DB
}

// NewGORMStore creates a new instance of GORMStore.
func NewGORMStore(db *gorm.DB) *GORMStore {
	return &GORMStore{db: db}
}

// Load reads the owner's full line set back from the database.
func (s *GORMStore) Load(ownerID string) ([]Line, error) {
	var records []LineRecord
	if err := s.db.Where("owner_id = ?", ownerID).Order("id").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to load cart for owner %s: %w", ownerID, err)
	}
	lines := make([]Line, 0, len(records))
	for _, rec := range records {
		lines = append(lines, Line{ItemID: rec.ItemID, Name: rec.Name, Price: rec.Price, Quantity: rec.Quantity})
	}
	return lines, nil
}

// Save replaces the owner's persisted line set with lines, in one
// transaction so a partial write cannot mix old and new carts.
func (s *GORMStore) Save(ownerID string, lines []Line) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("owner_id = ?", ownerID).Delete(&LineRecord{}).Error; err != nil {
			return err
		}
		if len(lines) == 0 {
			return nil
		}
		records := make([]LineRecord, 0, len(lines))
		for _, line := range lines {
			records = append(records, LineRecord{
				OwnerID:  ownerID,
				ItemID:   line.ItemID,
				Name:     line.Name,
				Price:    line.Price,
				Quantity: line.Quantity,
			})
		}
		return tx.Create(&records).Error
	})
	if err != nil {
		return fmt.Errorf("failed to save cart for owner %s: %w", ownerID, err)
	}
	return nil
}
