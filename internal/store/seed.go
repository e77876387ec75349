package store

import (
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"pharma-service/internal/model"
)

type seedUser struct {
	ID       string
	Email    string
	Password string
	Role     model.Role
	Name     string
	Phone    string
}

type seedMedicine struct {
	ID           string
	Name         string
	Category     string
	Price        string
	Stock        string
	Manufacturer string
	ExpiryDate   string
	Description  string
	BatchNumber  string
}

// One demo account per role. Passwords are hashed at seed time; the plaintext
// values here are the published demo credentials.
var seedUsers = []seedUser{
	{ID: "1", Email: "admin@pharma.com", Password: "admin123", Role: model.RoleAdmin, Name: "Admin User", Phone: "+91-9876543210"},
	{ID: "2", Email: "ceo@pharma.com", Password: "ceo123", Role: model.RoleCEO, Name: "CEO", Phone: "+91-9876543211"},
	{ID: "3", Email: "manager@pharma.com", Password: "manager123", Role: model.RoleManager, Name: "Manager", Phone: "+91-9876543212"},
	{ID: "4", Email: "abm@pharma.com", Password: "abm123", Role: model.RoleABM, Name: "ABM User", Phone: "+91-9876543213"},
	{ID: "5", Email: "zbm@pharma.com", Password: "zbm123", Role: model.RoleZBM, Name: "ZBM User", Phone: "+91-9876543214"},
	{ID: "6", Email: "dm@pharma.com", Password: "dm123", Role: model.RoleDistrictManager, Name: "District Manager", Phone: "+91-9876543215"},
	{ID: "7", Email: "mr@pharma.com", Password: "mr123", Role: model.RoleMR, Name: "MR User", Phone: "+91-9876543216"},
	{ID: "8", Email: "dev@pharma.com", Password: "dev123", Role: model.RoleDeveloper, Name: "Developer", Phone: "+91-9876543217"},
	{ID: "9", Email: "customer@pharma.com", Password: "customer123", Role: model.RoleCustomer, Name: "Customer User", Phone: "+91-9876543218"},
}

var seedMedicines = []seedMedicine{
	{ID: "1", Name: "Paracetamol", Category: "Pain Relief", Price: "50", Stock: "500", Manufacturer: "ABC Pharma", ExpiryDate: "2025-12-31", Description: "Used for pain relief and fever reduction", BatchNumber: "BATCH001"},
	{ID: "2", Name: "Amoxicillin", Category: "Antibiotic", Price: "120", Stock: "300", Manufacturer: "XYZ Pharma", ExpiryDate: "2025-06-30", Description: "Antibiotic for bacterial infections", BatchNumber: "BATCH002"},
	{ID: "3", Name: "Cetirizine", Category: "Antihistamine", Price: "80", Stock: "400", Manufacturer: "ABC Pharma", ExpiryDate: "2025-09-30", Description: "For allergy relief", BatchNumber: "BATCH003"},
	{ID: "4", Name: "Omeprazole", Category: "Antacid", Price: "150", Stock: "250", Manufacturer: "PQR Pharma", ExpiryDate: "2025-11-30", Description: "For acid reflux and heartburn", BatchNumber: "BATCH004"},
	{ID: "5", Name: "Metformin", Category: "Diabetes", Price: "200", Stock: "350", Manufacturer: "XYZ Pharma", ExpiryDate: "2026-03-31", Description: "For type 2 diabetes management", BatchNumber: "BATCH005"},
}

// Seed writes the bootstrap dataset for each collection whose backing store
// does not exist yet. Collections that have been written before are left
// alone, even if they have since been emptied, so running it again is a
// no-op.
func Seed(s Store, log *zap.Logger) error {
	usersExist, err := s.Exists(model.CollectionUsers)
	if err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	if !usersExist {
		records := make([]model.Record, 0, len(seedUsers))
		now := Timestamp()
		for _, u := range seedUsers {
			hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("hash seed password: %w", err)
			}
			records = append(records, model.Record{
				"id":        u.ID,
				"email":     u.Email,
				"password":  string(hash),
				"role":      string(u.Role),
				"name":      u.Name,
				"phone":     u.Phone,
				"createdAt": now,
			})
		}
		if err := s.Replace(model.CollectionUsers, records); err != nil {
			return fmt.Errorf("seed users: %w", err)
		}
		log.Info("Seeded users collection", zap.Int("count", len(records)))
	}

	medicinesExist, err := s.Exists(model.CollectionMedicines)
	if err != nil {
		return fmt.Errorf("seed medicines: %w", err)
	}
	if !medicinesExist {
		records := make([]model.Record, 0, len(seedMedicines))
		now := Timestamp()
		for _, m := range seedMedicines {
			records = append(records, model.Record{
				"id":           m.ID,
				"name":         m.Name,
				"category":     m.Category,
				"price":        m.Price,
				"stock":        m.Stock,
				"manufacturer": m.Manufacturer,
				"expiryDate":   m.ExpiryDate,
				"description":  m.Description,
				"batchNumber":  m.BatchNumber,
				"createdAt":    now,
			})
		}
		if err := s.Replace(model.CollectionMedicines, records); err != nil {
			return fmt.Errorf("seed medicines: %w", err)
		}
		log.Info("Seeded medicines collection", zap.Int("count", len(records)))
	}

	// orders and reports start empty; make sure the backing files exist so a
	// fresh data directory has all four collections
	for _, name := range []string{model.CollectionOrders, model.CollectionReports} {
		exists, err := s.Exists(name)
		if err != nil {
			return fmt.Errorf("seed %s: %w", name, err)
		}
		if !exists {
			if err := s.Replace(name, nil); err != nil {
				return fmt.Errorf("seed %s: %w", name, err)
			}
		}
	}

	return nil
}
