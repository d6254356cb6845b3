package ledger

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/soldeapp/clientledger/pkg/domain"
	"github.com/soldeapp/clientledger/pkg/storage"
)

// SeedSnapshot is the default data set installed on first start, when no
// snapshot exists yet: three demo clients and three transactions. Running
// balances are left at zero here; restore restamps them.
func SeedSnapshot() *storage.Snapshot {
	var (
		dupont   = uuid.MustParse("6f1cbb0e-11aa-4f50-9f3a-0c1a4fdfe101")
		martin   = uuid.MustParse("8a3f2d9c-52bb-4a61-8e4b-1d2b5fe0e202")
		techcorp = uuid.MustParse("9b4e3ead-73cc-4b72-9f5c-2e3c6ff1f303")
	)
	return &storage.Snapshot{
		Clients: []domain.Client{
			{
				ID:           dupont,
				CompanyName:  "Dupont SARL",
				Sector:       "Automobile",
				Address:      "1 rue de Paris",
				City:         "Paris",
				PostalCode:   "75001",
				Country:      "France",
				ContactName:  "Jean Dupont",
				ContactEmail: "dupont@email.com",
				ContactPhone: "0601020304",
				TaxID:        "12345678901237",
			},
			{
				ID:           martin,
				CompanyName:  "Martin Industries",
				Sector:       "Chimie",
				Address:      "2 avenue de Lyon",
				City:         "Lyon",
				PostalCode:   "69001",
				Country:      "France",
				ContactName:  "Marie Martin",
				ContactEmail: "martin@email.com",
				ContactPhone: "0604050607",
				TaxID:        "98765432109870",
			},
			{
				ID:           techcorp,
				CompanyName:  "TechCorp Solutions",
				Sector:       "Informatique",
				Address:      "15 boulevard des Technologies",
				City:         "Toulouse",
				PostalCode:   "31000",
				Country:      "France",
				ContactName:  "Pierre Durand",
				ContactEmail: "p.durand@techcorp.fr",
				ContactPhone: "0567891234",
				TaxID:        "45678912345673",
			},
		},
		Transactions: []domain.Transaction{
			{
				ID:          uuid.MustParse("0d1e2f3a-4b5c-4d6e-8f70-a1b2c3d4e501"),
				ClientID:    dupont,
				Date:        domain.MustParseDate("2024-01-15"),
				Kind:        domain.KindCredit,
				Amount:      decimal.NewFromInt(5000),
				Description: "Paiement facture #FAC-001",
				Category:    "facture",
				Reference:   "FAC-001",
			},
			{
				ID:          uuid.MustParse("1e2f3a4b-5c6d-4e7f-9081-b2c3d4e5f602"),
				ClientID:    dupont,
				Date:        domain.MustParseDate("2024-01-20"),
				Kind:        domain.KindDebit,
				Amount:      decimal.NewFromInt(1500),
				Description: "Remboursement avance",
				Category:    "remboursement",
				Reference:   "REM-001",
			},
			{
				ID:          uuid.MustParse("2f3a4b5c-6d7e-4f80-9192-c3d4e5f6a703"),
				ClientID:    martin,
				Date:        domain.MustParseDate("2024-01-25"),
				Kind:        domain.KindCredit,
				Amount:      decimal.NewFromInt(8000),
				Description: "Paiement contrat maintenance",
				Category:    "facture",
				Reference:   "MAINT-2024-01",
			},
		},
	}
}
