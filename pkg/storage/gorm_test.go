package storage

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockGormStore(t *testing.T) (*GormStore, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDb.Close() })

	dialector := postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	// Bypass NewGorm so AutoMigrate stays out of the expectations.
	return &GormStore{db: db}, mock
}

func TestGormStore_Load(t *testing.T) {
	st, mock := newMockGormStore(t)

	mock.ExpectQuery(`SELECT \* FROM "ledger_slots" WHERE slot = \$1`).
		WithArgs(SlotClients, 1).
		WillReturnRows(sqlmock.NewRows([]string{"slot", "payload"}).
			AddRow(SlotClients, []byte(`[]`)))

	data, err := st.Load(SlotClients)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_LoadMissingSlot(t *testing.T) {
	st, mock := newMockGormStore(t)

	mock.ExpectQuery(`SELECT \* FROM "ledger_slots" WHERE slot = \$1`).
		WithArgs(SlotTransactions, 1).
		WillReturnRows(sqlmock.NewRows([]string{"slot", "payload"}))

	_, err := st.Load(SlotTransactions)
	assert.ErrorIs(t, err, ErrSlotNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_SaveUpserts(t *testing.T) {
	st, mock := newMockGormStore(t)

	mock.ExpectExec(`INSERT INTO "ledger_slots" (.+) ON CONFLICT \("slot"\) DO UPDATE`).
		WithArgs(SlotClients, []byte(`[]`), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, st.Save(SlotClients, []byte(`[]`)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_SaveError(t *testing.T) {
	st, mock := newMockGormStore(t)

	mock.ExpectExec(`INSERT INTO "ledger_slots"`).
		WillReturnError(errors.New("connection reset"))

	err := st.Save(SlotClients, []byte(`[]`))
	assert.Error(t, err)
}
