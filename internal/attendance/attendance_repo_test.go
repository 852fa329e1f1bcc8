package attendance

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestRepository_WithTx_BindsStatementsToTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)

	mock.ExpectBegin()
	tx, err := db.Begin()
	assert.NoError(t, err)

	qtx := NewRepository(gdb).WithTx(tx).(*repository)
	assert.Same(t, tx, qtx.db.Statement.ConnPool)

	root := NewRepository(gdb).(*repository)
	assert.Same(t, db, root.db.Statement.ConnPool)
}
