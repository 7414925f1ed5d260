package repository

import "github.com/sepatuhub/pos-api/internal/domain/entity"

// TransactionRepository puerto de persistencia para ventas liquidadas.
// Los items pertenecen en exclusiva a su transacción (cascade en los deletes).
type TransactionRepository interface {
	Create(txn *entity.Transaction) error
	CreateItems(items []entity.TransactionItem) error
	GetByID(id string) (*entity.Transaction, error)
	// GetForUpdate bloquea la cabecera mientras dura una reversión/reaplicación.
	GetForUpdate(id string) (*entity.Transaction, error)
	ListItems(transactionID string) ([]entity.TransactionItem, error)
	List(limit, offset int) ([]*entity.Transaction, int, error)
	UpdateHeader(txn *entity.Transaction) error
	DeleteItems(transactionID string) error
	Delete(id string) error
}
