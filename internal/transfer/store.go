package transfer

import (
	"context"
	"time"
)

// DateRange — включительные границы выборки; nil означает отсутствие границы.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// Store — адаптер хранилища записей. Каждый изменяющий вызов выполняется
// в одной транзакции: либо применяется целиком, либо не применяется вовсе.
// Боевая реализация живет в internal/database поверх пула соединений.
type Store interface {
	// UserExists сообщает, существует ли пользователь.
	UserExists(ctx context.Context, userID int) (bool, error)

	// List возвращает записи вида, принадлежащие пользователю, с фильтром по
	// основному полю даты схемы (виды без поля даты фильтр игнорируют).
	// Каждая строка содержит ключ "id".
	List(ctx context.Context, kind Kind, userID int, r DateRange) ([]Row, error)

	// AccountIDs возвращает идентификаторы счетов пользователя.
	AccountIDs(ctx context.Context, userID int) (map[int]struct{}, error)

	// BulkInsert вставляет строки одного вида одной транзакцией и возвращает
	// число вставленных строк.
	BulkInsert(ctx context.Context, kind Kind, userID int, rows []Row) (int, error)

	// ReplaceAll удаляет все записи пользователя по всем видам (сначала
	// зависимые от счетов, счета последними) и вставляет новые (счета
	// первыми) в одной транзакции. Возвращает число вставленных строк по видам.
	ReplaceAll(ctx context.Context, userID int, data map[Kind][]Row) (map[Kind]int, error)
}
