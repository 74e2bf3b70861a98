package transfer

import (
	"fmt"
	"strings"
)

// Ошибки ядра переноса данных. Обработчики переводят их в HTTP-статусы,
// всё остальное поведение (пропуск строки, откат транзакции) задается здесь.

// FormatError — входные байты вообще не разбираются (не JSON, не UTF-8 и т.п.).
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("нечитаемый формат входных данных: %s", e.Reason)
}

// ValidationError — структурное нарушение схемы, из-за которого операция
// прерывается целиком (ошибки отдельных строк в него не попадают).
type ValidationError struct {
	Reason  string
	Missing []string // отсутствующие обязательные ключи или колонки
}

func (e *ValidationError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("%s: %s", e.Reason, strings.Join(e.Missing, ", "))
	}
	return e.Reason
}

// NotFoundError — неизвестный пользователь либо пустая выборка отчета.
type NotFoundError struct {
	What string
}

func (e *NotFoundError) Error() string {
	return e.What + " не найдено"
}

// UnsupportedFormatError — запрошен неизвестный формат выгрузки.
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("неподдерживаемый формат выгрузки: %q", e.Format)
}

// TransactionError — инфраструктурный сбой хранилища; вся транзакционная
// единица откатывается, частичный результат не сохраняется.
type TransactionError struct {
	Err error
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("ошибка транзакции хранилища: %v", e.Err)
}

func (e *TransactionError) Unwrap() error {
	return e.Err
}
