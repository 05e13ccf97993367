// Package txid генерирует человекочитаемые идентификаторы транзакций
// для платежей: метка времени плюс случайный суффикс.
//
// Уникальность идентификатора не криптографическая: настоящей защитой от
// коллизий служит уникальный индекс на колонке transaction_id в хранилище.
package txid

import (
	"fmt"
	"math/rand"
	"time"
)

// Prefix общий префикс всех идентификаторов транзакций платформы.
const Prefix = "REVALTO"

// New возвращает идентификатор вида REVALTO-2026-8-29-14-7-33-482.
func New(now time.Time) string {
	return fmt.Sprintf("%s-%d-%d-%d-%d-%d-%d-%d",
		Prefix,
		now.Year(), int(now.Month()), now.Day(),
		now.Hour(), now.Minute(), now.Second(),
		rand.Intn(1000),
	)
}
