package query

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Значения пагинации по умолчанию.
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Options — параметры пагинации и сортировки списочного запроса.
// Инварианты Page >= 1 и Limit >= 1 проверяются валидатором на границе
// HTTP до вызова хранилища.
type Options struct {
	Page      int    `validate:"gte=1"`
	Limit     int    `validate:"gte=1,lte=100"`
	SortBy    string `validate:"omitempty"`
	SortOrder string `validate:"omitempty,oneof=asc desc"`
}

// Skip возвращает смещение первой строки страницы.
func (o Options) Skip() int {
	return (o.Page - 1) * o.Limit
}

// ParseOptions извлекает page, limit, sortBy и sortOrder из query-строки.
// Отсутствующие или нечисловые page/limit заменяются значениями по
// умолчанию; отрицательные и нулевые значения сохраняются как есть,
// чтобы валидация на границе их отклонила.
func ParseOptions(q url.Values) Options {
	opts := Options{
		Page:      DefaultPage,
		Limit:     DefaultLimit,
		SortBy:    q.Get("sortBy"),
		SortOrder: strings.ToLower(q.Get("sortOrder")),
	}
	if raw := q.Get("page"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			opts.Page = v
		}
	}
	if raw := q.Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			opts.Limit = v
		}
	}
	return opts
}

// PickFilters извлекает из query-строки значения перечисленных
// фильтруемых ключей. Нераспознанные ключи запроса не читаются вовсе —
// единая политика «лишнее молча отбрасывается».
func PickFilters(q url.Values, keys []string) map[string]string {
	values := make(map[string]string)
	for _, k := range keys {
		if v := q.Get(k); v != "" {
			values[k] = v
		}
	}
	return values
}

// OrderBy возвращает готовое выражение "ORDER BY ...". Если заданы и
// SortBy, и SortOrder, и колонка входит в sortable (ключ запроса →
// колонка), сортирует по ней; иначе — по убыванию времени создания.
// Вторичного ключа сортировки нет: порядок равных строк определяет
// хранилище.
func OrderBy(o Options, sortable map[string]string) string {
	if o.SortBy != "" && o.SortOrder != "" {
		if col, ok := sortable[o.SortBy]; ok {
			dir := "ASC"
			if o.SortOrder == "desc" {
				dir = "DESC"
			}
			return "ORDER BY " + col + " " + dir
		}
	}
	return "ORDER BY created_at DESC"
}

// Paginate дописывает к запросу LIMIT и OFFSET, продолжая нумерацию
// позиционных аргументов.
func Paginate(sql string, args []any, o Options) (string, []any) {
	sql = fmt.Sprintf("%s LIMIT $%d OFFSET $%d", sql, len(args)+1, len(args)+2)
	return sql, append(args, o.Limit, o.Skip())
}
