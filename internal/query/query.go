// Package query строит SQL-условия для списочных запросов: поиск по
// подстроке, точечные фильтры, сортировка и пагинация.
//
// Фрагменты собираются с плейсхолдерами "?" и нумеруются в $1..$n только
// при финальной сборке в Where/Paginate, поэтому их можно комбинировать
// в любом порядке. Пустой набор фрагментов дает пустое условие —
// запрос без ограничений.
package query

import (
	"fmt"
	"sort"
	"strings"
)

// Fragment — готовый кусок условия WHERE со своими аргументами.
type Fragment struct {
	Expr string
	Args []any
}

// Empty сообщает, накладывает ли фрагмент хоть какое-то ограничение.
func (f Fragment) Empty() bool {
	return f.Expr == ""
}

// Search возвращает OR-группу условий подстрочного поиска без учета
// регистра по перечисленным колонкам. Пустой searchTerm дает пустой
// фрагмент (без ограничения). Термин сопоставляется буквально:
// метасимволы LIKE в нем экранируются.
func Search(searchTerm string, columns []string) Fragment {
	if searchTerm == "" || len(columns) == 0 {
		return Fragment{}
	}

	pattern := "%" + escapeLike(searchTerm) + "%"
	parts := make([]string, 0, len(columns))
	args := make([]any, 0, len(columns))
	for _, col := range columns {
		parts = append(parts, col+" ILIKE ?")
		args = append(args, pattern)
	}
	return Fragment{
		Expr: "(" + strings.Join(parts, " OR ") + ")",
		Args: args,
	}
}

// escapeLike экранирует метасимволы шаблона LIKE, чтобы "%", "_" и "\"
// в пользовательском термине совпадали сами с собой.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// Filters возвращает AND-группу условий точного равенства, по одному на
// каждый ключ values, присутствующий в allowed (ключ запроса → колонка).
// Ключи вне allowed молча отбрасываются; ключи обходятся в отсортированном
// порядке, чтобы итоговый SQL был детерминированным.
func Filters(values map[string]string, allowed map[string]string) Fragment {
	if len(values) == 0 {
		return Fragment{}
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		if _, ok := allowed[k]; ok {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return Fragment{}
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	args := make([]any, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, allowed[k]+" = ?")
		args = append(args, values[k])
	}
	return Fragment{
		Expr: "(" + strings.Join(parts, " AND ") + ")",
		Args: args,
	}
}

// Equal возвращает фрагмент точного равенства по одной колонке.
func Equal(column string, value any) Fragment {
	return Fragment{Expr: column + " = ?", Args: []any{value}}
}

// Raw возвращает фрагмент с готовым выражением без аргументов.
func Raw(expr string) Fragment {
	return Fragment{Expr: expr}
}

// Where AND-соединяет непустые фрагменты и возвращает готовое условие
// "WHERE ..." с аргументами в позиционных плейсхолдерах $1..$n.
// Если все фрагменты пусты, возвращает пустую строку — запрос без WHERE.
func Where(fragments ...Fragment) (string, []any) {
	parts := make([]string, 0, len(fragments))
	var args []any
	for _, f := range fragments {
		if f.Empty() {
			continue
		}
		parts = append(parts, f.Expr)
		args = append(args, f.Args...)
	}
	if len(parts) == 0 {
		return "", nil
	}
	return "WHERE " + rebind(strings.Join(parts, " AND "), 1), args
}

// rebind заменяет плейсхолдеры "?" на $start, $start+1, ...
func rebind(expr string, start int) string {
	var b strings.Builder
	n := start
	for _, r := range expr {
		if r == '?' {
			fmt.Fprintf(&b, "$%d", n)
			n++
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
