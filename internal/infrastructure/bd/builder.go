package db

import (
	sq "github.com/Masterminds/squirrel"

	"equipment-status/pkg/types"
)

// ApplyFilters добавляет равенства по разрешённым полям. Срез значений превращается в IN (...),
// строка сравнивается целиком.
func ApplyFilters(builder sq.SelectBuilder, filter types.Filter, allowedMap map[string]string) sq.SelectBuilder {
	for jsonField, val := range filter.Filter {
		dbCol, ok := allowedMap[jsonField]
		if !ok {
			continue
		}
		builder = builder.Where(sq.Eq{dbCol: val})
	}
	return builder
}

func ApplyPagination(builder sq.SelectBuilder, filter types.Filter) sq.SelectBuilder {
	if !filter.WithPagination {
		return builder
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		builder = builder.Offset(uint64(filter.Offset))
	}
	return builder
}
