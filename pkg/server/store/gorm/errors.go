package gorm

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/tripdesk/tripdesk/pkg/server/store"
)

// translate maps GORM errors to the store sentinels
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return store.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", store.ErrConflict, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %v", store.ErrHasDependents, err)
	}
	return err
}

// paginate counts the rows matched by q and loads one page of them into dest
func paginate(q *gorm.DB, p store.Page, order string, dest interface{}) (int64, error) {
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return 0, err
	}
	if total == 0 || p.Offset >= int(total) {
		return total, nil
	}
	err := q.Session(&gorm.Session{}).Order(order).Limit(p.Limit).Offset(p.Offset).Find(dest).Error
	return total, err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
