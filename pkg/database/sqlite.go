package database

import (
	"errors"
	"strings"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const sqliteFKMessage = "FOREIGN KEY constraint failed"

// sqliteDialector maps foreign key failures to gorm.ErrForeignKeyViolated
// before falling back to the driver's own translation.
type sqliteDialector struct {
	*sqlite.Dialector
}

// SQLite returns a dialector for dsn that reports constraint failures the
// same way the postgres driver does.
func SQLite(dsn string) gorm.Dialector {
	return sqliteDialector{Dialector: &sqlite.Dialector{DSN: dsn}}
}

func (d sqliteDialector) Translate(err error) error {
	var se sqlite3.Error
	if errors.As(err, &se) && se.ExtendedCode == sqlite3.ErrConstraintForeignKey {
		return gorm.ErrForeignKeyViolated
	}
	if strings.Contains(err.Error(), sqliteFKMessage) {
		return gorm.ErrForeignKeyViolated
	}
	return d.Dialector.Translate(err)
}
