package accountrepo

import (
	"database/sql"
	"fmt"

	// Registers the postgres driver.
	_ "github.com/lib/pq"

	"github.com/go-petr/edupay/internal/ledgerrepo"
	"github.com/go-petr/edupay/pkg/dbpkg"
)

// Drivers accepted by Open.
const (
	DriverFile     = "file"
	DriverPostgres = "postgres"
)

// Open returns the persister for driver. The returned *sql.DB is nil for the file driver.
func Open(driver, source string) (ledgerrepo.Persister, *sql.DB, error) {
	switch driver {
	case DriverFile, "":
		r, err := NewRepoFile(source)
		if err != nil {
			return nil, nil, err
		}

		return r, nil, nil
	case DriverPostgres:
		db, err := dbpkg.Setup(driver, source)
		if err != nil {
			return nil, nil, err
		}

		return NewRepoPGS(db), db, nil
	}

	return nil, nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
}
