package migrate

import (
	"fmt"
	"net/url"

	"github.com/cockroachdb/errors"
	"github.com/golang-migrate/migrate/v4"
)

const (
	presaleMigrationSource = "modules/presale/database/postgresql/migrations"
	presaleMigrationTable  = "presale_schema_migrations"
)

func cloneURLWithQuery(u *url.URL, newQuery url.Values) *url.URL {
	clone := *u
	query := clone.Query()
	for key, values := range newQuery {
		for _, value := range values {
			query.Add(key, value)
		}
	}
	clone.RawQuery = query.Encode()
	return &clone
}

var supportedDrivers = map[string]struct{}{
	"postgres":   {},
	"postgresql": {},
}

func parseDatabaseURL(rawURL string) (*url.URL, error) {
	if rawURL == "" {
		return nil, errors.New("--database is required")
	}
	databaseURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse database URL")
	}
	if _, ok := supportedDrivers[databaseURL.Scheme]; !ok {
		return nil, errors.Errorf("unsupported database driver: %s", databaseURL.Scheme)
	}
	return databaseURL, nil
}

// newMigrate returns a Migrate instance that records its version in migrationTable.
func newMigrate(databaseURL *url.URL, module, sourcePath, migrationTable string) (*migrate.Migrate, error) {
	newDatabaseURL := cloneURLWithQuery(databaseURL, url.Values{"x-migrations-table": {migrationTable}})
	m, err := migrate.New("file://"+sourcePath, newDatabaseURL.String())
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Migrate instance")
	}
	m.Log = &consoleLogger{
		prefix: fmt.Sprintf("[%s] ", module),
	}
	return m, nil
}
