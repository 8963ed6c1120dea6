package storage

import (
	"net/url"
	"strings"
)

// Kind identifies which backend a --config value selects
type Kind string

const (
	KindSQLite   Kind = "sqlite"
	KindPostgres Kind = "postgres"
	KindJSON     Kind = "json"
)

// DetectKind picks a backend from a config value: PostgreSQL URLs and DSNs,
// *.json files for the key-value store, anything else is a SQLite path.
func DetectKind(config string) Kind {
	switch {
	case IsPostgresConnString(config):
		return KindPostgres
	case strings.HasSuffix(strings.ToLower(config), ".json"):
		return KindJSON
	default:
		return KindSQLite
	}
}

// IsPostgresConnString reports whether the value looks like a PostgreSQL URL or DSN
func IsPostgresConnString(config string) bool {
	if strings.HasPrefix(config, "postgres://") || strings.HasPrefix(config, "postgresql://") {
		return true
	}
	return strings.Contains(config, "host=") && strings.Contains(config, "dbname=")
}

// HasEmbeddedCredentials reports whether a PostgreSQL URL or DSN carries a password
func HasEmbeddedCredentials(connStr string) bool {
	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		u, err := url.Parse(connStr)
		if err != nil {
			return false
		}
		_, set := u.User.Password()
		return set
	}
	for _, part := range strings.Fields(connStr) {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) == 2 && strings.EqualFold(kv[0], "password") {
			return true
		}
	}
	return false
}
