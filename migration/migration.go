package migration

import "context"

type Migrator func(ctx context.Context) error

// Migrators are the named schema changes applied by "srv migrate --version".
var Migrators = map[string]Migrator{
	"0000": migrate0000,
	"0001": migrate0001,
}
