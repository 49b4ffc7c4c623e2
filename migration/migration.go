package migration

import "context"

// Migrators maps a version to the migrator bringing the schema from the
// previous version to it. Version 0000 creates the schema from scratch.
var Migrators = map[string]func(context.Context) error{
	"0000": migrate0000,
	"0001": migrate0001,
	"0002": migrate0002,
}
