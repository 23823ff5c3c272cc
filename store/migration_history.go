package store

type MigrationHistory struct {
	Version   string
	CreatedTs string
}

type UpsertMigrationHistory struct {
	Version string
}

type FindMigrationHistory struct {
}
