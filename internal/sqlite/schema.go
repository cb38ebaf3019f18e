package sqlite

// Schema DDL. Statements are idempotent so Attach can run them on an
// existing database.
const (
	createItems = `CREATE TABLE IF NOT EXISTS items (
    item_id TEXT PRIMARY KEY,
    type TEXT NOT NULL,
    name TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createStrata = `CREATE TABLE IF NOT EXISTS strata (
    item_id TEXT NOT NULL,
    stratum_id TEXT NOT NULL,
    trait TEXT NOT NULL,
    value TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    PRIMARY KEY (item_id, stratum_id, trait)
);`

	idxItemsType     = `CREATE INDEX IF NOT EXISTS idx_items_type ON items(type);`
	idxStrataStratum = `CREATE INDEX IF NOT EXISTS idx_strata_stratum ON strata(stratum_id);`
)

// schemaDDL lists every statement Attach executes, in order.
var schemaDDL = []string{
	createItems,
	createStrata,
	idxItemsType,
	idxStrataStratum,
}
