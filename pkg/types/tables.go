package types

// Standard table names for Workspace.GetTable.
const (
	ItemsTable  = "items"
	StrataTable = "strata"
)

// StandardTableNames lists all standard table names for enumeration.
var StandardTableNames = []string{
	ItemsTable,
	StrataTable,
}
