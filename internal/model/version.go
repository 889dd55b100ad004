package model

// Keys of the persistent key-value table.
const (
	// StoreKey holds the serialized Record.
	StoreKey = "eventra_store_v1"

	// AccountsKey holds the JSON array of signed-up Accounts.
	AccountsKey = "users"

	// SessionKey holds the current Session marker.
	SessionKey = "currentUser"
)

// Schema version history:
// 0 - records written before versioning (no schemaVersion field)
// 1 - typed record: every collection present, event fields defaulted and
// legacy calendar statuses mapped onto the status table
const CurrentSchemaVersion = 1
