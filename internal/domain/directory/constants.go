package directory

const (
	StoreKey       = "EMPLOYEE_STORE_V2"
	LegacyStoreKey = "EMPLOYEE_STORE_V1"

	SchemaVersion = 2
)
