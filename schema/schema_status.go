package schema

import "time"

// StoreStatus represents the status of the object store.
type StoreStatus struct {
	Backend         string    `json:"backend"`
	Connected       bool      `json:"connected"`
	TotalObjects    int       `json:"total_objects"`
	TotalScopes     int       `json:"total_scopes"`
	LastImportTime  time.Time `json:"last_import_time"`
	FirstImportTime time.Time `json:"first_import_time"`
	TableSizeBytes  int64     `json:"table_size_bytes"`
}
