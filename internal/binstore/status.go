package binstore

import (
	"fmt"

	"github.com/huangsam/binbridge/schema"
)

// PrintStoreStatus prints object store status information.
func PrintStoreStatus(status schema.StoreStatus) {
	fmt.Printf("Store Backend: %s\n", status.Backend)
	fmt.Printf("Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	fmt.Printf("Total Objects: %d\n", status.TotalObjects)
	fmt.Printf("Total Scopes: %d\n", status.TotalScopes)
	if status.TotalObjects+status.TotalScopes > 0 {
		fmt.Printf("Last Import: %s\n", status.LastImportTime.Format("2006-01-02 15:04:05"))
		fmt.Printf("First Import: %s\n", status.FirstImportTime.Format("2006-01-02 15:04:05"))
	}
	fmt.Printf("Table Size: %d bytes\n", status.TableSizeBytes)
}
