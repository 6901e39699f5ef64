package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/huangsam/binbridge/internal/binstore"
	"github.com/huangsam/binbridge/internal/contract"
	"github.com/huangsam/binbridge/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// objectStore is the database store opened by storeSetup.
var objectStore contract.ObjectStore

// loadStoreConfig reads the store related settings shared by every store subcommand.
func loadStoreConfig() error {
	if err := readConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(strings.ToLower(viper.GetString("store-backend")))
	connStr := viper.GetString("store-connect")
	if _, ok := schema.ValidStoreBackends[backend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql", backend)
	}
	if backend == schema.FileBackend {
		return fmt.Errorf("store commands need a database backend, not %s", backend)
	}
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")
	return nil
}

// storeSetup loads minimal configuration and opens the object store.
// This is used by commands that need store access without full shared setup.
func storeSetup(_ *cobra.Command, _ []string) error {
	if err := loadStoreConfig(); err != nil {
		return err
	}
	store, err := binstore.NewSQLStore(cfg.StoreBackend, cfg.StoreDBConnect)
	if err != nil {
		return fmt.Errorf("failed to open object store: %w", err)
	}
	objectStore = store
	source = store
	return nil
}

// storeMigrateSetup loads the store configuration without opening the store,
// allowing migrations to run on a fresh database.
func storeMigrateSetup(_ *cobra.Command, _ []string) error {
	if err := loadStoreConfig(); err != nil {
		return err
	}
	if cfg.StoreBackend == schema.SQLiteBackend && cfg.StoreDBConnect == "" {
		cfg.StoreDBConnect = contract.GetStoreDBFilePath()
	}
	return nil
}

// storeCmd focused on object store management.
//
// Note: Store subcommands use minimal initialization instead of the full
// sharedSetup used by the plotting commands.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the database-backed object store",
	Long: `Manage the relational object store that documents are imported into.

The plotting commands read from this store unless --store-backend file is given.

Supported backends: SQLite (default), MySQL, PostgreSQL

Subcommands:
  import  - Replace the stored tree with a document
  export  - Write the stored tree back out as a document
  status  - Show store statistics and connection info
  clear   - Remove every stored object
  migrate - Run database schema migrations

Examples:
  # Load a snapshot and browse it
  binbridge store import results.json.xz
  binbridge list`,
}

// storeImportCmd imports a document into the store.
var storeImportCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Replace the stored tree with a JSON document",
	Long: `Read a JSON document (optionally xz-compressed) and replace the stored tree with it.

The import runs in a single transaction: either the whole document is stored
or the previous tree is kept.

Examples:
  binbridge store import results.json
  BINBRIDGE_STORE_BACKEND=postgresql BINBRIDGE_STORE_CONNECT="host=... dbname=..." binbridge store import results.json.xz`,
	Args:    cobra.ExactArgs(1),
	PreRunE: storeSetup,
	Run: func(_ *cobra.Command, args []string) {
		doc, err := binstore.LoadDocument(args[0])
		if err != nil {
			contract.LogFatal("Failed to read document", err)
		}
		n, err := objectStore.Import(doc)
		if err != nil {
			contract.LogFatal("Failed to import document", err)
		}
		fmt.Printf("Imported %d entries from %s.\n", n, args[0])
	},
}

// storeExportCmd exports the stored tree as a document.
var storeExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the stored tree back out as a JSON document",
	Long: `Rebuild the stored tree and write it as a JSON document.

The document goes to --output-file, compressed with xz when the file name ends
in .xz, or to stdout when no file is given.

Examples:
  binbridge store export --output-file backup.json.xz`,
	PreRunE: storeSetup,
	Run: func(_ *cobra.Command, _ []string) {
		doc, err := objectStore.Export()
		if err != nil {
			contract.LogFatal("Failed to export store", err)
		}
		if cfg.OutputFile == "" {
			if err := binstore.EncodeDocument(os.Stdout, doc, false); err != nil {
				contract.LogFatal("Failed to write document", err)
			}
			return
		}
		if err := binstore.SaveDocument(cfg.OutputFile, doc); err != nil {
			contract.LogFatal("Failed to write document", err)
		}
		_, _ = fmt.Fprintf(os.Stderr, "💾 Wrote document to %s\n", cfg.OutputFile)
	},
}

// storeStatusCmd shows store status.
var storeStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display store statistics and connection details",
	Long: `Show the backend, connection state, object and scope counts, import
timestamps and table size of the object store.

Examples:
  binbridge store status`,
	PreRunE: storeSetup,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := objectStore.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get store status", err)
		}
		binstore.PrintStoreStatus(status)
	},
}

// storeClearCmd clears the store.
var storeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every stored object",
	Long: `Delete every object and scope from the object store.

WARNING: This action cannot be undone. Consider exporting first.

Examples:
  binbridge store export --output-file backup.json.xz
  binbridge store clear`,
	PreRunE: storeSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := objectStore.Clear(); err != nil {
			contract.LogFatal("Failed to clear store", err)
		}
		fmt.Println("Store cleared successfully.")
	},
}

// storeMigrateCmd runs database migrations for the object store.
var storeMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the object store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  binbridge store migrate

  # Rollback to the initial state
  binbridge store migrate --target-version 0`,
	PreRunE: storeMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := binstore.Migrate(cfg.StoreBackend, cfg.StoreDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
