package binstore

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql" // MySQL driver
	"github.com/huangsam/binbridge/internal/contract"
	"github.com/huangsam/binbridge/schema"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

// objectsTable holds one row per named object, keyed by its parent scope path.
const objectsTable = "binbridge_objects"

// SQLStore serves a scope tree stored in a relational database.
type SQLStore struct {
	db         *sql.DB
	backend    schema.DatabaseBackend
	driverName string
	connStr    string
}

var _ contract.ObjectStore = &SQLStore{} // Compile-time check

// NewSQLStore opens the store with the specified backend and makes sure its table exists.
func NewSQLStore(backend schema.DatabaseBackend, connStr string) (contract.ObjectStore, error) {
	db, driverName, err := openDB(backend, connStr)
	if err != nil {
		return nil, err
	}
	if backend == schema.SQLiteBackend {
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)
	}

	// Ping to verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		var connDetail string
		switch backend {
		case schema.MySQLBackend:
			connDetail = "Check that MySQL is running and the connection string is correct. Ensure user/password are valid."
		case schema.PostgreSQLBackend:
			connDetail = "Check that PostgreSQL is running and the connection string is correct. Ensure user/password are valid."
		default:
			connDetail = "Verify the database file is accessible."
		}
		return nil, fmt.Errorf("failed to connect to %s database: %w. %s", backend, err, connDetail)
	}

	if err := createObjectsTable(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create objects table: %w", err)
	}

	return &SQLStore{
		db:         db,
		backend:    backend,
		driverName: driverName,
		connStr:    connStr,
	}, nil
}

// openDB opens a database handle without checking the connection.
func openDB(backend schema.DatabaseBackend, connStr string) (*sql.DB, string, error) {
	switch backend {
	case schema.SQLiteBackend:
		dbPath := connStr
		if dbPath == "" {
			dbPath = contract.GetStoreDBFilePath()
		}
		db, err := sql.Open("sqlite", dbPath)
		if err != nil {
			return nil, "", fmt.Errorf("failed to open SQLite database at %q: %w. Check that the directory is writable", dbPath, err)
		}
		return db, "sqlite", nil

	case schema.MySQLBackend:
		// connStr should be:
		// user:password@tcp(host:port)/dbname
		db, err := sql.Open("mysql", connStr)
		if err != nil {
			return nil, "", fmt.Errorf("failed to open MySQL database: %w. Check connection string format: user:password@tcp(host:port)/dbname", err)
		}
		return db, "mysql", nil

	case schema.PostgreSQLBackend:
		// connStr should be:
		// host=localhost port=5432 user=postgres password=mysecretpassword dbname=postgres
		db, err := sql.Open("pgx", connStr)
		if err != nil {
			return nil, "", fmt.Errorf("failed to open PostgreSQL database: %w. Check connection string format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}
		return db, "pgx", nil

	default:
		return nil, "", fmt.Errorf("unsupported backend: %s", backend)
	}
}

// createObjectsTable runs the statements of the first migration, which are idempotent.
func createObjectsTable(db *sql.DB, backend schema.DatabaseBackend) error {
	data, err := migrationsFS.ReadFile(fmt.Sprintf("migrations/%s/1_create_objects.up.sql", backend))
	if err != nil {
		return err
	}
	for stmt := range strings.SplitSeq(string(data), ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create table %s: %w", objectsTable, err)
		}
	}
	return nil
}

// Root returns the top-level scope.
func (s *SQLStore) Root() schema.Scope {
	return &sqlScope{store: s}
}

// Close closes the underlying DB connection.
func (s *SQLStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLStore) table() string {
	return quoteTableName(objectsTable, s.backend)
}

// Import replaces the stored tree with doc in a single transaction.
func (s *SQLStore) Import(doc *schema.Document) (int, error) {
	if err := ValidateDocument(doc); err != nil {
		return 0, err
	}
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin import: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(fmt.Sprintf("DELETE FROM %s", s.table())); err != nil {
		return 0, fmt.Errorf("failed to clear objects: %w", err)
	}
	query := rebind(fmt.Sprintf(
		`INSERT INTO %s (parent, name, position, kind, payload, imported_at) VALUES (?, ?, ?, ?, ?, ?)`,
		s.table()), s.backend)
	stmt, err := tx.Prepare(query)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	count, err := insertEntries(stmt, nil, doc.Entries, time.Now().Unix())
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit import: %w", err)
	}
	return count, nil
}

func insertEntries(stmt *sql.Stmt, path []string, entries []schema.Entry, importedAt int64) (int, error) {
	count := 0
	for i, e := range entries {
		if strings.Contains(e.Name, "/") {
			return count, fmt.Errorf("%w: name %q contains '/'", ErrInvalidEntry, e.Name)
		}
		children := e.Children
		e.Children = nil
		payload, err := json.Marshal(e)
		if err != nil {
			return count, fmt.Errorf("failed to encode %q: %w", e.Name, err)
		}
		if _, err := stmt.Exec(joinPath(path), e.Name, i, string(schema.ParseKind(e.Kind)), string(payload), importedAt); err != nil {
			return count, fmt.Errorf("failed to insert %q: %w", e.Name, err)
		}
		count++
		if schema.ParseKind(e.Kind) == schema.KindScope {
			n, err := insertEntries(stmt, append(path, e.Name), children, importedAt)
			count += n
			if err != nil {
				return count, err
			}
		}
	}
	return count, nil
}

// Export rebuilds the stored tree as a document.
func (s *SQLStore) Export() (*schema.Document, error) {
	query := fmt.Sprintf("SELECT parent, payload FROM %s ORDER BY parent, position", s.table())
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query objects: %w", err)
	}
	defer func() { _ = rows.Close() }()

	byParent := make(map[string][]schema.Entry)
	for rows.Next() {
		var parent, payload string
		if err := rows.Scan(&parent, &payload); err != nil {
			return nil, fmt.Errorf("failed to scan object: %w", err)
		}
		var e schema.Entry
		if err := json.Unmarshal([]byte(payload), &e); err != nil {
			return nil, fmt.Errorf("failed to decode object under %q: %w", parent, err)
		}
		byParent[parent] = append(byParent[parent], e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating objects: %w", err)
	}
	return &schema.Document{Entries: assemble(byParent, nil)}, nil
}

func assemble(byParent map[string][]schema.Entry, path []string) []schema.Entry {
	entries := byParent[joinPath(path)]
	for i := range entries {
		if schema.ParseKind(entries[i].Kind) == schema.KindScope {
			entries[i].Children = assemble(byParent, append(path, entries[i].Name))
		}
	}
	return entries
}

// Clear removes every stored object.
func (s *SQLStore) Clear() error {
	if _, err := s.db.Exec(fmt.Sprintf("DELETE FROM %s", s.table())); err != nil {
		return fmt.Errorf("failed to clear objects: %w", err)
	}
	return nil
}

// GetStatus returns status information about the store.
func (s *SQLStore) GetStatus() (schema.StoreStatus, error) {
	status := schema.StoreStatus{
		Backend:   string(s.backend),
		Connected: s.db != nil,
	}
	if s.db == nil {
		return status, nil
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE kind <> 'scope'", s.table())
	if err := s.db.QueryRow(countQuery).Scan(&status.TotalObjects); err != nil {
		return status, fmt.Errorf("failed to get total objects: %w", err)
	}
	scopeQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE kind = 'scope'", s.table())
	if err := s.db.QueryRow(scopeQuery).Scan(&status.TotalScopes); err != nil {
		return status, fmt.Errorf("failed to get total scopes: %w", err)
	}
	total := status.TotalObjects + status.TotalScopes
	if total == 0 {
		return status, nil
	}

	var lastTs, firstTs int64
	timeQuery := fmt.Sprintf("SELECT MAX(imported_at), MIN(imported_at) FROM %s", s.table())
	if err := s.db.QueryRow(timeQuery).Scan(&lastTs, &firstTs); err != nil {
		return status, fmt.Errorf("failed to get import times: %w", err)
	}
	status.LastImportTime = time.Unix(lastTs, 0)
	status.FirstImportTime = time.Unix(firstTs, 0)

	// Fallback rough estimate if the size queries fail
	estimate := int64(total) * 1000
	switch s.backend {
	case schema.SQLiteBackend:
		sizeQuery := "SELECT page_count * page_size FROM pragma_page_count(), pragma_page_size()"
		if err := s.db.QueryRow(sizeQuery).Scan(&status.TableSizeBytes); err != nil {
			status.TableSizeBytes = 0
		}
	case schema.MySQLBackend:
		status.TableSizeBytes = estimate
		cfg, err := mysql.ParseDSN(s.connStr)
		if err != nil || cfg.DBName == "" {
			break
		}
		sizeQuery := "SELECT data_length + index_length FROM information_schema.tables WHERE table_schema = ? AND table_name = ?"
		if err := s.db.QueryRow(sizeQuery, cfg.DBName, objectsTable).Scan(&status.TableSizeBytes); err != nil {
			status.TableSizeBytes = estimate
		}
	case schema.PostgreSQLBackend:
		if err := s.db.QueryRow("SELECT pg_total_relation_size($1)", objectsTable).Scan(&status.TableSizeBytes); err != nil {
			status.TableSizeBytes = estimate
		}
	default:
		status.TableSizeBytes = estimate
	}
	return status, nil
}

// sqlScope is one level of the stored tree.
type sqlScope struct {
	store *SQLStore
	path  []string
}

var _ schema.Scope = &sqlScope{} // Compile-time check

func (sc *sqlScope) Names() []string {
	query := rebind(fmt.Sprintf("SELECT name FROM %s WHERE parent = ? ORDER BY position", sc.store.table()), sc.store.backend)
	rows, err := sc.store.db.Query(query, joinPath(sc.path))
	if err != nil {
		contract.LogWarn("failed to list scope", err)
		return nil
	}
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			contract.LogWarn("failed to scan name", err)
			return names
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		contract.LogWarn("error iterating scope", err)
	}
	return names
}

func (sc *sqlScope) Contains(name string) bool {
	_, _, err := sc.lookup(name)
	return err == nil
}

func (sc *sqlScope) Kind(name string) schema.Kind {
	kind, _, err := sc.lookup(name)
	if err != nil {
		return schema.KindOther
	}
	return kind
}

func (sc *sqlScope) Get(name string) (schema.Object, error) {
	kind, payload, err := sc.lookup(name)
	if err != nil {
		return schema.Object{}, err
	}
	if kind == schema.KindScope {
		return schema.Object{Name: name, Kind: kind, Scope: sc.child(name)}, nil
	}
	var e schema.Entry
	if err := json.Unmarshal([]byte(payload), &e); err != nil {
		return schema.Object{}, fmt.Errorf("failed to decode %q: %w", name, err)
	}
	if err := validateEntry(e); err != nil {
		return schema.Object{}, fmt.Errorf("%q: %w", name, err)
	}
	return entryObject(e), nil
}

func (sc *sqlScope) Subscope(name string) (schema.Scope, error) {
	kind, _, err := sc.lookup(name)
	if err != nil {
		return nil, err
	}
	if kind != schema.KindScope {
		return nil, fmt.Errorf("%w: %q is %s", ErrNotScope, name, kind)
	}
	return sc.child(name), nil
}

func (sc *sqlScope) child(name string) *sqlScope {
	path := append(append([]string(nil), sc.path...), name)
	return &sqlScope{store: sc.store, path: path}
}

// lookup returns the kind and payload of the first row called name.
func (sc *sqlScope) lookup(name string) (schema.Kind, string, error) {
	query := rebind(fmt.Sprintf(
		"SELECT kind, payload FROM %s WHERE parent = ? AND name = ? ORDER BY position LIMIT 1",
		sc.store.table()), sc.store.backend)
	var kind, payload string
	err := sc.store.db.QueryRow(query, joinPath(sc.path), name).Scan(&kind, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return schema.KindOther, "", fmt.Errorf("%w: %q", ErrNoEntry, name)
	}
	if err != nil {
		return schema.KindOther, "", fmt.Errorf("failed to look up %q: %w", name, err)
	}
	return schema.ParseKind(kind), payload, nil
}
