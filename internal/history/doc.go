// Package history persists analysis runs in SQLite so past detections and
// classifications can be listed and inspected later.
//
// The Store manages the database connection, schema initialization, and a
// lock file that serializes writers across processes. Schema changes bump the
// version in schema.go; users clear the database to adopt the new schema.
package history
