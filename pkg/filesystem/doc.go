// Package filesystem provides filesystem implementations for mkt.
//
// The TXML engine, the importer and the template registry all work through
// the FS interface so the same code runs against the OS or an in-memory
// afero filesystem.
package filesystem
