// Package memory provides an in-process implementation of the storage
// interfaces defined in the internal/store package. State lives only as long
// as the process; nothing is written to disk.
package memory
