// Package snapshot persists packed values as bencoded documents holding
// the schema text, the raw buffer and a readable list of field values.
package snapshot
