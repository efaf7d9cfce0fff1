// Package codec reads and writes a single unsigned field of 1 to 32 bits at
// an arbitrary bit offset in a byte buffer.
//
// Bits are numbered little-endian: bit 0 is the least significant bit of
// byte 0. A field's span is split into at most three regions:
//
//	┌──────────────┬─────────────────────┬───────────────┐
//	│ partial head │ whole bytes (1/2/4) │ partial tail  │
//	│ masked RMW   │ overwritten         │ masked RMW    │
//	└──────────────┴─────────────────────┴───────────────┘
//
// Partial bytes are updated with a read-modify-write that preserves the bits
// of neighbouring fields. Whole bytes belong to the field alone and are
// written with the widest little-endian chunk that fits.
//
// Values are truncated to the field width on write. Callers that need to
// reject oversized values check Fits first.
package codec
