// Package section defines the fixed-size binary structures of a BDIO stream.
//
// A BDIO stream is a flat sequence of blocks. Every block starts with a
// 24-byte BlockHeader followed by Size payload bytes:
//
//	┌──────────────────────────────────────────────┐
//	│ Options (2 bytes, big-endian)                │
//	│  - bit 0: byte order of the rest of the block│
//	│  - bits 4-15: magic 0xBD10                   │
//	│ Tag (2 bytes)                                │
//	│ ValueType (1 byte), Compression (1 byte)     │
//	│ reserved (2 bytes)                           │
//	│ Size (4 bytes), RawSize (4 bytes)            │
//	│ Checksum (8 bytes, xxHash64 of raw payload)  │
//	├──────────────────────────────────────────────┤
//	│ Payload (Size bytes, maybe compressed)       │
//	└──────────────────────────────────────────────┘
//
// The first block of a well-formed stream is a directory block whose payload
// lists a 16-byte DirectoryEntry (tag, size, absolute position) for every block
// in the stream, itself included. Readers use the directory to seek straight
// to the block they need instead of decoding every payload.
package section
