// Package integrity computes content digests of generated artifacts and records them
// in the audit manifest.
//
// Hasher streams files through SHA-256 in fixed-size chunks. ManifestBuilder walks
// an export directory in lexical order, hashes every file, and writes the manifest
// only after the whole walk succeeded. The manifest supports change detection; it
// is not signed.
package integrity
