package main

import "path/filepath"

// databaseDir and indexDir name the two subdirectories a data directory
// holds: the record store and the host inverted index, mirroring the
// original loader's "<out-dir>/database/" and "<out-dir>/tantivy/"
// layout (spec §6's "or equivalent").
func databaseDir(dataDir string) string { return filepath.Join(dataDir, "database") }
func indexDir(dataDir string) string    { return filepath.Join(dataDir, "tantivy") }
