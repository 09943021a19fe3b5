package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDataDirLayout(t *testing.T) {
	assert.Equal(t, "out/database", databaseDir("out"))
	assert.Equal(t, "out/tantivy", indexDir("out"))
}

func TestCommandsExposeExpectedUse(t *testing.T) {
	assert.Equal(t, "load <out-dir>", newLoadCmd().Use)
	assert.Equal(t, "check <data-dir>", newCheckCmd().Use)
	assert.Equal(t, "info <data-dir>", newInfoCmd().Use)
}
