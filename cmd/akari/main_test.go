package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoteEbookKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ebooks/book.html", remoteEbookKey("book.html"))
	assert.Equal(t, "ebooks/book.html", remoteEbookKey("out/book.html"))
	assert.Equal(t, "ebooks/puzzles.json", remoteEbookKey("/tmp/run/puzzles.json"))
}
