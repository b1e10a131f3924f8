package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/afs"
)

func TestStorageSchemes(t *testing.T) {
	for _, scheme := range []string{"file", "mem", "gs", "s3"} {
		t.Run(scheme, func(t *testing.T) {
			_, err := afs.GetRegistry().Get(scheme)
			assert.NoError(t, err)
		})
	}
}
