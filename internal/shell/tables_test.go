package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTables_EveryActivateFileHasMarker(t *testing.T) {
	for k := range activateFiles {
		_, ok := deactivateMarkers[k]
		assert.True(t, ok, "deactivate marker missing for %s", k)
	}
	assert.Len(t, deactivateMarkers, len(activateFiles))
}
