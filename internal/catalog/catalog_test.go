package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	svc, ok := Lookup("pan")
	require.True(t, ok)
	assert.Equal(t, "PAN Verification", svc.Name)
	assert.Equal(t, "/pan/verify", svc.Endpoint)
	assert.Equal(t, []string{"pan_number", "name"}, svc.Fields)

	_, ok = Lookup("no-such-service")
	assert.False(t, ok)
}

func TestEveryServiceBelongsToAKnownCategory(t *testing.T) {
	known := make(map[string]bool, len(Categories))
	for _, c := range Categories {
		known[c.ID] = true
	}
	for _, svc := range All() {
		assert.True(t, known[svc.Category], "service %s has unknown category %s", svc.ID, svc.Category)
		assert.NotEmpty(t, svc.Endpoint, "service %s has no endpoint", svc.ID)
		assert.NotEmpty(t, svc.Fields, "service %s has no fields", svc.ID)
	}
}

func TestByCategory(t *testing.T) {
	vehicle := ByCategory("vehicle")
	require.NotEmpty(t, vehicle)
	for _, svc := range vehicle {
		assert.Equal(t, "vehicle", svc.Category)
	}

	assert.Empty(t, ByCategory("no-such-category"))
}

func TestTemplate(t *testing.T) {
	svc, ok := Lookup("pan")
	require.True(t, ok)

	lines := strings.Split(strings.TrimSpace(svc.Template()), "\n")
	require.Len(t, lines, 2, "template is a header row plus one example row")
	assert.Equal(t, "pan_number,name", lines[0])
	assert.Equal(t, len(svc.Fields), len(strings.Split(lines[1], ",")))
}
