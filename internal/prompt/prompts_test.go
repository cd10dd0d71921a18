package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTasksKeyOwnershipIsDisjoint(t *testing.T) {
	tasks := Tasks("Elm Street Warehouse", []string{"geotech.pdf"}, "ctx")
	require.Len(t, tasks, 5)

	seen := map[string]string{}
	for _, task := range tasks {
		for _, key := range task.Keys {
			owner, dup := seen[key]
			assert.False(t, dup, "key %q owned by both %q and %q", key, owner, task.Name)
			seen[key] = task.Name
		}
	}

	for _, key := range []string{
		"meta", "header",
		"table1", "table2", "table3", "table4", "table5",
		"table6", "table7", "table8", "table9", "table10",
	} {
		assert.Contains(t, seen, key)
	}
}

func TestTasksEmbedProjectAndContext(t *testing.T) {
	tasks := Tasks("Elm Street Warehouse", []string{"geotech.pdf", "civil.pdf"}, "THE DOCUMENT BODY")
	for _, task := range tasks {
		assert.Contains(t, task.User, "Elm Street Warehouse", task.Name)
		assert.Contains(t, task.User, "geotech.pdf, civil.pdf", task.Name)
		assert.True(t, strings.HasSuffix(task.User, "THE DOCUMENT BODY"), task.Name)
		assert.Contains(t, task.User, "Return STRICT JSON only", task.Name)
		assert.Contains(t, task.User, CreatedByLine, task.Name)
		assert.NotEmpty(t, task.System, task.Name)
	}
}

func TestLegacyTasksUsePerTaskContexts(t *testing.T) {
	tasks := LegacyTasks("Depot", []string{"a.pdf"}, [3]string{"CTX-ONE", "CTX-TWO", "CTX-THREE"})
	require.Len(t, tasks, 3)
	assert.True(t, strings.HasSuffix(tasks[0].User, "CTX-ONE"))
	assert.True(t, strings.HasSuffix(tasks[1].User, "CTX-TWO"))
	assert.True(t, strings.HasSuffix(tasks[2].User, "CTX-THREE"))
	assert.Equal(t, []string{"meta", "header", "table1"}, tasks[0].Keys)
}
