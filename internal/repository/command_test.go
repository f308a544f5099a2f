package repository

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompleteCommandScopedToDevice(t *testing.T) {
	t.Parallel()

	// A device token must only ever complete its own commands, so the
	// update has to match on the reporting device as well as the command.
	assert.Contains(t, completeCommandWhere, "device_id = @device_id")
	assert.Contains(t, completeCommandWhere, "command_id = @command_id")
}

func TestCompleteCommandSetClause(t *testing.T) {
	t.Parallel()

	t.Run("without result", func(t *testing.T) {
		t.Parallel()
		clause, args := CompleteCommandParams{Status: CommandCompleted}.SetClause()
		assert.Equal(t, "status = @status, completed_at = now()", clause)
		assert.Equal(t, map[string]any{"status": CommandCompleted}, args)
	})

	t.Run("with result", func(t *testing.T) {
		t.Parallel()
		result := "ok"
		clause, args := CompleteCommandParams{
			Status: CommandFailed, Result: &result,
		}.SetClause()
		assert.True(t, strings.HasSuffix(clause, "result = @result"))
		assert.Equal(t, map[string]any{
			"status": CommandFailed,
			"result": "ok",
		}, args)
	})
}
