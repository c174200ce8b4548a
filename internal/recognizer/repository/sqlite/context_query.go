package sqlite

const (
	selectContextQuery = `SELECT data, updated_at FROM conversation_contexts WHERE key = ?`

	upsertContextQuery = `
INSERT INTO conversation_contexts (key, data, updated_at) VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`

	deleteContextQuery = `DELETE FROM conversation_contexts WHERE key = ?`
)
