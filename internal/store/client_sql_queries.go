// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

const (
	getRecord = `SELECT value FROM kv_records WHERE key = ?;`

	putRecord = `
		INSERT INTO kv_records (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at;`

	deleteRecord = `DELETE FROM kv_records WHERE key = ?;`

	clearRecords = `DELETE FROM kv_records;`
)
