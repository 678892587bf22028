package store

// Problem queries
const (
	queryGetProblem = `
		SELECT spec, submitted_at
		FROM problems WHERE id = ?`

	queryUpsertProblem = `
		INSERT INTO problems (id, spec, submitted_at)
		VALUES (?, ?, now())
		ON CONFLICT (id) DO UPDATE SET
			spec = EXCLUDED.spec,
			submitted_at = now()`

	queryDeleteProblem = `DELETE FROM problems WHERE id = ?`
)

// Solution queries
const (
	queryGetSolution = `
		SELECT document, error, solved_at
		FROM solutions WHERE problem_id = ?`

	queryUpsertSolution = `
		INSERT INTO solutions (problem_id, document, error, solved_at)
		VALUES (?, ?, ?, now())
		ON CONFLICT (problem_id) DO UPDATE SET
			document = EXCLUDED.document,
			error = EXCLUDED.error,
			solved_at = now()`
)
