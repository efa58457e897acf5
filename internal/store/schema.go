package store

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    started_at TIMESTAMP NOT NULL,
    duration_ms INTEGER NOT NULL,
    checks_run INTEGER NOT NULL,
    advisory_count INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS advisories (
    run_id INTEGER NOT NULL,
    position INTEGER NOT NULL,
    check_name TEXT NOT NULL,
    message TEXT NOT NULL,
    PRIMARY KEY (run_id, position),
    FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_advisories_run ON advisories(run_id);
CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
`
