package storage

// SchemaVersion is the current database schema version.
const SchemaVersion = 1

// Schema contains the SQL statements to create the audit database schema.
const Schema = `
-- Audit records table
CREATE TABLE IF NOT EXISTS audit (
    id TEXT PRIMARY KEY,
    request_id TEXT,

    -- Timestamps
    analyzed_at TIMESTAMP NOT NULL,
    recorded_at TIMESTAMP NOT NULL,

    -- Content fingerprint
    text_hash TEXT NOT NULL,
    text_length INTEGER NOT NULL,
    word_count INTEGER,
    sentence_count INTEGER,

    -- Verdict
    ai_generated BOOLEAN NOT NULL,
    confidence REAL NOT NULL,
    metrics TEXT,

    -- Scoring configuration
    profile TEXT NOT NULL,
    profile_version TEXT,
    strategy TEXT NOT NULL,

    -- Timing (microseconds)
    duration INTEGER
);

-- Schema version table
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at TIMESTAMP NOT NULL
);

-- Indexes for common queries
CREATE INDEX IF NOT EXISTS idx_audit_analyzed_at ON audit(analyzed_at);
CREATE INDEX IF NOT EXISTS idx_audit_text_hash ON audit(text_hash);
CREATE INDEX IF NOT EXISTS idx_audit_profile ON audit(profile);
CREATE INDEX IF NOT EXISTS idx_audit_ai_generated ON audit(ai_generated);
CREATE INDEX IF NOT EXISTS idx_audit_confidence ON audit(confidence);
`

// InsertSchemaVersion inserts the schema version into the schema_version table.
const InsertSchemaVersion = `
INSERT INTO schema_version (version, applied_at)
VALUES (?, datetime('now'))
ON CONFLICT(version) DO NOTHING;
`

// GetSchemaVersion retrieves the current schema version from the database.
const GetSchemaVersion = `
SELECT version FROM schema_version ORDER BY version DESC LIMIT 1;
`
