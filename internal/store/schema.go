package store

const schema = `
CREATE TABLE IF NOT EXISTS refreshes (
    id TEXT PRIMARY KEY,
    generation INTEGER NOT NULL,
    file_name TEXT,
    file_size INTEGER,
    source TEXT,
    generated_at TIMESTAMP NOT NULL,
    risk_average REAL,
    breaches INTEGER,
    stockout_alerts INTEGER
);

CREATE TABLE IF NOT EXISTS notifications (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    refresh_id TEXT,
    severity TEXT NOT NULL,
    message TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL,
    FOREIGN KEY (refresh_id) REFERENCES refreshes(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_refreshes_generation ON refreshes(generation);
CREATE INDEX IF NOT EXISTS idx_notifications_created ON notifications(created_at);
CREATE INDEX IF NOT EXISTS idx_notifications_refresh ON notifications(refresh_id);
`
