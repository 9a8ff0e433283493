package remote

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS notes (
	user_id    TEXT NOT NULL,
	id         TEXT NOT NULL,
	title      TEXT NOT NULL,
	content    TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	PRIMARY KEY (user_id, id)
);

CREATE TABLE IF NOT EXISTS tasks (
	user_id     TEXT NOT NULL,
	id          TEXT NOT NULL,
	title       TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	status      TEXT NOT NULL DEFAULT 'pending'
		CHECK(status IN ('pending', 'in-progress', 'completed')),
	due_date    DATETIME,
	created_at  DATETIME NOT NULL,
	PRIMARY KEY (user_id, id)
);

CREATE TABLE IF NOT EXISTS useful_links (
	user_id     TEXT NOT NULL,
	id          TEXT NOT NULL,
	title       TEXT NOT NULL,
	url         TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	category    TEXT NOT NULL DEFAULT '',
	created_at  DATETIME NOT NULL,
	PRIMARY KEY (user_id, id)
);

CREATE TABLE IF NOT EXISTS ideas (
	user_id     TEXT NOT NULL,
	id          TEXT NOT NULL,
	title       TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	category    TEXT NOT NULL DEFAULT '',
	created_at  DATETIME NOT NULL,
	PRIMARY KEY (user_id, id)
);

CREATE TABLE IF NOT EXISTS prompts (
	user_id    TEXT NOT NULL,
	id         TEXT NOT NULL,
	title      TEXT NOT NULL,
	content    TEXT NOT NULL DEFAULT '',
	category   TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL,
	PRIMARY KEY (user_id, id)
);

CREATE TABLE IF NOT EXISTS chip_instances (
	user_id    TEXT NOT NULL,
	id         TEXT NOT NULL,
	name       TEXT NOT NULL,
	phone      TEXT NOT NULL DEFAULT '',
	status     TEXT NOT NULL DEFAULT 'inactive'
		CHECK(status IN ('inactive', 'heating', 'active')),
	created_at DATETIME NOT NULL,
	PRIMARY KEY (user_id, id)
);

CREATE TABLE IF NOT EXISTS clients (
	user_id           TEXT NOT NULL,
	id                TEXT NOT NULL,
	name              TEXT NOT NULL,
	company           TEXT NOT NULL DEFAULT '',
	email             TEXT NOT NULL DEFAULT '',
	phone             TEXT NOT NULL DEFAULT '',
	status            TEXT NOT NULL DEFAULT 'prospect'
		CHECK(status IN ('prospect', 'lead', 'negotiation', 'client', 'inactive')),
	category          TEXT NOT NULL DEFAULT 'individual'
		CHECK(category IN ('individual', 'company', 'partner')),
	notes             TEXT NOT NULL DEFAULT '',
	value             REAL NOT NULL DEFAULT 0,
	next_contact_date DATETIME,
	last_contact_date DATETIME,
	created_at        DATETIME NOT NULL,
	updated_at        DATETIME NOT NULL,
	PRIMARY KEY (user_id, id)
);

CREATE TABLE IF NOT EXISTS financial_records (
	user_id     TEXT NOT NULL,
	id          TEXT NOT NULL,
	client_id   TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	amount      REAL NOT NULL DEFAULT 0,
	type        TEXT NOT NULL CHECK(type IN ('income', 'expense')),
	status      TEXT NOT NULL DEFAULT 'pending'
		CHECK(status IN ('pending', 'completed', 'cancelled')),
	date        DATETIME NOT NULL,
	created_at  DATETIME NOT NULL,
	updated_at  DATETIME NOT NULL,
	PRIMARY KEY (user_id, id)
);

CREATE TABLE IF NOT EXISTS settings (
	user_id               TEXT PRIMARY KEY,
	webhook_url           TEXT NOT NULL DEFAULT '',
	webhook_evolution_url TEXT NOT NULL DEFAULT '',
	theme                 TEXT NOT NULL DEFAULT 'dark' CHECK(theme IN ('dark', 'light')),
	language              TEXT NOT NULL DEFAULT 'pt' CHECK(language IN ('pt', 'en')),
	enable_notifications  INTEGER NOT NULL DEFAULT 1,
	auto_save             INTEGER NOT NULL DEFAULT 1,
	use_remote            INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(user_id, status);
CREATE INDEX IF NOT EXISTS idx_tasks_due_date ON tasks(user_id, due_date);
CREATE INDEX IF NOT EXISTS idx_clients_status ON clients(user_id, status);
CREATE INDEX IF NOT EXISTS idx_financial_records_client
	ON financial_records(user_id, client_id);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
}
