package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS budgets (
    budget_id            TEXT PRIMARY KEY,
    fetched_at           TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS accounts (
    budget_id            TEXT NOT NULL REFERENCES budgets(budget_id) ON DELETE CASCADE,
    name                 TEXT NOT NULL,
    balance              INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS categories (
    budget_id              TEXT NOT NULL REFERENCES budgets(budget_id) ON DELETE CASCADE,
    name                   TEXT NOT NULL,
    balance                INTEGER NOT NULL,
    goal_type              TEXT,
    goal_day               INTEGER,
    goal_cadence           INTEGER,
    goal_cadence_frequency INTEGER,
    goal_target            INTEGER,
    goal_target_month      TEXT,
    goal_overall_left      INTEGER
);

CREATE TABLE IF NOT EXISTS scheduled_transactions (
    budget_id            TEXT NOT NULL REFERENCES budgets(budget_id) ON DELETE CASCADE,
    date_next            TEXT NOT NULL,
    amount               INTEGER NOT NULL,
    category_name        TEXT,
    account_name         TEXT,
    payee_name           TEXT,
    memo                 TEXT
);

CREATE INDEX IF NOT EXISTS idx_accounts_budget ON accounts(budget_id);
CREATE INDEX IF NOT EXISTS idx_categories_budget ON categories(budget_id);
CREATE INDEX IF NOT EXISTS idx_scheduled_budget ON scheduled_transactions(budget_id);
`
