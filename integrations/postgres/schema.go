package postgres

import (
	"context"
	"fmt"
)

const ddl = `
CREATE TABLE IF NOT EXISTS banks (
    id BIGSERIAL PRIMARY KEY,
    name VARCHAR(100) NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS card_types (
    id BIGSERIAL PRIMARY KEY,
    name VARCHAR(100) NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS categories (
    id BIGSERIAL PRIMARY KEY,
    name VARCHAR(100) NOT NULL UNIQUE,
    color VARCHAR(7),
    is_system BOOLEAN NOT NULL DEFAULT true
);

CREATE TABLE IF NOT EXISTS cards (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT NOT NULL,
    name VARCHAR(255) NOT NULL,
    alias VARCHAR(255),
    card_type_id BIGINT NOT NULL REFERENCES card_types(id),
    bank_id BIGINT REFERENCES banks(id),
    balance NUMERIC(18,2) NOT NULL DEFAULT 0,
    currency VARCHAR(3) NOT NULL DEFAULT 'CLP',
    source VARCHAR(20) NOT NULL DEFAULT 'manual',
    status VARCHAR(10) NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'inactive')),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- Card identity used by statement ingestion
CREATE UNIQUE INDEX IF NOT EXISTS idx_cards_identity
ON cards (user_id, name, card_type_id, COALESCE(bank_id, 0));

-- One row per uploaded file, the authoritative duplicate guard
CREATE TABLE IF NOT EXISTS statements (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT NOT NULL,
    card_id BIGINT NOT NULL REFERENCES cards(id) ON DELETE CASCADE,
    file_hash CHAR(64) NOT NULL,
    number VARCHAR(50),
    issue_date DATE,
    period_start DATE,
    period_end DATE,
    movements_count INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),

    UNIQUE(user_id, file_hash)
);

CREATE TABLE IF NOT EXISTS movements (
    id BIGSERIAL PRIMARY KEY,
    card_id BIGINT NOT NULL REFERENCES cards(id) ON DELETE CASCADE,
    statement_id BIGINT REFERENCES statements(id) ON DELETE SET NULL,
    amount NUMERIC(18,2) NOT NULL,
    description TEXT NOT NULL,
    movement_type VARCHAR(10) NOT NULL CHECK (movement_type IN ('income', 'expense')),
    movement_source VARCHAR(10) NOT NULL CHECK (movement_source IN ('manual', 'cartola', 'scraper')),
    category_id BIGINT REFERENCES categories(id),
    transaction_date TIMESTAMPTZ NOT NULL,
    metadata JSONB NOT NULL DEFAULT '{}',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_movements_card_id ON movements(card_id);
CREATE INDEX IF NOT EXISTS idx_movements_source_created ON movements(movement_source, created_at);
CREATE INDEX IF NOT EXISTS idx_movements_transaction_date ON movements(transaction_date);

CREATE TABLE IF NOT EXISTS user_category_keywords (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT NOT NULL,
    category_id BIGINT NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
    keywords TEXT[] NOT NULL DEFAULT '{}',

    UNIQUE(user_id, category_id)
);

CREATE TABLE IF NOT EXISTS plan_limits (
    plan_id BIGINT NOT NULL,
    limit_key VARCHAR(50) NOT NULL,
    limit_val INTEGER NOT NULL,

    PRIMARY KEY (plan_id, limit_key)
);

CREATE TABLE IF NOT EXISTS plan_permissions (
    plan_id BIGINT NOT NULL,
    permission_key VARCHAR(50) NOT NULL,

    PRIMARY KEY (plan_id, permission_key)
);
`

// seedDDL inserts the reference rows the pipeline falls back to
const seedDDL = `
INSERT INTO banks (name) VALUES ('BancoEstado') ON CONFLICT (name) DO NOTHING;

INSERT INTO card_types (name) VALUES
    ('CuentaRUT'),
    ('Cuenta Vista'),
    ('Cuenta Corriente'),
    ('Cuenta de Ahorro'),
    ('Tarjeta de Crédito'),
    ('Tarjeta de Débito'),
    ('Otros')
ON CONFLICT (name) DO NOTHING;

INSERT INTO categories (name, color) VALUES
    ('Alimentación', '#F97316'),
    ('Entretenimiento', '#8B5CF6'),
    ('Transporte', '#0EA5E9'),
    ('Supermercado', '#22C55E'),
    ('Compras', '#EC4899'),
    ('Salud', '#EF4444'),
    ('Servicios', '#64748B'),
    ('Otros', '#9CA3AF')
ON CONFLICT (name) DO NOTHING;

-- plan 1 free, plan 2 premium
INSERT INTO plan_limits (plan_id, limit_key, limit_val) VALUES
    (1, 'cartola_movements', 50),
    (2, 'cartola_movements', -1)
ON CONFLICT (plan_id, limit_key) DO NOTHING;

INSERT INTO plan_permissions (plan_id, permission_key) VALUES
    (1, 'cartola_upload'),
    (2, 'cartola_upload')
ON CONFLICT (plan_id, permission_key) DO NOTHING;
`

// EnsureSchema creates tables if they don't exist and seeds reference data
func (db *DB) EnsureSchema(ctx context.Context) error {
	_, err := db.Pool.Exec(ctx, ddl)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	_, err = db.Pool.Exec(ctx, seedDDL)
	if err != nil {
		return fmt.Errorf("failed to seed reference data: %w", err)
	}

	return nil
}
