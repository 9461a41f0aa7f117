package database

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
    id CHAR(36) PRIMARY KEY,
    name VARCHAR(255) NOT NULL,
    email VARCHAR(255) NOT NULL UNIQUE,
    password_hash VARCHAR(255) NOT NULL,
    credit_balance INT NOT NULL DEFAULT 5,
    generation_count INT NOT NULL DEFAULT 0,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
)`,

	`CREATE TABLE IF NOT EXISTS images (
    id CHAR(36) PRIMARY KEY,
    user_id CHAR(36) NOT NULL,
    prompt TEXT NOT NULL,
    content_type VARCHAR(64) NOT NULL DEFAULT 'image/png',
    payload LONGBLOB NOT NULL,
    public_url VARCHAR(512),
    is_favorite TINYINT(1) NOT NULL DEFAULT 0,
    generation_ms BIGINT NOT NULL DEFAULT 0,
    model VARCHAR(64) NOT NULL DEFAULT 'clipdrop',
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    INDEX idx_images_user_created (user_id, created_at),
    FOREIGN KEY (user_id) REFERENCES users(id)
)`,

	`CREATE TABLE IF NOT EXISTS transactions (
    id CHAR(36) PRIMARY KEY,
    user_id CHAR(36) NOT NULL,
    plan_id VARCHAR(32) NOT NULL,
    amount INT NOT NULL,
    credits INT NOT NULL,
    provider_order_id VARCHAR(128) NOT NULL UNIQUE,
    settled TINYINT(1) NOT NULL DEFAULT 0,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    settled_at TIMESTAMP NULL,
    FOREIGN KEY (user_id) REFERENCES users(id)
)`,

	`CREATE TABLE IF NOT EXISTS pricing_plans (
    id VARCHAR(32) PRIMARY KEY,
    label VARCHAR(255) NOT NULL,
    amount INT NOT NULL,
    credits INT NOT NULL,
    is_active TINYINT(1) NOT NULL DEFAULT 1,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
)`,
}
