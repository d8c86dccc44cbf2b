package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		email TEXT UNIQUE NOT NULL,
		name TEXT NOT NULL,
		role TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createVendorTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE vendors (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		business_name TEXT NOT NULL,
		business_email TEXT NOT NULL,
		status TEXT NOT NULL,
		minimum_payout REAL NOT NULL DEFAULT 50,
		verified_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createSubscriptionPlanTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE subscription_plans (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		tier TEXT NOT NULL,
		price REAL NOT NULL,
		billing_cycle TEXT NOT NULL,
		trial_days INTEGER NOT NULL DEFAULT 0,
		requires_payment_card BOOLEAN NOT NULL DEFAULT 0,
		is_active BOOLEAN NOT NULL DEFAULT 1,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createSubscriptionTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE subscriptions (
		id TEXT PRIMARY KEY,
		vendor_id TEXT NOT NULL,
		plan_id TEXT NOT NULL,
		tier TEXT NOT NULL,
		status TEXT NOT NULL,
		price REAL NOT NULL,
		billing_cycle TEXT NOT NULL,
		trial_end_date DATETIME,
		started_at DATETIME NOT NULL,
		cancelled_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createProductTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE products (
		id TEXT PRIMARY KEY,
		vendor_id TEXT NOT NULL,
		name TEXT NOT NULL,
		price REAL NOT NULL,
		stock INTEGER NOT NULL DEFAULT 0,
		is_active BOOLEAN NOT NULL DEFAULT 1,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createOrderTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE orders (
		id TEXT PRIMARY KEY,
		vendor_id TEXT NOT NULL,
		customer_id TEXT NOT NULL,
		product_id TEXT NOT NULL,
		quantity INTEGER NOT NULL,
		total_price REAL NOT NULL,
		status TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createCommissionTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE commissions (
		id TEXT PRIMARY KEY,
		order_id TEXT NOT NULL UNIQUE,
		vendor_id TEXT NOT NULL,
		amount REAL NOT NULL,
		rate REAL NOT NULL,
		status TEXT NOT NULL,
		payout_id TEXT,
		breakdown TEXT DEFAULT '{}',
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createPayoutTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE payouts (
		id TEXT PRIMARY KEY,
		vendor_id TEXT NOT NULL,
		amount REAL NOT NULL,
		status TEXT NOT NULL,
		scheduled_date DATETIME NOT NULL,
		processed_at DATETIME,
		failure_reason TEXT,
		notes TEXT,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createTrialUsageTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE trial_usage (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		plan_id TEXT NOT NULL,
		email TEXT NOT NULL,
		ip_address TEXT NOT NULL,
		phone_number TEXT,
		payment_card_last4 TEXT,
		trial_start_date DATETIME NOT NULL,
		trial_end_date DATETIME NOT NULL,
		fraud_score INTEGER NOT NULL DEFAULT 0,
		is_fraudulent BOOLEAN NOT NULL DEFAULT 0,
		risk_notes TEXT,
		status TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createAuditLogTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE audit_logs (
		id TEXT PRIMARY KEY,
		actor_id TEXT,
		action TEXT NOT NULL,
		entity_type TEXT NOT NULL,
		entity_id TEXT NOT NULL,
		details TEXT DEFAULT '{}',
		created_at DATETIME
	);`)
}
