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
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createPartnerTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE partner_profiles (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL UNIQUE,
		company_name TEXT NOT NULL,
		subdomain TEXT NOT NULL UNIQUE,
		custom_domain TEXT UNIQUE,
		domain_verified BOOLEAN NOT NULL DEFAULT 0,
		domain_verification_token TEXT,
		status TEXT NOT NULL,
		company_color TEXT,
		logo_url TEXT,
		header_code TEXT NOT NULL DEFAULT '',
		body_code TEXT NOT NULL DEFAULT '',
		footer_code TEXT NOT NULL DEFAULT '',
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE user_profiles (
		user_id TEXT PRIMARY KEY,
		email TEXT NOT NULL,
		role TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createCatalogTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE service_categories (
		service_category_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		slug TEXT NOT NULL UNIQUE,
		is_active BOOLEAN NOT NULL DEFAULT 1,
		created_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE addons (
		addon_id TEXT PRIMARY KEY,
		service_category_id TEXT NOT NULL,
		partner_id TEXT,
		title TEXT NOT NULL,
		description TEXT,
		price REAL NOT NULL DEFAULT 0,
		image_url TEXT,
		display_order INTEGER NOT NULL DEFAULT 0,
		is_active BOOLEAN NOT NULL DEFAULT 1,
		created_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE category_fields (
		field_id TEXT PRIMARY KEY,
		service_category_id TEXT NOT NULL,
		name TEXT NOT NULL,
		key TEXT NOT NULL,
		field_type TEXT NOT NULL,
		is_required BOOLEAN NOT NULL DEFAULT 0,
		options TEXT,
		display_order INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME,
		UNIQUE (service_category_id, key)
	);`)
}

func createFormQuestionTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE form_questions (
		question_id TEXT PRIMARY KEY,
		service_category_id TEXT NOT NULL,
		step_number INTEGER NOT NULL,
		display_order_in_step INTEGER NOT NULL DEFAULT 0,
		question_text TEXT NOT NULL,
		is_multiple_choice BOOLEAN NOT NULL DEFAULT 0,
		allow_multiple_selections BOOLEAN NOT NULL DEFAULT 0,
		answer_options TEXT,
		is_required BOOLEAN NOT NULL DEFAULT 0,
		status TEXT NOT NULL,
		is_deleted BOOLEAN NOT NULL DEFAULT 0,
		conditional_display TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createLeadTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE partner_leads (
		lead_id TEXT PRIMARY KEY,
		partner_id TEXT NOT NULL,
		service_category_id TEXT,
		first_name TEXT NOT NULL,
		last_name TEXT,
		email TEXT NOT NULL,
		phone TEXT,
		postcode TEXT,
		form_answers TEXT NOT NULL DEFAULT '{}',
		progress_step TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createCRMTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE partner_integrations (
		id TEXT PRIMARY KEY,
		partner_id TEXT NOT NULL,
		provider TEXT NOT NULL,
		location_id TEXT NOT NULL,
		access_token TEXT NOT NULL,
		refresh_token TEXT NOT NULL,
		expires_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME,
		UNIQUE (partner_id, provider)
	);`)
	mustExec(t, db, `CREATE TABLE crm_field_mappings (
		partner_id TEXT NOT NULL,
		lead_key TEXT NOT NULL,
		crm_field_id TEXT NOT NULL,
		updated_at DATETIME,
		PRIMARY KEY (partner_id, lead_key)
	);`)
}
