package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"rajendranagar-portal/internal/models"
)

// DB is the PostgreSQL-backed Store implementation, on plain database/sql.
type DB struct {
	conn *sql.DB
}

func NewDB(host, port, user, password, dbname string) (*DB, error) {
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	conn, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	if err := conn.Ping(); err != nil {
		return nil, err
	}

	return &DB{conn: conn}, nil
}

func (db *DB) Close() error {
	return db.conn.Close()
}

// InitSchema creates the tables if they don't exist.
func (db *DB) InitSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS properties (
		id VARCHAR(64) PRIMARY KEY,
		title TEXT,
		area VARCHAR(50),
		type VARCHAR(30),
		listing_category VARCHAR(10) DEFAULT 'Sale',
		price BIGINT,
		size DECIMAL(12, 2),
		unit VARCHAR(10),
		facing VARCHAR(50),
		description TEXT,
		amenities TEXT,
		google_map TEXT,
		youtube TEXT,
		images TEXT,
		img1 TEXT,
		img2 TEXT,
		img3 TEXT,
		img4 TEXT,
		contact_name VARCHAR(100),
		contact_phone VARCHAR(20),
		contact_whatsapp VARCHAR(20),
		featured INTEGER DEFAULT 0,
		created_at TIMESTAMP NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS user_limits (
		mobile VARCHAR(20) PRIMARY KEY,
		max_posts INTEGER DEFAULT 1,
		tier_name VARCHAR(20) DEFAULT 'Free',
		updated_at TIMESTAMP NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS delete_logs (
		id SERIAL PRIMARY KEY,
		property_id VARCHAR(64) NOT NULL,
		title TEXT,
		area VARCHAR(50),
		contact_phone VARCHAR(20),
		posted_at TIMESTAMP,
		deleted_at TIMESTAMP NOT NULL DEFAULT NOW(),
		reason VARCHAR(50) NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_properties_created_at ON properties(created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_properties_area ON properties(area);
	CREATE INDEX IF NOT EXISTS idx_properties_contact_phone ON properties(contact_phone);
	`
	_, err := db.conn.Exec(query)
	return err
}

const selectColumns = `id, title, area, type, listing_category, price, size, unit,
	facing, description, amenities, google_map, youtube, images,
	img1, img2, img3, img4,
	contact_name, contact_phone, contact_whatsapp, featured, created_at`

// pgPhoneExpr matches stored phones by suffix, ignoring spaces, dashes and
// plus signs (legacy rows carry country codes and formatting).
const pgPhoneExpr = `REPLACE(REPLACE(REPLACE(contact_phone, ' ', ''), '-', ''), '+', '')`

// scanPropertyRow scans one result row, tolerating NULLs in every optional
// column.
func scanPropertyRow(row interface{ Scan(...interface{}) error }) (*PropertyRow, error) {
	var p PropertyRow
	var title, area, ptype, category, unit, facing, description sql.NullString
	var amenities, googleMap, youtube, images sql.NullString
	var img1, img2, img3, img4 sql.NullString
	var contactName, contactPhone, contactWhatsapp sql.NullString
	var price sql.NullInt64
	var size sql.NullFloat64
	var featured sql.NullInt64

	err := row.Scan(
		&p.ID, &title, &area, &ptype, &category, &price, &size, &unit,
		&facing, &description, &amenities, &googleMap, &youtube, &images,
		&img1, &img2, &img3, &img4,
		&contactName, &contactPhone, &contactWhatsapp, &featured, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Title = title.String
	p.Area = area.String
	p.Type = ptype.String
	p.ListingCategory = category.String
	p.Price = price.Int64
	p.Size = size.Float64
	p.Unit = unit.String
	p.Facing = facing.String
	p.Description = description.String
	p.Amenities = amenities.String
	p.GoogleMap = googleMap.String
	p.Youtube = youtube.String
	p.Images = images.String
	p.Img1 = img1.String
	p.Img2 = img2.String
	p.Img3 = img3.String
	p.Img4 = img4.String
	p.ContactName = contactName.String
	p.ContactPhone = contactPhone.String
	p.ContactWhatsapp = contactWhatsapp.String
	p.Featured = int(featured.Int64)

	return &p, nil
}

func (db *DB) queryProperties(query string, args ...interface{}) ([]models.Property, error) {
	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	properties := make([]models.Property, 0)
	for rows.Next() {
		row, err := scanPropertyRow(rows)
		if err != nil {
			return nil, err
		}
		properties = append(properties, RowToProperty(row))
	}
	return properties, rows.Err()
}

func (db *DB) InsertProperty(row *PropertyRow) error {
	if row.ID == "" {
		row.ID = uuid.NewString()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now()
	}

	query := `
	INSERT INTO properties (
		id, title, area, type, listing_category, price, size, unit,
		facing, description, amenities, google_map, youtube, images,
		img1, img2, img3, img4,
		contact_name, contact_phone, contact_whatsapp, featured, created_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		$15, $16, $17, $18, $19, $20, $21, $22, $23)
	`
	_, err := db.conn.Exec(query,
		row.ID, row.Title, row.Area, row.Type, row.ListingCategory,
		row.Price, row.Size, row.Unit, row.Facing, row.Description,
		row.Amenities, row.GoogleMap, row.Youtube, row.Images,
		row.Img1, row.Img2, row.Img3, row.Img4,
		row.ContactName, row.ContactPhone, row.ContactWhatsapp,
		row.Featured, row.CreatedAt)
	return err
}

func (db *DB) ActiveProperties(cutoff time.Time) ([]models.Property, error) {
	query := fmt.Sprintf(`SELECT %s FROM properties
		WHERE created_at > $1 ORDER BY created_at DESC`, selectColumns)
	return db.queryProperties(query, cutoff)
}

func (db *DB) ActivePropertiesByArea(area string, cutoff time.Time) ([]models.Property, error) {
	query := fmt.Sprintf(`SELECT %s FROM properties
		WHERE area = $1 AND created_at > $2 ORDER BY created_at DESC`, selectColumns)
	return db.queryProperties(query, area, cutoff)
}

func (db *DB) PropertyByID(id string) (*models.Property, error) {
	query := fmt.Sprintf(`SELECT %s FROM properties WHERE id = $1`, selectColumns)
	row, err := scanPropertyRow(db.conn.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p := RowToProperty(row)
	return &p, nil
}

func (db *DB) PropertiesByOwner(mobile string) ([]models.Property, error) {
	query := fmt.Sprintf(`SELECT %s FROM properties
		WHERE %s LIKE $1 ORDER BY created_at DESC`, selectColumns, pgPhoneExpr)
	return db.queryProperties(query, "%"+mobile)
}

func (db *DB) CountActiveByOwner(mobile string, cutoff time.Time) (int64, error) {
	query := fmt.Sprintf(`SELECT count(*) FROM properties
		WHERE %s LIKE $1 AND created_at > $2`, pgPhoneExpr)
	var count int64
	err := db.conn.QueryRow(query, "%"+mobile, cutoff).Scan(&count)
	return count, err
}

func (db *DB) DeleteProperty(id, ownerMobile string) (bool, error) {
	var result sql.Result
	var err error

	if ownerMobile == "" {
		result, err = db.conn.Exec(`DELETE FROM properties WHERE id = $1`, id)
	} else {
		query := fmt.Sprintf(`DELETE FROM properties WHERE id = $1 AND %s LIKE $2`, pgPhoneExpr)
		result, err = db.conn.Exec(query, id, "%"+ownerMobile)
	}
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (db *DB) CountActive(cutoff time.Time) (int64, error) {
	var count int64
	err := db.conn.QueryRow(
		`SELECT count(*) FROM properties WHERE created_at > $1`, cutoff).Scan(&count)
	return count, err
}

func (db *DB) CountCreatedOn(datePrefix string) (int64, error) {
	var count int64
	err := db.conn.QueryRow(
		`SELECT count(*) FROM properties WHERE created_at::text LIKE $1`,
		datePrefix+"%").Scan(&count)
	return count, err
}

func (db *DB) TopAreas(cutoff time.Time, limit int) ([]models.AreaCount, error) {
	rows, err := db.conn.Query(`
		SELECT area, count(*) as count FROM properties
		WHERE created_at > $1
		GROUP BY area ORDER BY count DESC LIMIT $2`, cutoff, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make([]models.AreaCount, 0)
	for rows.Next() {
		var stat models.AreaCount
		var area sql.NullString
		if err := rows.Scan(&area, &stat.Count); err != nil {
			return nil, err
		}
		stat.Area = area.String
		stats = append(stats, stat)
	}
	return stats, rows.Err()
}

const pgMobileExpr = `REPLACE(REPLACE(REPLACE(mobile, ' ', ''), '-', ''), '+', '')`

func (db *DB) UserLimitByMobile(mobile string) (*models.UserLimit, error) {
	query := fmt.Sprintf(`SELECT mobile, max_posts, tier_name, updated_at
		FROM user_limits WHERE %s LIKE $1`, pgMobileExpr)

	var row UserLimitRow
	err := db.conn.QueryRow(query, "%"+mobile).Scan(
		&row.Mobile, &row.MaxPosts, &row.TierName, &row.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rowToUserLimit(&row), nil
}

func (db *DB) UpsertUserLimit(mobile, tierName string, maxPosts int) error {
	query := fmt.Sprintf(`SELECT mobile FROM user_limits WHERE %s LIKE $1`, pgMobileExpr)

	var existing string
	err := db.conn.QueryRow(query, "%"+mobile).Scan(&existing)
	if err == sql.ErrNoRows {
		_, err = db.conn.Exec(`
			INSERT INTO user_limits (mobile, tier_name, max_posts, updated_at)
			VALUES ($1, $2, $3, NOW())`, mobile, tierName, maxPosts)
		return err
	}
	if err != nil {
		return err
	}

	_, err = db.conn.Exec(`
		UPDATE user_limits SET tier_name = $1, max_posts = $2, updated_at = NOW()
		WHERE mobile = $3`, tierName, maxPosts, existing)
	return err
}
