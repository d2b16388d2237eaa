package database

// Migration bookkeeping
const (
	createMigrationsTableSQL = `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			id SERIAL PRIMARY KEY,
			migration_name VARCHAR(255) NOT NULL UNIQUE,
			applied_at TIMESTAMPTZ DEFAULT NOW()
		)`

	selectMigrationsSQL = `SELECT migration_name FROM schema_migrations`

	recordMigrationSQL = `INSERT INTO schema_migrations (migration_name) VALUES ($1)`
)

// Catalog queries
const (
	GetCategoriesSQL = `
		SELECT id, name, icon, order_index
		FROM categories
		ORDER BY order_index ASC, id ASC`

	GetAvailableMenuItemsSQL = `
		SELECT id, category_id, name, description, ingredients, image_url,
			   price, protein_types, is_available
		FROM menu_items
		WHERE is_available = TRUE
		ORDER BY created_at ASC, id ASC`

	GetItemOptionsSQL = `
		SELECT o.id, o.item_id, o.type, o.name, o.price
		FROM item_options o
		JOIN menu_items m ON m.id = o.item_id
		WHERE m.is_available = TRUE
		ORDER BY o.item_id, o.sort_order ASC, o.id ASC`

	SetItemAvailabilitySQL = `
		UPDATE menu_items SET is_available = $1
		WHERE id = $2`
)

// Order queries
const (
	InsertOrderSQL = `
		INSERT INTO orders (id, order_type, customer_name, customer_phone, customer_notes,
			customer_location, branch, subtotal, delivery_fee, total, tier_id, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	InsertOrderLineSQL = `
		INSERT INTO order_lines (order_id, position, cart_key, item_id, name, image_url, ingredients,
			protein, size_id, size_name, size_price, extras, notes, quantity, unit_price, total_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	ListOrdersSQL = `
		SELECT id::text, order_type, customer_name, customer_phone, customer_notes, customer_location,
			   branch, subtotal, delivery_fee, total, tier_id, submitted_at
		FROM orders
		ORDER BY submitted_at DESC, seq DESC
		LIMIT $1`

	ListOrderLinesSQL = `
		SELECT order_id::text, cart_key, item_id, name, image_url, ingredients, protein,
			   size_id, size_name, size_price, extras, notes, quantity, unit_price, total_price
		FROM order_lines
		WHERE order_id = ANY($1::text[]::uuid[])
		ORDER BY order_id, position ASC`
)

// Review queries
const (
	InsertReviewSQL = `
		INSERT INTO reviews (id, item_id, author, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	ListItemReviewsSQL = `
		SELECT id::text, item_id, author, rating, comment, created_at
		FROM reviews
		WHERE item_id = $1
		ORDER BY created_at DESC`
)
