package db

import "database/sql"

// EnsureSchema creates every table the application needs. All statements are
// idempotent so the bootstrap can run on every start.
func EnsureSchema(db *sql.DB) error {
	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			return err
		}
	}
	return nil
}

var schemaDDL = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		username VARCHAR(50) NOT NULL,
		email VARCHAR(100) NOT NULL,
		phone VARCHAR(20) NOT NULL DEFAULT '',
		password_hash VARCHAR(255) NOT NULL,
		role ENUM('Administrator','Driver','Passenger') NOT NULL DEFAULT 'Passenger',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uniq_username (username),
		UNIQUE KEY uniq_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS accounts (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT NOT NULL,
		status ENUM('Active','Disabled','Deleted') NOT NULL DEFAULT 'Active',
		last_login DATETIME NULL,
		password_changed_at DATETIME NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uniq_account_user (user_id),
		CONSTRAINT fk_accounts_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS vehicles (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		plate_number VARCHAR(20) NOT NULL,
		vehicle_type ENUM('Bus','Minibus','Van','Car') NOT NULL DEFAULT 'Bus',
		brand VARCHAR(50) NOT NULL DEFAULT '',
		model VARCHAR(50) NOT NULL DEFAULT '',
		year INT NOT NULL DEFAULT 0,
		capacity INT NOT NULL DEFAULT 0,
		color VARCHAR(20) NOT NULL DEFAULT '',
		average_rating DECIMAL(3,2) NOT NULL DEFAULT 0.00,
		status ENUM('Available','In Use','Maintenance','Retired') NOT NULL DEFAULT 'Available',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uniq_plate (plate_number)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS drivers (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT NOT NULL,
		vehicle_id BIGINT NULL,
		license_number VARCHAR(50) NOT NULL,
		license_type VARCHAR(20) NOT NULL DEFAULT '',
		license_expiry DATE NULL,
		average_rating DECIMAL(3,2) NOT NULL DEFAULT 0.00,
		total_trips INT NOT NULL DEFAULT 0,
		status ENUM('Available','On Trip','Off Duty','Suspended') NOT NULL DEFAULT 'Available',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uniq_driver_user (user_id),
		UNIQUE KEY uniq_license (license_number),
		CONSTRAINT fk_drivers_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
		CONSTRAINT fk_drivers_vehicle FOREIGN KEY (vehicle_id) REFERENCES vehicles(id) ON DELETE SET NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS trips (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		driver_id BIGINT NULL,
		vehicle_id BIGINT NULL,
		trip_name VARCHAR(100) NOT NULL,
		start_location VARCHAR(255) NOT NULL,
		end_location VARCHAR(255) NOT NULL,
		departure_time DATETIME NOT NULL,
		arrival_time DATETIME NOT NULL,
		price_cents BIGINT NOT NULL DEFAULT 0,
		available_seats INT NOT NULL DEFAULT 0,
		status ENUM('Upcoming','Ongoing','Completed','Cancelled') NOT NULL DEFAULT 'Upcoming',
		cancelled_by VARCHAR(20) NULL,
		cancellation_reason TEXT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		KEY idx_trips_status (status),
		KEY idx_trips_departure (departure_time),
		CONSTRAINT fk_trips_driver FOREIGN KEY (driver_id) REFERENCES drivers(id) ON DELETE SET NULL,
		CONSTRAINT fk_trips_vehicle FOREIGN KEY (vehicle_id) REFERENCES vehicles(id) ON DELETE SET NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	// active_user_id is NULL unless the booking is Confirmed, so the unique
	// key enforces at most one Confirmed booking per (trip, user) while
	// allowing any number of cancelled or completed ones.
	`CREATE TABLE IF NOT EXISTS trip_bookings (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		trip_id BIGINT NOT NULL,
		user_id BIGINT NOT NULL,
		seats_booked INT NOT NULL DEFAULT 1,
		total_price_cents BIGINT NOT NULL DEFAULT 0,
		status ENUM('Confirmed','Cancelled','Completed') NOT NULL DEFAULT 'Confirmed',
		booking_date TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		active_user_id BIGINT AS (IF(status = 'Confirmed', user_id, NULL)) STORED,
		UNIQUE KEY uniq_trip_active_user (trip_id, active_user_id),
		KEY idx_bookings_user (user_id),
		CONSTRAINT fk_bookings_trip FOREIGN KEY (trip_id) REFERENCES trips(id) ON DELETE CASCADE,
		CONSTRAINT fk_bookings_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS ratings (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		trip_id BIGINT NOT NULL,
		user_id BIGINT NOT NULL,
		driver_id BIGINT NULL,
		vehicle_id BIGINT NULL,
		driver_rating INT NULL,
		vehicle_rating INT NULL,
		driver_comment TEXT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uniq_rating_trip_user (trip_id, user_id),
		KEY idx_ratings_driver (driver_id),
		KEY idx_ratings_vehicle (vehicle_id),
		CONSTRAINT fk_ratings_trip FOREIGN KEY (trip_id) REFERENCES trips(id) ON DELETE CASCADE,
		CONSTRAINT fk_ratings_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
		CONSTRAINT fk_ratings_driver FOREIGN KEY (driver_id) REFERENCES drivers(id) ON DELETE CASCADE,
		CONSTRAINT fk_ratings_vehicle FOREIGN KEY (vehicle_id) REFERENCES vehicles(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS admin_logs (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		admin_id BIGINT NOT NULL,
		action_type VARCHAR(50) NOT NULL,
		entity_type VARCHAR(50) NOT NULL,
		entity_id BIGINT NOT NULL DEFAULT 0,
		description TEXT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		KEY idx_admin_logs_admin (admin_id),
		CONSTRAINT fk_admin_logs_admin FOREIGN KEY (admin_id) REFERENCES users(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
}
