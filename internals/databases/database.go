package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"hadirku_backend/internals/configs"
	attendanceModel "hadirku_backend/internals/features/attendance/sessions/model"
	companyModel "hadirku_backend/internals/features/company/model"
	userModel "hadirku_backend/internals/features/users/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("🔌 Koneksi ke PostgreSQL...")

	sslmode := getenv("DB_SSLMODE", "require")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=hadirku&options=-c statement_timeout=3000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // 👍 cocok untuk PgBouncer (transaction pooling)
	}), &gorm.Config{
		Logger: configs.NewGormLogger(),
	})
	if err != nil {
		log.Fatalf("❌ Gagal konek DB: %v", err)
	}
	DB = db
	log.Println("✅ DB connected.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// Migrate menjalankan automigrate + index yang tidak bisa dinyatakan lewat
// tag GORM. Partial unique index di bawah adalah penjaga invariant
// "maksimal satu sesi open per worker": insert kedua untuk worker yang sama
// akan kena unique violation, bukan lolos karena check-then-insert.
func Migrate() {
	if err := DB.AutoMigrate(
		&companyModel.CompanyModel{},
		&companyModel.SiteModel{},
		&companyModel.SiteAssignmentModel{},
		&userModel.WorkerModel{},
		&attendanceModel.AttendanceSessionModel{},
		&attendanceModel.GeofenceEventModel{},
	); err != nil {
		log.Fatalf("❌ Gagal migrate: %v", err)
	}

	if err := DB.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS uq_attendance_sessions_one_open_per_worker
		ON attendance_sessions (attendance_session_worker_id)
		WHERE attendance_session_is_open
	`).Error; err != nil {
		log.Fatalf("❌ Gagal membuat partial unique index: %v", err)
	}

	// unik hanya untuk assignment yang masih hidup; unassign lalu assign
	// ulang worker yang sama harus tetap bisa
	if err := DB.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS uq_site_assignments_worker_site_alive
		ON site_assignments (site_assignment_worker_id, site_assignment_site_id)
		WHERE site_assignment_deleted_at IS NULL
	`).Error; err != nil {
		log.Fatalf("❌ Gagal membuat unique index assignment: %v", err)
	}

	log.Println("✅ Migrasi selesai.")
}

func WarmUpQueries() {
	// jalankan ringan supaya koneksi/pool "keisi" & siap
	go func() {
		time.Sleep(500 * time.Millisecond)
		if err := ping(); err != nil {
			log.Printf("warm-up ping err: %v", err)
		}
	}()
}

func ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
