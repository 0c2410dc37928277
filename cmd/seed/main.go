package main

import (
	"context"
	"log"

	"golang.org/x/crypto/bcrypt"

	"evorgs/internal/config"
	"evorgs/internal/database"
	"evorgs/internal/database/migrate"
	"evorgs/internal/domain/ads"
	"evorgs/internal/domain/auth"
	"evorgs/internal/domain/catalog"
)

// seed migrates the schema and loads a small demo dataset for local
// development. Safe to re-run: inserts are skipped when the admin
// account already exists.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DB.DSN)
	if err != nil {
		log.Fatal(err)
	}

	if err := migrate.Run(db); err != nil {
		log.Fatal(err)
	}
	log.Println("schema migrated")

	ctx := context.Background()
	repo := auth.NewRepository(db)

	if _, err := repo.GetAdminByEmail(ctx, "admin@evorgs.local"); err == nil {
		log.Println("demo data already present, skipping")
		return
	}

	hash := func(pw string) string {
		h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal(err)
		}
		return string(h)
	}

	admin := &auth.Admin{Name: "Admin", Email: "admin@evorgs.local", PasswordHash: hash("admin123")}
	if err := db.WithContext(ctx).Create(admin).Error; err != nil {
		log.Fatal(err)
	}

	user := &auth.User{Name: "Demo User", Email: "user@evorgs.local", Phone: "+10000000001", PasswordHash: hash("user123")}
	if err := repo.CreateUser(ctx, user); err != nil {
		log.Fatal(err)
	}

	vendor := &auth.Vendor{
		BusinessName: "Sunset Farmhouse",
		Email:        "vendor@evorgs.local",
		Phone:        "+10000000002",
		PasswordHash: hash("vendor123"),
		Type:         auth.VendorFarmhouse,
		Status:       auth.VendorApproved,
	}
	if err := repo.CreateVendor(ctx, vendor); err != nil {
		log.Fatal(err)
	}

	listing := &catalog.Listing{
		VendorID:    vendor.ID,
		Title:       "Sunset Farmhouse full day",
		Description: "Open-air farmhouse for events up to 200 guests.",
		Type:        string(auth.VendorFarmhouse),
		City:        "Karachi",
		Price:       1200,
		PriceUnit:   catalog.PerEvent,
		Capacity:    200,
		Status:      catalog.ListingApproved,
		Active:      true,
	}
	if err := db.WithContext(ctx).Create(listing).Error; err != nil {
		log.Fatal(err)
	}

	ad := &ads.Ad{
		VendorID:    vendor.ID,
		Title:       "Sunset Farmhouse promo",
		EntityType:  ads.EntityService,
		ListingID:   &listing.ID,
		PricePerDay: 25,
		Status:      ads.StatusActive,
	}
	if err := db.WithContext(ctx).Create(ad).Error; err != nil {
		log.Fatal(err)
	}

	slot := &ads.TimeSlot{
		AdID:      ad.ID,
		StartTime: "09:00",
		EndTime:   "12:00",
		Weekdays:  []int{1, 2, 3, 4, 5},
		Priority:  3,
		Active:    true,
	}
	if err := db.WithContext(ctx).Create(slot).Error; err != nil {
		log.Fatal(err)
	}

	log.Println("demo data loaded")
}
