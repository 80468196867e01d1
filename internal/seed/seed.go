// Package seed loads demo users, tournaments, rewards and games. Every row is
// keyed by a natural key so running it twice creates nothing new.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/gdg-garage/garage-arena-api/internal/accounts"
	"github.com/gdg-garage/garage-arena-api/internal/models"
	"github.com/gosimple/slug"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type seedUser struct {
	Username, Email, Password, FirstName, LastName string
	Role                                           models.Role
	Points                                         int
}

var users = []seedUser{
	{"testuser", "test@example.com", "testpass123", "Test", "User", models.RoleUser, 150},
	{"admin", "admin@example.com", "admin123", "Admin", "User", models.RoleAdmin, 500},
	{"host", "host@example.com", "host123", "Host", "User", models.RoleHost, 300},
}

func tournaments(now time.Time) []models.Tournament {
	day := 24 * time.Hour
	return []models.Tournament{
		{
			Title: "FIFA 24 Championship", Game: "FIFA 24",
			Description: "Compete in the ultimate FIFA 24 tournament for amazing prizes!",
			StartDate:   now.Add(7 * day), EndDate: now.Add(9 * day),
			PrizePool: "$5,000", MaxParticipants: 64, Status: models.TournamentUpcoming,
		},
		{
			Title: "Call of Duty Warzone Battle", Game: "Call of Duty Warzone",
			Description: "Battle royale tournament with top players",
			StartDate:   now.Add(14 * day), EndDate: now.Add(15 * day),
			PrizePool: "$3,000", MaxParticipants: 100, Status: models.TournamentUpcoming,
		},
		{
			Title: "Rocket League Pro Series", Game: "Rocket League",
			Description: "3v3 competitive tournament",
			StartDate:   now.Add(21 * day), EndDate: now.Add(23 * day),
			PrizePool: "$2,500", MaxParticipants: 24, Status: models.TournamentUpcoming,
		},
	}
}

var rewards = []models.Reward{
	{Title: "Gaming Headset", Description: "Premium wireless gaming headset with 7.1 surround sound", Points: 500, Category: "Gaming Gear", Stock: 10, IsActive: true},
	{Title: "Mechanical Keyboard", Description: "RGB mechanical gaming keyboard with custom switches", Points: 750, Category: "Gaming Gear", Stock: 5, IsActive: true},
	{Title: "Gaming Mouse", Description: "High-precision gaming mouse with customizable DPI", Points: 300, Category: "Gaming Gear", Stock: 15, IsActive: true},
	{Title: "$50 Steam Gift Card", Description: "Redeem on Steam for games and content", Points: 400, Category: "Gift Cards", Stock: 20, IsActive: true},
	{Title: "Tournament Entry Pass", Description: "Free entry to any premium tournament", Points: 200, Category: "Tournament", Stock: 50, IsActive: true},
}

var games = []models.Game{
	{Title: "Battle Arena Legends", Developer: "GameDev Studios", Genre: "MOBA", Description: "A fast-paced multiplayer online battle arena game", Status: models.GameTesting},
	{Title: "Space Odyssey", Developer: "Indie Games Co", Genre: "Adventure", Description: "Explore the vastness of space in this epic adventure", Status: models.GamePending},
	{Title: "Racing Thunder", Developer: "Speed Games", Genre: "Racing", Description: "High-octane racing with realistic physics", Status: models.GameApproved},
}

// Run seeds the database in one transaction. Profiles are written directly,
// without ledger activity.
func Run(ctx context.Context, db *gorm.DB, logger *zap.Logger) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids := make(map[string]uint, len(users))
		for _, u := range users {
			id, created, err := seedAccount(tx, u)
			if err != nil {
				return err
			}
			ids[u.Username] = id
			if created {
				logger.Info("seeded user", zap.String("username", u.Username), zap.String("role", string(u.Role)))
			}
		}

		for _, t := range tournaments(time.Now()) {
			t.Slug = slug.Make(t.Title)
			t.CreatedByID = ids["host"]
			created, err := createMissing(tx, &t, "title = ?", t.Title)
			if err != nil {
				return fmt.Errorf("seed tournament %q: %w", t.Title, err)
			}
			if created {
				logger.Info("seeded tournament", zap.String("title", t.Title))
			}
		}

		for _, r := range rewards {
			created, err := createMissing(tx, &r, "title = ?", r.Title)
			if err != nil {
				return fmt.Errorf("seed reward %q: %w", r.Title, err)
			}
			if created {
				logger.Info("seeded reward", zap.String("title", r.Title))
			}
		}

		for _, g := range games {
			g.SubmittedByID = ids["testuser"]
			created, err := createMissing(tx, &g, "title = ?", g.Title)
			if err != nil {
				return fmt.Errorf("seed game %q: %w", g.Title, err)
			}
			if created {
				logger.Info("seeded game", zap.String("title", g.Title))
			}
		}
		return nil
	})
}

func seedAccount(tx *gorm.DB, u seedUser) (uint, bool, error) {
	var existing models.User
	res := tx.Where("username = ?", u.Username).Limit(1).Find(&existing)
	if res.Error != nil {
		return 0, false, fmt.Errorf("seed user %q: %w", u.Username, res.Error)
	}
	if res.RowsAffected > 0 {
		return existing.ID, false, nil
	}

	hash, err := accounts.HashPassword(u.Password)
	if err != nil {
		return 0, false, err
	}
	user := models.User{
		Username:     u.Username,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		PasswordHash: hash,
		Profile:      models.Profile{Role: u.Role, Points: u.Points},
	}
	if err := tx.Create(&user).Error; err != nil {
		return 0, false, fmt.Errorf("seed user %q: %w", u.Username, err)
	}
	return user.ID, true, nil
}

// createMissing inserts row unless a row of the same type matches the query.
func createMissing[T any](tx *gorm.DB, row *T, query string, args ...any) (bool, error) {
	var n int64
	if err := tx.Model(new(T)).Where(query, args...).Count(&n).Error; err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	if err := tx.Omit(clause.Associations).Create(row).Error; err != nil {
		return false, err
	}
	return true, nil
}
