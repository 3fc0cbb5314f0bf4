package ledgerService

import (
	"fmt"

	"cardTableBot/models"
	"cardTableBot/services/common"

	"gorm.io/gorm"
)

// DefaultStartingBalance seeds a freshly registered user when the guild has
// no configured amount.
const DefaultStartingBalance = 100

// EnsureUser is the idempotent registration step: it finds or creates the
// ledger row for the (user, guild) pair, seeding the starting balance on
// creation. The second return reports whether the row was created.
func EnsureUser(db *gorm.DB, guildID, discordID, username string, startingBalance int) (*models.User, bool, error) {
	var user models.User
	result := db.FirstOrCreate(&user, models.User{DiscordID: discordID, GuildID: guildID})
	if result.Error != nil {
		return nil, false, fmt.Errorf("error fetching or creating user: %v", result.Error)
	}

	created := result.RowsAffected == 1
	if created {
		user.Balance = startingBalance
		if err := db.Save(&user).Error; err != nil {
			return nil, false, fmt.Errorf("error seeding starting balance: %v", err)
		}
	}

	common.UpdateUserUsername(db, &user, username)
	return &user, created, nil
}

// GetBalance returns the user's current balance, registering them first if
// needed.
func GetBalance(db *gorm.DB, guildID, discordID, username string, startingBalance int) (int, error) {
	user, _, err := EnsureUser(db, guildID, discordID, username, startingBalance)
	if err != nil {
		return 0, err
	}
	return user.Balance, nil
}

// SetBalance writes an absolute balance, clamped at zero, and returns the
// stored value.
func SetBalance(db *gorm.DB, guildID, discordID, username string, startingBalance int, value int) (int, error) {
	user, _, err := EnsureUser(db, guildID, discordID, username, startingBalance)
	if err != nil {
		return 0, err
	}

	if value < 0 {
		value = 0
	}
	user.Balance = value
	if err := db.Save(user).Error; err != nil {
		return 0, fmt.Errorf("error updating balance: %v", err)
	}
	return value, nil
}

// AddBalance applies a delta on top of the current balance. The result is
// clamped at zero like SetBalance, so a loss can never drive a ledger row
// negative.
func AddBalance(db *gorm.DB, guildID, discordID, username string, startingBalance int, delta int) (int, error) {
	user, _, err := EnsureUser(db, guildID, discordID, username, startingBalance)
	if err != nil {
		return 0, err
	}

	value := user.Balance + delta
	if value < 0 {
		value = 0
	}
	user.Balance = value
	if err := db.Save(user).Error; err != nil {
		return 0, fmt.Errorf("error updating balance: %v", err)
	}
	return value, nil
}
