package database

import "zord/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Post{},
		&models.Hashtag{},
		&models.Like{},
		&models.Comment{},
		&models.Follow{},
		&models.Notification{},
	}
}
