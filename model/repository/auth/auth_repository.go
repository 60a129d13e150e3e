package auth

import (
	"gorm.io/gorm"

	entity "conputodo.GO/model/entity"
)

type AuthRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) *AuthRepository {
	return &AuthRepository{db: db}
}

// FindActiveToken returns a non-revoked token by its token string.
func (r *AuthRepository) FindActiveToken(token string) (*entity.ApiToken, error) {
	var t entity.ApiToken
	err := r.db.Where("token = ? AND revoked = 0", token).First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FindUserByID returns an active back-office user.
func (r *AuthRepository) FindUserByID(userID uint) (*entity.AdminUser, error) {
	var u entity.AdminUser
	err := r.db.Where("user_id = ? AND is_active = 1", userID).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// FindUserByEmail returns an active back-office user by email. The email
// doubles as the external identity key.
func (r *AuthRepository) FindUserByEmail(email string) (*entity.AdminUser, error) {
	var u entity.AdminUser
	err := r.db.Where("email = ? AND is_active = 1", email).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// RoleForToken resolves a token string to the owning user's role.
func (r *AuthRepository) RoleForToken(token string) (string, error) {
	t, err := r.FindActiveToken(token)
	if err != nil {
		return "", err
	}
	u, err := r.FindUserByID(t.UserID)
	if err != nil {
		return "", err
	}
	return u.Role, nil
}
