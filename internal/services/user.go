package services

import (
	"context"
	"errors"
	"strings"

	"stackit/internal/models"
	"stackit/internal/utils"
	"stackit/internal/voting"

	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("email or username already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUsernameTaken      = errors.New("username already taken")
)

// Profile is a user with the counts shown on their public page.
type Profile struct {
	User          models.User
	QuestionCount int64
	AnswerCount   int64
	AcceptedCount int64
	LevelName     string
	LevelIcon     string
}

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Register creates a user with a bcrypt password hash and zero reputation.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username: strings.TrimSpace(username),
		Email:    strings.ToLower(strings.TrimSpace(email)),
		Password: hash,
		Avatar:   utils.GetRandomEmoji(),
	}

	var existing int64
	err = s.db.WithContext(ctx).Model(&models.User{}).
		Where("email = ? OR username = ?", user.Email, user.Username).
		Count(&existing).Error
	if err != nil {
		return nil, storeErr(err)
	}
	if existing > 0 {
		return nil, ErrEmailTaken
	}

	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, storeErr(err)
	}
	return &user, nil
}

func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, storeErr(err)
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, storeErr(err)
	}
	return &user, nil
}

// UpdateProfile changes username, avatar and bio. Empty values are left
// alone. Owners and admins only.
func (s *UserService) UpdateProfile(ctx context.Context, id uint, requester *models.User, username, avatar, bio string) (*models.User, error) {
	if requester.ID != id && !requester.IsAdmin() {
		return nil, voting.ErrPermission
	}
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if name := strings.TrimSpace(username); name != "" && name != user.Username {
		var taken int64
		err := s.db.WithContext(ctx).Model(&models.User{}).
			Where("username = ? AND id <> ?", name, id).
			Count(&taken).Error
		if err != nil {
			return nil, storeErr(err)
		}
		if taken > 0 {
			return nil, ErrUsernameTaken
		}
		updates["username"] = name
	}
	if avatar = strings.TrimSpace(avatar); avatar != "" {
		updates["avatar"] = avatar
	}
	if bio = strings.TrimSpace(bio); bio != "" {
		updates["bio"] = bio
	}
	if len(updates) == 0 {
		return user, nil
	}

	if err := s.db.WithContext(ctx).Model(user).Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		return nil, storeErr(err)
	}
	return s.Get(ctx, id)
}

func (s *UserService) Profile(ctx context.Context, id uint) (*Profile, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	p := &Profile{User: *user}
	p.LevelName, p.LevelIcon = utils.GetUserLevel(user.Reputation)

	db := s.db.WithContext(ctx)
	if err := db.Model(&models.Question{}).Where("user_id = ? AND is_active = ?", id, true).Count(&p.QuestionCount).Error; err != nil {
		return nil, storeErr(err)
	}
	if err := db.Model(&models.Answer{}).Where("user_id = ? AND is_active = ?", id, true).Count(&p.AnswerCount).Error; err != nil {
		return nil, storeErr(err)
	}
	if err := db.Model(&models.Answer{}).Where("user_id = ? AND is_active = ? AND is_accepted = ?", id, true, true).Count(&p.AcceptedCount).Error; err != nil {
		return nil, storeErr(err)
	}
	return p, nil
}
