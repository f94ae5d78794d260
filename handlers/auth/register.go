package auth

import (
	"time"

	"github.com/campushire/placement-api/model"
	authutil "github.com/campushire/placement-api/utils/auth"
	"github.com/campushire/placement-api/utils/middleware"
	"github.com/campushire/placement-api/utils/response"
	"github.com/campushire/placement-api/utils/validation"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	db                   *gorm.DB
	jwtManager           *authutil.JWTManager
	blacklistService     *authutil.BlacklistService
	bruteForceProtection *middleware.BruteForceProtection
	validator            *validation.Validator
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(db *gorm.DB, jwtManager *authutil.JWTManager, bruteForceProtection *middleware.BruteForceProtection) *AuthHandler {
	return &AuthHandler{
		db:                   db,
		jwtManager:           jwtManager,
		blacklistService:     authutil.NewBlacklistService(db),
		bruteForceProtection: bruteForceProtection,
		validator:            validation.NewValidator(),
	}
}

// RegisterRequest represents a registration request. Students supply
// their academic details; companies supply the company name.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name" validate:"required,min=2"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=student company"`

	// Student fields
	Branch   string   `json:"branch,omitempty" validate:"omitempty,min=2,max=50"`
	CGPA     float64  `json:"cgpa,omitempty" validate:"omitempty,gte=0,lte=10"`
	Backlogs int      `json:"backlogs,omitempty" validate:"omitempty,gte=0"`
	Skills   []string `json:"skills,omitempty"`
	RollNo   string   `json:"roll_no,omitempty"`

	// Company fields
	CompanyName string `json:"company_name,omitempty" validate:"omitempty,min=2,max=255"`
	Website     string `json:"website,omitempty"`
	Industry    string `json:"industry,omitempty"`
}

// AuthResponse represents a successful register/login response
type AuthResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int          `json:"expires_in"` // in seconds
}

// UserResponse represents user data in responses
type UserResponse struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toUserResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	// Password policy lives in one place, next to the hasher
	if err := authutil.ValidatePassword(req.Password); err != nil {
		return response.BadRequest(c, err.Error())
	}

	if req.Role == "" {
		req.Role = model.RoleStudent
	}

	if req.Role == model.RoleStudent && req.Branch == "" {
		return response.BadRequest(c, "Branch is required for student registration")
	}
	if req.Role == model.RoleCompany && req.CompanyName == "" {
		return response.BadRequest(c, "Company name is required for company registration")
	}

	var existingUser model.User
	if err := h.db.Where("email = ?", req.Email).First(&existingUser).Error; err == nil {
		return response.Conflict(c, "User with this email already exists")
	}

	hashedPassword, err := authutil.HashPassword(req.Password)
	if err != nil {
		return response.InternalServerError(c, "Failed to process password")
	}

	user := model.User{
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Name:         validation.SanitizeString(req.Name),
		Role:         req.Role,
	}

	// Create the user and its role profile together
	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		switch req.Role {
		case model.RoleStudent:
			profile := model.StudentProfile{
				UserID:   user.ID,
				Branch:   validation.SanitizeString(req.Branch),
				CGPA:     req.CGPA,
				Backlogs: req.Backlogs,
				Skills:   req.Skills,
				RollNo:   validation.SanitizeString(req.RollNo),
			}
			return tx.Create(&profile).Error
		case model.RoleCompany:
			company := model.Company{
				UserID:   user.ID,
				Name:     validation.SanitizeString(req.CompanyName),
				Website:  validation.SanitizeString(req.Website),
				Industry: validation.SanitizeString(req.Industry),
				Status:   model.CompanyStatusPending,
			}
			return tx.Create(&company).Error
		}
		return nil
	})
	if err != nil {
		return response.InternalServerError(c, "Failed to create user")
	}

	accessToken, _, err := h.jwtManager.GenerateAccessToken(user.ID, user.Email, user.Role, user.TokenVersion)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate access token")
	}

	refreshToken, _, err := h.jwtManager.GenerateRefreshToken(user.ID, user.Email, user.Role, user.TokenVersion)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate refresh token")
	}

	res := AuthResponse{
		User:         toUserResponse(&user),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(h.jwtManager.AccessTokenTTL().Seconds()),
	}

	return response.Created(c, res)
}
