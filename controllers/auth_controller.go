// File: /controllers/auth_controller.go
package controllers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"perfectspot-api/models"
	"perfectspot-api/services"
	"perfectspot-api/utils"
)

type AuthController struct {
	db           *gorm.DB
	jwtSecret    string
	emailService *services.EmailService
}

func NewAuthController(db *gorm.DB, jwtSecret string, emailService *services.EmailService) *AuthController {
	return &AuthController{
		db:           db,
		jwtSecret:    jwtSecret,
		emailService: emailService,
	}
}

type SignupRequest struct {
	Username         string          `json:"username" binding:"required,max=150"`
	Email            string          `json:"email" binding:"required,email"`
	Password         string          `json:"password" binding:"required,min=6"`
	UserType         models.UserType `json:"user_type"`
	OrganizationName *string         `json:"organization_name"`
}

type SigninRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (ac *AuthController) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Registration failed.", err.Error())
		return
	}

	if req.UserType == "" {
		req.UserType = models.UserTypeIndividual
	}
	if req.UserType != models.UserTypeIndividual && req.UserType != models.UserTypeOrganization {
		utils.SendValidationError(c, "Registration failed.", "user_type must be 'individual' or 'organization'")
		return
	}

	var existingUser models.User
	if err := ac.db.Where("username = ?", req.Username).First(&existingUser).Error; err == nil {
		utils.SendError(c, http.StatusConflict, "Username already taken.")
		return
	}
	if err := ac.db.Where("email = ?", req.Email).First(&existingUser).Error; err == nil {
		utils.SendError(c, http.StatusConflict, "Email already registered.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to hash password.")
		return
	}

	user := models.User{
		ID:               uuid.New().String(),
		Username:         req.Username,
		Email:            req.Email,
		Password:         string(hashedPassword),
		UserType:         req.UserType,
		OrganizationName: req.OrganizationName,
	}

	if err := ac.db.Create(&user).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to create user.")
		return
	}

	token, err := ac.generateJWT(user.ID, user.Email)
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to generate token.")
		return
	}

	utils.SendCreated(c, "User registered successfully.", gin.H{
		"token":    token,
		"userID":   user.ID,
		"email":    user.Email,
		"username": user.Username,
	})
}

func (ac *AuthController) Signin(c *gin.Context) {
	var req SigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Login failed.", err.Error())
		return
	}

	var user models.User
	if err := ac.db.Where("username = ?", req.Username).First(&user).Error; err != nil {
		utils.SendError(c, http.StatusUnauthorized, "Invalid credentials.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		utils.SendError(c, http.StatusUnauthorized, "Invalid credentials.")
		return
	}

	token, err := ac.generateJWT(user.ID, user.Email)
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to generate token.")
		return
	}

	utils.SendSuccess(c, "Logged in successfully.", gin.H{
		"token":    token,
		"userID":   user.ID,
		"username": user.Username,
	})
}

type GoogleSigninRequest struct {
	IDToken string `json:"id_token" binding:"required"`
}

type googleUserInfo struct {
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
	Name          string `json:"name"`
}

// GoogleSignin exchanges a Google ID token for a session token, creating the
// user on first sign-in.
func (ac *AuthController) GoogleSignin(c *gin.Context) {
	var req GoogleSigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Login failed.", err.Error())
		return
	}

	userInfo, err := ac.verifyGoogleToken(req.IDToken)
	if err != nil {
		utils.SendError(c, http.StatusUnauthorized, "Invalid Google token.")
		return
	}

	user, isNewUser, err := ac.findOrCreateGoogleUser(userInfo)
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to process user.")
		return
	}

	token, err := ac.generateJWT(user.ID, user.Email)
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to generate token.")
		return
	}

	utils.SendSuccess(c, "Logged in successfully.", gin.H{
		"token":       token,
		"userID":      user.ID,
		"username":    user.Username,
		"is_new_user": isNewUser,
	})
}

func (ac *AuthController) verifyGoogleToken(idToken string) (*googleUserInfo, error) {
	resp, err := http.Get("https://www.googleapis.com/oauth2/v3/tokeninfo?id_token=" + idToken)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("invalid token")
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var userInfo googleUserInfo
	if err := json.Unmarshal(body, &userInfo); err != nil {
		return nil, err
	}

	return &userInfo, nil
}

func (ac *AuthController) findOrCreateGoogleUser(info *googleUserInfo) (models.User, bool, error) {
	var user models.User

	err := ac.db.Where("email = ?", info.Email).First(&user).Error
	if err == nil {
		return user, false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return user, false, err
	}

	user = models.User{
		ID:              uuid.New().String(),
		Username:        ac.generateUniqueUsername(info.Email),
		Email:           info.Email,
		Password:        uuid.New().String(), // random, social accounts never sign in with it
		UserType:        models.UserTypeIndividual,
		IsEmailVerified: true, // Google accounts arrive verified
	}

	if err := ac.db.Create(&user).Error; err != nil {
		return user, false, err
	}

	return user, true, nil
}

func (ac *AuthController) generateUniqueUsername(email string) string {
	base := strings.Split(email, "@")[0]
	base = strings.ToLower(strings.ReplaceAll(base, ".", "_"))
	username := base
	counter := 1

	for {
		var existingUser models.User
		if err := ac.db.Where("username = ?", username).First(&existingUser).Error; err != nil {
			break
		}
		username = fmt.Sprintf("%s_%d", base, counter)
		counter++
	}

	return username
}

type VerificationRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func (ac *AuthController) SendVerification(c *gin.Context) {
	var req VerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request.", err.Error())
		return
	}

	var user models.User
	if err := ac.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "User not found.")
		return
	}

	if user.IsEmailVerified {
		utils.SendError(c, http.StatusBadRequest, "Email already verified.")
		return
	}

	if _, err := ac.emailService.SendVerificationEmail(user.Email, user.Username); err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to send verification email.")
		return
	}

	utils.SendSuccess(c, "Verification code sent to your email.", nil)
}

type VerifyCodeRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required"`
}

func (ac *AuthController) VerifyCode(c *gin.Context) {
	var req VerifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request.", err.Error())
		return
	}

	var user models.User
	if err := ac.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "User not found.")
		return
	}

	if user.IsEmailVerified {
		utils.SendError(c, http.StatusBadRequest, "Email already verified.")
		return
	}

	if !ac.emailService.VerifyCode(req.Email, req.Code) {
		utils.SendError(c, http.StatusBadRequest, "Invalid or expired verification code.")
		return
	}

	if err := ac.db.Model(&user).Update("is_email_verified", true).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to verify email.")
		return
	}

	utils.SendSuccess(c, "Email verified successfully.", nil)
}

func (ac *AuthController) generateJWT(userID, email string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"exp":     time.Now().Add(time.Hour * 24 * 7).Unix(), // 7 days
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(ac.jwtSecret))
}
