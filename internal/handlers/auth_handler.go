package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/growcally/backend/internal/middleware"
	"github.com/growcally/backend/internal/models"
	"github.com/growcally/backend/internal/repositories"
	"github.com/growcally/backend/internal/services"
	"github.com/growcally/backend/pkg/cognito"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// AuthHandler handles registration, confirmation, login and profile requests
type AuthHandler struct {
	userRepository repositories.UserRepository
	postRepository repositories.PostRepository
	provider       cognito.Provider
	userAssembler  *services.UserAssembler
	feedAssembler  *services.FeedAssembler
	profileService *services.ProfileService
	cookieDomain   string
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(
	userRepo repositories.UserRepository,
	postRepo repositories.PostRepository,
	provider cognito.Provider,
	userAssembler *services.UserAssembler,
	feedAssembler *services.FeedAssembler,
	profileService *services.ProfileService,
	cookieDomain string,
) *AuthHandler {
	return &AuthHandler{
		userRepository: userRepo,
		postRepository: postRepo,
		provider:       provider,
		userAssembler:  userAssembler,
		feedAssembler:  feedAssembler,
		profileService: profileService,
		cookieDomain:   cookieDomain,
	}
}

// RegisterPublicRoutes registers the unguarded authentication routes
func (h *AuthHandler) RegisterPublicRoutes(g *echo.Group) {
	g.POST("/auth/signup", h.SignUp)
	g.POST("/auth/verify", h.Verify)
	g.POST("/auth/resend-code", h.ResendCode)
	g.POST("/auth/login", h.Login)
}

// RegisterGuardedRoutes registers the authentication routes behind the
// session guard
func (h *AuthHandler) RegisterGuardedRoutes(g *echo.Group) {
	g.POST("/auth/logout", h.Logout)
	g.GET("/auth/:userId", h.FetchUserDetail)
	g.PUT("/auth/profile", h.UpdateProfile)
}

// SignUp registers the user with the identity provider and creates the user
// row and its account atomically, in UNCONFIRMED status
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req models.SignUpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if _, err := h.userRepository.GetUserByEmail(req.Email); err == nil {
		return echo.NewHTTPError(http.StatusConflict,
			"You are already registered. Please login via login page.")
	}

	sub, err := h.provider.Register(c.Request().Context(), cognito.RegisterParams{
		Name:       req.FirstName + " " + req.Surname,
		GivenName:  req.FirstName,
		FamilyName: req.Surname,
		Email:      strings.ToLower(req.Email),
		Password:   req.Password,
	})
	if err != nil {
		log.Printf("[Auth] SignUp Error: %v\n", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Signup failed. Please try again.")
	}

	user := &models.User{
		Sub:        sub,
		Email:      req.Email,
		GivenName:  req.FirstName,
		FamilyName: req.Surname,
		Status:     models.UserStatusUnconfirmed,
	}
	if err := h.userRepository.CreateUserWithAccount(user); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"message": "User successfully created"})
}

// Verify confirms a registration with the emailed code; the status transition
// to CONFIRMED happens exactly once
func (h *AuthHandler) Verify(c echo.Context) error {
	var req models.VerifyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusBadRequest,
				"You are not yet registered. Please sign up first.")
		}
		return respondError(c, err)
	}
	if user.Status == models.UserStatusConfirmed {
		return echo.NewHTTPError(http.StatusConflict,
			"Your email is already confirmed. Please log in via login page.")
	}

	if err := h.provider.ConfirmSignUp(c.Request().Context(), req.Email, req.VerificationCode); err != nil {
		log.Printf("[Auth] Verification Error: %v\n", err)
		return echo.NewHTTPError(http.StatusBadRequest,
			"Code you provided is invalid. Please try again.")
	}

	if err := h.userRepository.SetStatus(user.ID, models.UserStatusConfirmed); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Email successfully verified"})
}

// ResendCode resends the confirmation code email
func (h *AuthHandler) ResendCode(c echo.Context) error {
	var req models.ResendCodeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.provider.ResendConfirmationCode(c.Request().Context(), req.Email); err != nil {
		log.Printf("[Auth] Resend Code Error: %v\n", err)
		return echo.NewHTTPError(http.StatusInternalServerError,
			"Sorry! There has been an internal error.")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Verification code successfully sent"})
}

// Login authenticates against the identity provider, stores the issued
// refresh secret and sets the access credential cookie
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusBadRequest,
				"You are not yet registered. Please sign up first.")
		}
		return respondError(c, err)
	}
	if user.Status == models.UserStatusUnconfirmed {
		if err := h.provider.ResendConfirmationCode(c.Request().Context(), req.Email); err != nil {
			log.Printf("[Auth] Resend Code Error: %v\n", err)
		}
		return echo.NewHTTPError(http.StatusBadRequest,
			"We sent you a verification code. Please verify your email.")
	}

	result, err := h.provider.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		log.Printf("[Auth] Login Error: %v\n", err)
		return echo.NewHTTPError(http.StatusUnauthorized,
			"Login failed. Please check your username and password.")
	}

	if err := h.userRepository.SetRefreshToken(user.ID, &result.RefreshToken); err != nil {
		return respondError(c, err)
	}

	c.SetCookie(middleware.NewAccessTokenCookie(result.AccessToken, h.cookieDomain))

	updatedUser, err := h.userAssembler.AssembleUserByID(c.Request().Context(), user.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"updatedUser": updatedUser})
}

// Logout clears the stored refresh secret and the access credential cookie
func (h *AuthHandler) Logout(c echo.Context) error {
	userID := c.QueryParam("userId")
	if userID == "" {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}

	if err := h.userRepository.SetRefreshToken(userID, nil); err != nil {
		return respondError(c, err)
	}
	c.SetCookie(middleware.ClearAccessTokenCookie(h.cookieDomain))

	return c.JSON(http.StatusOK, echo.Map{"message": "User logged out successfully"})
}

// FetchUserDetail returns the assembled user together with their assembled
// posts
func (h *AuthHandler) FetchUserDetail(c echo.Context) error {
	targetUserID := c.Param("userId")

	user, err := h.userAssembler.AssembleUserByID(c.Request().Context(), targetUserID)
	if err != nil {
		return respondError(c, err)
	}

	pgPosts, err := h.postRepository.GetPostsByAuthorID(targetUserID)
	if err != nil {
		return respondError(c, err)
	}
	posts, err := h.feedAssembler.AssemblePosts(c.Request().Context(), pgPosts)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "User fetched successfully!",
		"user":    user,
		"posts":   posts,
	})
}

// UpdateProfile updates the caller's bio and/or profile image
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	userID := c.QueryParam("userId")
	bio := c.FormValue("bio")

	var upload *services.Upload
	if fileHeader, err := c.FormFile("image"); err == nil {
		data, err := readMultipartFile(fileHeader)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid image upload")
		}
		upload = &services.Upload{
			FileName: fileHeader.Filename,
			MimeType: fileHeader.Header.Get("Content-Type"),
			Size:     fileHeader.Size,
			Data:     data,
		}
	}

	user, err := h.profileService.UpdateProfile(c.Request().Context(), userID, bio, upload)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "User profile updated successfully!",
		"user":    user,
	})
}
