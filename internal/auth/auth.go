package auth

import (
	"context"
	"net/http"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"gorm.io/gorm"

	config "github.com/alighauridev/ASE-Server/configs"
	"github.com/alighauridev/ASE-Server/internal/models"
)

const sessionKey = "user_id"

// Auth holds the session-backed authentication layer. The OIDC pieces are
// only needed by the login flow; RequireAuth and RequireRole work with just
// the database handle, which is what tests construct.
type Auth struct {
	db           *gorm.DB
	provider     *oidc.Provider
	verifier     *oidc.IDTokenVerifier
	oauth2Config *oauth2.Config
}

func New(conn *gorm.DB) *Auth {
	return &Auth{db: conn}
}

// ConfigureOIDC wires the login flow against the configured identity
// provider. Must be called before Login/Callback are routed.
func (a *Auth) ConfigureOIDC(ctx context.Context, cfg config.OIDCConfig) error {
	provider, err := oidc.NewProvider(ctx, cfg.Issuer)
	if err != nil {
		return err
	}

	a.provider = provider
	a.verifier = provider.Verifier(&oidc.Config{ClientID: cfg.ClientID})
	a.oauth2Config = &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Endpoint:     provider.Endpoint(),
		Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
	}
	return nil
}

// GET /auth/login
func (a *Auth) Login(c *gin.Context) {
	state := "rand" // TODO: generate & store real CSRF-safe state if needed
	url := a.oauth2Config.AuthCodeURL(state)
	c.Redirect(http.StatusFound, url)
}

// GET /auth/callback
func (a *Auth) Callback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "code missing"})
		return
	}

	ctx := c.Request.Context()
	oauth2Token, err := a.oauth2Config.Exchange(ctx, code)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "token exchange failed"})
		return
	}

	rawIDToken, ok := oauth2Token.Extra("id_token").(string)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "no id_token in token response"})
		return
	}

	idToken, err := a.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "token verification failed"})
		return
	}

	var claims struct {
		Sub   string `json:"sub"`
		Name  string `json:"name"`
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	if err := idToken.Claims(&claims); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "claims parse error"})
		return
	}

	// Upsert user. Role comes from the IdP claim when present.
	var user models.User
	if err := a.db.Where("o_id_c_id = ?", claims.Sub).First(&user).Error; err != nil {
		role := claims.Role
		if role == "" {
			role = models.RoleUser
		}
		sub := claims.Sub
		user = models.User{
			OIDCID: &sub,
			Name:   claims.Name,
			Email:  claims.Email,
			Role:   role,
		}
		a.db.Create(&user)
	}

	sess := sessions.Default(c)
	sess.Set(sessionKey, user.ID)
	_ = sess.Save()

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "logged in", "user": user})
}

// RequireAuth ensures the caller is logged in and injects *models.User
// into the gin context.
func (a *Auth) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)
		userID, ok := sess.Get(sessionKey).(uint)
		if !ok || userID == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "unauthorized"})
			return
		}

		var user models.User
		if err := a.db.First(&user, userID).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "user not found"})
			return
		}
		c.Set("user", &user)
		c.Next()
	}
}

// RequireRole enforces route-level authority; runs after RequireAuth.
func (a *Auth) RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || user.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "forbidden"})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user set by RequireAuth, or nil.
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get("user"); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}
