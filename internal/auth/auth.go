package auth

import (
	"context"
	"net/http"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	config "github.com/andovskaana/Food-Delivery-App-DNICK/configs"
	"github.com/andovskaana/Food-Delivery-App-DNICK/internal/db"
	"github.com/andovskaana/Food-Delivery-App-DNICK/internal/models"
)

var (
	provider     *oidc.Provider
	verifier     *oidc.IDTokenVerifier
	oauth2Config *oauth2.Config
)

// Init wires the optional OIDC login path. When no issuer is configured the
// password endpoints are the only way in.
func Init() {
	cfg := config.LoadOIDCConfig()
	if cfg.Issuer == "" {
		logrus.Info("OIDC issuer not configured, social login disabled")
		return
	}

	ctx := context.Background()

	var err error
	provider, err = oidc.NewProvider(ctx, cfg.Issuer)
	if err != nil {
		logrus.Fatalf("OIDC provider init error: %v", err)
	}

	verifier = provider.Verifier(&oidc.Config{ClientID: cfg.ClientID})

	oauth2Config = &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Endpoint:     provider.Endpoint(),
		Scopes:       []string{oidc.ScopeOpenID, "profile", "email", "phone"},
	}
}

// GET /auth/oidc/login
func OIDCLogin(c *gin.Context) {
	if oauth2Config == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "social login not configured"})
		return
	}
	state := "rand" // TODO: generate & store real CSRF-safe state if needed
	url := oauth2Config.AuthCodeURL(state)
	c.Redirect(http.StatusFound, url)
}

// GET /auth/oidc/callback
func OIDCCallback(c *gin.Context) {
	if oauth2Config == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "social login not configured"})
		return
	}

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code missing"})
		return
	}

	ctx := c.Request.Context()
	oauth2Token, err := oauth2Config.Exchange(ctx, code)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token exchange failed"})
		return
	}

	rawIDToken, ok := oauth2Token.Extra("id_token").(string)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no id_token in token response"})
		return
	}

	idToken, err := verifier.Verify(ctx, rawIDToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token verification failed"})
		return
	}

	var claims struct {
		Sub   string `json:"sub"`
		Name  string `json:"name"`
		Email string `json:"email"`
		Phone string `json:"phone_number"`
	}
	if err := idToken.Claims(&claims); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "claims parse error"})
		return
	}

	// Upsert user; social accounts always come in as customers.
	var user models.User
	if err := db.DB.Where("oidc_id = ?", claims.Sub).First(&user).Error; err != nil {
		user = models.User{
			OIDCID:   claims.Sub,
			Username: claims.Email,
			Email:    claims.Email,
			Phone:    claims.Phone,
			Role:     models.RoleCustomer,
		}
		db.DB.Create(&user)
	}

	sess := sessions.Default(c)
	sess.Set(sessionUserKey, user.ID)
	_ = sess.Save()

	c.JSON(http.StatusOK, gin.H{"message": "logged in", "user": user})
}
