package controller

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/SutharYagnesh/EduPath/internal/pkg/auth/application/usecase"
	"github.com/SutharYagnesh/EduPath/internal/pkg/auth/persistence/repository/adapter"
)

const userInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// GoogleAuthController handles the Google OAuth login and callback endpoints.
// A successful callback issues the same bearer token as credential login and
// redirects back to the frontend with it.
type GoogleAuthController struct {
	oauthConfig *oauth2.Config
	frontendURL string
	uc          *usecase.OAuthLoginUseCase
	log         *zap.Logger
}

func NewGoogleAuthController(db *mongo.Database, secret []byte, logger *zap.Logger) *GoogleAuthController {
	repo := adapter.NewMongoUserRepository(db)

	frontend := os.Getenv("FRONTEND_URL")
	if frontend == "" {
		frontend = "http://localhost:5173"
	}

	return &GoogleAuthController{
		oauthConfig: &oauth2.Config{
			ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
			ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
			RedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
		frontendURL: frontend,
		uc:          usecase.NewOAuthLoginUseCase(repo, secret),
		log:         logger,
	}
}

// Login redirects to Google's consent screen with a state cookie.
func (h *GoogleAuthController) Login() gin.HandlerFunc {
	return func(c *gin.Context) {
		state, err := generateState()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
			return
		}
		c.SetCookie("oauth_state", state, 300, "/", "", false, true)

		c.Redirect(http.StatusTemporaryRedirect, h.oauthConfig.AuthCodeURL(state))
	}
}

// Callback exchanges the authorization code, fetches the Google profile,
// finds or provisions the matching account, and redirects to the frontend
// with a freshly minted token.
func (h *GoogleAuthController) Callback() gin.HandlerFunc {
	return func(c *gin.Context) {
		stateCookie, err := c.Cookie("oauth_state")
		if err != nil || c.Query("state") != stateCookie {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_state"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		tok, err := h.oauthConfig.Exchange(ctx, c.Query("code"))
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "token_exchange_failed"})
			return
		}

		profile, err := h.fetchUserInfo(ctx, tok)
		if err != nil {
			h.log.Warn("google userinfo fetch failed", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "user_info_failed"})
			return
		}

		res, err := h.uc.Execute(ctx, usecase.OAuthLoginInput{Name: profile.Name, Email: profile.Email})
		if err != nil {
			h.log.Error("oauth login failed", zap.String("email", profile.Email), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
			return
		}

		c.Redirect(http.StatusTemporaryRedirect,
			fmt.Sprintf("%s/?token=%s", h.frontendURL, url.QueryEscape(res.Token)))
	}
}

type googleProfile struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (h *GoogleAuthController) fetchUserInfo(ctx context.Context, tok *oauth2.Token) (*googleProfile, error) {
	client := h.oauthConfig.Client(ctx, tok)
	resp, err := client.Get(userInfoURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo: unexpected status %d", resp.StatusCode)
	}

	var profile googleProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, err
	}
	if profile.Email == "" {
		return nil, fmt.Errorf("userinfo: response carried no email")
	}
	return &profile, nil
}

func generateState() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
