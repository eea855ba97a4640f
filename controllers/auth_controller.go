package controllers

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"time"

	"foodmarket/database"
	"foodmarket/models"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

var jwtSecret = []byte(os.Getenv("JWT_SECRET"))

const otpTTL = 5 * time.Minute

func Register(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Phone    string `json:"phone"`
		Password string `json:"password" binding:"required,min=6"`
		Role     string `json:"role"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var existingUser models.User
	err := database.UserCollection.FindOne(ctx, bson.M{"email": input.Email}).Decode(&existingUser)
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Email already registered"})
		return
	}

	hashed, _ := bcrypt.GenerateFromPassword([]byte(input.Password), 10)

	role := input.Role
	if role != models.RoleOwner {
		role = models.RoleCustomer
	}

	user := models.User{
		ID:        primitive.NewObjectID(),
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Password:  string(hashed),
		Role:      role,
		CreatedAt: time.Now(),
	}

	if _, err := database.UserCollection.InsertOne(ctx, user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to register"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User registered successfully",
		"user": gin.H{
			"id":    user.ID.Hex(),
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var user models.User
	err := database.UserCollection.FindOne(ctx, bson.M{"email": input.Email}).Decode(&user)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid email or password"})
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid email or password"})
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": user.ID.Hex(),
		"role":   user.Role,
		"exp":    time.Now().Add(24 * time.Hour).Unix(),
	})

	tokenString, _ := token.SignedString(jwtSecret)

	refresh := fmt.Sprintf("%d%06d", time.Now().UnixNano(), rand.Intn(1000000))
	if err := database.SetRefreshToken(ctx, user.ID.Hex(), refresh, 7*24*time.Hour); err != nil {
		slog.Warn("failed to store refresh token", "error", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user": gin.H{
			"id":           user.ID.Hex(),
			"name":         user.Name,
			"email":        user.Email,
			"role":         user.Role,
			"token":        tokenString,
			"refreshToken": refresh,
		},
	})
}

func Logout(c *gin.Context) {
	tokenString := c.GetHeader("Authorization")
	if tokenString == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Token required"})
		return
	}

	if len(tokenString) > 7 && tokenString[:7] == "Bearer " {
		tokenString = tokenString[7:]
	}

	token, _ := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return jwtSecret, nil
	})
	if token == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid token"})
		return
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		exp := int64(claims["exp"].(float64))
		ttl := time.Until(time.Unix(exp, 0))

		if err := database.BlacklistToken(c.Request.Context(), tokenString, ttl); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to log out"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out successfully"})
		return
	}

	c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid token"})
}

// RequestOTP issues a 6-digit code with a short TTL. Delivery goes
// through an external notifier; here it is only logged.
func RequestOTP(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input"})
		return
	}

	code := fmt.Sprintf("%06d", rand.Intn(1000000))
	if err := database.SetOTP(c.Request.Context(), input.Email, code, otpTTL); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to issue OTP"})
		return
	}

	slog.Info("OTP issued", "email", input.Email)

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "OTP sent"})
}

func VerifyOTP(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required,email"`
		Code  string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input"})
		return
	}

	stored, err := database.GetOTP(c.Request.Context(), input.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to verify OTP"})
		return
	}
	if stored == "" || stored != input.Code {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid or expired OTP"})
		return
	}

	_ = database.DeleteOTP(c.Request.Context(), input.Email)

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "OTP verified"})
}
