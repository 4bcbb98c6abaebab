package controllers

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"
	"math/big"
	"net/http"
	"strconv"
	"time"

	"go-jewelry-order-management/database"
	"go-jewelry-order-management/helpers"
	"go-jewelry-order-management/models"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator"
	"github.com/gorilla/websocket"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

var userCollection *mongo.Collection = database.OpenCollection(database.Client, "user")
var validate = validator.New()

const otpValidity = 5 * time.Minute
const otpHourlyLimit = 5

type OtpRequest struct {
	Phone string `json:"phone" validate:"required"`
}

type OtpVerifyRequest struct {
	Phone string `json:"phone" validate:"required"`
	Code  string `json:"code" validate:"required,len=6"`
}

func GetUsers() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		recordPerPage, err := strconv.Atoi(c.DefaultQuery("recordPerPage", "10"))
		if err != nil || recordPerPage < 1 {
			recordPerPage = 10
		}
		page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
		if err != nil || page < 1 {
			page = 1
		}
		startIndex := (page - 1) * recordPerPage

		filter := bson.M{}
		if role := c.Query("user_role"); role != "" {
			filter["user_role"] = role
		}

		opts := options.Find().
			SetSort(bson.D{{Key: "created_at", Value: -1}}).
			SetSkip(int64(startIndex)).
			SetLimit(int64(recordPerPage)).
			SetProjection(bson.M{"password": 0, "token": 0, "refresh_token": 0, "otp_code": 0})

		result, err := userCollection.Find(ctx, filter, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing users"})
			return
		}
		var allUsers []bson.M
		if err := result.All(ctx, &allUsers); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing users"})
			return
		}
		c.JSON(http.StatusOK, allUsers)
	}
}

func GetUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		userId := c.Param("user_id")
		var user models.User
		err := userCollection.FindOne(ctx, bson.M{"user_id": userId}).Decode(&user)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while fetching the user"})
			return
		}
		user.Password = nil
		user.Token = nil
		user.Refresh_Token = nil
		c.JSON(http.StatusOK, user)
	}
}

func SignUp() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var user models.User
		if err := c.BindJSON(&user); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		validationErr := validate.Struct(&user)
		if validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}

		count, err := userCollection.CountDocuments(ctx, bson.M{"email": user.Email})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while checking for the email"})
			return
		}
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email already exists"})
			return
		}
		count, err = userCollection.CountDocuments(ctx, bson.M{"phone": user.Phone})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while checking for the phone number"})
			return
		}
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "phone number already exists"})
			return
		}

		password := HashPassword(*user.Password)
		user.Password = &password
		user.Created_at, _ = time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
		user.Updated_at = user.Created_at
		user.ID = primitive.NewObjectID()
		user.User_id = user.ID.Hex()

		token, refreshToken, err := helpers.GenerateAllTokens(*user.Email, *user.Name, user.User_id, *user.User_role)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "user was not created"})
			return
		}
		user.Token = &token
		user.Refresh_Token = &refreshToken

		result, err := userCollection.InsertOne(ctx, user)
		if err != nil {
			log.Println("user insert failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "user was not created"})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func Login() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var user models.User
		var foundUser models.User
		if err := c.BindJSON(&user); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		err := userCollection.FindOne(ctx, bson.M{"email": user.Email}).Decode(&foundUser)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "email or password is incorrect"})
			return
		}
		passwordIsValid, msg := VerifyPassword(*user.Password, *foundUser.Password)
		if !passwordIsValid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		token, refreshToken, err := helpers.GenerateAllTokens(*foundUser.Email, *foundUser.Name, foundUser.User_id, *foundUser.User_role)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
			return
		}
		helpers.UpdateAllTokens(token, refreshToken, foundUser.User_id)
		foundUser.Token = &token
		foundUser.Refresh_Token = &refreshToken
		foundUser.Password = nil
		c.JSON(http.StatusOK, foundUser)
	}
}

// RequestOtp issues a one time login code to a salesman's phone. Sends are
// rate limited per phone per hour through an atomic counter document, so
// the limit holds across instances.
func RequestOtp() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var req OtpRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if validationErr := validate.Struct(&req); validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}

		var user models.User
		err := userCollection.FindOne(ctx, bson.M{"phone": req.Phone, "user_role": models.RoleSalesman}).Decode(&user)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "no salesman account found for this phone number"})
			return
		}

		sendCount, err := helpers.OtpSendCount(ctx, req.Phone)
		if err != nil {
			log.Println("otp counter failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not send OTP"})
			return
		}
		if sendCount > otpHourlyLimit {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many OTP requests, please try again later"})
			return
		}

		code, err := generateOtpCode()
		if err != nil {
			log.Println("otp generation failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not send OTP"})
			return
		}
		codeHash := HashPassword(code)
		expiresAt := time.Now().Add(otpValidity)

		_, err = userCollection.UpdateOne(
			ctx,
			bson.M{"user_id": user.User_id},
			bson.D{{Key: "$set", Value: bson.D{
				{Key: "otp_code", Value: codeHash},
				{Key: "otp_expires_at", Value: expiresAt},
				{Key: "updated_at", Value: time.Now()},
			}}},
		)
		if err != nil {
			log.Println("otp persist failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not send OTP"})
			return
		}

		go func(phone string, code string) {
			if err := helpers.SendOtpSms(phone, code); err != nil {
				log.Println("otp sms delivery failed:", err)
			}
		}(req.Phone, code)

		c.JSON(http.StatusOK, gin.H{"message": "OTP sent"})
	}
}

func VerifyOtp() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var req OtpVerifyRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if validationErr := validate.Struct(&req); validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}

		var user models.User
		err := userCollection.FindOne(ctx, bson.M{"phone": req.Phone, "user_role": models.RoleSalesman}).Decode(&user)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "no salesman account found for this phone number"})
			return
		}
		if user.Otp_code == nil || user.Otp_expires_at == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no OTP was requested for this account"})
			return
		}
		if time.Now().After(*user.Otp_expires_at) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "the OTP has expired, request a new one"})
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(*user.Otp_code), []byte(req.Code)); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "the OTP is incorrect"})
			return
		}

		token, refreshToken, err := helpers.GenerateAllTokens(*user.Email, *user.Name, user.User_id, *user.User_role)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
			return
		}
		helpers.UpdateAllTokens(token, refreshToken, user.User_id)

		_, err = userCollection.UpdateOne(
			ctx,
			bson.M{"user_id": user.User_id},
			bson.D{{Key: "$unset", Value: bson.D{
				{Key: "otp_code", Value: ""},
				{Key: "otp_expires_at", Value: ""},
			}}},
		)
		if err != nil {
			log.Println("otp cleanup failed:", err)
		}

		user.Token = &token
		user.Refresh_Token = &refreshToken
		user.Password = nil
		c.JSON(http.StatusOK, user)
	}
}

func generateOtpCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func HashPassword(password string) string {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	if err != nil {
		log.Panic(err)
	}
	return string(bytes)
}

func VerifyPassword(userPassword string, providedPassword string) (bool, string) {
	err := bcrypt.CompareHashAndPassword([]byte(providedPassword), []byte(userPassword))
	check := true
	msg := ""
	if err != nil {
		msg = "email or password is incorrect"
		check = false
	}
	return check, msg
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleWebSocket upgrades a salesman dashboard connection. The token comes
// in as a query parameter because browsers cannot set headers on websocket
// upgrades. Connections are registered per user so notification pushes can
// be targeted.
func HandleWebSocket() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientToken := c.Query("token")
		if clientToken == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no authorization token provided"})
			return
		}
		claims, msg := helpers.ValidateToken(clientToken)
		if msg != "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Println("websocket upgrade failed:", err)
			return
		}
		defer conn.Close()

		helpers.RegisterWsClient(claims.Uid, conn)
		defer helpers.UnregisterWsClient(claims.Uid, conn)

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}
}
