package controllers

import (
	"net/http"
	"time"

	"github.com/BerniceZTT/leadgen_end/models"
	"github.com/BerniceZTT/leadgen_end/repository"
	"github.com/BerniceZTT/leadgen_end/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Register 用户注册
func Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "无效的请求参数: "+err.Error(), http.StatusBadRequest)
		return
	}

	utils.Logger.Info().
		Str("username", req.Username).
		Str("email", req.Email).
		Msg("用户注册请求")

	// 校验不通过时不触达数据库
	if !utils.IsValidEmail(req.Email) {
		utils.ErrorResponse(c, "邮箱格式无效", http.StatusBadRequest)
		return
	}
	if req.Password != req.ConfirmPassword {
		utils.ErrorResponse(c, "两次输入的密码不一致", http.StatusBadRequest)
		return
	}

	// 检查邮箱是否已存在
	collection := repository.Collection(repository.UsersCollection)
	var existingUser models.User
	err := collection.FindOne(repository.GetContext(), bson.M{"email": req.Email}).Decode(&existingUser)
	if err == nil {
		utils.Logger.Info().Str("email", req.Email).Msg("注册失败: 邮箱已存在")
		utils.ErrorResponse(c, "邮箱已被注册", http.StatusConflict)
		return
	} else if err != mongo.ErrNoDocuments {
		utils.Logger.Error().Err(err).Msg("检查邮箱是否存在时出错")
		utils.ErrorResponse(c, "注册失败: 数据库错误", http.StatusInternalServerError)
		return
	}

	// 创建新用户
	now := time.Now()
	newUser := models.User{
		Username:  req.Username,
		Email:     req.Email,
		Password:  utils.HashPassword(req.Password),
		Role:      models.UserRoleMARKETER,
		Status:    models.UserStatusAPPROVED,
		CreatedAt: now,
		UpdatedAt: now,
	}

	result, err := collection.InsertOne(repository.GetContext(), newUser)
	if err != nil {
		utils.Logger.Error().Err(err).Msg("创建用户失败")

		if mongo.IsDuplicateKeyError(err) {
			utils.ErrorResponse(c, "邮箱或其他唯一字段已存在", http.StatusConflict)
			return
		}

		utils.ErrorResponse(c, "注册失败: "+err.Error(), http.StatusInternalServerError)
		return
	}

	insertedID, _ := result.InsertedID.(primitive.ObjectID)
	newUser.ID = insertedID
	newUser.Password = ""

	// 注册即登录
	token, err := utils.GenerateToken(newUser)
	if err != nil {
		utils.Logger.Error().Err(err).Msg("生成token失败")
		utils.ErrorResponse(c, "注册成功但生成登录令牌失败，请重新登录", http.StatusInternalServerError)
		return
	}

	utils.Logger.Info().
		Str("username", newUser.Username).
		Str("id", insertedID.Hex()).
		Msg("用户注册成功")

	utils.SuccessResponse(c, gin.H{
		"token": token,
		"user":  newUser,
	}, "注册成功", http.StatusCreated)
}

// Login 用户登录
func Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "无效的请求参数: "+err.Error(), http.StatusBadRequest)
		return
	}

	utils.Logger.Info().Str("email", req.Email).Msg("登录尝试")

	// 查询用户
	collection := repository.Collection(repository.UsersCollection)
	var user models.User
	err := collection.FindOne(repository.GetContext(), bson.M{"email": req.Email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		utils.Logger.Info().Str("email", req.Email).Msg("登录失败: 邮箱不存在")
		utils.ErrorResponse(c, "邮箱或密码错误", http.StatusUnauthorized)
		return
	} else if err != nil {
		utils.Logger.Error().Err(err).Msg("查询用户出错")
		utils.ErrorResponse(c, "登录失败: 数据库错误", http.StatusInternalServerError)
		return
	}

	// 检查用户状态
	if user.Status != models.UserStatusAPPROVED {
		utils.Logger.Info().Str("email", req.Email).Msg("登录失败: 账户状态异常")
		utils.ErrorResponse(c, "账户状态异常", http.StatusForbidden)
		return
	}

	// 验证密码
	if !utils.VerifyPassword(req.Password, user.Password) {
		utils.Logger.Info().Str("email", req.Email).Msg("登录失败: 密码错误")
		utils.ErrorResponse(c, "邮箱或密码错误", http.StatusUnauthorized)
		return
	}

	// 生成JWT令牌
	token, err := utils.GenerateToken(user)
	if err != nil {
		utils.Logger.Error().Err(err).Msg("生成token失败")
		utils.ErrorResponse(c, "生成登录令牌失败，请重试", http.StatusInternalServerError)
		return
	}

	userWithoutPassword := user
	userWithoutPassword.Password = ""

	utils.Logger.Info().Str("username", user.Username).Msg("用户登录成功")
	utils.SuccessResponse(c, gin.H{
		"token": token,
		"user":  userWithoutPassword,
	}, "")
}

// ValidateToken 验证Token
func ValidateToken(c *gin.Context) {
	// 获取当前用户信息
	user, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		utils.Logger.Error().Err(err).Str("id", user.ID).Msg("无效的ID格式")
		utils.ErrorResponse(c, "无效的ID格式", http.StatusBadRequest)
		return
	}

	// 检查账户是否存在
	var dbUser models.User
	collection := repository.Collection(repository.UsersCollection)
	err = collection.FindOne(repository.GetContext(), bson.M{"_id": userID}).Decode(&dbUser)
	if err != nil {
		utils.ErrorResponse(c, "查询用户失败", http.StatusBadRequest)
		return
	}

	utils.SuccessResponse(c, gin.H{"user": map[string]interface{}{
		"_id":      dbUser.ID.Hex(),
		"id":       dbUser.ID.Hex(),
		"username": dbUser.Username,
		"email":    dbUser.Email,
		"role":     dbUser.Role,
		"status":   dbUser.Status,
	}}, "")
}
