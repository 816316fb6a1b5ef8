package controllers

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/skill-swap/api-go/config"
	"github.com/skill-swap/api-go/models"
	"github.com/skill-swap/api-go/utils"
	"gorm.io/gorm"
)

// UploadController hands out presigned URLs for profile photos stored in an
// S3-compatible bucket (Cloudflare R2). The API never proxies file bytes.
type UploadController struct {
	DB       *gorm.DB
	R2Client *s3.Client
	R2Config *config.R2Config
}

type PhotoUploadRequest struct {
	FileName    string `json:"fileName" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
	FileSize    int64  `json:"fileSize" binding:"required"`
}

type PhotoUploadResponse struct {
	UploadURL string `json:"uploadUrl"`
	FileURL   string `json:"fileUrl"`
	Key       string `json:"key"`
	ExpiresIn int    `json:"expiresIn"`
}

func NewUploadController(db *gorm.DB) *UploadController {
	r2Config := config.GetR2Config()

	r2Client := s3.New(s3.Options{
		BaseEndpoint: aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", r2Config.AccountID)),
		Credentials: credentials.NewStaticCredentialsProvider(
			r2Config.AccessKeyID,
			r2Config.SecretAccessKey,
			"",
		),
		Region: r2Config.Region,
	})

	return &UploadController{
		DB:       db,
		R2Client: r2Client,
		R2Config: r2Config,
	}
}

func (uc *UploadController) GetPhotoUploadURL(c *gin.Context) {
	user := utils.GetUser(c)

	var req PhotoUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if !isValidPhotoFile(req.ContentType, req.FileSize) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid photo file type or size"})
		return
	}

	key := generatePhotoKey(user.UserID, req.FileName)

	presignedURL, err := uc.createPresignedURL(key, req.ContentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create upload URL"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": PhotoUploadResponse{
			UploadURL: presignedURL,
			FileURL:   fmt.Sprintf("%s/%s", uc.R2Config.PublicURL, key),
			Key:       key,
			ExpiresIn: 1800,
		},
	})
}

// ConfirmPhotoUpload verifies the object landed in the bucket and stores the
// public URL on the caller's profile.
func (uc *UploadController) ConfirmPhotoUpload(c *gin.Context) {
	user := utils.GetUser(c)

	var req struct {
		Key string `json:"key" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if !uc.verifyPhotoOwnership(req.Key, user.UserID) {
		c.JSON(http.StatusForbidden, gin.H{"message": "Access denied"})
		return
	}

	exists, err := uc.verifyFileExists(req.Key)
	if err != nil || !exists {
		c.JSON(http.StatusNotFound, gin.H{"message": "Photo not found in storage"})
		return
	}

	fileURL := fmt.Sprintf("%s/%s", uc.R2Config.PublicURL, req.Key)
	if err := uc.DB.Model(&models.User{}).Where("id = ?", user.UserID).
		Update("profile_photo", fileURL).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update profile photo"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile photo updated successfully",
		"data":    gin.H{"key": req.Key, "fileUrl": fileURL},
	})
}

func (uc *UploadController) DeletePhoto(c *gin.Context) {
	user := utils.GetUser(c)
	key := strings.TrimPrefix(c.Param("key"), "/")

	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "File key is required"})
		return
	}

	if !uc.verifyPhotoOwnership(key, user.UserID) {
		c.JSON(http.StatusForbidden, gin.H{"message": "Access denied"})
		return
	}

	if err := uc.deleteFile(key); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete photo"})
		return
	}

	uc.DB.Model(&models.User{}).Where("id = ?", user.UserID).Update("profile_photo", "")

	c.JSON(http.StatusOK, gin.H{"message": "Photo deleted successfully"})
}

// --- helpers ---

func isValidPhotoFile(contentType string, fileSize int64) bool {
	validTypes := []string{"image/jpeg", "image/jpg", "image/png", "image/webp"}

	valid := false
	for _, t := range validTypes {
		if contentType == t {
			valid = true
			break
		}
	}
	if !valid {
		return false
	}

	// 5MB cap on profile photos
	return fileSize <= 5*1024*1024
}

func generatePhotoKey(userID uint, fileName string) string {
	ext := filepath.Ext(fileName)
	return fmt.Sprintf("users/%d/photo/%d_%s%s", userID, time.Now().Unix(), uuid.New().String(), ext)
}

func (uc *UploadController) verifyPhotoOwnership(key string, userID uint) bool {
	// Key format: users/{userID}/photo/{timestamp}_{uuid}.{ext}
	parts := strings.Split(key, "/")
	if len(parts) < 3 || parts[0] != "users" {
		return false
	}
	return fmt.Sprintf("%d", userID) == parts[1]
}

func (uc *UploadController) createPresignedURL(key, contentType string) (string, error) {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(uc.R2Config.BucketName),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}

	presigner := s3.NewPresignClient(uc.R2Client)
	req, err := presigner.PresignPutObject(context.TODO(), input, func(opts *s3.PresignOptions) {
		opts.Expires = 30 * time.Minute
	})
	if err != nil {
		return "", err
	}

	return req.URL, nil
}

func (uc *UploadController) verifyFileExists(key string) (bool, error) {
	input := &s3.HeadObjectInput{
		Bucket: aws.String(uc.R2Config.BucketName),
		Key:    aws.String(key),
	}

	if _, err := uc.R2Client.HeadObject(context.TODO(), input); err != nil {
		return false, nil
	}
	return true, nil
}

func (uc *UploadController) deleteFile(key string) error {
	input := &s3.DeleteObjectInput{
		Bucket: aws.String(uc.R2Config.BucketName),
		Key:    aws.String(key),
	}

	_, err := uc.R2Client.DeleteObject(context.TODO(), input)
	return err
}
