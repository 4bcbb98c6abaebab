package controllers

import (
	"log"
	"net/http"

	"go-jewelry-order-management/helpers"

	"github.com/gin-gonic/gin"
)

const maxUploadSize = 10 << 20 // 10 MB

// Order images plus the voice note formats the mobile clients record in.
var allowedUploadTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"audio/mpeg": true,
	"audio/ogg":  true,
	"audio/mp4":  true,
}

// UploadOrderAsset accepts a multipart file and stores it with the image
// host, returning the URL the order document will carry. The order flow
// never depends on the host beyond this URL.
func UploadOrderAsset() gin.HandlerFunc {
	return func(c *gin.Context) {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "a file is required"})
			return
		}
		if fileHeader.Size > maxUploadSize {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file exceeds the 10MB limit"})
			return
		}
		contentType := fileHeader.Header.Get("Content-Type")
		if !allowedUploadTypes[contentType] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported file type"})
			return
		}

		url, err := helpers.UploadOrderAsset(fileHeader, contentType)
		if err != nil {
			log.Println("upload failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "file upload failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"url": url})
	}
}
