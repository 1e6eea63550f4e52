package controllers

import (
	"context"
	"fmt"
	"time"

	"github.com/VinukaThejana/go-utils/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/notestack/auth/config"
	"github.com/notestack/auth/connect"
	"github.com/notestack/auth/errors"
)

// Storage is a struct that contains the object storage related controllers
type Storage struct {
	Conn *connect.Connector
	Env  *config.Env
}

// UploadPDF is a function that is used to upload a PDF file to the object storage
// and hand back its public URL
func (s *Storage) UploadPDF(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		logger.Error(err)
		return errors.BadRequest(c)
	}

	if fileHeader.Header.Get("Content-Type") != "application/pdf" {
		return errors.BadRequest(c)
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error(err)
		return errors.InternalServerErr(c)
	}
	defer file.Close()

	objectName := fmt.Sprintf("pdfs/%d_%s", time.Now().UnixMilli(), fileHeader.Filename)

	_, err = s.Conn.M.PutObject(
		context.Background(),
		s.Env.MinioBucket,
		objectName,
		file,
		fileHeader.Size,
		minio.PutObjectOptions{
			ContentType: "application/pdf",
		},
	)
	if err != nil {
		logger.Error(err)
		return errors.InternalServerErr(c)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Uploaded successfully",
		"url":     fmt.Sprintf("https://%s/%s/%s", s.Env.MinioEndpoint, s.Env.MinioBucket, objectName),
	})
}
