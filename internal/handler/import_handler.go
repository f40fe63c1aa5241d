package handler

import (
	"bufio"

	"github.com/gofiber/fiber/v2"

	"country-table-service/internal/service"
)

type ImportHandler struct {
	countryImporter service.CountryImporter
}

func NewImportHandler(countryImporter service.CountryImporter) *ImportHandler {
	return &ImportHandler{
		countryImporter: countryImporter,
	}
}

// ImportFile accepts an uploaded JSON array of nested country records.
func (h *ImportHandler) ImportFile(c *fiber.Ctx) error {
	// Get the file from form data
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file uploaded: " + err.Error(),
		})
	}

	// Open the uploaded file
	uploadedFile, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to open uploaded file: " + err.Error(),
		})
	}
	defer uploadedFile.Close()

	// Use a buffered reader
	reader := bufio.NewReaderSize(uploadedFile, 1024*1024) // 1MB buffer

	count, err := h.countryImporter.ImportFromReader(c.Context(), reader)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message":  "Import completed successfully",
		"imported": count,
	})
}

// Refresh re-fetches the upstream country API and replaces the stored set.
func (h *ImportHandler) Refresh(c *fiber.Ctx) error {
	count, err := h.countryImporter.RefreshFromUpstream(c.Context())
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message":  "Refresh completed successfully",
		"imported": count,
	})
}

func (h *ImportHandler) GetStatus(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": h.countryImporter.GetImportStatus(),
	})
}

func (h *ImportHandler) ClearDatabase(c *fiber.Ctx) error {
	if err := h.countryImporter.ClearDatabase(c.Context()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Database cleared successfully",
	})
}
