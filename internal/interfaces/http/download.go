package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// sendFile streams a generated document as an attachment.
func sendFile(c *fiber.Ctx, data []byte, contentType, filename string) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(data)
}
