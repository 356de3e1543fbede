// Package transfer serves exports and imports of all groups and entries.
package transfer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	controller "github.com/orkank/AppConfig/internal/transfer"
	"github.com/orkank/AppConfig/internal/web/handler"
)

const (
	// RouteExport downloads all data.
	RouteExport = "/export"
	// RouteImport uploads a document.
	RouteImport = "/import"

	// FormFile is the multipart field of an uploaded document.
	FormFile = "file"

	// QueryFormat selects json or csv.
	QueryFormat = "format"
	// QueryMode selects append or replace.
	QueryMode = "mode"

	exportFilenameLayout = "20060102_150405"

	// ErrFailedExport indicates the export could not be built.
	ErrFailedExport = "Failed to export configuration"
	// ErrFailedImport indicates the import could not be written.
	ErrFailedImport = "Failed to import configuration"
	// ErrEmptyDocument is returned for uploads without content.
	ErrEmptyDocument = "Import document is empty"
)

// Service is the transfer handler service.
type Service struct {
	handler.Service
	deps *handler.Deps
	db   *gorm.DB
	now  func() time.Time
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes.
func (s *Service) Init(app fiber.Router, deps *handler.Deps) error {
	if app == nil || deps == nil || deps.DB == nil {
		return errors.New(handler.ErrNilDepsFatalLogMsg)
	}

	s.deps = deps
	s.db = deps.DB

	if s.now == nil {
		s.now = time.Now
	}

	app.Get(RouteExport, s.Export)
	app.Post(RouteImport, s.Import)

	return nil
}

// Export sends every group and entry as a json or csv attachment.
func (s *Service) Export(c *fiber.Ctx) error {
	format := controller.ParseFormat(c.Query(QueryFormat))
	now := s.now()

	doc, err := controller.Export(s.db.WithContext(c.UserContext()), now)
	if err != nil {
		log.Error().Err(err).Msg("failed to export configuration")
		return handler.JSONError(c, fiber.StatusInternalServerError, ErrFailedExport)
	}

	var buf bytes.Buffer
	if err = controller.Write(&buf, doc, format); err != nil {
		log.Error().Err(err).Msg("failed to encode export")
		return handler.JSONError(c, fiber.StatusInternalServerError, ErrFailedExport)
	}

	contentType := fiber.MIMEApplicationJSONCharsetUTF8
	if format == controller.FormatCSV {
		contentType = "text/csv; charset=utf-8"
	}

	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(
		`attachment; filename="appconfig_export_%s.%s"`, now.Format(exportFilenameLayout), format,
	))

	return c.Send(buf.Bytes())
}

// Import reads a multipart upload or the raw request body and writes it.
// The format comes from the file extension, then the format parameter, then the content.
func (s *Service) Import(c *fiber.Ctx) error {
	data, filename, err := upload(c)
	if err != nil {
		log.Warn().Err(err).Msg("failed to read import upload")
		return handler.JSONError(c, fiber.StatusBadRequest, err.Error())
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return handler.JSONError(c, fiber.StatusBadRequest, ErrEmptyDocument)
	}

	requested := controller.SniffFormat(data)
	if q := c.Query(QueryFormat); q != "" {
		requested = controller.ParseFormat(q)
	}

	format := controller.DetectFormat(filename, requested)

	doc, err := controller.Read(bytes.NewReader(data), format)
	if err != nil {
		return handler.JSONError(c, fiber.StatusBadRequest, err.Error())
	}

	mode := controller.ParseMode(c.Query(QueryMode))

	res, err := controller.Import(s.db.WithContext(c.UserContext()), doc, mode)
	if err != nil {
		log.Error().Err(err).Str("mode", string(mode)).Msg("failed to import configuration")
		return handler.JSONError(c, fiber.StatusInternalServerError, ErrFailedImport)
	}

	log.Info().
		Str("format", string(format)).
		Str("mode", string(mode)).
		Int("groups_created", res.GroupsCreated).
		Int("groups_updated", res.GroupsUpdated).
		Int("entries_created", res.EntriesCreated).
		Int("entries_updated", res.EntriesUpdated).
		Msg("configuration imported")

	s.deps.Changed(c.UserContext())

	return c.JSON(res)
}

func upload(c *fiber.Ctx) ([]byte, string, error) {
	fh, err := c.FormFile(FormFile)
	if err != nil {
		return c.Body(), "", nil
	}

	f, err := fh.Open()
	if err != nil {
		return nil, "", err
	}

	defer func() {
		_ = f.Close()
	}()

	data, err := io.ReadAll(f)

	return data, fh.Filename, err
}
