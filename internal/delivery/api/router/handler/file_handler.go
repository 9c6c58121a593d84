package handler

import (
	"bytes"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"medico/internal/delivery/api/response"
	domainerrors "medico/internal/domain/errors"
	"medico/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// FileHandlerParams holds dependencies for FileHandler, injected by Fx.
type FileHandlerParams struct {
	fx.In

	FileUC usecase.FileUsecase
	Logger *slog.Logger
}

// FileHandler serves generic uploads and downloads.
type FileHandler struct {
	fileUC usecase.FileUsecase
	logger *slog.Logger
}

// NewFileHandler is the constructor for FileHandler
func NewFileHandler(params FileHandlerParams) *FileHandler {
	return &FileHandler{
		fileUC: params.FileUC,
		logger: params.Logger,
	}
}

// streamFile copies a stored file to the client with its stored content type.
func streamFile(c echo.Context, download *usecase.FileDownload) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, `inline; filename="`+strings.ReplaceAll(download.Asset.FileName, `"`, "")+`"`)

	return c.Stream(http.StatusOK, download.Asset.ContentType, download.Body)
}

// Upload handles a single multipart upload in the "file" field
func (h *FileHandler) Upload(c echo.Context) error {
	principal, err := caller(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	fh, err := formFile(c, "file")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	upload, f, err := openUpload(fh)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	defer f.Close()

	asset, err := h.fileUC.Upload(c.Request().Context(), principal.UserID, upload)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, asset)
}

// UploadMany handles a multipart upload of several files in the "files" field
func (h *FileHandler) UploadMany(c echo.Context) error {
	principal, err := caller(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	form, err := c.MultipartForm()
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid multipart form")
	}

	headers := form.File["files"]
	if len(headers) == 0 {
		return response.HandleAppError(c, errMissingFile.WrapMessage("files"))
	}

	uploads := make([]*usecase.FileUpload, 0, len(headers))
	opened := make([]multipart.File, 0, len(headers))
	defer func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}()
	for _, fh := range headers {
		upload, f, err := openUpload(fh)
		if err != nil {
			return response.HandleAppError(c, err)
		}
		opened = append(opened, f)
		uploads = append(uploads, upload)
	}

	assets, err := h.fileUC.UploadMany(c.Request().Context(), principal.UserID, uploads)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, assets)
}

// Download streams one stored file. Customers may only fetch their own uploads.
func (h *FileHandler) Download(c echo.Context) error {
	principal, err := caller(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	download, err := h.fileUC.Download(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	defer download.Body.Close()

	if !canAccess(principal, download.Asset.UploadedBy) {
		return response.HandleAppError(c, domainerrors.ErrForbidden)
	}

	return streamFile(c, download)
}

// DownloadArchive returns the files named by ?ids=1,2,3 as one zip archive
func (h *FileHandler) DownloadArchive(c echo.Context) error {
	raw := strings.Split(c.QueryParam("ids"), ",")
	ids := make([]int64, 0, len(raw))
	for _, part := range raw {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil || id <= 0 {
			return response.BadRequest(c, "INVALID_INPUT", "ids must be a comma separated list of file ids")
		}
		ids = append(ids, id)
	}

	var buf bytes.Buffer
	if err := h.fileUC.DownloadArchive(c.Request().Context(), ids, &buf); err != nil {
		return response.HandleAppError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="files.zip"`)

	return c.Blob(http.StatusOK, "application/zip", buf.Bytes())
}
