package handler

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"medico/internal/delivery/api/middleware"
	"medico/internal/delivery/api/response"
	"medico/internal/domain/entity"
	domainerrors "medico/internal/domain/errors"
	"medico/internal/errors"
	"medico/internal/usecase"

	"github.com/labstack/echo/v4"
)

// PageQuery is the pagination window of list endpoints.
type PageQuery struct {
	Offset int `query:"offset" validate:"gte=0"`
	Limit  int `query:"limit" validate:"gte=0,lte=100"`
}

func (q PageQuery) page() entity.Page {
	return entity.Page{Offset: q.Offset, Limit: q.Limit}
}

// HealthCheck reports that the process is serving requests.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"})
}

var (
	errInvalidID    = domainerrors.NewBaseError(http.StatusBadRequest, "INVALID_ID", "Invalid identifier in path", "")
	errInvalidPage  = domainerrors.NewBaseError(http.StatusBadRequest, "INVALID_INPUT", "Invalid pagination parameters", "")
	errMissingFile  = domainerrors.NewBaseError(http.StatusBadRequest, "MISSING_FILE", "A file is required", "")
	errInvalidQuery = domainerrors.NewBaseError(http.StatusBadRequest, "INVALID_INPUT", "Invalid query parameter", "")
)

// pathID parses a positive integer path parameter.
func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidID.WrapMessage(name)
	}

	return id, nil
}

// bindPage reads the pagination window from the query string.
func bindPage(c echo.Context) (entity.Page, error) {
	var q PageQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return entity.Page{}, errInvalidPage
	}
	if err := c.Validate(&q); err != nil {
		return entity.Page{}, err
	}

	return q.page(), nil
}

// optionalQueryID reads an optional positive integer query parameter.
func optionalQueryID(c echo.Context, name string) (*int64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, errInvalidQuery.WrapMessage(name)
	}

	return &id, nil
}

// caller returns the authenticated principal. Routes using it sit behind Authenticate.
func caller(c echo.Context) (*entity.Principal, error) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return nil, domainerrors.ErrTokenInvalid
	}

	return principal, nil
}

// isStaff reports whether the caller may act on other users' records.
func isStaff(p *entity.Principal) bool {
	return p.HasScopes(entity.ScopeAdminRead)
}

// canAccess reports whether the caller owns a record or is staff.
func canAccess(p *entity.Principal, ownerID int64) bool {
	return p.UserID == ownerID || isStaff(p)
}

// subjectUserID resolves whose records a request targets. Customers always act
// on themselves; staff may name another user.
func subjectUserID(p *entity.Principal, requested int64) (int64, error) {
	if requested == 0 || requested == p.UserID {
		return p.UserID, nil
	}
	if !p.HasScopes(entity.ScopeAdminWrite) {
		return 0, domainerrors.ErrForbidden
	}

	return requested, nil
}

// targetUserID resolves the optional user_id query parameter of list endpoints.
func targetUserID(c echo.Context, p *entity.Principal) (int64, error) {
	requested, err := optionalQueryID(c, "user_id")
	if err != nil {
		return 0, err
	}
	if requested == nil {
		return p.UserID, nil
	}
	if *requested != p.UserID && !isStaff(p) {
		return 0, domainerrors.ErrForbidden
	}

	return *requested, nil
}

// openUpload turns a multipart file into a usecase upload. The caller closes the file.
func openUpload(fh *multipart.FileHeader) (*usecase.FileUpload, multipart.File, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to open uploaded file")
	}

	return &usecase.FileUpload{
		FileName:    fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Size:        fh.Size,
		Content:     f,
	}, f, nil
}

// formFile reads one file of a multipart request.
func formFile(c echo.Context, field string) (*multipart.FileHeader, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, errMissingFile.WrapMessage(field)
	}

	return fh, nil
}
