package service

import (
	"errors"
	"strings"

	"github.com/shopkit-io/shopkit-api/internal/models"
	"github.com/shopkit-io/shopkit-api/internal/repository"
	appErrors "github.com/shopkit-io/shopkit-api/pkg/errors"
)

// checkNotBlank catches values that satisfy the structural "required"
// rule but are empty once trimmed, e.g. a name of "  ".
func checkNotBlank(field, value string) []appErrors.FieldError {
	if strings.TrimSpace(value) != "" {
		return nil
	}
	return []appErrors.FieldError{{
		Field:   field,
		Rule:    "notblank",
		Message: field + " must not be blank",
	}}
}

func paginationFor(page, size, total int) *models.Pagination {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = 20
	}
	return &models.Pagination{Page: page, PageSize: size, TotalCount: total}
}

// mapReadError converts store errors from read paths, which do not run
// through the pipeline, into the shared taxonomy.
func mapReadError(err error, notFoundMsg, internalMsg string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return appErrors.Clone(appErrors.ErrNotFound, notFoundMsg)
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, internalMsg)
}
