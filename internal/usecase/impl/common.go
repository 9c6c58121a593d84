package impl

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"medico/internal/domain/entity"
	domainerrors "medico/internal/domain/errors"
	"medico/internal/domain/repository"
	"medico/internal/errors"
)

// paged wraps a page of items with the unpaged total.
func paged[T any](items []T, total int64) *entity.PagedResult[T] {
	if items == nil {
		items = []T{}
	}

	return &entity.PagedResult[T]{Items: items, Total: total}
}

// ensureLookupsExist rejects ids that do not name a live record of kind.
func ensureLookupsExist(ctx context.Context, lookupRepo repository.LookupRepository, kind entity.LookupKind, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	missing, err := lookupRepo.MissingLookupIDs(ctx, kind, ids)
	if err != nil {
		return err
	}

	return missingReference(kind.String(), missing)
}

// ensureMedicinesExist rejects ids that do not name a live medicine.
func ensureMedicinesExist(ctx context.Context, medicineRepo repository.MedicineRepository, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	missing, err := medicineRepo.MissingMedicineIDs(ctx, ids)
	if err != nil {
		return err
	}

	return missingReference("medicine", missing)
}

func missingReference(what string, missing []int64) error {
	if len(missing) == 0 {
		return nil
	}

	parts := make([]string, 0, len(missing))
	for _, id := range missing {
		parts = append(parts, strconv.FormatInt(id, 10))
	}

	return domainerrors.ErrInvalidReference.WrapMessage("unknown " + what + " ids: " + strings.Join(parts, ","))
}

// isNotFound reports whether err is any application NotFound error.
func isNotFound(err error) bool {
	var appErr domainerrors.AppError
	return errors.As(err, &appErr) && appErr.HTTPCode() == http.StatusNotFound
}
