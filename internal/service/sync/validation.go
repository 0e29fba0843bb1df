package sync

import (
	"fmt"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"forgesync/internal/config"
	"forgesync/internal/domain"
	"forgesync/internal/domain/models"
)

var drivePrefixRegex = regexp.MustCompile(`^[A-Za-z]:`)

// checkString enforces the shared contract for free-form string fields:
// present, non-empty and bounded. Errors carry the field name so callers can
// return them verbatim.
func checkString(value, field string, maxLen int) error {
	err := validation.Validate(value,
		validation.Required.Error(fmt.Sprintf("%s is required", field)),
		validation.RuneLength(0, maxLen).Error(fmt.Sprintf("%s exceeds maximum length of %d", field, maxLen)),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return nil
}

// checkPath applies checkString plus the relative-path rules for
// user-supplied vault paths. This is the request-shape defense; the vault
// re-validates every path it actually touches.
func checkPath(value, field string) error {
	if err := checkString(value, field, config.MaxPathLength); err != nil {
		return err
	}

	err := validation.Validate(value, validation.By(func(v interface{}) error {
		s, _ := v.(string)
		if strings.Contains(s, "..") {
			return fmt.Errorf("%s contains invalid path traversal characters", field)
		}
		if strings.HasPrefix(s, "/") || drivePrefixRegex.MatchString(s) {
			return fmt.Errorf("%s must be a relative path", field)
		}
		return nil
	}))
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return nil
}

// checkArray bounds a batch array. Element shape is deliberately not
// validated here: malformed items surface as per-item errors during the
// push instead of rejecting the whole batch.
func checkArray(length int, field string) error {
	if length > config.MaxBatchItems {
		return fmt.Errorf("%w: %s exceeds maximum of %d items", domain.ErrValidation, field, config.MaxBatchItems)
	}
	return nil
}

// CheckPushRequest validates the shape of a POST /sync/push body.
func CheckPushRequest(req *models.PushRequest) error {
	if req == nil {
		return fmt.Errorf("%w: request body is required", domain.ErrValidation)
	}

	if err := checkString(req.ProjectName, "projectName", config.MaxProjectNameLength); err != nil {
		return err
	}

	if err := checkArray(len(req.Branches), "branches"); err != nil {
		return err
	}
	if err := checkArray(len(req.ForgeDocs), "forgeDocs"); err != nil {
		return err
	}
	if err := checkArray(len(req.DocKits), "docKits"); err != nil {
		return err
	}
	if err := checkArray(len(req.Folders), "folders"); err != nil {
		return err
	}

	return nil
}

// CheckCreateMappingRequest validates the shape of a POST /mappings body.
func CheckCreateMappingRequest(req *models.CreateMappingRequest) error {
	if req == nil {
		return fmt.Errorf("%w: request body is required", domain.ErrValidation)
	}

	if err := checkString(req.ThinkForgeFolderID, "thinkForgeFolderId", config.MaxFolderIDLength); err != nil {
		return err
	}
	if err := checkString(req.ThinkForgeFolderName, "thinkForgeFolderName", config.MaxFolderNameLength); err != nil {
		return err
	}
	return checkPath(req.ObsidianPath, "obsidianPath")
}
